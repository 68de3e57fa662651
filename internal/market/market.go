// Package market standardizes payloads shared between data ingestion and decision layers.
package market

import "time"

// Tick models one market update for a symbol and triggers an evaluation cycle.
type Tick struct {
	Symbol string
	Bid    float64
	Ask    float64
	Ts     time.Time
}

// Mid returns the midpoint price, or zero when the tick carries no usable quote.
func (t Tick) Mid() float64 {
	if t.Bid <= 0 || t.Ask <= 0 {
		return 0
	}
	return (t.Bid + t.Ask) / 2
}

// IndicatorSnapshot carries the point-in-time indicator values a classifier consumes.
// The engine never looks backward beyond the most recent snapshot.
type IndicatorSnapshot struct {
	FastMA     float64
	MidMA      float64
	SlowMA     float64
	MACDLine   float64
	SignalLine float64
	ATR        float64
}

// SymbolConstraints exposes per-symbol trading rules supplied by the venue or a
// profile file: size bounds and quantization plus stop placement limits.
type SymbolConstraints struct {
	MinSize          float64
	MaxSize          float64
	SizeStep         float64
	MinStopDistance  float64
	ValuePerUnitMove float64 // money per one price unit per one unit of size
}
