// Package indicators provides streaming indicator implementations used to build
// snapshots from a live tick stream. Values update per completed bar; none of the
// types retain more history than their period requires.
package indicators

import "math"

// Bar is one fixed-interval aggregation of ticks.
type Bar struct {
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// SMA is a streaming simple moving average over bar closes.
type SMA struct {
	period int
	closes []float64
}

// NewSMA creates a simple moving average with the given period.
func NewSMA(period int) *SMA {
	return &SMA{period: period, closes: make([]float64, 0, period)}
}

// Update pushes a completed bar into the window.
func (s *SMA) Update(b Bar) {
	s.closes = append(s.closes, b.Close)
	if len(s.closes) > s.period {
		s.closes = s.closes[1:]
	}
}

// Ready reports whether a full period has been observed.
func (s *SMA) Ready() bool { return len(s.closes) >= s.period }

// Value returns the current average, or zero before warmup completes.
func (s *SMA) Value() float64 {
	if !s.Ready() {
		return 0
	}
	sum := 0.0
	for _, c := range s.closes {
		sum += c
	}
	return sum / float64(len(s.closes))
}

// EMA is a streaming exponential moving average seeded with an SMA over the
// first period values.
type EMA struct {
	period     int
	multiplier float64
	ema        float64
	count      int
	warmupSum  float64
}

// NewEMA creates an exponential moving average with the given period.
func NewEMA(period int) *EMA {
	return &EMA{period: period, multiplier: 2.0 / float64(period+1)}
}

// UpdateValue advances the EMA with a raw value (used by MACD signal line).
func (e *EMA) UpdateValue(v float64) {
	if e.count < e.period {
		e.warmupSum += v
		e.count++
		if e.count == e.period {
			e.ema = e.warmupSum / float64(e.period)
		}
		return
	}
	e.ema = (v-e.ema)*e.multiplier + e.ema
}

// Update advances the EMA with the bar close.
func (e *EMA) Update(b Bar) { e.UpdateValue(b.Close) }

// Ready reports whether the warmup SMA seed has been established.
func (e *EMA) Ready() bool { return e.count >= e.period }

// Value returns the current EMA, or zero before warmup completes.
func (e *EMA) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.ema
}

// MACD tracks a fast/slow EMA pair over closes and an EMA signal line over the
// resulting MACD values.
type MACD struct {
	fast   *EMA
	slow   *EMA
	signal *EMA
}

// NewMACD creates a MACD with the given fast, slow, and signal periods.
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{fast: NewEMA(fast), slow: NewEMA(slow), signal: NewEMA(signal)}
}

// Update advances both EMAs and, once they are warm, the signal line.
func (m *MACD) Update(b Bar) {
	m.fast.Update(b)
	m.slow.Update(b)
	if m.fast.Ready() && m.slow.Ready() {
		m.signal.UpdateValue(m.fast.Value() - m.slow.Value())
	}
}

// Ready reports whether the signal line has completed its warmup.
func (m *MACD) Ready() bool { return m.signal.Ready() }

// Value returns the MACD line and signal line.
func (m *MACD) Value() (line, signal float64) {
	if !m.Ready() {
		return 0, 0
	}
	return m.fast.Value() - m.slow.Value(), m.signal.Value()
}

// ATR is a streaming average true range using Wilder's smoothing.
type ATR struct {
	period      int
	atr         float64
	count       int
	warmupSum   float64
	prevClose   float64
	hasPrevious bool
}

// NewATR creates an average true range with the given period.
func NewATR(period int) *ATR {
	return &ATR{period: period}
}

// Update advances the ATR with a completed bar.
func (a *ATR) Update(b Bar) {
	if !a.hasPrevious {
		a.prevClose = b.Close
		a.hasPrevious = true
		return
	}
	tr := trueRange(b, a.prevClose)
	a.prevClose = b.Close

	if a.count < a.period {
		a.warmupSum += tr
		a.count++
		if a.count == a.period {
			a.atr = a.warmupSum / float64(a.period)
		}
		return
	}
	a.atr = (a.atr*float64(a.period-1) + tr) / float64(a.period)
}

// Ready reports whether enough bars have been observed. TR needs a previous
// close, so warmup is period+1 bars.
func (a *ATR) Ready() bool { return a.count >= a.period }

// Value returns the current ATR, or zero before warmup completes.
func (a *ATR) Value() float64 {
	if !a.Ready() {
		return 0
	}
	return a.atr
}

func trueRange(b Bar, prevClose float64) float64 {
	hl := b.High - b.Low
	hc := math.Abs(b.High - prevClose)
	lc := math.Abs(b.Low - prevClose)
	return math.Max(hl, math.Max(hc, lc))
}
