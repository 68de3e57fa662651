package strategy

import "intrabot-go/internal/market"

// TrendMomentum classifies a snapshot long when the three moving averages are in
// strict uptrend order and the MACD line sits above its signal line in positive
// territory; short under the mirrored condition. Any equality yields None, so
// flat markets never classify as a signal.
type TrendMomentum struct{}

// Name returns the configured identifier for logging.
func (TrendMomentum) Name() string { return "TrendMomentum" }

// Classify is pure and deterministic given its input.
func (TrendMomentum) Classify(snap market.IndicatorSnapshot) Verdict {
	up := snap.FastMA > snap.MidMA && snap.MidMA > snap.SlowMA
	down := snap.FastMA < snap.MidMA && snap.MidMA < snap.SlowMA

	switch {
	case up && snap.MACDLine > snap.SignalLine && snap.MACDLine > 0:
		return Long
	case down && snap.MACDLine < snap.SignalLine && snap.MACDLine < 0:
		return Short
	default:
		return None
	}
}

// MAOnly classifies on the moving-average ordering alone, without oscillator
// confirmation. Looser than TrendMomentum; intended for paper experimentation.
type MAOnly struct{}

// Name returns the configured identifier for logging.
func (MAOnly) Name() string { return "MAOnly" }

// Classify is pure and deterministic given its input.
func (MAOnly) Classify(snap market.IndicatorSnapshot) Verdict {
	switch {
	case snap.FastMA > snap.MidMA && snap.MidMA > snap.SlowMA:
		return Long
	case snap.FastMA < snap.MidMA && snap.MidMA < snap.SlowMA:
		return Short
	default:
		return None
	}
}
