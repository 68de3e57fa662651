// Package risk holds the guard-rails between a raw signal and a live order:
// risk-normalized position sizing, daily counters, and the trading gate.
package risk

import (
	"errors"
	"math"

	"intrabot-go/internal/market"
)

// ErrInvalidInput marks sizing calls with a non-positive stop distance or risk
// budget. Callers treat it as "do not trade this symbol this cycle", never fatal.
var ErrInvalidInput = errors.New("risk: invalid sizing input")

// Sizer converts a monetary risk budget into a broker-valid position size.
type Sizer struct {
	ATRMultiplier  float64 // stop distance per unit of ATR
	StopFloor      float64 // price-unit floor guarding against near-zero volatility
	RewardMultiple float64 // take-profit distance as a multiple of stop distance
}

// StopDistance derives the protective stop distance from current volatility:
// max(multiplier*atr, floor), never below the symbol's minimum stop distance.
func (s Sizer) StopDistance(atr float64, c market.SymbolConstraints) float64 {
	d := math.Max(s.ATRMultiplier*atr, s.StopFloor)
	return math.Max(d, c.MinStopDistance)
}

// TakeProfitDistance derives the target distance as RewardMultiple times the
// stop distance, independently floored at the symbol's minimum stop distance.
func (s Sizer) TakeProfitDistance(stopDistance float64, c market.SymbolConstraints) float64 {
	return math.Max(s.RewardMultiple*stopDistance, c.MinStopDistance)
}

// Size computes the position size whose loss at the stop equals the risk
// budget, clamped to the symbol's bounds and quantized to its size step
// (round-half-up). Size is non-decreasing in the budget for a fixed stop.
func (s Sizer) Size(c market.SymbolConstraints, stopDistance, riskBudget float64) (float64, error) {
	if stopDistance <= 0 || riskBudget <= 0 {
		return 0, ErrInvalidInput
	}
	riskPerUnit := stopDistance * c.ValuePerUnitMove
	if riskPerUnit <= 0 {
		return 0, ErrInvalidInput
	}

	size := riskBudget / riskPerUnit
	size = clamp(size, c.MinSize, c.MaxSize)
	if c.SizeStep > 0 {
		// the epsilon keeps half-way points rounding up despite the binary
		// representation of decimal steps like 0.01
		size = math.Floor(size/c.SizeStep+0.5+1e-9) * c.SizeStep
		// rounding may step past a bound that is itself step-aligned
		if size > c.MaxSize && c.MaxSize > 0 {
			size = math.Floor(c.MaxSize/c.SizeStep) * c.SizeStep
		}
		if size < c.MinSize {
			size = math.Ceil(c.MinSize/c.SizeStep) * c.SizeStep
		}
	}
	return size, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}
