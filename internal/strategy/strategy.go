// Package strategy contains the signal classification logic driving trade decisions.
package strategy

import (
	"strings"

	"intrabot-go/internal/market"
)

// Verdict expresses the directional outcome of one classification.
type Verdict int

const (
	// None means no trade this cycle.
	None Verdict = iota
	// Long means open a buy position.
	Long
	// Short means open a sell position.
	Short
)

// String returns the lower-case verdict name used in logs and metrics labels.
func (v Verdict) String() string {
	switch v {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return "none"
	}
}

// Classifier defines behaviour shared by classifier implementations used by the engine.
type Classifier interface {
	Classify(snap market.IndicatorSnapshot) Verdict
	Name() string
}

// Build returns a classifier implementation matching the configured mode.
func Build(mode string) Classifier {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "trend_momentum":
		return TrendMomentum{}
	case "ma_only":
		return MAOnly{}
	default:
		return TrendMomentum{}
	}
}
