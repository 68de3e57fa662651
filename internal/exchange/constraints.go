package exchange

import "intrabot-go/internal/market"

// StaticConstraints serves symbol trading rules from an in-memory profile map,
// typically hydrated from configuration at startup.
type StaticConstraints struct {
	profiles map[string]market.SymbolConstraints
}

// NewStaticConstraints copies the given profiles into a lookup source.
func NewStaticConstraints(profiles map[string]market.SymbolConstraints) *StaticConstraints {
	m := make(map[string]market.SymbolConstraints, len(profiles))
	for sym, c := range profiles {
		m[sym] = c
	}
	return &StaticConstraints{profiles: m}
}

// Constraints returns the rules for a symbol; false means the symbol is
// unknown and must be skipped this cycle.
func (s *StaticConstraints) Constraints(symbol string) (market.SymbolConstraints, bool) {
	c, ok := s.profiles[symbol]
	return c, ok
}
