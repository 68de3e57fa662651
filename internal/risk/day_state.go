package risk

import "time"

// TradingDayState carries the daily counters the gate enforces. It is owned by
// the orchestrator and reset when the calendar date rolls over; it is never
// persisted across restarts.
type TradingDayState struct {
	Date         time.Time // midnight UTC of the trading day
	TradesOpened int
	RealizedLoss float64 // cumulative loss today, >= 0
	LastOpenedAt time.Time
}

// RecordOpen counts one accepted order submission.
func (s *TradingDayState) RecordOpen(at time.Time) {
	s.TradesOpened++
	s.LastOpenedAt = at
}

// Scope selects how day state is keyed across the configured symbol set.
type Scope string

const (
	// ScopeShared keeps one counter set for the whole symbol set.
	ScopeShared Scope = "shared"
	// ScopePerSymbol keeps independent counters per symbol.
	ScopePerSymbol Scope = "per_symbol"
)

// DayTracker hands out the day state for an evaluation instant, creating fresh
// counters at the first evaluation of a new calendar day.
type DayTracker struct {
	scope  Scope
	states map[string]*TradingDayState
}

// NewDayTracker builds a tracker with the given scope; unknown scopes fall back
// to shared counters, matching the observed source behaviour.
func NewDayTracker(scope Scope) *DayTracker {
	if scope != ScopePerSymbol {
		scope = ScopeShared
	}
	return &DayTracker{scope: scope, states: make(map[string]*TradingDayState)}
}

// State returns the live counters for the symbol at the given instant. The
// date comparison is in UTC; a rollover discards the previous day's counters.
func (d *DayTracker) State(now time.Time, symbol string) *TradingDayState {
	key := ""
	if d.scope == ScopePerSymbol {
		key = symbol
	}
	date := now.UTC().Truncate(24 * time.Hour)

	st := d.states[key]
	if st == nil || !st.Date.Equal(date) {
		st = &TradingDayState{Date: date}
		d.states[key] = st
	}
	return st
}
