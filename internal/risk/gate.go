package risk

import (
	"fmt"
	"time"

	"intrabot-go/internal/calendar"
)

// BlockReason identifies why the gate refused a cycle. Reasons double as
// metrics labels and log fields.
type BlockReason string

const (
	// ReasonNone means the gate is open.
	ReasonNone BlockReason = ""
	// ReasonHoliday blocks on calendar-excluded days.
	ReasonHoliday BlockReason = "holiday"
	// ReasonOutsideSession blocks outside the configured trading window.
	ReasonOutsideSession BlockReason = "outside_session"
	// ReasonNewsWindow blocks around imminent high-impact news.
	ReasonNewsWindow BlockReason = "news_window"
	// ReasonDailyTradeLimit blocks once today's trade count is exhausted.
	ReasonDailyTradeLimit BlockReason = "daily_trade_limit"
	// ReasonDailyLossLimit blocks once today's realized loss is exhausted.
	ReasonDailyLossLimit BlockReason = "daily_loss_limit"
)

// SessionWindow is a half-open [start, end) time-of-day interval in a fixed
// reference timezone.
type SessionWindow struct {
	StartMinute int
	EndMinute   int
	Location    *time.Location
}

// ParseSessionWindow builds a window from "HH:MM" bounds and an IANA zone name.
func ParseSessionWindow(start, end, zone string) (SessionWindow, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return SessionWindow{}, fmt.Errorf("session timezone: %w", err)
	}
	s, err := parseMinuteOfDay(start)
	if err != nil {
		return SessionWindow{}, fmt.Errorf("session start: %w", err)
	}
	e, err := parseMinuteOfDay(end)
	if err != nil {
		return SessionWindow{}, fmt.Errorf("session end: %w", err)
	}
	if s >= e {
		return SessionWindow{}, fmt.Errorf("session start %q not before end %q", start, end)
	}
	return SessionWindow{StartMinute: s, EndMinute: e, Location: loc}, nil
}

func parseMinuteOfDay(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Contains reports whether the instant falls inside the window. The boundary
// at start is in, the boundary at end is out.
func (w SessionWindow) Contains(t time.Time) bool {
	local := t.In(w.Location)
	minute := local.Hour()*60 + local.Minute()
	return minute >= w.StartMinute && minute < w.EndMinute
}

// Gate is the composite guard evaluated fresh at the top of every cycle. It
// holds no state of its own beyond reading the supplied day counters.
type Gate struct {
	Calendar        calendar.Calendar
	News            calendar.NewsSource
	Session         SessionWindow
	NewsWindow      time.Duration
	MaxTradesPerDay int
	DailyLossLimit  float64 // monetary; zero disables the loss check
}

// Evaluate runs the checks cheapest-first and returns the first blocking
// reason, or ReasonNone when trading is permitted.
func (g Gate) Evaluate(now time.Time, day *TradingDayState) BlockReason {
	if g.Calendar != nil && g.Calendar.IsNonTradingDay(now) {
		return ReasonHoliday
	}
	if !g.Session.Contains(now) {
		return ReasonOutsideSession
	}
	if g.News != nil && g.News.HighImpactNewsImminent(now, g.NewsWindow) {
		return ReasonNewsWindow
	}
	if g.MaxTradesPerDay > 0 && day.TradesOpened >= g.MaxTradesPerDay {
		return ReasonDailyTradeLimit
	}
	if g.DailyLossLimit > 0 && day.RealizedLoss >= g.DailyLossLimit {
		return ReasonDailyLossLimit
	}
	return ReasonNone
}
