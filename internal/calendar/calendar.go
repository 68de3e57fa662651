// Package calendar answers the two scheduling questions the trading gate asks:
// is today a non-trading day, and is high-impact news imminent.
package calendar

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Calendar reports whether a given day is excluded from trading.
type Calendar interface {
	IsNonTradingDay(t time.Time) bool
}

// NewsSource reports whether a high-impact event falls inside the blackout
// window around the given instant.
type NewsSource interface {
	HighImpactNewsImminent(t time.Time, window time.Duration) bool
}

type fileSchema struct {
	WeekendsClosed *bool    `yaml:"weekends_closed"`
	Holidays       []string `yaml:"holidays"`
	News           []string `yaml:"news"`
}

// File is a YAML-backed calendar and news source. Holidays are dates, news
// entries are UTC instants of scheduled high-impact releases.
type File struct {
	weekendsClosed bool
	holidays       map[string]struct{}
	news           []time.Time
}

// Load reads and parses a calendar file. An unreadable or malformed file is an
// error: callers must abort startup rather than silently trade every day.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}
	var schema fileSchema
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("decode calendar yaml: %w", err)
	}

	f := &File{
		weekendsClosed: true,
		holidays:       make(map[string]struct{}, len(schema.Holidays)),
	}
	if schema.WeekendsClosed != nil {
		f.weekendsClosed = *schema.WeekendsClosed
	}
	for _, h := range schema.Holidays {
		if _, err := time.Parse("2006-01-02", h); err != nil {
			return nil, fmt.Errorf("holiday %q: %w", h, err)
		}
		f.holidays[h] = struct{}{}
	}
	for _, n := range schema.News {
		ts, err := time.Parse(time.RFC3339, n)
		if err != nil {
			return nil, fmt.Errorf("news event %q: %w", n, err)
		}
		f.news = append(f.news, ts.UTC())
	}
	return f, nil
}

// IsNonTradingDay reports whether t falls on a listed holiday or, when weekends
// are closed, a Saturday or Sunday. Dates are compared in UTC.
func (f *File) IsNonTradingDay(t time.Time) bool {
	day := t.UTC()
	if f.weekendsClosed {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return true
		}
	}
	_, ok := f.holidays[day.Format("2006-01-02")]
	return ok
}

// HighImpactNewsImminent reports whether any scheduled event lies within the
// blackout window on either side of t.
func (f *File) HighImpactNewsImminent(t time.Time, window time.Duration) bool {
	if window <= 0 {
		return false
	}
	at := t.UTC()
	for _, event := range f.news {
		if !event.Before(at.Add(-window)) && !event.After(at.Add(window)) {
			return true
		}
	}
	return false
}
