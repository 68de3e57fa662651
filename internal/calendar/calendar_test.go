package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeCalendar(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calendar.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write calendar fixture: %v", err)
	}
	return path
}

func TestLoadHolidaysAndWeekends(t *testing.T) {
	path := writeCalendar(t, `
holidays:
  - "2026-12-25"
news:
  - "2026-03-06T13:30:00Z"
`)
	cal, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !cal.IsNonTradingDay(time.Date(2026, 12, 25, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected listed holiday to block")
	}
	// 2026-03-07 is a Saturday
	if !cal.IsNonTradingDay(time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected weekend to block by default")
	}
	if cal.IsNonTradingDay(time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected ordinary Friday to trade")
	}
}

func TestWeekendsCanBeOpened(t *testing.T) {
	path := writeCalendar(t, "weekends_closed: false\n")
	cal, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cal.IsNonTradingDay(time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected Saturday to trade with weekends open")
	}
}

func TestHighImpactNewsWindow(t *testing.T) {
	path := writeCalendar(t, `
news:
  - "2026-03-06T13:30:00Z"
`)
	cal, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	window := 10 * time.Minute
	if !cal.HighImpactNewsImminent(time.Date(2026, 3, 6, 13, 21, 0, 0, time.UTC), window) {
		t.Fatalf("expected imminent before the release")
	}
	if !cal.HighImpactNewsImminent(time.Date(2026, 3, 6, 13, 39, 0, 0, time.UTC), window) {
		t.Fatalf("expected imminent just after the release")
	}
	if cal.HighImpactNewsImminent(time.Date(2026, 3, 6, 13, 0, 0, 0, time.UTC), window) {
		t.Fatalf("expected clear well before the release")
	}
	if cal.HighImpactNewsImminent(time.Date(2026, 3, 6, 13, 25, 0, 0, time.UTC), 0) {
		t.Fatalf("expected zero window to disable the check")
	}
}

func TestLoadFailures(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	path := writeCalendar(t, "holidays: [\"not-a-date\"]\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed holiday")
	}
}
