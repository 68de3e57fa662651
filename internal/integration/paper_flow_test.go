package integration

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"intrabot-go/internal/engine"
	"intrabot-go/internal/exchange"
	"intrabot-go/internal/execution"
	"intrabot-go/internal/indicators"
	"intrabot-go/internal/market"
	"intrabot-go/internal/paper"
	"intrabot-go/internal/risk"
	"intrabot-go/internal/strategy"
)

// Drives crafted ticks through the tracker, engine, and paper venue and checks
// that a sustained uptrend inside the session opens exactly one long under a
// one-trade-per-day limit and rides it into the take-profit.
func TestPaperFlowOpensLongOnUptrend(t *testing.T) {
	constraints := exchange.NewStaticConstraints(map[string]market.SymbolConstraints{
		"EURUSD": {
			MinSize:          0.01,
			MaxSize:          50,
			SizeStep:         0.01,
			MinStopDistance:  0.0005,
			ValuePerUnitMove: 10,
		},
	})
	venue := paper.NewVenue(1000, 30, constraints, nil)
	tracker := indicators.NewTracker(time.Minute, indicators.Periods{
		FastMA: 2, MidMA: 3, SlowMA: 4, MACDFast: 2, MACDSlow: 3, MACDSignal: 2, ATR: 2,
	})

	session, err := risk.ParseSessionWindow("13:00", "16:00", "UTC")
	if err != nil {
		t.Fatalf("ParseSessionWindow returned error: %v", err)
	}

	// Wednesday inside the session.
	now := time.Date(2026, 3, 4, 13, 5, 0, 0, time.UTC)
	eng := engine.New(engine.Params{
		Log:         zerolog.Nop(),
		Classifier:  strategy.TrendMomentum{},
		Sizer:       risk.Sizer{ATRMultiplier: 2, StopFloor: 0.0005, RewardMultiple: 2},
		Gate:        risk.Gate{Session: session, MaxTradesPerDay: 1},
		Snapshots:   tracker,
		Constraints: constraints,
		Executor:    execution.NewExecutor(venue, time.Second, zerolog.Nop()),
		RiskBudget:  20,
		Tag:         "integration",
		Clock:       func() time.Time { return now },
	})

	ctx := context.Background()
	price := 1.1000
	for i := 0; i < 40; i++ {
		tick := market.Tick{Symbol: "EURUSD", Bid: price - 0.0001, Ask: price + 0.0001, Ts: now}
		tracker.OnTick(tick)
		venue.MarkTick(tick)
		eng.OnTick(ctx, tick)

		now = now.Add(time.Minute)
		price += 0.0010
	}

	status := eng.Status()
	if status.Accepted != 1 {
		t.Fatalf("expected exactly one accepted order, got %+v", status)
	}
	if venue.OpenPositions() != 0 {
		t.Fatalf("expected the uptrend to resolve the take-profit, got %d open", venue.OpenPositions())
	}
	if venue.RealizedPnL() <= 0 {
		t.Fatalf("expected a profitable close, got %.4f", venue.RealizedPnL())
	}
	if venue.Cash() <= 1000 {
		t.Fatalf("expected profit returned to cash, got %.2f", venue.Cash())
	}
	if status.Evaluated != 40 || status.Skipped != status.Evaluated-status.Submitted {
		t.Fatalf("unexpected counter bookkeeping: %+v", status)
	}
}

// Outside the session the gate must stop every evaluation before any market
// data is consulted, so no position can ever open.
func TestPaperFlowBlockedOutsideSession(t *testing.T) {
	constraints := exchange.NewStaticConstraints(map[string]market.SymbolConstraints{
		"EURUSD": {MinSize: 0.01, MaxSize: 50, SizeStep: 0.01, MinStopDistance: 0.0005, ValuePerUnitMove: 10},
	})
	venue := paper.NewVenue(1000, 30, constraints, nil)
	tracker := indicators.NewTracker(time.Minute, indicators.Periods{
		FastMA: 2, MidMA: 3, SlowMA: 4, MACDFast: 2, MACDSlow: 3, MACDSignal: 2, ATR: 2,
	})

	session, err := risk.ParseSessionWindow("13:00", "16:00", "UTC")
	if err != nil {
		t.Fatalf("ParseSessionWindow returned error: %v", err)
	}

	now := time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC) // after the close
	eng := engine.New(engine.Params{
		Log:         zerolog.Nop(),
		Classifier:  strategy.TrendMomentum{},
		Sizer:       risk.Sizer{ATRMultiplier: 2, StopFloor: 0.0005, RewardMultiple: 2},
		Gate:        risk.Gate{Session: session, MaxTradesPerDay: 1},
		Snapshots:   tracker,
		Constraints: constraints,
		Executor:    execution.NewExecutor(venue, time.Second, zerolog.Nop()),
		RiskBudget:  20,
		Clock:       func() time.Time { return now },
	})

	ctx := context.Background()
	price := 1.1000
	for i := 0; i < 40; i++ {
		tick := market.Tick{Symbol: "EURUSD", Bid: price - 0.0001, Ask: price + 0.0001, Ts: now}
		tracker.OnTick(tick)
		eng.OnTick(ctx, tick)
		now = now.Add(time.Minute)
		price += 0.0010
	}

	status := eng.Status()
	if status.Submitted != 0 || status.Skipped != 40 {
		t.Fatalf("expected every cycle blocked, got %+v", status)
	}
	if venue.OpenPositions() != 0 {
		t.Fatalf("expected no paper positions, got %d", venue.OpenPositions())
	}
}
