// Package engine composes the per-tick decision cycle: gate, classification,
// sizing, order construction, and submission.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"intrabot-go/internal/execution"
	"intrabot-go/internal/market"
	"intrabot-go/internal/metrics"
	"intrabot-go/internal/risk"
	"intrabot-go/internal/strategy"
)

// SnapshotSource supplies the pre-computed indicator values for a symbol.
// The second return is false while the snapshot is unavailable.
type SnapshotSource interface {
	Snapshot(symbol string) (market.IndicatorSnapshot, bool)
}

// ConstraintSource supplies per-symbol trading rules; false means unknown symbol.
type ConstraintSource interface {
	Constraints(symbol string) (market.SymbolConstraints, bool)
}

// Skip reason codes beyond the gate's block reasons.
const (
	skipSnapshotUnavailable = "snapshot_unavailable"
	skipNoSignal            = "no_signal"
	skipConstraintsUnknown  = "constraints_unknown"
	skipSizingInvalid       = "sizing_invalid"
)

// Params collects the engine's collaborators and knobs.
type Params struct {
	Log         zerolog.Logger
	Classifier  strategy.Classifier
	Sizer       risk.Sizer
	Gate        risk.Gate
	Days        *risk.DayTracker
	Snapshots   SnapshotSource
	Constraints ConstraintSource
	Executor    *execution.Executor
	RiskBudget  float64 // money risked per trade
	Tag         string  // strategy identifier stamped on every order
	Clock       func() time.Time
}

// Status is a point-in-time view of the engine's counters for operators.
type Status struct {
	Evaluated int
	Skipped   int
	Submitted int
	Accepted  int
	Rejected  int
}

// Engine runs one decision cycle per market tick. It owns the trading day
// state exclusively; collaborators only supply read-only inputs. All methods
// are driven from a single goroutine.
type Engine struct {
	log         zerolog.Logger
	classifier  strategy.Classifier
	sizer       risk.Sizer
	gate        risk.Gate
	days        *risk.DayTracker
	snapshots   SnapshotSource
	constraints ConstraintSource
	exec        *execution.Executor
	pnl         execution.PnLReporter
	riskBudget  float64
	tag         string
	now         func() time.Time
	status      Status
}

// New wires an engine from its collaborators. When the executor's venue
// reports realized P&L, the daily loss gate is fed from it.
func New(p Params) *Engine {
	e := &Engine{
		log:         p.Log,
		classifier:  p.Classifier,
		sizer:       p.Sizer,
		gate:        p.Gate,
		days:        p.Days,
		snapshots:   p.Snapshots,
		constraints: p.Constraints,
		exec:        p.Executor,
		riskBudget:  p.RiskBudget,
		tag:         p.Tag,
		now:         p.Clock,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.days == nil {
		e.days = risk.NewDayTracker(risk.ScopeShared)
	}
	if reporter, ok := p.Executor.Venue().(execution.PnLReporter); ok {
		e.pnl = reporter
	}
	return e
}

// OnTick evaluates one symbol once. Every skip path is logged with the symbol
// and reason so operators can tell "no signal" from "blocked" from "rejected".
func (e *Engine) OnTick(ctx context.Context, tick market.Tick) {
	now := e.now()
	e.status.Evaluated++

	day := e.days.State(now, tick.Symbol)
	if e.pnl != nil {
		day.RealizedLoss = e.pnl.RealizedLossToday()
	}

	if reason := e.gate.Evaluate(now, day); reason != risk.ReasonNone {
		e.skip(tick.Symbol, string(reason))
		return
	}

	snap, ok := e.snapshots.Snapshot(tick.Symbol)
	if !ok {
		e.skip(tick.Symbol, skipSnapshotUnavailable)
		return
	}

	verdict := e.classifier.Classify(snap)
	if verdict == strategy.None {
		e.skip(tick.Symbol, skipNoSignal)
		return
	}

	cons, ok := e.constraints.Constraints(tick.Symbol)
	if !ok {
		e.skip(tick.Symbol, skipConstraintsUnknown)
		return
	}

	stopDistance := e.sizer.StopDistance(snap.ATR, cons)
	size, err := e.sizer.Size(cons, stopDistance, e.riskBudget)
	if err != nil {
		e.log.Warn().Err(err).Str("sym", tick.Symbol).Float64("stop_distance", stopDistance).Msg("sizing failed")
		e.skip(tick.Symbol, skipSizingInvalid)
		return
	}

	order := e.buildOrder(tick, verdict, cons, stopDistance, size, now)
	e.status.Submitted++
	sub := e.exec.Submit(ctx, order)
	if !sub.Accepted {
		e.status.Rejected++
		return
	}
	e.status.Accepted++
	day.RecordOpen(now)
}

func (e *Engine) buildOrder(tick market.Tick, verdict strategy.Verdict, cons market.SymbolConstraints, stopDistance, size float64, now time.Time) execution.Order {
	tpDistance := e.sizer.TakeProfitDistance(stopDistance, cons)

	var side execution.Side
	var entry, stop, target float64
	if verdict == strategy.Long {
		side = execution.Buy
		entry = tick.Ask
		stop = entry - stopDistance
		target = entry + tpDistance
	} else {
		side = execution.Sell
		entry = tick.Bid
		stop = entry + stopDistance
		target = entry - tpDistance
	}

	return execution.Order{
		Symbol:     tick.Symbol,
		Side:       side,
		Size:       size,
		Entry:      entry,
		StopLoss:   stop,
		TakeProfit: target,
		Tag:        e.tag,
		ClientID:   uuid.NewString(),
		Ts:         now,
	}
}

func (e *Engine) skip(symbol, reason string) {
	e.status.Skipped++
	metrics.SkipsTotal.WithLabelValues(symbol, reason).Inc()
	e.log.Debug().Str("sym", symbol).Str("reason", reason).Msg("cycle skipped")
}

// Status returns the engine's counters.
func (e *Engine) Status() Status { return e.status }
