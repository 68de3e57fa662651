// Package paper simulates an execution venue for paper trading: orders fill at
// their entry price and protective levels resolve against later ticks.
package paper

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"intrabot-go/internal/execution"
	"intrabot-go/internal/market"
)

// FillRecorder captures paper fills for later inspection.
type FillRecorder interface {
	Record(execution.Fill)
}

// Tee fans every fill out to multiple recorders.
type Tee []FillRecorder

// Record implements FillRecorder.
func (t Tee) Record(f execution.Fill) {
	for _, r := range t {
		r.Record(f)
	}
}

// ConstraintSource supplies the per-symbol rules the venue enforces.
type ConstraintSource interface {
	Constraints(symbol string) (market.SymbolConstraints, bool)
}

// Venue-side reject reason codes.
const (
	RejectInvalidOrder       = "invalid_order"
	RejectUnknownSymbol      = "unknown_symbol"
	RejectPositionExists     = "position_exists"
	RejectStopTooTight       = "stop_too_tight"
	RejectInsufficientMargin = "insufficient_margin"
)

const epsilon = 1e-9

type position struct {
	ticket       string
	side         execution.Side
	size         float64
	entry        float64
	stop         float64
	target       float64
	valuePerUnit float64
}

// Venue tracks virtual cash, margin, and per-symbol positions while accepting
// orders through the execution contract. One position per symbol.
type Venue struct {
	mu           sync.Mutex
	cash         float64
	leverage     float64
	marginUsed   float64
	realizedPnL  float64
	lossDate     time.Time
	realizedLoss float64
	positions    map[string]position
	constraints  ConstraintSource
	recorder     FillRecorder
}

// NewVenue constructs a paper venue with starting cash and margin leverage.
// The recorder may be nil.
func NewVenue(startingCash, leverage float64, constraints ConstraintSource, recorder FillRecorder) *Venue {
	if leverage <= 0 {
		leverage = 1
	}
	return &Venue{
		cash:        startingCash,
		leverage:    leverage,
		positions:   make(map[string]position),
		constraints: constraints,
		recorder:    recorder,
	}
}

// Name identifies the venue in executor logs.
func (v *Venue) Name() string { return "paper" }

// Submit validates the order against the symbol's constraints and available
// margin, then opens a simulated position filled at the requested entry.
func (v *Venue) Submit(ctx context.Context, o execution.Order) (execution.Submission, error) {
	if err := ctx.Err(); err != nil {
		return execution.Submission{}, err
	}
	if o.Size <= 0 || o.Entry <= 0 {
		return execution.Submission{Reason: RejectInvalidOrder}, nil
	}
	cons, ok := v.constraints.Constraints(o.Symbol)
	if !ok {
		return execution.Submission{Reason: RejectUnknownSymbol}, nil
	}
	if dist := abs(o.Entry - o.StopLoss); dist+epsilon < cons.MinStopDistance {
		return execution.Submission{Reason: RejectStopTooTight}, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, open := v.positions[o.Symbol]; open {
		return execution.Submission{Reason: RejectPositionExists}, nil
	}
	margin := o.Size * o.Entry / v.leverage
	if margin > v.cash-v.marginUsed+epsilon {
		return execution.Submission{Reason: RejectInsufficientMargin}, nil
	}

	ticket := uuid.NewString()
	v.marginUsed += margin
	v.positions[o.Symbol] = position{
		ticket:       ticket,
		side:         o.Side,
		size:         o.Size,
		entry:        o.Entry,
		stop:         o.StopLoss,
		target:       o.TakeProfit,
		valuePerUnit: cons.ValuePerUnitMove,
	}
	v.record(execution.Fill{
		Ticket: ticket,
		Symbol: o.Symbol,
		Side:   o.Side,
		Size:   o.Size,
		Price:  o.Entry,
		Ts:     o.Ts,
	})
	return execution.Submission{Accepted: true, TicketID: ticket}, nil
}

// MarkTick resolves protective levels for the symbol's open position against a
// fresh quote. Longs exit on the bid, shorts on the ask.
func (v *Venue) MarkTick(t market.Tick) {
	v.mu.Lock()
	defer v.mu.Unlock()

	pos, open := v.positions[t.Symbol]
	if !open {
		return
	}

	var exit float64
	switch pos.side {
	case execution.Buy:
		if t.Bid <= pos.stop {
			exit = pos.stop
		} else if pos.target > 0 && t.Bid >= pos.target {
			exit = pos.target
		}
	case execution.Sell:
		if t.Ask >= pos.stop {
			exit = pos.stop
		} else if pos.target > 0 && t.Ask <= pos.target {
			exit = pos.target
		}
	}
	if exit == 0 {
		return
	}
	v.closeLocked(t.Symbol, pos, exit, t.Ts)
}

func (v *Venue) closeLocked(symbol string, pos position, exit float64, ts time.Time) {
	pnl := (exit - pos.entry) * pos.size * pos.valuePerUnit
	closeSide := execution.Sell
	if pos.side == execution.Sell {
		pnl = -pnl
		closeSide = execution.Buy
	}

	v.realizedPnL += pnl
	v.cash += pnl
	v.marginUsed -= pos.size * pos.entry / v.leverage
	if v.marginUsed < 0 {
		v.marginUsed = 0
	}
	if pnl < 0 {
		v.noteLossLocked(ts, -pnl)
	}
	delete(v.positions, symbol)

	v.record(execution.Fill{
		Ticket: pos.ticket,
		Symbol: symbol,
		Side:   closeSide,
		Size:   pos.size,
		Price:  exit,
		PnL:    pnl,
		Ts:     ts,
	})
}

func (v *Venue) noteLossLocked(ts time.Time, loss float64) {
	date := ts.UTC().Truncate(24 * time.Hour)
	if !v.lossDate.Equal(date) {
		v.lossDate = date
		v.realizedLoss = 0
	}
	v.realizedLoss += loss
}

func (v *Venue) record(f execution.Fill) {
	if v.recorder != nil {
		v.recorder.Record(f)
	}
}

// RealizedLossToday implements execution.PnLReporter for the daily loss gate.
func (v *Venue) RealizedLossToday() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.realizedLoss
}

// Cash returns current virtual cash including realized P&L.
func (v *Venue) Cash() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cash
}

// RealizedPnL returns total closed-trade profit and loss.
func (v *Venue) RealizedPnL() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.realizedPnL
}

// OpenPositions returns the number of symbols with a live position.
func (v *Venue) OpenPositions() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.positions)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
