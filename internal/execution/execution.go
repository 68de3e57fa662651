// Package execution handles order construction and interaction with venues.
package execution

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"intrabot-go/internal/metrics"
)

// Side enumerates order directions used by the executor.
type Side string

const (
	// Buy indicates a long order.
	Buy Side = "BUY"
	// Sell indicates a short order.
	Sell Side = "SELL"
)

// Order represents a placement request with its derived protective levels.
// An order is never mutated after construction.
type Order struct {
	Symbol     string
	Side       Side
	Size       float64
	Entry      float64
	StopLoss   float64
	TakeProfit float64
	Tag        string // strategy identifier for downstream reconciliation
	ClientID   string
	Ts         time.Time
}

// Submission is the venue's answer to an order request.
type Submission struct {
	Accepted bool
	TicketID string
	Reason   string // reject reason code, empty on accept
}

// Reject reason codes the executor produces itself.
const (
	ReasonTimeout = "timeout"
	ReasonError   = "venue_error"
)

// Venue accepts order requests. Implementations must honor ctx cancellation.
type Venue interface {
	Name() string
	Submit(ctx context.Context, o Order) (Submission, error)
}

// PnLReporter is an optional venue capability: venues that track fills can
// report today's cumulative realized loss so the daily loss gate has data.
type PnLReporter interface {
	RealizedLossToday() float64
}

// A Fill records one executed trade leg, used by paper accounting and recorders.
type Fill struct {
	Ticket string    `json:"ticket"`
	Symbol string    `json:"symbol"`
	Side   Side      `json:"side"`
	Size   float64   `json:"size"`
	Price  float64   `json:"price"`
	PnL    float64   `json:"pnl"`
	Ts     time.Time `json:"ts"`
}

// Executor wraps a venue with a submission timeout, metrics, and structured
// logging. A timeout is treated as a reject; retries happen on the next tick.
type Executor struct {
	venue   Venue
	timeout time.Duration
	log     zerolog.Logger
}

const defaultTimeout = 5 * time.Second

// NewExecutor builds an executor around the given venue.
func NewExecutor(venue Venue, timeout time.Duration, log zerolog.Logger) *Executor {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Executor{venue: venue, timeout: timeout, log: log}
}

// Venue exposes the wrapped venue so callers can probe optional capabilities.
func (e *Executor) Venue() Venue { return e.venue }

// Submit forwards the order under the configured timeout and normalizes the
// outcome: errors and timeouts come back as rejected submissions.
func (e *Executor) Submit(ctx context.Context, o Order) Submission {
	metrics.OrdersTotal.WithLabelValues(o.Symbol, string(o.Side)).Inc()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	sub, err := e.venue.Submit(ctx, o)
	if err != nil {
		reason := ReasonError
		if errors.Is(err, context.DeadlineExceeded) {
			reason = ReasonTimeout
		}
		e.log.Warn().Err(err).
			Str("sym", o.Symbol).Str("side", string(o.Side)).Str("venue", e.venue.Name()).
			Str("reason", reason).Msg("order submission failed")
		metrics.SubmissionsTotal.WithLabelValues(o.Symbol, "rejected").Inc()
		return Submission{Reason: reason}
	}
	if !sub.Accepted {
		e.log.Warn().
			Str("sym", o.Symbol).Str("side", string(o.Side)).Str("venue", e.venue.Name()).
			Str("reason", sub.Reason).Msg("order rejected")
		metrics.SubmissionsTotal.WithLabelValues(o.Symbol, "rejected").Inc()
		return sub
	}

	e.log.Info().
		Str("sym", o.Symbol).Str("side", string(o.Side)).
		Float64("size", o.Size).Float64("entry", o.Entry).
		Float64("sl", o.StopLoss).Float64("tp", o.TakeProfit).
		Str("ticket", sub.TicketID).Str("tag", o.Tag).
		Msg("order accepted")
	metrics.SubmissionsTotal.WithLabelValues(o.Symbol, "accepted").Inc()
	return sub
}
