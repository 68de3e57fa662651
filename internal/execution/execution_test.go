package execution

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type scriptedVenue struct {
	sub Submission
	err error
}

func (scriptedVenue) Name() string { return "scripted" }

func (v scriptedVenue) Submit(context.Context, Order) (Submission, error) {
	return v.sub, v.err
}

type hangingVenue struct{}

func (hangingVenue) Name() string { return "hanging" }

func (hangingVenue) Submit(ctx context.Context, _ Order) (Submission, error) {
	<-ctx.Done()
	return Submission{}, ctx.Err()
}

func order() Order {
	return Order{
		Symbol:     "EURUSD",
		Side:       Buy,
		Size:       0.5,
		Entry:      1.1000,
		StopLoss:   1.0970,
		TakeProfit: 1.1060,
		Tag:        "trend-momentum-1",
		ClientID:   "test-client-id",
		Ts:         time.Now(),
	}
}

func TestSubmitAcceptedLogsOrder(t *testing.T) {
	var buf bytes.Buffer
	exec := NewExecutor(scriptedVenue{sub: Submission{Accepted: true, TicketID: "T1"}}, time.Second, zerolog.New(&buf))

	sub := exec.Submit(context.Background(), order())
	if !sub.Accepted || sub.TicketID != "T1" {
		t.Fatalf("expected accepted submission, got %+v", sub)
	}
	out := buf.String()
	if !strings.Contains(out, "EURUSD") || !strings.Contains(out, "order accepted") {
		t.Fatalf("log does not record the acceptance: %s", out)
	}
}

func TestSubmitRejectPassesReasonThrough(t *testing.T) {
	var buf bytes.Buffer
	exec := NewExecutor(scriptedVenue{sub: Submission{Reason: "insufficient_margin"}}, time.Second, zerolog.New(&buf))

	sub := exec.Submit(context.Background(), order())
	if sub.Accepted {
		t.Fatalf("expected rejection")
	}
	if sub.Reason != "insufficient_margin" {
		t.Fatalf("expected venue reason, got %q", sub.Reason)
	}
	if !strings.Contains(buf.String(), "insufficient_margin") {
		t.Fatalf("expected reason in log: %s", buf.String())
	}
}

func TestSubmitVenueErrorBecomesReject(t *testing.T) {
	exec := NewExecutor(scriptedVenue{err: errors.New("connection reset")}, time.Second, zerolog.Nop())

	sub := exec.Submit(context.Background(), order())
	if sub.Accepted || sub.Reason != ReasonError {
		t.Fatalf("expected venue_error reject, got %+v", sub)
	}
}

func TestSubmitTimeoutBecomesReject(t *testing.T) {
	exec := NewExecutor(hangingVenue{}, 20*time.Millisecond, zerolog.Nop())

	start := time.Now()
	sub := exec.Submit(context.Background(), order())
	if sub.Accepted || sub.Reason != ReasonTimeout {
		t.Fatalf("expected timeout reject, got %+v", sub)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout did not bound the call")
	}
}
