package paper

import (
	"testing"
	"time"

	"intrabot-go/internal/execution"
)

func fill(ticket string, pnl float64) execution.Fill {
	return execution.Fill{
		Ticket: ticket,
		Symbol: "EURUSD",
		Side:   execution.Buy,
		Size:   1,
		Price:  1.1,
		PnL:    pnl,
		Ts:     time.Now(),
	}
}

func TestLedgerRecordAndSnapshot(t *testing.T) {
	l := NewLedger()
	l.Record(fill("a", 0))
	l.Record(fill("b", -3))

	snap := l.Snapshot()
	if len(snap) != 2 || l.Len() != 2 {
		t.Fatalf("expected 2 fills, got %d", len(snap))
	}
	if snap[0].Ticket != "a" || snap[1].Ticket != "b" {
		t.Fatalf("unexpected order: %+v", snap)
	}

	// mutating the snapshot must not touch the ledger
	snap[0].Ticket = "mutated"
	if l.Snapshot()[0].Ticket != "a" {
		t.Fatalf("snapshot is not a copy")
	}
}

func TestLedgerClosedPnL(t *testing.T) {
	l := NewLedger()
	l.Record(fill("open", 0))
	l.Record(fill("close-loss", -3))
	l.Record(fill("close-win", 5))

	if got := l.ClosedPnL(); got != 2 {
		t.Fatalf("expected net 2, got %.2f", got)
	}
}

func TestTeeFansOut(t *testing.T) {
	a, b := NewLedger(), NewLedger()
	Tee{a, b}.Record(fill("x", 0))
	if a.Len() != 1 || b.Len() != 1 {
		t.Fatalf("expected fill in both ledgers, got %d and %d", a.Len(), b.Len())
	}
}
