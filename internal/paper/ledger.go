package paper

import (
	"sync"

	"intrabot-go/internal/execution"
)

// Ledger keeps the in-memory fill trail of a paper run: one entry per open and
// one per close. Shutdown summaries and tests replay it; nothing is persisted.
type Ledger struct {
	mu    sync.Mutex
	fills []execution.Fill
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends a fill. Implements FillRecorder.
func (l *Ledger) Record(fill execution.Fill) {
	l.mu.Lock()
	l.fills = append(l.fills, fill)
	l.mu.Unlock()
}

// Snapshot returns a copy of the recorded fills in arrival order.
func (l *Ledger) Snapshot() []execution.Fill {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]execution.Fill, len(l.fills))
	copy(out, l.fills)
	return out
}

// ClosedPnL sums realized profit and loss over the recorded close fills. Open
// fills carry zero PnL so the whole trail can be summed directly.
func (l *Ledger) ClosedPnL() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total float64
	for _, f := range l.fills {
		total += f.PnL
	}
	return total
}

// Len reports how many fills have been recorded.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fills)
}
