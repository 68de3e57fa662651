package indicators

import (
	"sync"
	"time"

	"intrabot-go/internal/market"
)

// Periods bundles the indicator periods a tracker maintains per symbol.
type Periods struct {
	FastMA     int
	MidMA      int
	SlowMA     int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	ATR        int
}

// DefaultPeriods returns the conventional intraday parameter set.
func DefaultPeriods() Periods {
	return Periods{
		FastMA:     9,
		MidMA:      21,
		SlowMA:     50,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		ATR:        14,
	}
}

type symbolState struct {
	bar      Bar
	barStart time.Time
	barOpen  bool

	fast *SMA
	mid  *SMA
	slow *SMA
	macd *MACD
	atr  *ATR
}

// Tracker aggregates ticks into fixed-interval bars and keeps per-symbol
// streaming indicators up to date. It implements the engine's snapshot source.
type Tracker struct {
	periods     Periods
	barInterval time.Duration
	mu          sync.Mutex
	symbols     map[string]*symbolState
}

// NewTracker builds a tracker with the given bar interval and periods.
func NewTracker(barInterval time.Duration, periods Periods) *Tracker {
	if barInterval <= 0 {
		barInterval = time.Minute
	}
	return &Tracker{
		periods:     periods,
		barInterval: barInterval,
		symbols:     make(map[string]*symbolState),
	}
}

// OnTick folds one tick into the current bar, rolling indicators forward when
// the tick opens a new bar interval.
func (tr *Tracker) OnTick(t market.Tick) {
	mid := t.Mid()
	if t.Symbol == "" || mid <= 0 {
		return
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()

	st := tr.symbols[t.Symbol]
	if st == nil {
		st = &symbolState{
			fast: NewSMA(tr.periods.FastMA),
			mid:  NewSMA(tr.periods.MidMA),
			slow: NewSMA(tr.periods.SlowMA),
			macd: NewMACD(tr.periods.MACDFast, tr.periods.MACDSlow, tr.periods.MACDSignal),
			atr:  NewATR(tr.periods.ATR),
		}
		tr.symbols[t.Symbol] = st
	}

	start := t.Ts.Truncate(tr.barInterval)
	if st.barOpen && start.After(st.barStart) {
		st.closeBar()
	}
	if !st.barOpen {
		st.bar = Bar{Open: mid, High: mid, Low: mid, Close: mid}
		st.barStart = start
		st.barOpen = true
		return
	}
	if mid > st.bar.High {
		st.bar.High = mid
	}
	if mid < st.bar.Low {
		st.bar.Low = mid
	}
	st.bar.Close = mid
}

func (st *symbolState) closeBar() {
	st.fast.Update(st.bar)
	st.mid.Update(st.bar)
	st.slow.Update(st.bar)
	st.macd.Update(st.bar)
	st.atr.Update(st.bar)
	st.barOpen = false
}

// Snapshot returns the current indicator snapshot for a symbol. The second
// return is false until every indicator has completed warmup.
func (tr *Tracker) Snapshot(symbol string) (market.IndicatorSnapshot, bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	st := tr.symbols[symbol]
	if st == nil {
		return market.IndicatorSnapshot{}, false
	}
	if !st.fast.Ready() || !st.mid.Ready() || !st.slow.Ready() || !st.macd.Ready() || !st.atr.Ready() {
		return market.IndicatorSnapshot{}, false
	}
	line, signal := st.macd.Value()
	return market.IndicatorSnapshot{
		FastMA:     st.fast.Value(),
		MidMA:      st.mid.Value(),
		SlowMA:     st.slow.Value(),
		MACDLine:   line,
		SignalLine: signal,
		ATR:        st.atr.Value(),
	}, true
}
