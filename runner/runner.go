// Package runner ties the trade ledger, signal generator, and risk policy
// together, one candle per tick.
package runner

import (
	"sync"

	"papertrader/market"
	"papertrader/risk"
	"papertrader/sim"
	"papertrader/strategies"
)

// defaultMaxHistory bounds the retained candle window. The EMA setup needs
// 25 bars; anything beyond a few hundred only costs memory.
const defaultMaxHistory = 500

// TickResult is the sole interface the coordinator exposes to display and
// notification layers. Narrative is stable labeled lines meant for humans;
// consumers that need logic must use the structured fields.
type TickResult struct {
	Label     string
	Narrative string

	Opened        *sim.Trade // nil when no trade was opened this tick
	DeclineReason string     // why the open was declined, when it was
	Closed        []sim.ClosedTrade
	Open          []sim.Trade
	TotalRealized float64
}

// Coordinator drives one tick of the simulation: resolve exits for the new
// candle first, then consult the strategy over the full history including
// that candle, then try to open.
//
// The core underneath is single-writer with no locking of its own, so the
// coordinator serializes Tick and Reset with a mutex; overlapping manual
// and periodic drivers are safe as long as they go through one Coordinator.
type Coordinator struct {
	mu       sync.Mutex
	pair     string
	history  *market.Series
	strategy strategies.Strategy
	engine   *sim.Engine
}

// New builds a coordinator over the given market. maxHistory bounds the
// retained candle window; zero or negative falls back to the default.
func New(pair string, strategy strategies.Strategy, engine *sim.Engine, maxHistory int) *Coordinator {
	if maxHistory <= 0 {
		maxHistory = defaultMaxHistory
	}
	return &Coordinator{
		pair:     pair,
		history:  market.NewSeries(maxHistory),
		strategy: strategy,
		engine:   engine,
	}
}

// Tick processes one candle with the account and risk config supplied fresh
// by the caller. A non-finite candle yields a zero-effect result rather
// than an error: one bad tick must never stop the loop.
func (r *Coordinator) Tick(candle market.Candle, acct risk.AccountSnapshot, cfg risk.Config) TickResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !candle.Valid() {
		res := TickResult{
			Label:         "invalid candle dropped",
			Open:          r.engine.OpenTrades(),
			TotalRealized: r.engine.Realized(),
		}
		res.Narrative = buildNarrative(r.pair, candle, res)
		return res
	}

	step := r.engine.UpdateOpenTrades(candle)

	r.history.Append(candle)
	decision := r.strategy.Evaluate(r.history.Candles())

	res := TickResult{
		Label:         decision.Label,
		Closed:        step.Closed,
		TotalRealized: step.TotalRealized,
	}

	if decision.ShouldOpen() {
		res.Opened, res.DeclineReason = r.engine.TryOpenLong(r.pair, candle, acct, cfg)
	}

	res.Open = r.engine.OpenTrades()
	res.TotalRealized = r.engine.Realized()
	res.Narrative = buildNarrative(r.pair, candle, res)
	return res
}

// Pair returns the market this coordinator simulates.
func (r *Coordinator) Pair() string { return r.pair }

// HistoryLen reports how many candles the rolling window currently holds.
func (r *Coordinator) HistoryLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history.Len()
}

// OpenTrades returns an independent snapshot of the open positions.
func (r *Coordinator) OpenTrades() []sim.Trade {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.OpenTrades()
}

// ClosedTrades returns the most recent limit closed trades; limit <= 0
// returns all of them.
func (r *Coordinator) ClosedTrades(limit int) []sim.ClosedTrade {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.ClosedTrades(limit)
}

// Performance recomputes the performance snapshot from the closed ledger.
func (r *Coordinator) Performance() sim.Performance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Performance()
}

// TotalRealized returns the running realized P&L.
func (r *Coordinator) TotalRealized() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Realized()
}

// Reset clears the session: candle history, open trades, closed ledger, and
// the realized total. The risk tracker's daily counters are a separate
// lifecycle and stay as they are.
func (r *Coordinator) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history.Reset()
	r.engine.Reset()
}
