package sim

import (
	"fmt"

	"papertrader/market"
	"papertrader/risk"
)

// Fixed exit geometry: 0.5% stop distance, 2:1 reward-to-risk. Deliberately
// not configurable in this version.
const (
	stopLossPct   = 0.005
	takeProfitPct = 0.01
)

// Engine is the trade ledger: it owns the open positions and the historical
// record of closed ones, and is the only code that creates or closes trades.
//
// The engine is single-writer by design. It holds no lock; a caller driving
// it from multiple goroutines must serialize access itself (see the run
// coordinator). No method blocks or performs I/O.
type Engine struct {
	tracker *risk.Tracker

	open     []*Trade // insertion order
	closed   []ClosedTrade
	realized float64
	nextID   int64
}

// StepResult is what one exit-evaluation pass over the open set produced.
// All trade values are copies; mutating them does not affect the ledger.
type StepResult struct {
	Closed        []ClosedTrade
	Open          []Trade
	TotalRealized float64
}

func NewEngine(tracker *risk.Tracker) *Engine {
	return &Engine{tracker: tracker, nextID: 1}
}

// TryOpenLong attempts to open a long at the candle close. It returns the
// new trade, or nil plus a reason when the engine declined. Declining is an
// expected outcome, never an error: gating denials, a zero risk budget, a
// bad candle, and a degenerate size all land here.
//
// Side effects happen only on success: the trade enters the open set and
// the risk tracker's daily counter is bumped, exactly once.
func (e *Engine) TryOpenLong(pair string, candle market.Candle, acct risk.AccountSnapshot, cfg risk.Config) (*Trade, string) {
	decision := e.tracker.CanOpenNewTrade(cfg, acct, candle.Time)
	if !decision.CanOpen {
		return nil, decision.Reason
	}

	riskAmount := risk.MaxRiskAmount(cfg, acct)
	if riskAmount <= 0 {
		return nil, "no risk budget available"
	}

	if !candle.Valid() || candle.Close <= 0 {
		return nil, fmt.Sprintf("invalid entry price %.4f", candle.Close)
	}

	entry := candle.Close
	stop := entry * (1 - stopLossPct)
	target := entry * (1 + takeProfitPct)

	qty := risk.PositionSize(riskAmount, entry, stop)
	if qty <= 0 {
		return nil, "position size is zero"
	}

	trade := &Trade{
		ID:         e.nextID,
		Pair:       pair,
		Direction:  Long,
		EntryPrice: entry,
		StopLoss:   stop,
		TakeProfit: target,
		Quantity:   qty,
		RiskAmount: riskAmount,
		OpenedAt:   candle.Time,
		Status:     Open,
	}
	e.nextID++
	e.open = append(e.open, trade)
	e.tracker.RegisterOpenedTrade(candle.Time)

	return copyTrade(trade), ""
}

// UpdateOpenTrades checks every open trade against the candle's range and
// closes the ones whose stop or target was touched. When a single bar spans
// both levels the trade closes at the stop: a deliberate worst-case
// tie-break, not a guess at intrabar order.
//
// Trades are evaluated in insertion order, independently of one another.
func (e *Engine) UpdateOpenTrades(candle market.Candle) StepResult {
	if !candle.Valid() {
		return e.stepResult(nil)
	}

	var closedNow []ClosedTrade
	remaining := e.open[:0]

	for _, t := range e.open {
		hitStop := candle.Low <= t.StopLoss
		hitTarget := candle.High >= t.TakeProfit

		if !hitStop && !hitTarget {
			remaining = append(remaining, t)
			continue
		}

		closePrice := t.TakeProfit
		reason := TakeProfit
		if hitStop {
			// Stop wins when both levels sit inside the bar.
			closePrice = t.StopLoss
			reason = StopLoss
		}

		closedNow = append(closedNow, e.closeTrade(t, closePrice, candle, reason))
	}
	e.open = remaining

	return e.stepResult(closedNow)
}

func (e *Engine) closeTrade(t *Trade, closePrice float64, candle market.Candle, reason CloseReason) ClosedTrade {
	t.Status = Closed

	pnl := (closePrice - t.EntryPrice) * t.Quantity
	e.realized += pnl

	rec := ClosedTrade{
		Trade:      *t,
		ClosePrice: closePrice,
		ClosedAt:   candle.Time,
		PnL:        pnl,
		Reason:     reason,
	}
	e.closed = append(e.closed, rec)
	e.tracker.RegisterClosedTrade(pnl, candle.Time)

	return rec
}

func (e *Engine) stepResult(closedNow []ClosedTrade) StepResult {
	return StepResult{
		Closed:        closedNow,
		Open:          e.OpenTrades(),
		TotalRealized: e.realized,
	}
}

// OpenTrades returns independent copies of the open set, insertion order.
func (e *Engine) OpenTrades() []Trade {
	out := make([]Trade, len(e.open))
	for i, t := range e.open {
		out[i] = *t
	}
	return out
}

// ClosedTrades returns the most recent limit entries of the closed ledger
// in chronological order; limit <= 0 returns everything.
func (e *Engine) ClosedTrades(limit int) []ClosedTrade {
	n := len(e.closed)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]ClosedTrade, n)
	copy(out, e.closed[len(e.closed)-n:])
	return out
}

// Realized returns the running total realized P&L for the session.
func (e *Engine) Realized() float64 { return e.realized }

// Performance recomputes the performance snapshot from the closed ledger.
func (e *Engine) Performance() Performance {
	return computePerformance(e.closed)
}

// Reset clears open trades, the closed ledger, and the realized total, and
// restarts the id counter. It does not touch the risk tracker's daily
// counters; those follow the calendar, not the session.
func (e *Engine) Reset() {
	e.open = nil
	e.closed = nil
	e.realized = 0
	e.nextID = 1
}

func copyTrade(t *Trade) *Trade {
	c := *t
	return &c
}
