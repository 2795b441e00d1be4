package risk

import (
	"fmt"
	"time"
)

// Tracker is the day-bounded risk state: how many trades were opened and
// how much was lost in the current UTC day. It is an explicit value owned by
// whoever wires the engine together, never a package-level singleton, so
// tests can build isolated instances per scenario.
//
// Tracker is single-writer; the trade ledger is the only caller of the two
// Register entry points (see sim.Engine).
type Tracker struct {
	dayKey            string
	tradesOpenedToday int
	realizedLossToday float64 // <= 0, accumulates losing closes only
}

func NewTracker() *Tracker { return &Tracker{} }

// dayKeyFor buckets a timestamp at UTC-day granularity.
func dayKeyFor(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

// syncDay resets the counters whenever the operation's timestamp lands on a
// different UTC day than the stored key. Every entry point calls this first,
// so a gating check alone can reset the day state.
func (t *Tracker) syncDay(now time.Time) {
	key := dayKeyFor(now)
	if key != t.dayKey {
		t.dayKey = key
		t.tradesOpenedToday = 0
		t.realizedLossToday = 0
	}
}

// CanOpenNewTrade decides whether a new trade may be opened at now. It never
// returns an error: denials carry a human-readable reason instead.
//
// When cfg.LiveTradingEnabled is false the limits are not enforced and the
// gate always allows (pure paper mode); the day state is still re-synced so
// the counters stay meaningful.
func (t *Tracker) CanOpenNewTrade(cfg Config, acct AccountSnapshot, now time.Time) Decision {
	t.syncDay(now)

	if !cfg.LiveTradingEnabled {
		return allow("paper mode, risk limits not enforced")
	}

	if cfg.MaxTradesPerDay > 0 && t.tradesOpenedToday >= cfg.MaxTradesPerDay {
		return deny(fmt.Sprintf("daily trade cap reached (%d/%d)",
			t.tradesOpenedToday, cfg.MaxTradesPerDay))
	}

	if cfg.DailyLossLimitPct > 0 && t.realizedLossToday < 0 {
		equity := acct.TotalEquityMYR
		if equity < 1 {
			equity = 1
		}
		lossPct := -t.realizedLossToday / equity * 100
		if lossPct >= cfg.DailyLossLimitPct {
			return deny(fmt.Sprintf("daily loss limit hit (%.2f%% >= %.2f%%)",
				lossPct, cfg.DailyLossLimitPct))
		}
	}

	return allow("within daily limits")
}

// RegisterOpenedTrade counts a successful open against today's cap. Called
// exactly once per opened trade, by the trade ledger.
func (t *Tracker) RegisterOpenedTrade(now time.Time) {
	t.syncDay(now)
	t.tradesOpenedToday++
}

// RegisterClosedTrade accumulates losing closes into today's realized loss.
// Profits are not tracked here: the daily cap is loss-only, not
// drawdown-from-peak.
func (t *Tracker) RegisterClosedTrade(pnl float64, closedAt time.Time) {
	t.syncDay(closedAt)
	if pnl < 0 {
		t.realizedLossToday += pnl
	}
}

// TradesOpenedToday reports the count for the stored day key.
func (t *Tracker) TradesOpenedToday() int { return t.tradesOpenedToday }

// RealizedLossToday reports the accumulated loss (<= 0) for the stored day.
func (t *Tracker) RealizedLossToday() float64 { return t.realizedLossToday }

// Reset clears the day state entirely. Session reset on the trade ledger
// deliberately does not call this; daily limits outlive a ledger reset.
func (t *Tracker) Reset() {
	t.dayKey = ""
	t.tradesOpenedToday = 0
	t.realizedLossToday = 0
}
