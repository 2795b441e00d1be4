// journal/journal.go
package journal

import "time"

// TradeRecord is one closed simulated trade as persisted outside the core.
// RunID groups the records of a single replay or live session.
type TradeRecord struct {
	RunID      string
	TradeID    int64
	Pair       string
	Direction  string
	Quantity   float64
	EntryPrice float64
	ExitPrice  float64
	RiskAmount float64
	OpenTime   time.Time
	CloseTime  time.Time
	PnL        float64
	Reason     string
}

// TickRecord samples the realized-P&L curve after a processed candle.
type TickRecord struct {
	RunID      string
	Time       time.Time
	Realized   float64
	OpenTrades int
}

// Journal persists trade and tick records. The simulation core never calls
// it; only the replay runner and CLI do, so the core stays free of I/O.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordTick(TickRecord) error
	Close() error
}

// Noop discards everything. Useful when a runner requires a journal but the
// caller doesn't want one.
type Noop struct{}

func (Noop) RecordTrade(TradeRecord) error { return nil }
func (Noop) RecordTick(TickRecord) error   { return nil }
func (Noop) Close() error                  { return nil }
