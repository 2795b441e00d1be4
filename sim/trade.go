package sim

import "time"

type Direction string

const (
	Long Direction = "LONG"
	// Short is a defined variant the entry strategy never produces; the
	// data model anticipates it.
	Short Direction = "SHORT"
)

type Status string

const (
	Open   Status = "OPEN"
	Closed Status = "CLOSED"
)

// CloseReason explains why the engine closed a trade.
type CloseReason string

const (
	StopLoss   CloseReason = "STOP_LOSS"
	TakeProfit CloseReason = "TAKE_PROFIT"
)

// Trade is a simulated position. It is owned exclusively by the Engine:
// created on a passed signal, mutated only when the engine closes it.
// External layers always receive copies, never live references.
type Trade struct {
	ID         int64
	Pair       string
	Direction  Direction
	EntryPrice float64
	StopLoss   float64 // LONG invariant: StopLoss < EntryPrice < TakeProfit
	TakeProfit float64
	Quantity   float64 // base-asset quantity, > 0
	RiskAmount float64 // MYR at risk, fixed at open time
	OpenedAt   time.Time
	Status     Status
}

// ClosedTrade is the immutable record appended to the ledger when a trade
// closes. Once appended it is never altered or removed.
type ClosedTrade struct {
	Trade      Trade // status CLOSED
	ClosePrice float64
	ClosedAt   time.Time
	PnL        float64
	Reason     CloseReason
}

// RMultiple is the realized P&L divided by the amount initially risked.
func (c ClosedTrade) RMultiple() float64 {
	if c.Trade.RiskAmount <= 0 {
		return 0
	}
	return c.PnL / c.Trade.RiskAmount
}
