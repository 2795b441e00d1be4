package strategies

import "papertrader/market"

type Signal int

const (
	Hold Signal = iota
	Buy
	Sell // defined for completeness; the entry strategy never emits it
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Decision is the outcome of evaluating a strategy against the full candle
// history. Label is a diagnostic summary for display only; callers branch on
// Signal, never on the label text.
type Decision struct {
	Signal Signal
	Label  string

	Fast float64
	Slow float64
}

// ShouldOpen reports whether the decision calls for opening a long.
func (d Decision) ShouldOpen() bool { return d.Signal == Buy }

// Strategy evaluates a chronological candle history (newest bar last) and
// decides whether to open a position. Implementations are pure: no I/O, no
// mutation of the input.
type Strategy interface {
	Name() string
	Evaluate(candles []market.Candle) Decision
}
