package strategies

import (
	"fmt"

	"papertrader/indicators"
	"papertrader/market"
)

// Entry parameters. Fixed in this version; the generator is deliberately a
// single long-only setup, not a strategy zoo.
const (
	fastPeriod = 9
	slowPeriod = 21

	// minHistory is the least history the generator will act on.
	minHistory = 25

	// bodyLookback / minBodyRatio form the volatility noise filter: the
	// newest candle body must be at least half the recent average body.
	bodyLookback = 20
	minBodyRatio = 0.5
)

// EMACross opens a long when the fast EMA crosses above the slow EMA on the
// newest bar, the close confirms above both EMAs, and the bar has enough
// body to not be noise.
//
// It is evaluated statelessly over the full history each tick, so the same
// history always yields the same decision.
type EMACross struct{}

func NewEMACross() *EMACross { return &EMACross{} }

func (x *EMACross) Name() string {
	return fmt.Sprintf("EMA_CROSS(%d,%d)", fastPeriod, slowPeriod)
}

func (x *EMACross) Evaluate(candles []market.Candle) Decision {
	n := len(candles)
	if n < minHistory {
		return Decision{
			Signal: Hold,
			Label:  fmt.Sprintf("insufficient history (%d/%d candles)", n, minHistory),
		}
	}

	closes := make([]float64, n)
	for i, c := range candles {
		closes[i] = c.Close
	}

	fast := indicators.EMASeries(closes, fastPeriod)
	slow := indicators.EMASeries(closes, slowPeriod)

	curFast, curSlow := fast[n-1], slow[n-1]
	prevFast, prevSlow := fast[n-2], slow[n-2]

	// Strict crossing on the two most recent bars only.
	crossedUp := prevFast <= prevSlow && curFast > curSlow

	last := candles[n-1]
	priceConfirmed := last.Close > curFast && last.Close > curSlow

	bodyOK := bodyFilter(candles)

	d := Decision{Fast: curFast, Slow: curSlow}
	if crossedUp && priceConfirmed && bodyOK {
		d.Signal = Buy
	}
	d.Label = fmt.Sprintf(
		"%s %s fast=%.4f slow=%.4f cross=%v confirm=%v body=%v",
		x.Name(), d.Signal, curFast, curSlow, crossedUp, priceConfirmed, bodyOK,
	)
	return d
}

// bodyFilter compares the newest candle body against the average non-zero
// body over the lookback window. Doji-only history substitutes 1.0 for the
// average so the ratio stays defined.
func bodyFilter(candles []market.Candle) bool {
	n := len(candles)
	start := n - bodyLookback
	if start < 0 {
		start = 0
	}

	sum := 0.0
	count := 0
	for _, c := range candles[start:] {
		if b := c.Body(); b > 0 {
			sum += b
			count++
		}
	}

	avg := 1.0
	if count > 0 {
		avg = sum / float64(count)
	}

	return candles[n-1].Body()/avg >= minBodyRatio
}
