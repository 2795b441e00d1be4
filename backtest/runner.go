package backtest

import (
	"context"
	"fmt"
	"time"

	"papertrader/journal"
	"papertrader/risk"
	"papertrader/runner"
)

// Runner replays a candle feed through a run coordinator, journaling every
// closed trade and the realized-P&L curve along the way.
type Runner struct {
	Coordinator *runner.Coordinator
	Feed        CandleFeed
	Journal     journal.Journal // optional; nil records nothing

	Account risk.AccountSnapshot
	Config  risk.Config
	RunID   string

	// OnTick, when set, observes every tick result (e.g. to log narratives).
	OnTick func(runner.TickResult)
}

// Run executes the replay loop:
//  1. read next candle
//  2. coordinator.Tick (exits, signal, possible entry)
//  3. journal closed trades and the tick sample
//
// Trades still open at EOF stay open; they are reported in the result, not
// force-closed, since the core has no manual-close operation.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.Coordinator == nil {
		return Result{}, fmt.Errorf("backtest: Coordinator is required")
	}
	if r.Feed == nil {
		return Result{}, fmt.Errorf("backtest: Feed is required")
	}
	defer r.Feed.Close()

	var start, end time.Time
	ticks := 0

	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		c, ok, err := r.Feed.Next()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}

		if start.IsZero() || c.Time.Before(start) {
			start = c.Time
		}
		if end.IsZero() || c.Time.After(end) {
			end = c.Time
		}

		res := r.Coordinator.Tick(c, r.Account, r.Config)
		ticks++

		if r.OnTick != nil {
			r.OnTick(res)
		}

		if r.Journal != nil {
			for _, closed := range res.Closed {
				rec := journal.TradeRecord{
					RunID:      r.RunID,
					TradeID:    closed.Trade.ID,
					Pair:       closed.Trade.Pair,
					Direction:  string(closed.Trade.Direction),
					Quantity:   closed.Trade.Quantity,
					EntryPrice: closed.Trade.EntryPrice,
					ExitPrice:  closed.ClosePrice,
					RiskAmount: closed.Trade.RiskAmount,
					OpenTime:   closed.Trade.OpenedAt,
					CloseTime:  closed.ClosedAt,
					PnL:        closed.PnL,
					Reason:     string(closed.Reason),
				}
				if err := r.Journal.RecordTrade(rec); err != nil {
					return Result{}, fmt.Errorf("record trade %d: %w", closed.Trade.ID, err)
				}
			}

			err := r.Journal.RecordTick(journal.TickRecord{
				RunID:      r.RunID,
				Time:       c.Time,
				Realized:   res.TotalRealized,
				OpenTrades: len(res.Open),
			})
			if err != nil {
				return Result{}, fmt.Errorf("record tick: %w", err)
			}
		}
	}

	return Result{
		RunID:       r.RunID,
		Pair:        r.Coordinator.Pair(),
		Ticks:       ticks,
		Start:       start,
		End:         end,
		Performance: r.Coordinator.Performance(),
		Realized:    r.Coordinator.TotalRealized(),
		OpenAtEnd:   len(r.Coordinator.OpenTrades()),
	}, nil
}
