package backtest

import (
	"fmt"
	"io"
	"time"

	"papertrader/sim"
)

// Result is a lightweight summary of one replay.
type Result struct {
	RunID string
	Pair  string

	Ticks     int
	Start     time.Time
	End       time.Time
	OpenAtEnd int

	Performance sim.Performance
	Realized    float64
}

func PrintResult(w io.Writer, r Result) {
	p := r.Performance

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Paper Trading Replay")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(w, "Pair:          %s\n", r.Pair)
	fmt.Fprintf(w, "Candles:       %d\n", r.Ticks)

	if !r.Start.IsZero() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Period")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "Start:         %s\n", r.Start.Format(time.RFC3339))
		fmt.Fprintf(w, "End:           %s\n", r.End.Format(time.RFC3339))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", p.Total)
	fmt.Fprintf(w, "Wins:          %d\n", p.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", p.Losses)
	fmt.Fprintf(w, "Breakeven:     %d\n", p.Breakeven)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", p.WinRate*100)
	fmt.Fprintf(w, "Still Open:    %d\n", r.OpenAtEnd)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Gross Profit:  %.2f MYR\n", p.GrossProfit)
	fmt.Fprintf(w, "Gross Loss:    %.2f MYR\n", p.GrossLoss)
	fmt.Fprintf(w, "Net Profit:    %.2f MYR\n", p.NetProfit)
	fmt.Fprintf(w, "Realized P&L:  %.2f MYR\n", r.Realized)
	fmt.Fprintf(w, "Max Drawdown:  %.2f MYR\n", p.MaxDrawdown)
	fmt.Fprintf(w, "Avg R:         %.2f\n", p.AvgRMultiple)

	fmt.Fprintln(w)
}
