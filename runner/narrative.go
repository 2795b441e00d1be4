package runner

import (
	"fmt"
	"strings"
	"time"

	"papertrader/market"
)

// buildNarrative renders the tick outcome as labeled lines for display and
// notification layers. The text is a human contract only; nothing parses it.
func buildNarrative(pair string, candle market.Candle, res TickResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", pair, candle.Time.Format(time.RFC3339))
	fmt.Fprintf(&b, "Candle:    O=%.4f H=%.4f L=%.4f C=%.4f V=%.2f\n",
		candle.Open, candle.High, candle.Low, candle.Close, candle.Volume)
	fmt.Fprintf(&b, "Signal:    %s\n", res.Label)

	for _, c := range res.Closed {
		fmt.Fprintf(&b, "Closed:    #%d %s @ %.4f pnl %+.2f MYR\n",
			c.Trade.ID, c.Reason, c.ClosePrice, c.PnL)
	}

	switch {
	case res.Opened != nil:
		t := res.Opened
		fmt.Fprintf(&b, "Opened:    #%d %s %s qty %.6f entry %.4f stop %.4f target %.4f risk %.2f MYR\n",
			t.ID, t.Direction, t.Pair, t.Quantity, t.EntryPrice, t.StopLoss, t.TakeProfit, t.RiskAmount)
	case res.DeclineReason != "":
		fmt.Fprintf(&b, "No entry:  %s\n", res.DeclineReason)
	}

	fmt.Fprintf(&b, "Open:      %d position(s)\n", len(res.Open))
	fmt.Fprintf(&b, "Realized:  %+.2f MYR", res.TotalRealized)

	return b.String()
}
