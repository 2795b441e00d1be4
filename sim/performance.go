package sim

// Performance aggregates the closed-trade ledger. It is recomputed on
// demand and carries no state of its own; the same ledger always yields the
// same snapshot.
type Performance struct {
	Total     int
	Wins      int
	Losses    int
	Breakeven int

	WinRate     float64 // 0..1, wins over total
	GrossProfit float64 // sum of positive P&L
	GrossLoss   float64 // sum of negative P&L, <= 0
	NetProfit   float64

	// MaxDrawdown is the largest peak-to-trough decline of the cumulative
	// realized-P&L curve, >= 0.
	MaxDrawdown float64

	// AvgRMultiple averages P&L/risk over trades with a positive risk
	// amount.
	AvgRMultiple float64
}

func computePerformance(closed []ClosedTrade) Performance {
	var p Performance
	p.Total = len(closed)

	cum := 0.0
	peak := 0.0
	rSum := 0.0
	rCount := 0

	for _, c := range closed {
		switch {
		case c.PnL > 0:
			p.Wins++
			p.GrossProfit += c.PnL
		case c.PnL < 0:
			p.Losses++
			p.GrossLoss += c.PnL
		default:
			p.Breakeven++
		}

		cum += c.PnL
		if cum > peak {
			peak = cum
		}
		if dd := peak - cum; dd > p.MaxDrawdown {
			p.MaxDrawdown = dd
		}

		if c.Trade.RiskAmount > 0 {
			rSum += c.RMultiple()
			rCount++
		}
	}

	p.NetProfit = p.GrossProfit + p.GrossLoss
	if p.Total > 0 {
		p.WinRate = float64(p.Wins) / float64(p.Total)
	}
	if rCount > 0 {
		p.AvgRMultiple = rSum / float64(rCount)
	}
	return p
}
