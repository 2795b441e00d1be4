package sim

import (
	"math"
	"testing"
	"time"

	"papertrader/market"
	"papertrader/risk"
)

var tick0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func liveCfg() risk.Config {
	return risk.Config{RiskPerTradePct: 1, LiveTradingEnabled: true}
}

func acct10k() risk.AccountSnapshot {
	return risk.AccountSnapshot{TotalEquityMYR: 10000, FreeBalanceMYR: 10000}
}

func candleAt(tm time.Time, o, h, l, c float64) market.Candle {
	return market.Candle{Time: tm, Open: o, High: h, Low: l, Close: c, Volume: 1}
}

func openAt(t *testing.T, e *Engine, close float64) *Trade {
	t.Helper()
	trade, reason := e.TryOpenLong("BTC_MYR", candleAt(tick0, close, close, close, close), acct10k(), liveCfg())
	if trade == nil {
		t.Fatalf("open failed: %s", reason)
	}
	return trade
}

func approx(a, b float64) bool { return math.Abs(a-b) <= 1e-9 }

func TestTryOpenLongSizing(t *testing.T) {
	e := NewEngine(risk.NewTracker())

	// equity=10000, 1% risk -> 100 MYR. entry=100 -> stop=99.5, target=101,
	// qty = 100/0.5 = 200.
	trade := openAt(t, e, 100)

	if !approx(trade.RiskAmount, 100) {
		t.Fatalf("risk amount: got %v", trade.RiskAmount)
	}
	if !approx(trade.StopLoss, 99.5) || !approx(trade.TakeProfit, 101.0) {
		t.Fatalf("levels: stop=%v target=%v", trade.StopLoss, trade.TakeProfit)
	}
	if !approx(trade.Quantity, 200) {
		t.Fatalf("quantity: got %v", trade.Quantity)
	}
	if !(trade.StopLoss < trade.EntryPrice && trade.EntryPrice < trade.TakeProfit) {
		t.Fatal("long invariant stop < entry < target violated")
	}
	if trade.ID != 1 || trade.Status != Open || trade.Direction != Long {
		t.Fatalf("trade identity: %+v", trade)
	}
}

func TestTryOpenLongRegistersWithTracker(t *testing.T) {
	tr := risk.NewTracker()
	e := NewEngine(tr)

	openAt(t, e, 100)

	if tr.TradesOpenedToday() != 1 {
		t.Fatalf("tracker count: got %d want 1", tr.TradesOpenedToday())
	}
}

func TestTryOpenLongDeniedByDailyCap(t *testing.T) {
	tr := risk.NewTracker()
	e := NewEngine(tr)

	cfg := liveCfg()
	cfg.MaxTradesPerDay = 1

	c := candleAt(tick0, 100, 100, 100, 100)
	if trade, _ := e.TryOpenLong("BTC_MYR", c, acct10k(), cfg); trade == nil {
		t.Fatal("first open should pass")
	}

	trade, reason := e.TryOpenLong("BTC_MYR", c, acct10k(), cfg)
	if trade != nil {
		t.Fatal("second open should be denied by the cap")
	}
	if reason == "" {
		t.Fatal("denial must carry a reason")
	}
	if len(e.OpenTrades()) != 1 {
		t.Fatalf("denied open mutated the ledger: %d open", len(e.OpenTrades()))
	}
	if tr.TradesOpenedToday() != 1 {
		t.Fatalf("denied open bumped the counter: %d", tr.TradesOpenedToday())
	}
}

func TestTryOpenLongDeclinesBadInput(t *testing.T) {
	e := NewEngine(risk.NewTracker())

	// Zero risk budget.
	cfg := liveCfg()
	cfg.RiskPerTradePct = 0
	if trade, _ := e.TryOpenLong("BTC_MYR", candleAt(tick0, 100, 100, 100, 100), acct10k(), cfg); trade != nil {
		t.Fatal("zero budget must decline")
	}

	// Non-positive close.
	if trade, _ := e.TryOpenLong("BTC_MYR", candleAt(tick0, 0, 0, 0, 0), acct10k(), liveCfg()); trade != nil {
		t.Fatal("zero close must decline")
	}

	// Non-finite candle.
	bad := candleAt(tick0, 100, math.NaN(), 100, 100)
	if trade, _ := e.TryOpenLong("BTC_MYR", bad, acct10k(), liveCfg()); trade != nil {
		t.Fatal("NaN candle must decline")
	}

	if len(e.OpenTrades()) != 0 || e.Realized() != 0 {
		t.Fatal("declines must leave the ledger untouched")
	}
}

func TestStopLossClose(t *testing.T) {
	e := NewEngine(risk.NewTracker())
	openAt(t, e, 100)

	// low=99.4 touches the 99.5 stop -> close at 99.5, pnl = -0.5*200 = -100.
	step := e.UpdateOpenTrades(candleAt(tick0.Add(time.Minute), 100, 100.2, 99.4, 99.6))

	if len(step.Closed) != 1 {
		t.Fatalf("closed: got %d want 1", len(step.Closed))
	}
	c := step.Closed[0]
	if c.Reason != StopLoss || !approx(c.ClosePrice, 99.5) {
		t.Fatalf("close: reason=%s price=%v", c.Reason, c.ClosePrice)
	}
	if !approx(c.PnL, -100) {
		t.Fatalf("pnl: got %v want -100", c.PnL)
	}
	if !approx(c.RMultiple(), -1) {
		t.Fatalf("r-multiple: got %v want -1", c.RMultiple())
	}
	if len(step.Open) != 0 {
		t.Fatal("trade should have left the open set")
	}
	if !approx(step.TotalRealized, -100) || !approx(e.Realized(), -100) {
		t.Fatalf("realized: step=%v engine=%v", step.TotalRealized, e.Realized())
	}
	if c.Trade.Status != Closed {
		t.Fatalf("status: %s", c.Trade.Status)
	}
}

func TestTakeProfitClose(t *testing.T) {
	e := NewEngine(risk.NewTracker())
	openAt(t, e, 100)

	step := e.UpdateOpenTrades(candleAt(tick0.Add(time.Minute), 100.5, 101.2, 100.4, 101.1))

	if len(step.Closed) != 1 {
		t.Fatalf("closed: got %d", len(step.Closed))
	}
	c := step.Closed[0]
	if c.Reason != TakeProfit || !approx(c.ClosePrice, 101.0) {
		t.Fatalf("close: reason=%s price=%v", c.Reason, c.ClosePrice)
	}
	if !approx(c.PnL, 200) { // (101-100)*200
		t.Fatalf("pnl: got %v want 200", c.PnL)
	}
}

func TestBothLevelsHitResolvesToStop(t *testing.T) {
	e := NewEngine(risk.NewTracker())
	openAt(t, e, 100)

	// Bar spans both 99.5 and 101.0: worst case wins.
	step := e.UpdateOpenTrades(candleAt(tick0.Add(time.Minute), 100, 101.5, 99.0, 100.5))

	if len(step.Closed) != 1 {
		t.Fatalf("closed: got %d", len(step.Closed))
	}
	if step.Closed[0].Reason != StopLoss {
		t.Fatalf("tie-break must be stop-loss, got %s", step.Closed[0].Reason)
	}
	if !approx(step.Closed[0].ClosePrice, 99.5) {
		t.Fatalf("close price: got %v", step.Closed[0].ClosePrice)
	}
}

func TestNeitherLevelHitKeepsTradeOpen(t *testing.T) {
	e := NewEngine(risk.NewTracker())
	openAt(t, e, 100)

	step := e.UpdateOpenTrades(candleAt(tick0.Add(time.Minute), 100, 100.4, 99.8, 100.2))

	if len(step.Closed) != 0 || len(step.Open) != 1 {
		t.Fatalf("closed=%d open=%d", len(step.Closed), len(step.Open))
	}
	if step.Open[0].Status != Open {
		t.Fatalf("status: %s", step.Open[0].Status)
	}
}

func TestLossRegistersWithTracker(t *testing.T) {
	tr := risk.NewTracker()
	e := NewEngine(tr)
	openAt(t, e, 100)

	e.UpdateOpenTrades(candleAt(tick0.Add(time.Minute), 100, 100, 99.0, 99.2))

	if !approx(tr.RealizedLossToday(), -100) {
		t.Fatalf("tracker loss: got %v want -100", tr.RealizedLossToday())
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	e := NewEngine(risk.NewTracker())
	openAt(t, e, 100)

	snap := e.OpenTrades()
	snap[0].StopLoss = 1

	if got := e.OpenTrades()[0].StopLoss; !approx(got, 99.5) {
		t.Fatalf("open set mutated through snapshot: %v", got)
	}

	e.UpdateOpenTrades(candleAt(tick0.Add(time.Minute), 100, 100, 99.0, 99.2))
	hist := e.ClosedTrades(0)
	hist[0].PnL = 12345

	if got := e.ClosedTrades(0)[0].PnL; !approx(got, -100) {
		t.Fatalf("closed ledger mutated through snapshot: %v", got)
	}
}

func TestClosedTradesLimit(t *testing.T) {
	e := NewEngine(risk.NewTracker())

	for i := 0; i < 3; i++ {
		openAt(t, e, 100)
		e.UpdateOpenTrades(candleAt(tick0.Add(time.Duration(i+1)*time.Minute), 100, 100, 99.0, 99.2))
	}

	all := e.ClosedTrades(0)
	if len(all) != 3 {
		t.Fatalf("all: got %d", len(all))
	}
	last2 := e.ClosedTrades(2)
	if len(last2) != 2 {
		t.Fatalf("limit: got %d", len(last2))
	}
	if last2[0].Trade.ID != all[1].Trade.ID || last2[1].Trade.ID != all[2].Trade.ID {
		t.Fatal("limit must keep the most recent entries in order")
	}
}

func TestIDsAreMonotonic(t *testing.T) {
	e := NewEngine(risk.NewTracker())

	a := openAt(t, e, 100)
	e.UpdateOpenTrades(candleAt(tick0.Add(time.Minute), 100, 100, 99.0, 99.2))
	b := openAt(t, e, 100)

	if b.ID != a.ID+1 {
		t.Fatalf("ids: %d then %d", a.ID, b.ID)
	}
}

func TestResetClearsSessionNotTracker(t *testing.T) {
	tr := risk.NewTracker()
	e := NewEngine(tr)

	openAt(t, e, 100)
	e.UpdateOpenTrades(candleAt(tick0.Add(time.Minute), 100, 100, 99.0, 99.2))

	e.Reset()

	if len(e.OpenTrades()) != 0 || len(e.ClosedTrades(0)) != 0 || e.Realized() != 0 {
		t.Fatal("reset must clear the session")
	}
	if tr.TradesOpenedToday() != 1 {
		t.Fatalf("reset must not touch daily counters: %d", tr.TradesOpenedToday())
	}
	if trade := openAt(t, e, 100); trade.ID != 1 {
		t.Fatalf("id counter should restart: got %d", trade.ID)
	}
}

func TestMultipleOpensCloseInInsertionOrder(t *testing.T) {
	e := NewEngine(risk.NewTracker())

	openAt(t, e, 100)
	openAt(t, e, 100)

	step := e.UpdateOpenTrades(candleAt(tick0.Add(time.Minute), 100, 100, 99.0, 99.2))
	if len(step.Closed) != 2 {
		t.Fatalf("closed: got %d", len(step.Closed))
	}
	if step.Closed[0].Trade.ID != 1 || step.Closed[1].Trade.ID != 2 {
		t.Fatalf("order: %d then %d", step.Closed[0].Trade.ID, step.Closed[1].Trade.ID)
	}
}
