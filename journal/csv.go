// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSV struct {
	trades *csv.Writer
	ticks  *csv.Writer
	tf, kf *os.File
}

func NewCSV(tradesPath, ticksPath string) (*CSV, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	kf, err := os.Create(ticksPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	kw := csv.NewWriter(kf)

	tw.Write([]string{"run_id", "trade_id", "pair", "direction", "quantity", "entry_price", "exit_price", "risk_amount", "open_time", "close_time", "pnl", "reason"})
	kw.Write([]string{"run_id", "time", "realized", "open_trades"})

	tw.Flush()
	kw.Flush()
	if err := tw.Error(); err != nil {
		tf.Close()
		kf.Close()
		return nil, err
	}
	if err := kw.Error(); err != nil {
		tf.Close()
		kf.Close()
		return nil, err
	}

	return &CSV{tw, kw, tf, kf}, nil
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	j.trades.Write([]string{
		t.RunID,
		strconv.FormatInt(t.TradeID, 10),
		t.Pair,
		t.Direction,
		f(t.Quantity),
		f(t.EntryPrice),
		f(t.ExitPrice),
		f(t.RiskAmount),
		t.OpenTime.Format(time.RFC3339),
		t.CloseTime.Format(time.RFC3339),
		f(t.PnL),
		t.Reason,
	})
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) RecordTick(t TickRecord) error {
	j.ticks.Write([]string{
		t.RunID,
		t.Time.Format(time.RFC3339),
		f(t.Realized),
		strconv.Itoa(t.OpenTrades),
	})
	j.ticks.Flush()
	return j.ticks.Error()
}

func (j *CSV) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.ticks.Flush()
	if err := j.ticks.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.kf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
