package backtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"papertrader/market"
)

// CandleFeed yields candles one at a time, oldest first. Implementations
// should be deterministic and return (ok=false, err=nil) at EOF.
type CandleFeed interface {
	Next() (c market.Candle, ok bool, err error)
	Close() error
}

// CSVCandleFeed reads candle rows:
//
//	time,open,high,low,close,volume
//
// where time is RFC3339 or epoch milliseconds. A header row starting with
// "time" is allowed; empty and short rows are skipped.
type CSVCandleFeed struct {
	f *os.File
	r *csv.Reader

	sawFirst bool
}

func NewCSVCandleFeed(path string) (*CSVCandleFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	return &CSVCandleFeed{f: f, r: r}, nil
}

func (f *CSVCandleFeed) Close() error {
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

func (f *CSVCandleFeed) Next() (market.Candle, bool, error) {
	for {
		row, err := f.r.Read()
		if err == io.EOF {
			return market.Candle{}, false, nil
		}
		if err != nil {
			return market.Candle{}, false, err
		}
		if len(row) == 0 {
			continue
		}

		// Allow a single header row.
		if !f.sawFirst {
			f.sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		c, ok, err := parseCandleRow(row)
		if err != nil {
			return market.Candle{}, false, err
		}
		if !ok {
			continue
		}
		return c, true, nil
	}
}

func parseCandleRow(row []string) (market.Candle, bool, error) {
	if len(row) < 5 {
		return market.Candle{}, false, nil
	}

	ts := strings.TrimSpace(row[0])
	if ts == "" {
		return market.Candle{}, false, nil
	}

	var tm time.Time
	if millis, err := strconv.ParseInt(ts, 10, 64); err == nil {
		tm = time.UnixMilli(millis).UTC()
	} else {
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return market.Candle{}, false, fmt.Errorf("bad candle time %q: %w", ts, err)
		}
		tm = t.UTC()
	}

	vals := make([]float64, 0, 5)
	for _, s := range row[1:] {
		x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return market.Candle{}, false, fmt.Errorf("bad candle field %q: %w", s, err)
		}
		vals = append(vals, x)
		if len(vals) == 5 {
			break
		}
	}

	c := market.Candle{Time: tm, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3]}
	if len(vals) >= 5 {
		c.Volume = vals[4]
	}
	return c, true, nil
}

// SliceFeed replays an in-memory candle slice; used by tests and synthetic
// scenarios.
type SliceFeed struct {
	candles []market.Candle
	idx     int
}

func NewSliceFeed(candles []market.Candle) *SliceFeed {
	return &SliceFeed{candles: candles}
}

func (f *SliceFeed) Next() (market.Candle, bool, error) {
	if f.idx >= len(f.candles) {
		return market.Candle{}, false, nil
	}
	c := f.candles[f.idx]
	f.idx++
	return c, true, nil
}

func (f *SliceFeed) Close() error { return nil }
