package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j
}

func sampleTrade(runID string, tradeID int64, pnl float64) TradeRecord {
	open := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return TradeRecord{
		RunID:      runID,
		TradeID:    tradeID,
		Pair:       "BTC_MYR",
		Direction:  "LONG",
		Quantity:   0.002,
		EntryPrice: 300000,
		ExitPrice:  298500,
		RiskAmount: 100,
		OpenTime:   open,
		CloseTime:  open.Add(5 * time.Minute),
		PnL:        pnl,
		Reason:     "STOP_LOSS",
	}
}

func TestSQLiteRecordAndListTrades(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)

	require.NoError(t, j.RecordTrade(sampleTrade("run-a", 1, -100)))
	require.NoError(t, j.RecordTrade(sampleTrade("run-a", 2, 200)))
	require.NoError(t, j.RecordTrade(sampleTrade("run-b", 1, 50)))

	recs, err := j.ListTradesByRun("run-a")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, int64(1), recs[0].TradeID)
	assert.Equal(t, "BTC_MYR", recs[0].Pair)
	assert.Equal(t, "LONG", recs[0].Direction)
	assert.InDelta(t, -100, recs[0].PnL, 1e-9)
	assert.InDelta(t, 0.002, recs[0].Quantity, 1e-12)
}

func TestSQLiteSumPnLByRun(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)

	require.NoError(t, j.RecordTrade(sampleTrade("run-a", 1, -100)))
	require.NoError(t, j.RecordTrade(sampleTrade("run-a", 2, 250)))

	sum, err := j.SumPnLByRun("run-a")
	require.NoError(t, err)
	assert.InDelta(t, 150, sum, 1e-9)

	empty, err := j.SumPnLByRun("missing")
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestSQLiteListRuns(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)

	require.NoError(t, j.RecordTrade(sampleTrade("01AAA", 1, 1)))
	require.NoError(t, j.RecordTrade(sampleTrade("01BBB", 1, 1)))
	require.NoError(t, j.RecordTrade(sampleTrade("01BBB", 2, 1)))

	runs, err := j.ListRuns()
	require.NoError(t, err)
	assert.Equal(t, []string{"01BBB", "01AAA"}, runs)
}

func TestSQLiteRecordTick(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)

	err := j.RecordTick(TickRecord{
		RunID:      "run-a",
		Time:       time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Realized:   -100,
		OpenTrades: 2,
	})
	require.NoError(t, err)
}
