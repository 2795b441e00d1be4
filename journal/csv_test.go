package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSVClosesFilesOnHeaderError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}

	before := openFDCount(t)

	tradesPath := filepath.Join(t.TempDir(), "trades.csv")
	j, err := NewCSV(tradesPath, "/dev/full")
	require.Error(t, err)
	require.Nil(t, j)

	require.Equal(t, before, openFDCount(t), "failed constructor must not leak descriptors")
}

func openFDCount(t *testing.T) int {
	t.Helper()
	ents, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)
	return len(ents)
}

func TestCSVRecordTrade(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	ticksPath := filepath.Join(dir, "ticks.csv")

	j, err := NewCSV(tradesPath, ticksPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordTrade(sampleTrade("run-a", 7, -100)))
	require.NoError(t, j.RecordTick(TickRecord{
		RunID:      "run-a",
		Time:       time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC),
		Realized:   -100,
		OpenTrades: 0,
	}))
	require.NoError(t, j.Close())

	tf, err := os.Open(tradesPath)
	require.NoError(t, err)
	defer tf.Close()

	rows, err := csv.NewReader(tf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one trade")

	assert.Equal(t, "run_id", rows[0][0])
	assert.Equal(t, "run-a", rows[1][0])
	assert.Equal(t, "7", rows[1][1])
	assert.Equal(t, "BTC_MYR", rows[1][2])
	assert.Equal(t, "STOP_LOSS", rows[1][11])

	kf, err := os.Open(ticksPath)
	require.NoError(t, err)
	defer kf.Close()

	tickRows, err := csv.NewReader(kf).ReadAll()
	require.NoError(t, err)
	require.Len(t, tickRows, 2)
	assert.Equal(t, "run-a", tickRows[1][0])
}
