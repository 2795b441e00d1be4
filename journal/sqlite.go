package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, trade_id, pair, direction, quantity, entry_price, exit_price, risk_amount, open_time, close_time, pnl, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.TradeID, t.Pair, t.Direction, t.Quantity, t.EntryPrice,
		t.ExitPrice, t.RiskAmount, t.OpenTime, t.CloseTime, t.PnL, t.Reason,
	)
	return err
}

func (j *SQLite) RecordTick(t TickRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO ticks (run_id, time, realized, open_trades)
		VALUES (?, ?, ?, ?)`,
		t.RunID, t.Time, t.Realized, t.OpenTrades,
	)
	return err
}

// ListTradesByRun returns a run's trades ordered by close time.
func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, trade_id, pair, direction, quantity, entry_price, exit_price, risk_amount, open_time, close_time, pnl, reason
		FROM trades
		WHERE run_id = ?
		ORDER BY close_time ASC, trade_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.TradeID,
			&rec.Pair,
			&rec.Direction,
			&rec.Quantity,
			&rec.EntryPrice,
			&rec.ExitPrice,
			&rec.RiskAmount,
			&rec.OpenTime,
			&rec.CloseTime,
			&rec.PnL,
			&rec.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRuns returns the distinct run IDs present in the journal, newest
// first (run IDs are ULIDs, so lexicographic order is time order).
func (j *SQLite) ListRuns() ([]string, error) {
	rows, err := j.db.Query(`SELECT DISTINCT run_id FROM trades ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// SumPnLByRun totals the realized P&L recorded for a run.
func (j *SQLite) SumPnLByRun(runID string) (float64, error) {
	row := j.db.QueryRow(`SELECT COALESCE(SUM(pnl), 0) FROM trades WHERE run_id = ?`, runID)

	var sum float64
	if err := row.Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum pnl for run %q: %w", runID, err)
	}
	return sum, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
