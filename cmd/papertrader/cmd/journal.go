package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"papertrader/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect a SQLite trade journal",
	Long: `Query the trades recorded by previous backtest runs.

Subcommands:
  runs    - List recorded run IDs with their net P&L
  trades  - List the closed trades of one run

Examples:
  papertrader journal runs --db papertrader.sqlite
  papertrader journal trades --db papertrader.sqlite --run 01JD...`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	RunE:  runJournalRuns,
}

var journalTradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List the closed trades of a run",
	RunE:  runJournalTrades,
}

var (
	journalDBPath string
	journalRunID  string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalTradesCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./papertrader.sqlite", "path to SQLite journal DB")
	journalTradesCmd.Flags().StringVarP(&journalRunID, "run", "r", "", "run ID (required)")
	journalTradesCmd.MarkFlagRequired("run")
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, runID := range runs {
		pnl, err := j.SumPnLByRun(runID)
		if err != nil {
			return err
		}
		fmt.Printf("%s  net %+.2f MYR\n", runID, pnl)
	}
	return nil
}

func runJournalTrades(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListTradesByRun(journalRunID)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Printf("no trades for run %s\n", journalRunID)
		return nil
	}

	for _, r := range recs {
		fmt.Printf("#%-4d %-8s %-5s qty %.6f entry %.4f exit %.4f pnl %+.2f %s %s\n",
			r.TradeID, r.Pair, r.Direction, r.Quantity, r.EntryPrice, r.ExitPrice,
			r.PnL, r.Reason, r.CloseTime.Format(time.RFC3339))
	}
	return nil
}
