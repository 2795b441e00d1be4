package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"papertrader/backtest"
	"papertrader/config"
	"papertrader/internal/id"
	"papertrader/journal"
	"papertrader/logger"
	"papertrader/risk"
	"papertrader/runner"
	"papertrader/sim"
	"papertrader/strategies"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay a candle CSV through the paper-trading core",
	Long: `Backtest replays historical candles through the EMA-cross entry strategy,
the risk gate, and the simulated trade ledger, then prints a performance
summary.

The candle CSV format is: time,open,high,low,close,volume
with time as RFC3339 or epoch milliseconds.

Example:
  papertrader backtest --candles data/btc_myr_1m.csv --config sim.yaml`,
	RunE: runBacktestCmd,
}

var (
	btCandlesPath string
	btConfigPath  string
	btPair        string
	btVerbose     bool
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btCandlesPath, "candles", "c", "", "path to candle CSV (required)")
	backtestCmd.Flags().StringVar(&btConfigPath, "config", "", "path to config file (defaults to built-in config)")
	backtestCmd.Flags().StringVar(&btPair, "pair", "", "override the configured pair")
	backtestCmd.Flags().BoolVarP(&btVerbose, "verbose", "v", false, "log the narrative for every tick with activity")

	backtestCmd.MarkFlagRequired("candles")
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if btConfigPath != "" {
		loaded, err := config.LoadFromFile(btConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if btPair != "" {
		cfg.Strategy.Pair = btPair
	}

	feed, err := backtest.NewCSVCandleFeed(btCandlesPath)
	if err != nil {
		return fmt.Errorf("open candles: %w", err)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		feed.Close()
		return err
	}
	defer j.Close()

	tracker := risk.NewTracker()
	engine := sim.NewEngine(tracker)
	strat := strategies.NewEMACross()
	co := runner.New(cfg.Strategy.Pair, strat, engine, cfg.Strategy.MaxHistory)

	runID := id.New()
	logger.Infof("starting replay run=%s pair=%s candles=%s", runID, cfg.Strategy.Pair, btCandlesPath)

	bt := &backtest.Runner{
		Coordinator: co,
		Feed:        feed,
		Journal:     j,
		Account:     cfg.AccountSnapshot(),
		Config:      cfg.RiskConfig(),
		RunID:       runID,
	}

	if btVerbose {
		bt.OnTick = func(res runner.TickResult) {
			if res.Opened != nil || len(res.Closed) > 0 || res.DeclineReason != "" {
				logger.InfoBlock(res.Narrative)
			}
		}
	}

	result, err := bt.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	backtest.PrintResult(os.Stdout, result)
	return nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return journal.Noop{}, nil
	case "csv":
		return journal.NewCSV(jc.TradesFile, jc.TicksFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}
