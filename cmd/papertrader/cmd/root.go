package cmd

import (
	"github.com/spf13/cobra"

	"papertrader/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "papertrader",
	Short: "A paper-trading simulator for a single spot market",
	Long: `Papertrader is a paper-trading simulation core and replay tool.

It provides tools for:
  - Replaying historical candles through a long-only EMA-cross strategy
  - Risk-gated position sizing with daily loss and trade-count caps
  - Tracking simulated positions against stop-loss/take-profit levels
  - Journaling closed trades and the realized-P&L curve to SQLite or CSV
  - Performance statistics: win rate, drawdown, R-multiples`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLevel(logLevel)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}
