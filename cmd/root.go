package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stockledger",
	Short: "Stock ledger service and tooling",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if os.Getenv("NO_BANNER") == "" {
			figure.NewFigure("StockLedger", "slant", true).Print()
			fmt.Println()
		}
	},
}

// Execute runs the CLI. Registered custom commands are applied first.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
