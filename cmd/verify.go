package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stockledger.GO/config"
	stockService "stockledger.GO/service/stock"
)

var verifyCmd = &cobra.Command{
	Use:   "ledger:verify",
	Short: "Recompute every balance from the ledger and report drift",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}
		engine, err := stockService.GetEngine(db)
		if err != nil {
			fmt.Printf("Engine init failed: %v\n", err)
			os.Exit(1)
		}

		report, err := engine.Audit(context.Background())
		if err != nil {
			fmt.Printf("Audit failed: %v\n", err)
			os.Exit(1)
		}

		if report.Clean() {
			fmt.Printf("OK: %d items checked, balances match the ledger\n", report.Checked)
			return
		}
		for _, d := range report.Drift {
			fmt.Printf("DRIFT: item=%d code=%s balance=%d ledger=%d\n", d.ItemID, d.Code, d.Balance, d.LedgerSum)
		}
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
