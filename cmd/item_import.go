package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stockledger.GO/config"
	stockService "stockledger.GO/service/stock"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "items:import",
	Short: "Import items from CSV (columns: code,name,balance)",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		engine, err := stockService.GetEngine(db)
		if err != nil {
			fmt.Printf("Engine init failed: %v\n", err)
			return
		}

		res, err := stockService.ImportItems(context.Background(), engine, f)
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range res.Warnings {
			fmt.Println("WARN:", w)
		}
		fmt.Printf("Imported %d items, skipped %d\n", res.Imported, res.Skipped)
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "items.csv", "CSV file to import")
	rootCmd.AddCommand(importCmd)
}
