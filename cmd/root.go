package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dataqc",
	Short: "Data quality assessment CLI",
	Long: `A fast, explainable data quality assessment tool
for CSV and JSON datasets: per-column statistics, inferred
types, detected issues, quality scores and improvement
recommendations`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
