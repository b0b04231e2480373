package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/dataqc/dataqc/internal/analyzer"
	"github.com/dataqc/dataqc/internal/config"
	"github.com/dataqc/dataqc/internal/dataset"
	"github.com/dataqc/dataqc/internal/insights"
	"github.com/dataqc/dataqc/internal/report"
)

var (
	withInsights bool
	showPreview  bool
	reportFormat string
	reportDir    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a CSV or JSON file for data quality",
	Long: `Analyze a single CSV or JSON file and print per-column statistics,
detected issues and the four quality scores.

Examples:
  dataqc analyze customers.csv
  dataqc analyze orders.json --insights
  dataqc analyze customers.csv --report json --report-dir ./reports`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			log.Fatalf("Please specify a file to analyze")
		}
		path := args[0]

		format, err := dataset.DetectFormat(path)
		if err != nil {
			log.Fatalf("Cannot analyze %s: %v", path, err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}

		ds, err := dataset.Decode(filepath.Base(path), string(content), format)
		if err != nil {
			log.Fatalf("Failed to decode %s: %v", path, err)
		}

		result, err := analyzer.Analyze(ds)
		if err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}

		printAnalysis(result)

		var recs []insights.Recommendation
		if withInsights || reportFormat != "" {
			cfg := config.Load()
			engine := insights.NewEngine(cfg.InsightsConfig())
			recs = engine.Recommend(result)
		}
		if withInsights {
			printRecommendations(recs)
		}

		if reportFormat != "" {
			path, err := report.Export(result, recs, report.Format(reportFormat), reportDir)
			if err != nil {
				log.Fatalf("Failed to export report: %v", err)
			}
			fmt.Printf("\nReport saved to %s\n", path)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVarP(&withInsights, "insights", "i", false,
		"Generate improvement recommendations")
	analyzeCmd.Flags().BoolVarP(&showPreview, "preview", "p", false,
		"Print the first data rows")
	analyzeCmd.Flags().StringVar(&reportFormat, "report", "",
		"Export a report file (json, csv)")
	analyzeCmd.Flags().StringVar(&reportDir, "report-dir", ".",
		"Directory for exported reports")
}

func printAnalysis(result *analyzer.Result) {
	fmt.Printf("\nFile: %s\n", result.FileName)
	fmt.Printf("%s\n\n", result.Summary)

	fmt.Printf("%-24s %-9s %6s %6s %8s %8s  %s\n",
		"Column", "Type", "Nulls", "Null%", "Unique", "Unique%", "Issues")
	fmt.Println(strings.Repeat("-", 96))
	for _, col := range result.Columns {
		fmt.Printf("%-24s %-9s %6d %5d%% %8d %7d%%  %s\n",
			truncate(col.Name, 24), col.Type, col.NullCount, col.NullPercentage,
			col.UniqueCount, col.UniquePercentage, strings.Join(col.Issues, "; "))
	}

	fmt.Printf("\nQuality Scores\n")
	fmt.Printf("  Completeness : %3d/100\n", result.Completeness)
	fmt.Printf("  Consistency  : %3d/100\n", result.Consistency)
	fmt.Printf("  Accuracy     : %3d/100\n", result.Accuracy)
	fmt.Printf("  Validity     : %3d/100\n", result.Validity)
	fmt.Printf("  Overall      : %3d/100\n", result.OverallScore)

	if showPreview && len(result.DataPreview) > 0 {
		fmt.Printf("\nPreview (first %d rows)\n", len(result.DataPreview))
		for i, row := range result.DataPreview {
			parts := make([]string, 0, len(result.Columns))
			for _, col := range result.Columns {
				parts = append(parts, fmt.Sprintf("%s=%s", col.Name, cast.ToString(row[col.Name])))
			}
			fmt.Printf("  %d. %s\n", i+1, strings.Join(parts, ", "))
		}
	}
}

func printRecommendations(recs []insights.Recommendation) {
	fmt.Printf("\nRecommendations\n")
	if len(recs) == 0 {
		fmt.Println("  No issues worth acting on.")
		return
	}
	for _, rec := range recs {
		fmt.Printf("  [%s] %s\n", rec.Priority, rec.Issue)
		fmt.Printf("         %s\n", rec.Suggestion)
		if rec.SQLFix != "" {
			fmt.Printf("         fix: %s\n", rec.SQLFix)
		}
	}
}

// truncate shortens s to max runes. Indexing bytes would split multibyte
// column names mid-rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
