package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dataqc/dataqc/internal/analyzer"
	"github.com/dataqc/dataqc/internal/connectors"
	"github.com/dataqc/dataqc/internal/dataset"
)

var (
	scanDir       string
	scanFormat    string
	scanRecursive bool
	scanVerbose   bool
	scanWorkers   int
	scanMinSize   int64
	scanMaxSize   int64
)

type scanResult struct {
	Path   string
	Size   int64
	Result *analyzer.Result
	Err    error
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a directory and score every data file in it",
	Long: `Scan a directory for CSV or JSON files and run the quality
analysis on each one, printing a ranked summary`,
	Run: func(cmd *cobra.Command, args []string) {
		if scanDir == "" {
			log.Printf("You must specify a directory with --dir")
			return
		}

		options := connectors.DiscoveryOptions{
			Recursive: scanRecursive,
			MinSize:   scanMinSize,
			MaxSize:   scanMaxSize,
		}

		files, fileCount, err := connectors.DiscoverFiles(scanDir, scanFormat, options)
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}

		bar := progressbar.NewOptions(fileCount,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("[cyan][reset] Analyzing files..."),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)

		results := analyzeFiles(files, bar)
		bar.Finish()

		printScanSummary(results)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanDir, "dir", "d", "",
		"Directory to scan (required)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "csv",
		"File format to analyze (csv, json)")
	scanCmd.Flags().BoolVarP(&scanRecursive, "recursive", "r", false,
		"Search directories recursively")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false,
		"Display per-column details for every file")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0,
		"Number of parallel workers (default: CPU cores)")
	scanCmd.Flags().Int64Var(&scanMinSize, "min-size", 0,
		"Minimum file size in bytes")
	scanCmd.Flags().Int64Var(&scanMaxSize, "max-size", 0,
		"Maximum file size in bytes")

	scanCmd.MarkFlagRequired("dir")
}

// analyzeFiles runs the analysis over a bounded worker pool. Each analysis is
// independent, so no coordination is needed beyond the semaphore.
func analyzeFiles(files []connectors.FileMeta, bar *progressbar.ProgressBar) []scanResult {
	workers := scanWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	semaphore := make(chan struct{}, workers)
	out := make(chan scanResult, len(files))

	var wg sync.WaitGroup
	for _, file := range files {
		if file.IsDir {
			continue
		}

		wg.Add(1)
		go func(f connectors.FileMeta) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			out <- analyzeFile(f)
			bar.Add(1)
		}(file)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	var results []scanResult
	for r := range out {
		results = append(results, r)
	}
	return results
}

func analyzeFile(f connectors.FileMeta) scanResult {
	res := scanResult{Path: f.Path, Size: f.Size}

	format, err := dataset.DetectFormat(f.Path)
	if err != nil {
		res.Err = err
		return res
	}

	content, err := os.ReadFile(f.Path)
	if err != nil {
		res.Err = err
		return res
	}

	ds, err := dataset.Decode(filepath.Base(f.Path), string(content), format)
	if err != nil {
		res.Err = err
		return res
	}

	res.Result, res.Err = analyzer.Analyze(ds)
	return res
}

func printScanSummary(results []scanResult) {
	// Worst files first, so problems surface at the top of the table.
	sort.Slice(results, func(i, j int) bool {
		si, sj := 101, 101
		if results[i].Result != nil {
			si = results[i].Result.OverallScore
		}
		if results[j].Result != nil {
			sj = results[j].Result.OverallScore
		}
		return si < sj
	})

	fmt.Printf("\n%-40s %10s %10s %8s %8s %8s\n",
		"File", "Size", "Rows", "Columns", "Issues", "Score")
	fmt.Println(strings.Repeat("-", 90))

	for _, r := range results {
		name := filepath.Base(r.Path)
		if r.Err != nil {
			log.Printf("Failed to analyze %s: %v", r.Path, r.Err)
			continue
		}
		fmt.Printf("%-40s %10s %10s %8d %8d %7d%%\n",
			truncate(name, 40),
			humanize.Bytes(uint64(r.Size)),
			humanize.Comma(int64(r.Result.TotalRows)),
			r.Result.TotalColumns,
			r.Result.TotalIssues(),
			r.Result.OverallScore)

		if scanVerbose {
			for _, col := range r.Result.Columns {
				fmt.Printf("    %-24s %-9s nulls=%d unique=%d %s\n",
					col.Name, col.Type, col.NullCount, col.UniqueCount,
					strings.Join(col.Issues, "; "))
			}
		}
	}
}
