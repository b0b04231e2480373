package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dataqc/dataqc/internal/analyzer"
	"github.com/dataqc/dataqc/internal/insights"
)

// Format selects the report file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

type jsonReport struct {
	ReportID    string                    `json:"reportId"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	Analysis    *analyzer.Result          `json:"analysis"`
	Insights    []insights.Recommendation `json:"insights"`
}

// Export writes a quality report file into dir and returns its path.
func Export(analysis *analyzer.Result, recs []insights.Recommendation, format Format, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("report: create output dir: %w", err)
	}

	id := uuid.NewString()[:8]
	base := strings.TrimSuffix(analysis.FileName, filepath.Ext(analysis.FileName))
	if base == "" {
		base = "dataset"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_quality_report_%s.%s", base, id, format))

	switch format {
	case FormatJSON:
		return path, writeJSON(path, analysis, recs, id)
	case FormatCSV:
		return path, writeCSV(path, analysis, recs)
	default:
		return "", fmt.Errorf("report: unsupported format %q", format)
	}
}

func writeJSON(path string, analysis *analyzer.Result, recs []insights.Recommendation, id string) error {
	data, err := json.MarshalIndent(jsonReport{
		ReportID:    id,
		GeneratedAt: time.Now().UTC(),
		Analysis:    analysis,
		Insights:    recs,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("report: write %q: %w", path, err)
	}
	return nil
}

// writeCSV lays the report out in three sections: scores, per-column stats
// and recommendations. encoding/csv handles quoting of embedded commas.
func writeCSV(path string, analysis *analyzer.Result, recs []insights.Recommendation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	rows := [][]string{
		{"section", "metric", "value"},
		{"summary", "fileName", analysis.FileName},
		{"summary", "totalRows", strconv.Itoa(analysis.TotalRows)},
		{"summary", "totalColumns", strconv.Itoa(analysis.TotalColumns)},
		{"summary", "completeness", strconv.Itoa(analysis.Completeness)},
		{"summary", "consistency", strconv.Itoa(analysis.Consistency)},
		{"summary", "accuracy", strconv.Itoa(analysis.Accuracy)},
		{"summary", "validity", strconv.Itoa(analysis.Validity)},
		{"summary", "overallScore", strconv.Itoa(analysis.OverallScore)},
		{"summary", "summary", analysis.Summary},
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("report: write summary: %w", err)
	}

	if err := w.Write([]string{"column", "type", "nulls", "nullPct", "unique", "uniquePct", "issues"}); err != nil {
		return fmt.Errorf("report: write column header: %w", err)
	}
	for _, col := range analysis.Columns {
		row := []string{
			col.Name,
			string(col.Type),
			strconv.Itoa(col.NullCount),
			strconv.Itoa(col.NullPercentage),
			strconv.Itoa(col.UniqueCount),
			strconv.Itoa(col.UniquePercentage),
			strings.Join(col.Issues, "; "),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("report: write column row: %w", err)
		}
	}

	if err := w.Write([]string{"priority", "issue", "suggestion", "sqlFix", "userId", "affectedColumns"}); err != nil {
		return fmt.Errorf("report: write recommendation header: %w", err)
	}
	for _, rec := range recs {
		row := []string{
			string(rec.Priority),
			rec.Issue,
			rec.Suggestion,
			rec.SQLFix,
			rec.UserID,
			strings.Join(rec.AffectedColumns, "; "),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("report: write recommendation row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
