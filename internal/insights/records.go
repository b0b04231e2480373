package insights

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/dataqc/dataqc/internal/analyzer"
)

// RecordRecommendations scans the preview rows for records with missing
// fields and emits one recommendation per affected record. It only applies
// when the dataset has an identifier column: a column named "id"
// (case-insensitively) or ending in "_id".
func RecordRecommendations(analysis *analyzer.Result) []Recommendation {
	idColumn := findIDColumn(analysis.Columns)
	if idColumn == "" {
		return nil
	}

	var recs []Recommendation
	for _, row := range analysis.DataPreview {
		var missingCols []string
		for _, col := range analysis.Columns {
			if col.Name == idColumn {
				continue
			}
			if isMissingMarker(row[col.Name]) {
				missingCols = append(missingCols, col.Name)
			}
		}
		if len(missingCols) == 0 {
			continue
		}

		priority := PriorityMedium
		if len(missingCols) >= 2 {
			priority = PriorityHigh
		}

		id := cast.ToString(row[idColumn])
		parts := make([]string, len(missingCols))
		for i, name := range missingCols {
			parts[i] = "Missing " + name
		}

		recs = append(recs, Recommendation{
			Priority:        priority,
			Issue:           fmt.Sprintf("ID %s: %s", id, strings.Join(parts, ", ")),
			Suggestion:      fmt.Sprintf("Fill in %s for record %s", strings.Join(missingCols, ", "), id),
			UserID:          id,
			AffectedColumns: missingCols,
		})
	}
	return recs
}

func findIDColumn(columns []analyzer.Column) string {
	for _, col := range columns {
		lower := strings.ToLower(col.Name)
		if lower == "id" || strings.HasSuffix(lower, "_id") {
			return col.Name
		}
	}
	return ""
}

// isMissingMarker is broader than the profiler's missing definition: record
// scans also treat a literal "-" placeholder as missing.
func isMissingMarker(v any) bool {
	if analyzer.IsMissing(v) {
		return true
	}
	s, ok := v.(string)
	return ok && s == "-"
}
