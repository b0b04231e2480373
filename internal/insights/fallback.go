package insights

import (
	"fmt"

	"github.com/dataqc/dataqc/internal/analyzer"
)

// Fallback produces rule-based dataset-level recommendations without any
// external service. Each threshold is independent, so anywhere between zero
// and four recommendations come back, always in the same order.
func Fallback(analysis *analyzer.Result) []Recommendation {
	var recs []Recommendation

	if analysis.Completeness < 95 {
		recs = append(recs, Recommendation{
			Priority:   PriorityHigh,
			Issue:      fmt.Sprintf("Missing values reduce completeness to %d/100", analysis.Completeness),
			Suggestion: "Remove rows with missing values or impute them from column statistics",
			SQLFix:     "DELETE FROM dataset WHERE column_name IS NULL; -- or UPDATE dataset SET column_name = (SELECT AVG(column_name) FROM dataset) WHERE column_name IS NULL;",
		})
	}

	if analysis.Consistency < 85 {
		recs = append(recs, Recommendation{
			Priority:   PriorityMedium,
			Issue:      fmt.Sprintf("Inconsistent formats reduce consistency to %d/100", analysis.Consistency),
			Suggestion: "Standardize value formats per column: trim whitespace, unify casing and date formats",
		})
	}

	if analysis.Accuracy < 80 {
		recs = append(recs, Recommendation{
			Priority:   PriorityHigh,
			Issue:      fmt.Sprintf("Type mismatches reduce accuracy to %d/100", analysis.Accuracy),
			Suggestion: "Review outliers and values that fail numeric conversion in numeric columns",
			SQLFix:     "SELECT * FROM dataset WHERE column_name NOT BETWEEN expected_min AND expected_max;",
		})
	}

	if analysis.Validity < 90 {
		recs = append(recs, Recommendation{
			Priority:   PriorityMedium,
			Issue:      fmt.Sprintf("Low-variety text columns reduce validity to %d/100", analysis.Validity),
			Suggestion: "Validate column types and formats; convert repetitive text columns to categorical values",
		})
	}

	return recs
}
