package analyzer

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dataqc/dataqc/internal/dataset"
)

// ErrEmptyDataset is returned when an analysis is requested for a dataset
// holding no data: zero rows, or rows with zero columns.
var ErrEmptyDataset = errors.New("dataset contains no data")

const previewRows = 5

// Analyze profiles every column of the dataset and aggregates the four
// quality scores. It is a pure function of its input: given the same rows in
// the same order it produces the same result, including sample-value order.
func Analyze(ds *dataset.Dataset) (*Result, error) {
	// Zero columns must be rejected here too: the score folds divide by the
	// column count, and JSON input like [{}] decodes to rows without columns.
	if len(ds.Rows) == 0 || len(ds.Columns) == 0 {
		return nil, ErrEmptyDataset
	}

	columns := make([]Column, 0, len(ds.Columns))
	for _, name := range ds.Columns {
		values := make([]any, len(ds.Rows))
		for i, row := range ds.Rows {
			values[i] = row[name] // absent key yields nil, i.e. missing
		}
		typ := Infer(values)
		columns = append(columns, ProfileColumn(name, values, typ))
	}

	preview := ds.Rows
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	result := &Result{
		FileName:     ds.FileName,
		TotalRows:    len(ds.Rows),
		TotalColumns: len(ds.Columns),
		Columns:      columns,
		DataPreview:  preview,
		Completeness: scoreCompleteness(columns),
		Consistency:  scoreConsistency(columns),
		Accuracy:     scoreAccuracy(columns),
		Validity:     scoreValidity(columns),
	}
	result.OverallScore = roundMean(
		result.Completeness, result.Consistency, result.Accuracy, result.Validity)
	result.Summary = fmt.Sprintf("Dataset contains %d rows and %d columns; %d quality issues detected",
		result.TotalRows, result.TotalColumns, result.TotalIssues())

	return result, nil
}

// scoreCompleteness is 100 minus the rounded mean missing rate.
func scoreCompleteness(columns []Column) int {
	sum := 0
	for _, col := range columns {
		sum += col.NullPercentage
	}
	mean := math.Round(float64(sum) / float64(len(columns)))
	return clampScore(100 - int(mean))
}

// scoreConsistency penalizes 5 points per text column (format variation) and
// 5 points per column carrying at least one issue. Penalties stack.
func scoreConsistency(columns []Column) int {
	penalty := 0
	for _, col := range columns {
		if col.Type == TypeText {
			penalty += 5
		}
		if len(col.Issues) > 0 {
			penalty += 5
		}
	}
	return clampScore(100 - penalty)
}

// scoreAccuracy penalizes 10 points per non-numeric issue instance. Type
// inference already filters numeric columns to fully numeric values, so this
// only bites when a column was profiled against an override type.
func scoreAccuracy(columns []Column) int {
	penalty := 0
	for _, col := range columns {
		for _, issue := range col.Issues {
			if strings.Contains(issue, "non-numeric values found") {
				penalty += 10
			}
		}
	}
	return clampScore(100 - penalty)
}

// scoreValidity penalizes 10 points per text column with a unique rate below
// 80, a cheap proxy for low-cardinality fields that should be categorical.
func scoreValidity(columns []Column) int {
	penalty := 0
	for _, col := range columns {
		if col.Type == TypeText && col.UniquePercentage < 80 {
			penalty += 10
		}
	}
	return clampScore(100 - penalty)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func roundMean(scores ...int) int {
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}
