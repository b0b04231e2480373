package analyzer

import "github.com/dataqc/dataqc/internal/dataset"

// Type is the semantic type inferred for a column.
type Type string

const (
	TypeBoolean Type = "boolean"
	TypeDate    Type = "date"
	TypeInteger Type = "integer"
	TypeFloat   Type = "float"
	TypeText    Type = "text"
)

// Column holds the profile of one named field across all rows. Computed once
// per analysis run and never mutated afterwards.
type Column struct {
	Name             string   `json:"name"`
	Type             Type     `json:"type"`
	TotalRows        int      `json:"totalRows"`
	NullCount        int      `json:"nullCount"`
	NullPercentage   int      `json:"nullPercentage"`
	UniqueCount      int      `json:"uniqueCount"`
	UniquePercentage int      `json:"uniquePercentage"`
	SampleValues     []any    `json:"sampleValues"`
	Issues           []string `json:"issues"`
}

// Result is the complete output of one analysis run. Field names follow the
// report format consumed by the presentation and export layers.
type Result struct {
	FileName     string           `json:"fileName"`
	TotalRows    int              `json:"totalRows"`
	TotalColumns int              `json:"totalColumns"`
	Columns      []Column         `json:"columns"`
	DataPreview  []dataset.Record `json:"dataPreview"`
	Completeness int              `json:"completeness"`
	Consistency  int              `json:"consistency"`
	Accuracy     int              `json:"accuracy"`
	Validity     int              `json:"validity"`
	OverallScore int              `json:"overallScore"`
	Summary      string           `json:"summary"`
}

// TotalIssues counts issue strings across all columns.
func (r *Result) TotalIssues() int {
	total := 0
	for _, col := range r.Columns {
		total += len(col.Issues)
	}
	return total
}
