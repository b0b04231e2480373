package insights

// Priority ranks how urgently a recommendation should be acted on.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Recommendation is one actionable suggestion derived from an analysis.
// Dataset-level recommendations leave UserID and AffectedColumns empty;
// record-scoped ones fill both. Field names match what the reporting layer
// expects.
type Recommendation struct {
	Priority        Priority `json:"priority"`
	Issue           string   `json:"issue"`
	Suggestion      string   `json:"suggestion"`
	SQLFix          string   `json:"sqlFix,omitempty"`
	UserID          string   `json:"userId,omitempty"`
	AffectedColumns []string `json:"affectedColumns,omitempty"`
}
