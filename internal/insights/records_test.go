package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataqc/dataqc/internal/analyzer"
	"github.com/dataqc/dataqc/internal/dataset"
)

func resultWithPreview(columns []string, preview []dataset.Record) *analyzer.Result {
	cols := make([]analyzer.Column, len(columns))
	for i, name := range columns {
		cols[i] = analyzer.Column{Name: name, Type: analyzer.TypeText}
	}
	return &analyzer.Result{
		Columns:     cols,
		DataPreview: preview,
	}
}

func TestRecordRecommendationSingleMissingField(t *testing.T) {
	analysis := resultWithPreview(
		[]string{"id", "name", "email", "age"},
		[]dataset.Record{
			{"id": float64(4), "name": "Alice", "email": "", "age": float64(45)},
		},
	)

	recs := RecordRecommendations(analysis)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, PriorityMedium, rec.Priority)
	assert.Equal(t, "ID 4: Missing email", rec.Issue)
	assert.Equal(t, "4", rec.UserID)
	assert.Equal(t, []string{"email"}, rec.AffectedColumns)
	assert.Contains(t, rec.Suggestion, "email")
}

func TestRecordRecommendationMultipleMissingFieldsIsHigh(t *testing.T) {
	analysis := resultWithPreview(
		[]string{"user_id", "name", "email", "phone"},
		[]dataset.Record{
			{"user_id": "u7", "name": nil, "email": "-", "phone": "555"},
		},
	)

	recs := RecordRecommendations(analysis)
	require.Len(t, recs, 1)

	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, "ID u7: Missing name, Missing email", recs[0].Issue)
	assert.Equal(t, []string{"name", "email"}, recs[0].AffectedColumns)
}

func TestRecordRecommendationDashIsMissing(t *testing.T) {
	analysis := resultWithPreview(
		[]string{"ID", "city"},
		[]dataset.Record{{"ID": "1", "city": "-"}},
	)

	recs := RecordRecommendations(analysis)
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"city"}, recs[0].AffectedColumns)
}

func TestRecordRecommendationNoIDColumn(t *testing.T) {
	analysis := resultWithPreview(
		[]string{"name", "email"},
		[]dataset.Record{{"name": "", "email": ""}},
	)

	assert.Empty(t, RecordRecommendations(analysis))
}

func TestRecordRecommendationIdentifierSuffixOnly(t *testing.T) {
	// "valid" must not match; "order_id" must.
	analysis := resultWithPreview(
		[]string{"valid", "order_id", "note"},
		[]dataset.Record{{"valid": "yes", "order_id": "9", "note": ""}},
	)

	recs := RecordRecommendations(analysis)
	require.Len(t, recs, 1)
	assert.Equal(t, "9", recs[0].UserID)
}

func TestRecordRecommendationCompleteRecordsEmitNothing(t *testing.T) {
	analysis := resultWithPreview(
		[]string{"id", "name"},
		[]dataset.Record{{"id": "1", "name": "Alice"}},
	)

	assert.Empty(t, RecordRecommendations(analysis))
}
