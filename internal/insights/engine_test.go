package insights

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataqc/dataqc/internal/analyzer"
	"github.com/dataqc/dataqc/internal/dataset"
)

func scoredResult(completeness, consistency, accuracy, validity int) *analyzer.Result {
	return &analyzer.Result{
		FileName:     "t.csv",
		TotalRows:    10,
		TotalColumns: 2,
		Completeness: completeness,
		Consistency:  consistency,
		Accuracy:     accuracy,
		Validity:     validity,
		OverallScore: (completeness + consistency + accuracy + validity) / 4,
	}
}

func TestFallbackAllThresholdsTriggered(t *testing.T) {
	recs := Fallback(scoredResult(50, 50, 50, 50))

	require.Len(t, recs, 4)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.NotEmpty(t, recs[0].SQLFix)
	assert.Equal(t, PriorityMedium, recs[1].Priority)
	assert.Equal(t, PriorityHigh, recs[2].Priority)
	assert.Equal(t, PriorityMedium, recs[3].Priority)
}

func TestFallbackThresholdsAreIndependent(t *testing.T) {
	assert.Empty(t, Fallback(scoredResult(95, 85, 80, 90)))
	assert.Len(t, Fallback(scoredResult(94, 85, 80, 90)), 1)
	assert.Len(t, Fallback(scoredResult(95, 84, 80, 90)), 1)
	assert.Len(t, Fallback(scoredResult(95, 85, 79, 90)), 1)
	assert.Len(t, Fallback(scoredResult(95, 85, 80, 89)), 1)
}

func TestFallbackDeterministic(t *testing.T) {
	analysis := scoredResult(70, 80, 75, 85)

	assert.Equal(t, Fallback(analysis), Fallback(analysis))
}

func TestRecommendUsesServiceResponse(t *testing.T) {
	served := []Recommendation{
		{Priority: PriorityHigh, Issue: "dates vary", Suggestion: "normalize to ISO-8601"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Prompt, "t.csv")

		inner, _ := json.Marshal(served)
		json.NewEncoder(w).Encode(generateResponse{
			Response: "Here are my recommendations:\n" + string(inner) + "\nGood luck!",
		})
	}))
	defer srv.Close()

	engine := NewEngine(Config{BaseURL: srv.URL})
	recs := engine.Recommend(scoredResult(50, 50, 50, 50))

	assert.Equal(t, served, recs)
}

func TestRecommendFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	engine := NewEngine(Config{BaseURL: srv.URL})
	analysis := scoredResult(50, 50, 50, 50)

	assert.Equal(t, Fallback(analysis), engine.Recommend(analysis))
}

func TestRecommendFallsBackOnMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "no structured output here"})
	}))
	defer srv.Close()

	engine := NewEngine(Config{BaseURL: srv.URL})
	analysis := scoredResult(50, 50, 50, 50)

	assert.Equal(t, Fallback(analysis), engine.Recommend(analysis))
}

func TestRecommendFallsBackWhenUnconfigured(t *testing.T) {
	engine := NewEngine(Config{})
	analysis := scoredResult(50, 50, 50, 50)

	assert.Equal(t, Fallback(analysis), engine.Recommend(analysis))
}

func TestRecommendFallsBackOnUnreachableService(t *testing.T) {
	engine := NewEngine(Config{BaseURL: "http://127.0.0.1:1"})
	analysis := scoredResult(50, 50, 50, 50)

	assert.Equal(t, Fallback(analysis), engine.Recommend(analysis))
}

func TestRecommendPerRecordBeforeDatasetLevel(t *testing.T) {
	analysis := scoredResult(50, 50, 50, 50)
	analysis.Columns = []analyzer.Column{
		{Name: "id", Type: analyzer.TypeInteger},
		{Name: "email", Type: analyzer.TypeText},
	}
	analysis.DataPreview = []dataset.Record{
		{"id": "1", "email": ""},
	}

	engine := NewEngine(Config{})
	recs := engine.Recommend(analysis)

	require.Len(t, recs, 1+4)
	assert.Equal(t, "1", recs[0].UserID)
	assert.Empty(t, recs[1].UserID)
}

func TestParseRecommendationsRejectsIncomplete(t *testing.T) {
	_, err := parseRecommendations(`[{"priority": "High"}]`)
	assert.Error(t, err)

	_, err = parseRecommendations(`[]`)
	assert.Error(t, err)

	_, err = parseRecommendations(`not json at all`)
	assert.Error(t, err)
}

func TestBuildPromptDeterministic(t *testing.T) {
	analysis := scoredResult(80, 90, 100, 95)
	analysis.Columns = []analyzer.Column{
		{Name: "Age", Type: analyzer.TypeInteger, Issues: []string{"2 missing values (20%)"}},
	}

	assert.Equal(t, buildPrompt(analysis), buildPrompt(analysis))
	assert.Contains(t, buildPrompt(analysis), "2 missing values (20%)")
}
