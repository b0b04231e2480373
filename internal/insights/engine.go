package insights

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/dataqc/dataqc/internal/analyzer"
)

// Config carries the external text-generation service settings. Injected
// explicitly so the engine can be exercised with a fake or absent service.
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// Engine turns a completed analysis into prioritized recommendations. The
// external service is the only fallible collaborator; every failure there is
// swallowed and replaced by the deterministic fallback.
type Engine struct {
	cfg    Config
	client *http.Client
}

const defaultTimeout = 5 * time.Second

func NewEngine(cfg Config) *Engine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Model == "" {
		cfg.Model = "llama3"
	}
	return &Engine{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Recommend always returns a recommendation list: per-record recommendations
// first, then dataset-level ones from the external service or, when that
// fails in any way, from the rule-based fallback.
func (e *Engine) Recommend(analysis *analyzer.Result) []Recommendation {
	recs := RecordRecommendations(analysis)

	generated, err := e.generate(analysis)
	if err != nil {
		generated = Fallback(analysis)
	}
	return append(recs, generated...)
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

var jsonArrayRegex = regexp.MustCompile(`\[[\s\S]*\]`)

// generate makes a single attempt against the text-generation service: no
// retries, one outstanding request, client timeout as the only deadline.
func (e *Engine) generate(analysis *analyzer.Result) ([]Recommendation, error) {
	if e.cfg.BaseURL == "" {
		return nil, errors.New("no insights service configured")
	}

	body, err := json.Marshal(generateRequest{
		Model:  e.cfg.Model,
		Prompt: buildPrompt(analysis),
		Stream: false,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, e.cfg.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("insights service returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var genResp generateResponse
	if err := json.Unmarshal(raw, &genResp); err != nil {
		return nil, err
	}

	return parseRecommendations(genResp.Response)
}

func parseRecommendations(response string) ([]Recommendation, error) {
	jsonStr := jsonArrayRegex.FindString(response)
	if jsonStr == "" {
		return nil, errors.New("no JSON array found in response")
	}

	var recs []Recommendation
	if err := json.Unmarshal([]byte(jsonStr), &recs); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty recommendation list in response")
	}
	for _, rec := range recs {
		if rec.Issue == "" || rec.Suggestion == "" {
			return nil, errors.New("incomplete recommendation in response")
		}
	}
	return recs, nil
}

// buildPrompt renders a deterministic textual summary of the analysis. Same
// analysis in, same prompt out, so a fake service sees stable input in tests.
func buildPrompt(analysis *analyzer.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a data quality expert. A dataset was analyzed with these results:\n\n")
	fmt.Fprintf(&b, "File: %s\n", analysis.FileName)
	fmt.Fprintf(&b, "Rows: %d, Columns: %d\n", analysis.TotalRows, analysis.TotalColumns)
	fmt.Fprintf(&b, "Scores (0-100): completeness=%d consistency=%d accuracy=%d validity=%d overall=%d\n\n",
		analysis.Completeness, analysis.Consistency, analysis.Accuracy,
		analysis.Validity, analysis.OverallScore)

	fmt.Fprintf(&b, "Column issues:\n")
	for _, col := range analysis.Columns {
		if len(col.Issues) == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s (%s): %s\n", col.Name, col.Type, strings.Join(col.Issues, "; "))
	}

	b.WriteString(`
Return improvement recommendations as a JSON array, nothing else:
[
  {"priority": "High|Medium|Low", "issue": "...", "suggestion": "...", "sqlFix": "optional SQL cleanup statement"}
]
`)
	return b.String()
}
