package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/dataqc/dataqc/internal/analyzer"
	"github.com/dataqc/dataqc/internal/dataset"
	"github.com/dataqc/dataqc/internal/insights"
)

type analyzeRequest struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
	Format   string `json:"format"`
}

type analyzeResponse struct {
	Analysis *analyzer.Result          `json:"analysis"`
	Insights []insights.Recommendation `json:"insights"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// handleAnalyze runs the full pipeline on uploaded content. Analysis errors
// abort the run with a single message; recommendation-service failures never
// surface, the engine falls back internally.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req analyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.FileName == "" {
		req.FileName = "upload"
	}

	ds, err := dataset.Decode(req.FileName, req.Content, dataset.Format(req.Format))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, dataset.ErrUnsupportedFormat) {
			status = http.StatusUnsupportedMediaType
		}
		s.fail(w, r, status, err.Error())
		return
	}

	result, err := analyzer.Analyze(ds)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err.Error())
		return
	}

	recs := s.engine.Recommend(result)

	s.logger.Info("analysis complete",
		"file", req.FileName,
		"rows", result.TotalRows,
		"columns", result.TotalColumns,
		"overallScore", result.OverallScore,
		"recommendations", len(recs),
	)

	render.JSON(w, r, analyzeResponse{Analysis: result, Insights: recs})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.logger.Warn("analyze request failed", "status", status, "error", msg)
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}
