package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dataqc/dataqc/internal/config"
	"github.com/dataqc/dataqc/internal/insights"
)

const maxBodyBytes = 32 * 1024 * 1024 // 32MB upload ceiling

// Server is the HTTP transport collaborator: it owns file size limits and
// request plumbing, and hands raw content to the analysis core.
type Server struct {
	addr   string
	engine *insights.Engine
	logger *slog.Logger
}

func New(cfg *config.Config) *Server {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return &Server{
		addr:   cfg.ListenAddr,
		engine: insights.NewEngine(cfg.InsightsConfig()),
		logger: logger,
	}
}

// Router assembles the chi router with the standard middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/analyze", s.handleAnalyze)

	return r
}

// Start blocks serving HTTP until the listener fails.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.Router())
}
