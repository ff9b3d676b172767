// Package api exposes the HTTP surface of cvserve.
package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/cvserve/internal/config"
	"github.com/dgallion1/cvserve/internal/cv"
	"github.com/dgallion1/cvserve/internal/mailer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the HTTP API server for cvserve.
type Server struct {
	router chi.Router
	parser *cv.Parser
	sender *mailer.Sender
	stats  *AnswerStats
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(parser *cv.Parser, sender *mailer.Sender, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		parser: parser,
		sender: sender,
		stats:  NewAnswerStats(0),
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", s.handleStatus)
	r.Get("/health", s.handleHealth)
	r.Post("/upload-cv", s.handleUploadCV)
	r.Post("/chat", s.handleChat)
	r.Post("/send-email", s.handleSendEmail)
	r.Get("/cv-info", s.handleCVInfo)
	r.Get("/email-status", s.handleEmailStatus)
	r.Get("/stats", s.handleStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
