// Package server provides the HTTP REST API for resume scoring and chat.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-insight/internal/scoring"
)

// Scorer produces a full assessment for a resume.
type Scorer interface {
	Score(ctx context.Context, resumeText, jobDescription string) (scoring.Assessment, error)
}

// ChatStore runs conversational turns over completed assessments.
type ChatStore interface {
	Turn(ctx context.Context, sessionID, message string, assessment scoring.Assessment) (string, error)
	TurnStream(ctx context.Context, sessionID, message string, assessment scoring.Assessment) (<-chan string, error)
	Clear(sessionID string) bool
}

// Config holds server configuration.
type Config struct {
	Addr   string
	APIKey string // empty disables client authentication

	// StageDelay paces the progress events of the streaming analysis
	// endpoint. Zero means no pacing; tests rely on that.
	StageDelay time.Duration
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	scorer     Scorer
	chat       ChatStore
	log        *zap.Logger
	apiKey     string
	stageDelay time.Duration
	validate   *validator.Validate
}

// New creates a new server instance.
func New(cfg Config, scorer Scorer, chat ChatStore, log *zap.Logger) *Server {
	s := &Server{
		scorer:     scorer,
		chat:       chat,
		log:        log,
		apiKey:     cfg.APIKey,
		stageDelay: cfg.StageDelay,
		validate:   validator.New(),
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // model calls and streaming are slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler builds the full middleware-wrapped route tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze-resume", s.handleAnalyze)
	mux.HandleFunc("POST /analyze-resume-stream", s.handleAnalyzeStream)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/chat/stream", s.handleChatStream)
	mux.HandleFunc("POST /api/chat/clear", s.handleChatClear)

	return s.withLogging(s.withCORS(s.withAuth(mux)))
}

// ListenAndServe starts the server and blocks until ctx is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// withCORS adds CORS headers and answers preflight requests.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withAuth enforces the X-API-Key header on all routes except the health and
// index probes. A missing key is 401, a wrong key 403.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" || r.URL.Path == "/health" || r.URL.Path == "/" {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get("X-API-Key")
		if key == "" {
			s.jsonError(w, http.StatusUnauthorized, "unauthorized", "API key required")
			return
		}
		if key != s.apiKey {
			s.jsonError(w, http.StatusForbidden, "forbidden", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with a generated request id and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		next.ServeHTTP(w, r)

		s.log.Info("request handled",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"service": "resume-insight",
		"endpoints": []string{
			"GET /health",
			"POST /analyze-resume",
			"POST /analyze-resume-stream",
			"POST /api/chat",
			"POST /api/chat/stream",
			"POST /api/chat/clear",
		},
	})
}
