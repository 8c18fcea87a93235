package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/selimozcann/PhishGuard/internal/analyzer"
	"github.com/selimozcann/PhishGuard/internal/history"
	"github.com/selimozcann/PhishGuard/internal/logger"
	"github.com/selimozcann/PhishGuard/internal/model"
)

const maxBodyBytes = 64 << 10

// Config holds settings for the API server.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ListLimit    int
}

// Server exposes the analyzer and scan history over HTTP.
type Server struct {
	cfg   Config
	store *history.Store
	log   *logger.Logger
}

// New creates a Server.
func New(cfg Config, store *history.Store, log *logger.Logger) *Server {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 10
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Server{cfg: cfg, store: store, log: log}
}

type scanRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/scan", s.handleScan)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return s.logRequests(mux)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts it down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("phishguard API listening on %s", s.cfg.Addr)
		s.log.Info("endpoints: POST /api/scan, GET /api/history, GET /api/stats")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req scanRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid URL", Errors: []string{"Request body must be a JSON object with a url field"}})
		return
	}
	if err := validateURL(req.URL); err != nil {
		s.log.V("rejected %q: %v", req.URL, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid URL", Errors: []string{"Please provide a valid URL"}})
		return
	}

	if cached, err := s.store.Lookup(req.URL); err == nil {
		s.log.V("cache hit for %s", req.URL)
		writeJSON(w, http.StatusOK, cached)
		return
	}

	res, err := analyzer.Analyze(req.URL)
	if err != nil {
		if errors.Is(err, analyzer.ErrMalformedURL) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid URL", Errors: []string{"Please provide a valid URL"}})
			return
		}
		s.log.Error("error scanning URL %s: %v", req.URL, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Failed to scan URL"})
		return
	}
	s.store.Save(res)
	s.log.V("scanned %s: %s (%d)", res.URL, res.ResultStatus, res.RiskScore)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	limit := s.cfg.ListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "limit must be a positive integer"})
			return
		}
		limit = n
	}
	items := s.store.Recent(limit)
	if items == nil {
		items = []model.HistoryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Stats())
}

// validateURL accepts absolute URLs with a scheme and a host.
func validateURL(raw string) error {
	if raw == "" {
		return errors.New("empty url")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.New("url needs a scheme and a host")
	}
	return analyzer.Validate(raw)
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Message: "method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
