package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog"

	"EconDash/internal/dashboard"
	"EconDash/internal/model"
)

// Server implements the dashboard HTTP API
type Server struct {
	svc    *dashboard.Service
	addr   string
	logger zerolog.Logger
	server *http.Server
}

// NewServer creates a new API server
func NewServer(addr string, svc *dashboard.Service, logger zerolog.Logger) *Server {
	return &Server{
		svc:    svc,
		addr:   addr,
		logger: logger,
	}
}

// Handler returns the routed, compressing handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/fred", getOnly(s.handleFred))
	mux.HandleFunc("/api/fallback", getOnly(s.handleFallback))
	mux.HandleFunc("/api/dashboard", getOnly(s.handleDashboard))
	mux.HandleFunc("/api/loads", getOnly(s.handleLoads))
	mux.HandleFunc("/health", getOnly(s.handleHealth))
	return gzhttp.GzipHandler(mux)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info().Str("addr", s.addr).Msg("http server listening")
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
			return
		}
		h(w, r)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// handleFred returns the live dataset, or a generic 500 on any failure.
func (s *Server) handleFred(w http.ResponseWriter, r *http.Request) {
	ds, _, err := s.svc.Live(r.Context(), model.TriggerRequest)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: dashboard.ErrorMessage})
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) handleFallback(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Fallback.Dataset())
}

// handleDashboard always answers 200, with live data or the fallback dataset.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.View(r.Context()))
}

func (s *Server) handleLoads(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be between 1 and 500"})
			return
		}
		limit = n
	}
	events, err := s.svc.History(limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("list loads")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to list loads"})
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"fallback": s.svc.Fallback.Source(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
