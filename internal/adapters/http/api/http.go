// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/lineup/internal/domain/analysis"
	"github.com/okian/lineup/internal/domain/assign"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/swap"
	"github.com/okian/lineup/pkg/logger"
)

// defaultMaxBodyBytes caps request bodies; a full matchday is a few KiB.
const defaultMaxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AutoAssign(ctx context.Context, roster []model.Player, formation model.Formation, team string) (assign.Assignment, error)
	SmartSwap(ctx context.Context, sourceID, targetSlotID, targetID string, formation model.Formation, roster []model.Player) (swap.Advice, error)
	Analyze(ctx context.Context, formation model.Formation, roster []model.Player) (analysis.Report, error)
	UpdatePositions(ctx context.Context, roster []model.Player, formation model.Formation, team string) ([]model.Player, error)
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]any
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStatsProvider exposes GET /stats.
func WithStatsProvider(p StatsProvider) Option {
	return func(s *Server) {
		s.stats = p
	}
}

// WithRateLimit enables per-client rate limiting on the engine routes.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps > 0 && burst > 0 {
			s.limiter = newClientLimiter(rps, burst)
		}
	}
}

// WithMaxBodyBytes caps the accepted request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// Server wires HTTP routes for the engine API.
type Server struct {
	deps     Dependencies
	stats    StatsProvider
	logger   logger.Logger
	maxBody  int64
	limiter  *clientLimiter
	validate *validator.Validate
}

// NewServer creates a new API server over deps.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:     deps,
		maxBody:  defaultMaxBodyBytes,
		logger:   logger.Nop(),
		validate: validator.New(),
	}
	s.validate.RegisterStructValidation(formationLimits, model.Formation{})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.route("healthz", HandleHealth))
	mux.HandleFunc("/metrics", HandleMetrics)
	if s.stats != nil {
		mux.HandleFunc("/stats", s.route("stats", s.handleStats))
	}
	mux.HandleFunc("/assign", s.route("assign", s.limited(s.handleAssign)))
	mux.HandleFunc("/swap", s.route("swap", s.limited(s.handleSwap)))
	mux.HandleFunc("/analysis", s.route("analysis", s.limited(s.handleAnalysis)))
	mux.HandleFunc("/positions", s.route("positions", s.limited(s.handlePositions)))
}

func (s *Server) route(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(s.logRequests(h, endpoint), endpoint))
}

func (s *Server) limited(h http.HandlerFunc) http.HandlerFunc {
	if s.limiter == nil {
		return h
	}
	return s.limiter.middleware(h)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, s.stats.GetStats())
}

// decode reads a JSON body into v. Only POST is accepted.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return false
	}
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", wrapKind(op, ErrBadRequest, err))
		return false
	}
	return true
}

// fail maps a dependency error to a response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error(r.Context(), "request failed",
		logger.String("op", op),
		logger.String("request_id", RequestID(r.Context())),
		logger.Error(err),
	)
	writeError(w, http.StatusServiceUnavailable, "unavailable", wrapKind(op, ErrUnavailable, err))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func (s *Server) logRequests(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(w, r)
		s.logger.Debug(r.Context(), fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			logger.String("endpoint", endpoint),
			logger.String("request_id", RequestID(r.Context())),
		)
	}
}
