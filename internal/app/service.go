// Package service wires the formation engine behind the operations exposed
// by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/lineup/internal/domain/analysis"
	"github.com/okian/lineup/internal/domain/assign"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/scoring"
	"github.com/okian/lineup/internal/domain/spatial"
	"github.com/okian/lineup/internal/domain/swap"
	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

// Service runs the engine operations. After Start it is safe for concurrent use.
type Service struct {
	mu sync.RWMutex

	// Engine components
	scorer   *scoring.Scorer
	assigner *assign.Orchestrator
	advisor  *swap.Advisor
	analyzer *analysis.Analyzer

	// Configuration
	tables          *scoring.Tables
	lookahead       int
	swapFloor       float64
	reassignFloor   float64
	nearbyRadius    float64
	cellSize        float64
	reviewThreshold float64

	started bool

	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records on m instead of the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithFitnessTables overrides the scorer coefficients.
func WithFitnessTables(t scoring.Tables) Option {
	return func(s *Service) {
		s.tables = &t
	}
}

// WithLookahead bounds the greedy fallback scan.
func WithLookahead(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.lookahead = n
		}
	}
}

// WithSwapFloors sets the swap and reassign score floors.
func WithSwapFloors(swapFloor, reassignFloor float64) Option {
	return func(s *Service) {
		if swapFloor >= 0 {
			s.swapFloor = swapFloor
		}
		if reassignFloor >= 0 {
			s.reassignFloor = reassignFloor
		}
	}
}

// WithNearbyRadius sets the radius searched for nearby substitutes.
func WithNearbyRadius(r float64) Option {
	return func(s *Service) {
		if r >= 0 {
			s.nearbyRadius = r
		}
	}
}

// WithSpatialCellSize sets the grid cell size used for proximity lookups.
func WithSpatialCellSize(size float64) Option {
	return func(s *Service) {
		if size > 0 {
			s.cellSize = size
		}
	}
}

// WithReviewThreshold sets the analysis review threshold.
func WithReviewThreshold(v float64) Option {
	return func(s *Service) {
		if v > 0 {
			s.reviewThreshold = v
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		lookahead:       assign.DefaultLookahead,
		swapFloor:       swap.DefaultSwapFloor,
		reassignFloor:   swap.DefaultReassignFloor,
		nearbyRadius:    swap.DefaultNearbyRadius,
		cellSize:        spatial.DefaultCellSize,
		reviewThreshold: analysis.DefaultReviewThreshold,
		metrics:         metrics.Global(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the engine components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	var scorerOpts []scoring.Option
	if s.tables != nil {
		scorerOpts = append(scorerOpts, scoring.WithTables(*s.tables))
	}
	s.scorer = scoring.NewScorer(scorerOpts...)
	s.assigner = assign.New(s.scorer,
		assign.WithLookahead(s.lookahead),
		assign.WithDurationObserver(func(d time.Duration) {
			s.metrics.ObserveAssignmentDuration(float64(d) / float64(time.Millisecond))
		}),
	)
	s.advisor = swap.New(s.scorer,
		swap.WithSwapFloor(s.swapFloor),
		swap.WithReassignFloor(s.reassignFloor),
		swap.WithNearbyRadius(s.nearbyRadius),
		swap.WithCellSize(s.cellSize),
	)
	s.analyzer = analysis.New(s.scorer, analysis.WithReviewThreshold(s.reviewThreshold))

	s.started = true
	s.logger.Info(ctx, "lineup service started",
		logger.Int("lookahead", s.lookahead),
		logger.Float64("swapFloor", s.swapFloor),
		logger.Float64("reassignFloor", s.reassignFloor),
		logger.Float64("nearbyRadius", s.nearbyRadius),
	)
	return nil
}

// Stop releases the engine components.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.scorer, s.assigner, s.advisor, s.analyzer = nil, nil, nil, nil
	s.started = false
	s.logger.Info(ctx, "lineup service stopped")
}

// AutoAssign fills formation with the best players of team.
func (s *Service) AutoAssign(ctx context.Context, roster []model.Player, formation model.Formation, team string) (assign.Assignment, error) {
	const op = "service.auto_assign"
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return assign.Assignment{}, fmt.Errorf("%s: %w", op, ErrNotStarted)
	}

	res := s.assigner.Assign(roster, formation, team)
	s.metrics.RecordAssignment(res.Matched, res.Fallback)

	s.logger.Debug(ctx, "formation assigned",
		logger.String("formation", formation.Name),
		logger.String("team", team),
		logger.Int("slots", len(formation.Slots)),
		logger.Int("matched", res.Matched),
		logger.Int("fallback", res.Fallback),
	)
	if open := len(formation.Slots) - res.Matched - res.Fallback; open > 0 {
		s.logger.Warn(ctx, "formation left with open slots",
			logger.String("formation", formation.Name),
			logger.Int("open", open),
		)
	}
	return res, nil
}

// SmartSwap ranks the alternatives to moving sourceID into targetSlotID.
func (s *Service) SmartSwap(ctx context.Context, sourceID, targetSlotID, targetID string, formation model.Formation, roster []model.Player) (swap.Advice, error) {
	const op = "service.smart_swap"
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return swap.Advice{}, fmt.Errorf("%s: %w", op, ErrNotStarted)
	}

	advice := s.advisor.Advise(sourceID, targetSlotID, targetID, formation, roster)
	for _, r := range advice.Recommendations {
		s.metrics.RecordSwapAdvice(string(r.Kind))
	}

	s.logger.Debug(ctx, "swap advised",
		logger.String("source", sourceID),
		logger.String("slot", targetSlotID),
		logger.String("target", targetID),
		logger.Int("recommendations", len(advice.Recommendations)),
		logger.Int("nearby", len(advice.Nearby)),
	)
	return advice, nil
}

// Analyze grades formation against roster.
func (s *Service) Analyze(ctx context.Context, formation model.Formation, roster []model.Player) (analysis.Report, error) {
	const op = "service.analyze"
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return analysis.Report{}, fmt.Errorf("%s: %w", op, ErrNotStarted)
	}

	rep := s.analyzer.Analyze(formation, roster)
	s.metrics.RecordAnalysis()
	for _, r := range rep.Recommendations {
		s.metrics.RecordRecommendation(string(r.Priority))
	}

	s.logger.Debug(ctx, "formation analyzed",
		logger.String("formation", formation.Name),
		logger.Float64("overall", rep.Overall),
		logger.Float64("chemistry", rep.Chemistry),
		logger.Int("recommendations", len(rep.Recommendations)),
	)
	return rep, nil
}

// UpdatePositions moves every assigned team player to its slot's default position.
func (s *Service) UpdatePositions(ctx context.Context, roster []model.Player, formation model.Formation, team string) ([]model.Player, error) {
	const op = "service.update_positions"
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, fmt.Errorf("%s: %w", op, ErrNotStarted)
	}

	out := assign.UpdatePositions(roster, formation, team)
	moved := 0
	for i := range out {
		if out[i].Position != roster[i].Position {
			moved++
		}
	}
	s.metrics.RecordPositionUpdates(moved)

	s.logger.Debug(ctx, "positions updated", logger.String("team", team), logger.Int("moved", moved))
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"started":         s.started,
		"lookahead":       s.lookahead,
		"swapFloor":       s.swapFloor,
		"reassignFloor":   s.reassignFloor,
		"nearbyRadius":    s.nearbyRadius,
		"spatialCellSize": s.cellSize,
		"reviewThreshold": s.reviewThreshold,
	}
}
