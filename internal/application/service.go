package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/trailcrew/trekrank/internal/domain"
	"github.com/trailcrew/trekrank/internal/ports"
)

// recalcMethods are the aggregation methods the bulk pass warms. Mode is
// skipped: it is rarely requested and cheap to compute on demand.
var recalcMethods = []domain.Method{
	domain.MethodTotal,
	domain.MethodAverage,
	domain.MethodMedian,
}

// RankingService is the application facade over the scoring engine. It
// resolves trek types, stamps ranking runs, serves program scores
// through the cache, and runs bulk recalculation.
type RankingService struct {
	store   ports.DataStore
	ranker  ports.Ranker
	cache   ports.ProgramScoreCache
	metrics ports.MetricsCollector
	logger  *zap.Logger

	cacheTTL time.Duration
	recalc   RecalculateConfig
}

// ServiceOption customizes a RankingService.
type ServiceOption func(*RankingService)

// WithCache attaches a program-score cache with the given TTL.
func WithCache(cache ports.ProgramScoreCache, ttl time.Duration) ServiceOption {
	return func(s *RankingService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithMetrics attaches a metrics collector for cache hit/miss counters.
func WithMetrics(metrics ports.MetricsCollector) ServiceOption {
	return func(s *RankingService) { s.metrics = metrics }
}

// WithRecalculateConfig bounds the bulk recalculation pass.
func WithRecalculateConfig(cfg RecalculateConfig) ServiceOption {
	return func(s *RankingService) { s.recalc = cfg }
}

// NewRankingService creates a service over the given store and ranker.
func NewRankingService(store ports.DataStore, ranker ports.Ranker, logger *zap.Logger, opts ...ServiceOption) *RankingService {
	s := &RankingService{
		store:  store,
		ranker: ranker,
		logger: logger,
		recalc: RecalculateConfig{Concurrency: 4, CrewsPerSecond: 10},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveTrekType picks the trek type a ranking run should use. A
// preferred type with itinerary data wins; otherwise the first trek type
// that has data; otherwise the default.
func (s *RankingService) ResolveTrekType(ctx context.Context, preferred domain.TrekType) (domain.TrekType, error) {
	available, err := s.store.AvailableTrekTypes(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch available trek types: %w", err)
	}

	if preferred != "" {
		for _, t := range available {
			if t == preferred {
				return preferred, nil
			}
		}
	}
	if len(available) > 0 {
		return available[0], nil
	}
	return domain.DefaultTrekType, nil
}

// Rank scores every itinerary of the trek type for the crew and wraps
// the results in a RankingRun. An empty trek type is resolved from the
// catalog. The crew must exist; an empty catalog yields an empty run.
func (s *RankingService) Rank(ctx context.Context, crewID int64, trekType domain.TrekType, method domain.Method) (*domain.RankingRun, error) {
	crew, err := s.store.Crew(ctx, crewID)
	if err != nil {
		return nil, fmt.Errorf("fetch crew %d: %w", crewID, err)
	}

	resolved, err := s.ResolveTrekType(ctx, trekType)
	if err != nil {
		return nil, err
	}

	results, err := s.ranker.RankItineraries(ctx, crewID, resolved, method)
	if err != nil {
		return nil, err
	}

	run := &domain.RankingRun{
		ID:          uuid.NewString(),
		CrewID:      crewID,
		TrekType:    resolved,
		Method:      method,
		GeneratedAt: time.Now().UTC(),
		Results:     results,
	}

	s.logger.Info("ranking run completed",
		zap.String("run_id", run.ID),
		zap.Int64("crew_id", crewID),
		zap.String("crew_name", crew.Name),
		zap.String("trek_type", string(resolved)),
		zap.String("method", string(method)),
		zap.Int("itineraries", len(results)))

	return run, nil
}

// ProgramScores returns the crew's aggregated program scores, consulting
// the cache first when one is attached. Cache failures are logged and
// degrade to a fresh computation; they never fail the request.
func (s *RankingService) ProgramScores(ctx context.Context, crewID int64, method domain.Method) (map[int64]float64, error) {
	if s.cache != nil {
		scores, hit, err := s.cache.Get(ctx, crewID, method)
		if err != nil {
			s.logger.Warn("program score cache read failed",
				zap.Int64("crew_id", crewID), zap.Error(err))
		} else if hit {
			s.recordCacheOutcome("program_score_cache_hit")
			return scores, nil
		}
		s.recordCacheOutcome("program_score_cache_miss")
	}

	scores, err := s.ranker.ProgramScores(ctx, crewID, method)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, crewID, method, scores, s.cacheTTL); err != nil {
			s.logger.Warn("program score cache write failed",
				zap.Int64("crew_id", crewID), zap.Error(err))
		}
	}
	return scores, nil
}

// InvalidateCrew drops the crew's cached program scores. Callers invoke
// this after writing ratings, members, or preferences. A no-op without
// a cache.
func (s *RankingService) InvalidateCrew(ctx context.Context, crewID int64) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.InvalidateCrew(ctx, crewID); err != nil {
		return fmt.Errorf("invalidate crew %d: %w", crewID, err)
	}
	s.logger.Debug("program score cache invalidated", zap.Int64("crew_id", crewID))
	return nil
}

// RecalculateAll recomputes and re-caches program scores for every crew
// across the warm methods. The pass runs crews in parallel up to the
// configured concurrency and rate; the first failure cancels the rest.
func (s *RankingService) RecalculateAll(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("recalculation requires a cache")
	}

	crews, err := s.store.Crews(ctx)
	if err != nil {
		return fmt.Errorf("fetch crews: %w", err)
	}

	limit := s.recalc.Concurrency
	if limit <= 0 {
		limit = 1
	}
	var limiter *rate.Limiter
	if s.recalc.CrewsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.recalc.CrewsPerSecond), 1)
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, crew := range crews {
		crew := crew
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return err
				}
			}
			return s.recalculateCrew(ctx, crew.ID)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("recalculate program scores: %w", err)
	}

	s.logger.Info("program score recalculation completed",
		zap.Int("crews", len(crews)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (s *RankingService) recalculateCrew(ctx context.Context, crewID int64) error {
	if err := s.cache.InvalidateCrew(ctx, crewID); err != nil {
		return fmt.Errorf("invalidate crew %d: %w", crewID, err)
	}
	for _, method := range recalcMethods {
		scores, err := s.ranker.ProgramScores(ctx, crewID, method)
		if err != nil {
			return fmt.Errorf("recompute crew %d method %s: %w", crewID, method, err)
		}
		if err := s.cache.Set(ctx, crewID, method, scores, s.cacheTTL); err != nil {
			return fmt.Errorf("cache crew %d method %s: %w", crewID, method, err)
		}
	}
	return nil
}

func (s *RankingService) recordCacheOutcome(metric string) {
	if s.metrics != nil {
		s.metrics.RecordCounter(metric, 1, nil)
	}
}
