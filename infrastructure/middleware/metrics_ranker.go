package middleware

import (
	"context"
	"time"

	"github.com/trailcrew/trekrank/internal/domain"
	"github.com/trailcrew/trekrank/internal/ports"
)

var _ ports.Ranker = (*MetricsRanker)(nil)

// MetricsRanker decorates a Ranker with operation metrics: per-call
// latency, outcome counters, and the size of the last ranked catalog.
type MetricsRanker struct {
	next    ports.Ranker
	metrics ports.MetricsCollector
}

// NewMetricsRanker wraps next with the given collector.
func NewMetricsRanker(next ports.Ranker, metrics ports.MetricsCollector) *MetricsRanker {
	return &MetricsRanker{next: next, metrics: metrics}
}

// RankItineraries delegates to the wrapped Ranker and records latency,
// outcome, and result-set size.
func (m *MetricsRanker) RankItineraries(ctx context.Context, crewID int64, trekType domain.TrekType, method domain.Method) ([]domain.ScoredItinerary, error) {
	start := time.Now()
	results, err := m.next.RankItineraries(ctx, crewID, trekType, method)

	labels := map[string]string{
		"trek_type": string(trekType),
		"method":    string(method),
		"status":    statusLabel(err),
	}
	m.metrics.RecordLatency("rank_itineraries", time.Since(start), labels)
	m.metrics.RecordCounter("rank_itineraries", 1, labels)
	if err == nil {
		m.metrics.RecordGauge("itineraries_ranked", float64(len(results)), labels)
	}
	return results, err
}

// ProgramScores delegates to the wrapped Ranker and records latency and
// outcome.
func (m *MetricsRanker) ProgramScores(ctx context.Context, crewID int64, method domain.Method) (map[int64]float64, error) {
	start := time.Now()
	scores, err := m.next.ProgramScores(ctx, crewID, method)

	labels := map[string]string{
		"method": string(method),
		"status": statusLabel(err),
	}
	m.metrics.RecordLatency("program_scores", time.Since(start), labels)
	m.metrics.RecordCounter("program_scores", 1, labels)
	return scores, err
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
