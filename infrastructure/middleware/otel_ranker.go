package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trailcrew/trekrank/internal/domain"
	"github.com/trailcrew/trekrank/internal/ports"
)

var _ ports.Ranker = (*TracingRanker)(nil)

// tracerName identifies this instrumentation scope to the OTel provider.
const tracerName = "trekrank/ranker"

// TracingRanker decorates a Ranker with OpenTelemetry spans. Each call
// becomes one span carrying the crew, trek type, and method as
// attributes, with the result size recorded as an event on success.
type TracingRanker struct {
	next   ports.Ranker
	tracer trace.Tracer
}

// NewTracingRanker wraps next with tracing against the global provider.
func NewTracingRanker(next ports.Ranker) *TracingRanker {
	return &TracingRanker{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

// RankItineraries delegates to the wrapped Ranker inside a span.
func (t *TracingRanker) RankItineraries(ctx context.Context, crewID int64, trekType domain.TrekType, method domain.Method) ([]domain.ScoredItinerary, error) {
	ctx, span := t.tracer.Start(ctx, "Ranker.RankItineraries", trace.WithAttributes(
		attribute.Int64("crew.id", crewID),
		attribute.String("trek.type", string(trekType)),
		attribute.String("aggregation.method", string(method)),
	))
	defer span.End()

	results, err := t.next.RankItineraries(ctx, crewID, trekType, method)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.AddEvent("ranking.completed", trace.WithAttributes(
		attribute.Int("itineraries.scored", len(results)),
	))
	span.SetStatus(codes.Ok, "")
	return results, nil
}

// ProgramScores delegates to the wrapped Ranker inside a span.
func (t *TracingRanker) ProgramScores(ctx context.Context, crewID int64, method domain.Method) (map[int64]float64, error) {
	ctx, span := t.tracer.Start(ctx, "Ranker.ProgramScores", trace.WithAttributes(
		attribute.Int64("crew.id", crewID),
		attribute.String("aggregation.method", string(method)),
	))
	defer span.End()

	scores, err := t.next.ProgramScores(ctx, crewID, method)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.AddEvent("aggregation.completed", trace.WithAttributes(
		attribute.Int("programs.scored", len(scores)),
	))
	span.SetStatus(codes.Ok, "")
	return scores, nil
}
