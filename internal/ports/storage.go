// Package ports defines the contracts between the scoring engine and its
// collaborators: the backing data store, the optional program-score
// cache, and operational metrics. The engine depends only on these
// interfaces; infrastructure adapters implement them.
package ports

import (
	"context"
	"time"

	"github.com/trailcrew/trekrank/internal/domain"
)

// DataStore is the read-only data-access contract the engine consumes.
// Every method takes a snapshot view: repeated calls with unchanged
// backing data return identical results. Storage failures propagate
// unchanged; the engine performs no retries and no partial computation.
type DataStore interface {
	// Crew returns the crew record, or ErrCrewNotFound.
	Crew(ctx context.Context, crewID int64) (domain.Crew, error)

	// Crews returns every crew, ordered by ID.
	Crews(ctx context.Context) ([]domain.Crew, error)

	// MemberSkillLevels returns the skill levels of the crew's members,
	// omitting members with no recorded level.
	MemberSkillLevels(ctx context.Context, crewID int64) ([]int, error)

	// Ratings returns every program rating submitted by the crew's
	// members, ordered by program ID and then by member. The ordering is
	// load-bearing: the program-score calculator groups consecutive
	// entries by program ID.
	Ratings(ctx context.Context, crewID int64) ([]domain.ProgramRating, error)

	// RatingsForProgram returns the crew's raw ratings for one program.
	RatingsForProgram(ctx context.Context, programID, crewID int64) ([]float64, error)

	// Preferences returns the crew's preference record, or (nil, nil)
	// when no record exists. Absence is a documented default, not an error.
	Preferences(ctx context.Context, crewID int64) (*domain.CrewPreferences, error)

	// Itineraries returns the catalog for one trek type in catalog order
	// (by itinerary code). An empty catalog is an empty slice, not an error.
	Itineraries(ctx context.Context, trekType domain.TrekType) ([]domain.Itinerary, error)

	// AvailableTrekTypes returns the distinct trek types that have
	// itinerary data, in catalog order.
	AvailableTrekTypes(ctx context.Context) ([]domain.TrekType, error)

	// AvailablePrograms returns the IDs of programs bookable on the
	// itinerary under the given trek type.
	AvailablePrograms(ctx context.Context, itineraryID int64, trekType domain.TrekType) ([]int64, error)

	// Camps returns the itinerary's camp stops in day order.
	Camps(ctx context.Context, itineraryID int64) ([]domain.CampStop, error)

	// Programs returns the full program catalog, ordered by ID.
	Programs(ctx context.Context) ([]domain.Program, error)

	// ScoringFactorOverrides returns the active factor overrides keyed by
	// factor code. Codes absent from the map use their documented defaults.
	ScoringFactorOverrides(ctx context.Context) (map[string]float64, error)
}

// Ranker is the engine surface the application layer and the
// observability middleware decorate. Both operations are idempotent
// reads over the backing data.
type Ranker interface {
	// RankItineraries scores every itinerary of the trek type for the
	// crew and returns them sorted best-first with dense ranks 1..N.
	RankItineraries(ctx context.Context, crewID int64, trekType domain.TrekType, method domain.Method) ([]domain.ScoredItinerary, error)

	// ProgramScores returns the crew-level aggregated score per program,
	// keyed by program ID. Programs with no ratings are absent.
	ProgramScores(ctx context.Context, crewID int64, method domain.Method) (map[int64]float64, error)
}

// ProgramScoreCache caches aggregated program scores per crew and
// method. The cache is external to the engine: callers that write
// ratings, members, or preferences must invalidate the affected crew.
type ProgramScoreCache interface {
	// Get returns the cached scores and true on a hit, or false when the
	// entry is absent or expired.
	Get(ctx context.Context, crewID int64, method domain.Method) (map[int64]float64, bool, error)

	// Set stores the scores for the crew and method. A zero TTL means
	// the entry does not expire.
	Set(ctx context.Context, crewID int64, method domain.Method, scores map[int64]float64, ttl time.Duration) error

	// InvalidateCrew drops every cached entry for the crew, across all
	// methods.
	InvalidateCrew(ctx context.Context, crewID int64) error
}

// MetricsCollector records operational metrics for scoring runs.
// Implementations integrate with Prometheus or similar; a nil-safe no-op
// is acceptable in tests.
type MetricsCollector interface {
	// RecordLatency records the duration of an operation.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter, e.g. rankings served or cache
	// hits.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets a gauge, e.g. itineraries scored in the last run.
	RecordGauge(metric string, value float64, labels map[string]string)
}
