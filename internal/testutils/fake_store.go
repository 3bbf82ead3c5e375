// Package testutils provides configurable in-memory fakes for engine and
// service tests. The fakes are plain structs populated field by field;
// no mocking framework, matching how the rest of the codebase tests.
package testutils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trailcrew/trekrank/internal/domain"
	"github.com/trailcrew/trekrank/internal/ports"
)

var _ ports.DataStore = (*FakeStore)(nil)

// FakeStore is an in-memory ports.DataStore. Populate the exported
// fields with the snapshot a test needs; any Err* field set makes the
// corresponding fetch fail, for exercising propagation paths.
type FakeStore struct {
	CrewsByID       map[int64]domain.Crew
	SkillLevels     map[int64][]int
	CrewRatings     map[int64][]domain.ProgramRating
	ProgramRatings  map[int64]map[int64][]float64 // programID -> crewID -> ratings
	Prefs           map[int64]*domain.CrewPreferences
	Catalog         map[domain.TrekType][]domain.Itinerary
	ProgramsByItin  map[int64][]int64
	CampsByItin     map[int64][]domain.CampStop
	AllPrograms     []domain.Program
	FactorOverrides map[string]float64

	ErrRatings     error
	ErrItineraries error
	ErrPreferences error

	// RatingsCalls counts Ratings invocations, for asserting that batch
	// and cached paths fetch as often as expected. Guarded by mu so
	// concurrent recalculation tests stay race-free.
	RatingsCalls int

	mu sync.Mutex
}

// NewFakeStore returns an empty FakeStore ready to populate.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		CrewsByID:       make(map[int64]domain.Crew),
		SkillLevels:     make(map[int64][]int),
		CrewRatings:     make(map[int64][]domain.ProgramRating),
		ProgramRatings:  make(map[int64]map[int64][]float64),
		Prefs:           make(map[int64]*domain.CrewPreferences),
		Catalog:         make(map[domain.TrekType][]domain.Itinerary),
		ProgramsByItin:  make(map[int64][]int64),
		CampsByItin:     make(map[int64][]domain.CampStop),
		FactorOverrides: make(map[string]float64),
	}
}

func (f *FakeStore) Crew(_ context.Context, crewID int64) (domain.Crew, error) {
	crew, ok := f.CrewsByID[crewID]
	if !ok {
		return domain.Crew{}, domain.ErrCrewNotFound
	}
	return crew, nil
}

func (f *FakeStore) Crews(_ context.Context) ([]domain.Crew, error) {
	crews := make([]domain.Crew, 0, len(f.CrewsByID))
	for _, c := range f.CrewsByID {
		crews = append(crews, c)
	}
	return crews, nil
}

func (f *FakeStore) MemberSkillLevels(_ context.Context, crewID int64) ([]int, error) {
	return f.SkillLevels[crewID], nil
}

func (f *FakeStore) Ratings(_ context.Context, crewID int64) ([]domain.ProgramRating, error) {
	f.mu.Lock()
	f.RatingsCalls++
	f.mu.Unlock()
	if f.ErrRatings != nil {
		return nil, f.ErrRatings
	}
	return f.CrewRatings[crewID], nil
}

func (f *FakeStore) RatingsForProgram(_ context.Context, programID, crewID int64) ([]float64, error) {
	return f.ProgramRatings[programID][crewID], nil
}

func (f *FakeStore) Preferences(_ context.Context, crewID int64) (*domain.CrewPreferences, error) {
	if f.ErrPreferences != nil {
		return nil, f.ErrPreferences
	}
	return f.Prefs[crewID], nil
}

func (f *FakeStore) Itineraries(_ context.Context, trekType domain.TrekType) ([]domain.Itinerary, error) {
	if f.ErrItineraries != nil {
		return nil, f.ErrItineraries
	}
	return f.Catalog[trekType], nil
}

func (f *FakeStore) AvailableTrekTypes(_ context.Context) ([]domain.TrekType, error) {
	var types []domain.TrekType
	for _, t := range domain.AllTrekTypes() {
		if len(f.Catalog[t]) > 0 {
			types = append(types, t)
		}
	}
	return types, nil
}

func (f *FakeStore) AvailablePrograms(_ context.Context, itineraryID int64, _ domain.TrekType) ([]int64, error) {
	return f.ProgramsByItin[itineraryID], nil
}

func (f *FakeStore) Camps(_ context.Context, itineraryID int64) ([]domain.CampStop, error) {
	return f.CampsByItin[itineraryID], nil
}

func (f *FakeStore) Programs(_ context.Context) ([]domain.Program, error) {
	return f.AllPrograms, nil
}

func (f *FakeStore) ScoringFactorOverrides(_ context.Context) (map[string]float64, error) {
	return f.FactorOverrides, nil
}

var _ ports.ProgramScoreCache = (*FakeCache)(nil)

// FakeCache is an in-memory ports.ProgramScoreCache with hit/miss
// counters for asserting cache behavior. Safe for concurrent use.
type FakeCache struct {
	Entries map[string]map[int64]float64
	Hits    int
	Misses  int
	Sets    int

	mu sync.Mutex
}

// NewFakeCache returns an empty FakeCache.
func NewFakeCache() *FakeCache {
	return &FakeCache{Entries: make(map[string]map[int64]float64)}
}

func cacheKey(crewID int64, method domain.Method) string {
	return fmt.Sprintf("%s/%d", method, crewID)
}

func (f *FakeCache) Get(_ context.Context, crewID int64, method domain.Method) (map[int64]float64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	scores, ok := f.Entries[cacheKey(crewID, method)]
	if !ok {
		f.Misses++
		return nil, false, nil
	}
	f.Hits++
	return scores, true, nil
}

func (f *FakeCache) Set(_ context.Context, crewID int64, method domain.Method, scores map[int64]float64, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sets++
	f.Entries[cacheKey(crewID, method)] = scores
	return nil
}

func (f *FakeCache) InvalidateCrew(_ context.Context, crewID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range []domain.Method{domain.MethodTotal, domain.MethodAverage, domain.MethodMedian, domain.MethodMode} {
		delete(f.Entries, cacheKey(crewID, m))
	}
	return nil
}
