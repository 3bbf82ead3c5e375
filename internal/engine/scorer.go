package engine

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/trailcrew/trekrank/internal/domain"
	"github.com/trailcrew/trekrank/internal/ports"
)

var _ ports.Ranker = (*Scorer)(nil)

// Scorer is the itinerary scoring engine. It is stateless beyond its
// immutable configuration: every call fetches its own snapshot of crew,
// rating, preference, and catalog data through the store, computes, and
// returns. Concurrent runs for different crews are independent.
type Scorer struct {
	store   ports.DataStore
	factors ScoringFactors
}

// New creates a Scorer over the given store with the given factors.
func New(store ports.DataStore, factors ScoringFactors) *Scorer {
	return &Scorer{store: store, factors: factors}
}

// Factors returns the engine's immutable scoring factors.
func (s *Scorer) Factors() ScoringFactors { return s.factors }

// ProgramScores aggregates the crew's raw per-member ratings into one
// crew-level score per program, keyed by program ID. Ratings arrive
// pre-sorted by program ID and are grouped consecutively; when the
// crew's adult-weighting preference is on, ratings from members older
// than 20 are scaled by the configured percentage first. Programs with
// no ratings are absent from the result, and a member with no recorded
// age is never treated as an adult.
func (s *Scorer) ProgramScores(ctx context.Context, crewID int64, method domain.Method) (map[int64]float64, error) {
	prefs, err := s.preferences(ctx, crewID)
	if err != nil {
		return nil, err
	}

	ratings, err := s.store.Ratings(ctx, crewID)
	if err != nil {
		return nil, fmt.Errorf("fetch ratings for crew %d: %w", crewID, err)
	}

	scores := make(map[int64]float64)
	var (
		currentProgram int64
		currentValues  []float64
	)

	flush := func() {
		if len(currentValues) > 0 {
			scores[currentProgram] = domain.Aggregate(currentValues, method)
		}
	}

	for _, r := range ratings {
		value := r.Rating
		if prefs.AdultWeightEnabled && r.MemberAge != nil && *r.MemberAge > 20 {
			value *= float64(prefs.AdultWeightPercent) / 100.0
		}

		if r.ProgramID != currentProgram {
			flush()
			currentProgram = r.ProgramID
			currentValues = currentValues[:0]
		}
		currentValues = append(currentValues, value)
	}
	flush()

	return scores, nil
}

// RankItineraries scores every itinerary of the trek type for the crew
// and returns them sorted by total score descending with dense ranks
// 1..N. Program scores and preferences are fetched once per run; each
// itinerary then contributes eight components. Equal totals keep catalog
// order, itineraries sorted by code with numeric-aware collation, so
// ranking is deterministic. An empty catalog yields an empty slice.
func (s *Scorer) RankItineraries(ctx context.Context, crewID int64, trekType domain.TrekType, method domain.Method) ([]domain.ScoredItinerary, error) {
	programScores, err := s.ProgramScores(ctx, crewID, method)
	if err != nil {
		return nil, err
	}

	prefs, err := s.preferences(ctx, crewID)
	if err != nil {
		return nil, err
	}

	skillLevels, err := s.store.MemberSkillLevels(ctx, crewID)
	if err != nil {
		return nil, fmt.Errorf("fetch skill levels for crew %d: %w", crewID, err)
	}
	crewSkill := CrewSkillLevel(skillLevels)

	itineraries, err := s.store.Itineraries(ctx, trekType)
	if err != nil {
		return nil, fmt.Errorf("fetch itineraries for trek type %q: %w", trekType, err)
	}

	results := make([]domain.ScoredItinerary, 0, len(itineraries))
	if len(itineraries) == 0 {
		return results, nil
	}

	// Pin catalog order: codes sort numeric-aware ("2" before "10") so
	// the tie-break below is stable across stores.
	col := collate.New(language.English, collate.Numeric)
	sort.SliceStable(itineraries, func(i, j int) bool {
		return col.CompareString(itineraries[i].Code, itineraries[j].Code) < 0
	})

	landmarkScores, err := s.landmarkScores(ctx, crewID, method)
	if err != nil {
		return nil, err
	}

	needCamps := prefs.ShowersRequired || prefs.LayoversRequired

	for _, itin := range itineraries {
		available, err := s.store.AvailablePrograms(ctx, itin.ID, trekType)
		if err != nil {
			return nil, fmt.Errorf("fetch available programs for itinerary %s: %w", itin.Code, err)
		}

		var camps []domain.CampStop
		if needCamps {
			camps, err = s.store.Camps(ctx, itin.ID)
			if err != nil {
				return nil, fmt.Errorf("fetch camps for itinerary %s: %w", itin.Code, err)
			}
		}

		components := domain.ScoreComponents{
			Program:    programScore(available, programScores, s.factors),
			Difficulty: difficultyScore(itin, prefs, crewSkill, s.factors),
			Area:       areaScore(itin, prefs),
			Altitude:   altitudeScore(itin, prefs),
			Distance:   distanceScore(itin, s.factors),
			Hike:       hikeScore(itin, prefs),
			Camp:       campScore(itin, prefs, camps),
			Peak:       peakScore(itin, prefs, landmarkScores, s.factors),
		}

		results = append(results, domain.ScoredItinerary{
			Itinerary:  itin,
			Components: components,
			TotalScore: components.Total(),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	for i := range results {
		results[i].Ranking = i + 1
	}

	return results, nil
}

// preferences returns the crew's stored preferences, or the documented
// defaults when no record exists.
func (s *Scorer) preferences(ctx context.Context, crewID int64) (domain.CrewPreferences, error) {
	prefs, err := s.store.Preferences(ctx, crewID)
	if err != nil {
		return domain.CrewPreferences{}, fmt.Errorf("fetch preferences for crew %d: %w", crewID, err)
	}
	if prefs == nil {
		return domain.DefaultPreferences(), nil
	}
	return *prefs, nil
}

// landmarkScores aggregates the crew's raw ratings for each landmark
// program with the run's method, keyed by canonical program name. The
// result is itinerary-independent, so it is computed once per ranking
// run. Unresolvable or unrated programs are simply absent.
func (s *Scorer) landmarkScores(ctx context.Context, crewID int64, method domain.Method) (map[string]float64, error) {
	programs, err := s.store.Programs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch program catalog: %w", err)
	}
	resolver := NewLandmarkResolver(programs)

	scores := make(map[string]float64, len(peakDefs))
	for _, peak := range peakDefs {
		programID, ok := resolver.Resolve(peak.ProgramName)
		if !ok {
			continue
		}
		ratings, err := s.store.RatingsForProgram(ctx, programID, crewID)
		if err != nil {
			return nil, fmt.Errorf("fetch ratings for program %q: %w", peak.ProgramName, err)
		}
		if len(ratings) == 0 {
			continue
		}
		scores[peak.ProgramName] = domain.Aggregate(ratings, method)
	}
	return scores, nil
}
