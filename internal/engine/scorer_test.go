package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailcrew/trekrank/internal/domain"
	"github.com/trailcrew/trekrank/internal/testutils"
)

const testCrewID = int64(1)

func newTestScorer(store *testutils.FakeStore) *Scorer {
	return New(store, DefaultScoringFactors())
}

func TestProgramScoresGroupsByProgram(t *testing.T) {
	store := testutils.NewFakeStore()
	store.CrewRatings[testCrewID] = []domain.ProgramRating{
		{ProgramID: 1, Rating: 10},
		{ProgramID: 1, Rating: 20},
		{ProgramID: 2, Rating: 5},
		{ProgramID: 3, Rating: 8},
		{ProgramID: 3, Rating: 8},
		{ProgramID: 3, Rating: 2},
	}

	scorer := newTestScorer(store)

	t.Run("total", func(t *testing.T) {
		scores, err := scorer.ProgramScores(context.Background(), testCrewID, domain.MethodTotal)
		require.NoError(t, err)
		assert.Equal(t, map[int64]float64{1: 30, 2: 5, 3: 18}, scores)
	})

	t.Run("average", func(t *testing.T) {
		scores, err := scorer.ProgramScores(context.Background(), testCrewID, domain.MethodAverage)
		require.NoError(t, err)
		assert.InDelta(t, 15, scores[1], 1e-9)
		assert.InDelta(t, 5, scores[2], 1e-9)
		assert.InDelta(t, 6, scores[3], 1e-9)
	})

	t.Run("mode", func(t *testing.T) {
		scores, err := scorer.ProgramScores(context.Background(), testCrewID, domain.MethodMode)
		require.NoError(t, err)
		assert.Equal(t, 8.0, scores[3])
	})
}

func TestProgramScoresAdultWeighting(t *testing.T) {
	store := testutils.NewFakeStore()
	store.CrewRatings[testCrewID] = []domain.ProgramRating{
		{ProgramID: 1, Rating: 10, MemberAge: intPtr(25)},
		{ProgramID: 1, Rating: 10, MemberAge: intPtr(16)},
		{ProgramID: 1, Rating: 10, MemberAge: intPtr(20)},
		{ProgramID: 1, Rating: 10},
	}
	prefs := domain.DefaultPreferences()
	prefs.AdultWeightEnabled = true
	prefs.AdultWeightPercent = 50
	store.Prefs[testCrewID] = &prefs

	scorer := newTestScorer(store)

	scores, err := scorer.ProgramScores(context.Background(), testCrewID, domain.MethodTotal)
	require.NoError(t, err)

	// Only the 25-year-old is scaled; age 20 is not over 20 and a nil
	// age is never treated as adult.
	assert.InDelta(t, 5+10+10+10, scores[1], 1e-9)
}

func TestProgramScoresNoRatings(t *testing.T) {
	store := testutils.NewFakeStore()
	scorer := newTestScorer(store)

	scores, err := scorer.ProgramScores(context.Background(), testCrewID, domain.MethodTotal)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestProgramScoresPropagatesStoreError(t *testing.T) {
	store := testutils.NewFakeStore()
	store.ErrRatings = errors.New("disk on fire")

	scorer := newTestScorer(store)

	_, err := scorer.ProgramScores(context.Background(), testCrewID, domain.MethodTotal)
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestRankItinerariesOrdering(t *testing.T) {
	store := testutils.NewFakeStore()
	store.Catalog[domain.Trek12Day] = []domain.Itinerary{
		{ID: 1, Code: "1", TrekType: domain.Trek12Day, Difficulty: domain.DifficultyChallenging, Distance: floatPtr(30)},
		{ID: 2, Code: "2", TrekType: domain.Trek12Day, Difficulty: domain.DifficultyChallenging, Distance: floatPtr(70)},
		{ID: 3, Code: "3", TrekType: domain.Trek12Day, Difficulty: domain.DifficultyChallenging, Distance: floatPtr(50)},
	}

	scorer := newTestScorer(store)

	results, err := scorer.RankItineraries(context.Background(), testCrewID, domain.Trek12Day, domain.MethodTotal)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Distance is the only varying component, so the longest trek wins.
	assert.Equal(t, "2", results[0].Itinerary.Code)
	assert.Equal(t, "3", results[1].Itinerary.Code)
	assert.Equal(t, "1", results[2].Itinerary.Code)

	for i, r := range results {
		assert.Equal(t, i+1, r.Ranking)
		assert.InDelta(t, r.Components.Total(), r.TotalScore, 1e-9)
	}
	assert.Greater(t, results[0].TotalScore, results[1].TotalScore)
	assert.Greater(t, results[1].TotalScore, results[2].TotalScore)
}

func TestRankItinerariesTieBreakKeepsCatalogOrder(t *testing.T) {
	store := testutils.NewFakeStore()
	// Identical itineraries except for their codes, listed out of
	// catalog order. Numeric-aware collation puts "2" before "10".
	store.Catalog[domain.Trek12Day] = []domain.Itinerary{
		{ID: 1, Code: "10", TrekType: domain.Trek12Day, Difficulty: domain.DifficultyChallenging},
		{ID: 2, Code: "2", TrekType: domain.Trek12Day, Difficulty: domain.DifficultyChallenging},
	}

	scorer := newTestScorer(store)

	results, err := scorer.RankItineraries(context.Background(), testCrewID, domain.Trek12Day, domain.MethodTotal)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.InDelta(t, results[0].TotalScore, results[1].TotalScore, 1e-9)
	assert.Equal(t, "2", results[0].Itinerary.Code)
	assert.Equal(t, "10", results[1].Itinerary.Code)
	assert.Equal(t, 1, results[0].Ranking)
	assert.Equal(t, 2, results[1].Ranking)
}

func TestRankItinerariesEmptyCatalog(t *testing.T) {
	store := testutils.NewFakeStore()
	scorer := newTestScorer(store)

	results, err := scorer.RankItineraries(context.Background(), testCrewID, domain.Trek9Day, domain.MethodTotal)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRankItinerariesProgramComponent(t *testing.T) {
	store := testutils.NewFakeStore()
	store.Catalog[domain.Trek12Day] = []domain.Itinerary{
		{ID: 1, Code: "1", TrekType: domain.Trek12Day, Difficulty: domain.DifficultyChallenging, Distance: floatPtr(50)},
		{ID: 2, Code: "2", TrekType: domain.Trek12Day, Difficulty: domain.DifficultyChallenging, Distance: floatPtr(50)},
	}
	store.CrewRatings[testCrewID] = []domain.ProgramRating{
		{ProgramID: 11, Rating: 12},
		{ProgramID: 12, Rating: 8},
	}
	// Itinerary 1 offers both rated programs, itinerary 2 neither.
	store.ProgramsByItin[1] = []int64{11, 12}

	scorer := newTestScorer(store)

	results, err := scorer.RankItineraries(context.Background(), testCrewID, domain.Trek12Day, domain.MethodTotal)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "1", results[0].Itinerary.Code)
	assert.InDelta(t, (12+8)*1.5, results[0].Components.Program, 1e-9)
	assert.Zero(t, results[1].Components.Program)
}

func TestRankItinerariesPeakComponent(t *testing.T) {
	store := testutils.NewFakeStore()
	store.Catalog[domain.Trek12Day] = []domain.Itinerary{
		{ID: 1, Code: "1", TrekType: domain.Trek12Day, Difficulty: domain.DifficultyChallenging, BaldyMountain: true},
	}
	store.AllPrograms = []domain.Program{{ID: 7, Name: "Landmarks: Baldy Mountain"}}
	store.ProgramRatings[7] = map[int64][]float64{testCrewID: {10}}

	prefs := domain.DefaultPreferences()
	prefs.ClimbBaldy = true
	store.Prefs[testCrewID] = &prefs

	scorer := newTestScorer(store)

	results, err := scorer.RankItineraries(context.Background(), testCrewID, domain.Trek12Day, domain.MethodTotal)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// 10 rating * 2.0 Baldy multiplier * 1.5 program factor.
	assert.InDelta(t, 30.0, results[0].Components.Peak, 1e-9)
	// No skill data, so the crew defaults to level 5: C scores 3000.
	assert.Equal(t, 3000.0, results[0].Components.Difficulty)
}

func TestRankItinerariesUsesDefaultPreferencesWhenAbsent(t *testing.T) {
	store := testutils.NewFakeStore()
	store.Catalog[domain.Trek12Day] = []domain.Itinerary{
		{ID: 1, Code: "1", TrekType: domain.Trek12Day, Difficulty: domain.DifficultyChallenging, StartsAt: domain.HikeOut, EndsAt: domain.HikeIn},
	}

	scorer := newTestScorer(store)

	results, err := scorer.RankItineraries(context.Background(), testCrewID, domain.Trek12Day, domain.MethodTotal)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Hike preferences default to on, and the itinerary still earns a
	// positive total from hike, distance, difficulty, and camp alone.
	assert.Equal(t, 1000.0, results[0].Components.Hike)
	assert.Positive(t, results[0].Components.Distance)
	assert.Positive(t, results[0].Components.Camp)
	assert.Positive(t, results[0].TotalScore)

	// Importance-gated components stay off.
	assert.Zero(t, results[0].Components.Area)
	assert.Zero(t, results[0].Components.Altitude)
}

func TestRankItinerariesCrewSkillDrivesDifficulty(t *testing.T) {
	store := testutils.NewFakeStore()
	store.Catalog[domain.Trek12Day] = []domain.Itinerary{
		{ID: 1, Code: "1", TrekType: domain.Trek12Day, Difficulty: domain.DifficultySuperStrenuous},
	}
	store.SkillLevels[testCrewID] = []int{10, 10}

	scorer := newTestScorer(store)

	results, err := scorer.RankItineraries(context.Background(), testCrewID, domain.Trek12Day, domain.MethodTotal)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 5000.0, results[0].Components.Difficulty)
}

func TestRankItinerariesIdempotent(t *testing.T) {
	store := testutils.NewFakeStore()
	store.Catalog[domain.Trek12Day] = []domain.Itinerary{
		{ID: 1, Code: "1", TrekType: domain.Trek12Day, Difficulty: domain.DifficultyChallenging, Distance: floatPtr(20)},
		{ID: 2, Code: "2", TrekType: domain.Trek12Day, Difficulty: domain.DifficultyRugged, Distance: floatPtr(60)},
	}

	scorer := newTestScorer(store)

	first, err := scorer.RankItineraries(context.Background(), testCrewID, domain.Trek12Day, domain.MethodTotal)
	require.NoError(t, err)
	second, err := scorer.RankItineraries(context.Background(), testCrewID, domain.Trek12Day, domain.MethodTotal)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRankItinerariesPropagatesStoreErrors(t *testing.T) {
	t.Run("itinerary fetch", func(t *testing.T) {
		store := testutils.NewFakeStore()
		store.ErrItineraries = errors.New("catalog offline")

		_, err := newTestScorer(store).RankItineraries(context.Background(), testCrewID, domain.Trek12Day, domain.MethodTotal)
		require.Error(t, err)
		assert.ErrorContains(t, err, "catalog offline")
	})

	t.Run("preference fetch", func(t *testing.T) {
		store := testutils.NewFakeStore()
		store.ErrPreferences = errors.New("prefs offline")

		_, err := newTestScorer(store).RankItineraries(context.Background(), testCrewID, domain.Trek12Day, domain.MethodTotal)
		require.Error(t, err)
		assert.ErrorContains(t, err, "prefs offline")
	})
}
