package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trailcrew/trekrank/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestProgramScore(t *testing.T) {
	scores := map[int64]float64{1: 30, 2: 20, 3: 10}
	f := DefaultScoringFactors()

	t.Run("sums available programs times factor", func(t *testing.T) {
		got := programScore([]int64{1, 3}, scores, f)
		assert.InDelta(t, (30+10)*1.5, got, 1e-9)
	})

	t.Run("unrated programs contribute nothing", func(t *testing.T) {
		got := programScore([]int64{1, 99}, scores, f)
		assert.InDelta(t, 30*1.5, got, 1e-9)
	})

	t.Run("no available programs", func(t *testing.T) {
		assert.Zero(t, programScore(nil, scores, f))
	})
}

func TestDifficultyScore(t *testing.T) {
	f := DefaultScoringFactors()
	itin := domain.Itinerary{Difficulty: domain.DifficultyStrenuous}

	t.Run("accepted class uses table", func(t *testing.T) {
		got := difficultyScore(itin, domain.DefaultPreferences(), 7, f)
		assert.Equal(t, 3000.0, got)
	})

	t.Run("rejected class scores zero", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.DifficultyStrenuous = false
		assert.Zero(t, difficultyScore(itin, prefs, 7, f))
	})

	t.Run("unknown class scores zero", func(t *testing.T) {
		// A NULL or unmapped difficulty code earns nothing, not the
		// table's 2000 miss default.
		blank := domain.Itinerary{Difficulty: domain.DifficultyClass("")}
		assert.Zero(t, difficultyScore(blank, domain.DefaultPreferences(), 5, f))

		unmapped := domain.Itinerary{Difficulty: domain.DifficultyClass("X")}
		assert.Zero(t, difficultyScore(unmapped, domain.DefaultPreferences(), 5, f))
	})

	t.Run("difficult delta scales", func(t *testing.T) {
		f := f
		f.DifficultDelta = 2
		got := difficultyScore(itin, domain.DefaultPreferences(), 7, f)
		assert.Equal(t, 6000.0, got)
	})
}

func TestAreaScore(t *testing.T) {
	itin := domain.Itinerary{CoversSouth: true, CoversNorth: true}

	t.Run("gated off by default", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.AreaRankSouth = 1
		assert.Zero(t, areaScore(itin, prefs))
	})

	t.Run("accumulates covered ranked regions", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.AreaImportant = true
		prefs.AreaRankSouth = 1
		prefs.AreaRankNorth = 3
		prefs.AreaRankCentral = 2 // not covered, no bonus
		assert.Equal(t, 1200.0, areaScore(itin, prefs))
	})

	t.Run("unranked regions earn nothing", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.AreaImportant = true
		assert.Zero(t, areaScore(itin, prefs))
	})
}

func TestAltitudeScore(t *testing.T) {
	t.Run("all parts gated off by default", func(t *testing.T) {
		itin := domain.Itinerary{MaxAltitude: 12441, TotalElevationGain: 4000, AvgDailyElevationChange: 600}
		assert.Zero(t, altitudeScore(itin, domain.DefaultPreferences()))
	})

	t.Run("max altitude chart", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.MaxAltitudeImportant = true

		assert.Equal(t, 130.0, altitudeScore(domain.Itinerary{MaxAltitude: 12441}, prefs))
		assert.Equal(t, 120.0, altitudeScore(domain.Itinerary{MaxAltitude: 12000}, prefs))
		assert.Equal(t, 20.0, altitudeScore(domain.Itinerary{MaxAltitude: 8999}, prefs))
		assert.Equal(t, 20.0, altitudeScore(domain.Itinerary{MaxAltitude: 7000}, prefs))
		assert.Zero(t, altitudeScore(domain.Itinerary{MaxAltitude: 0}, prefs))
	})

	t.Run("elevation gain chart peaks at 4000", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.TotalElevationGainImportant = true

		assert.Equal(t, 100.0, altitudeScore(domain.Itinerary{TotalElevationGain: 4000}, prefs))
		assert.Equal(t, 90.0, altitudeScore(domain.Itinerary{TotalElevationGain: 4500}, prefs))
		assert.Equal(t, 90.0, altitudeScore(domain.Itinerary{TotalElevationGain: 3700}, prefs))
		assert.Equal(t, 50.0, altitudeScore(domain.Itinerary{TotalElevationGain: 7000}, prefs))
		assert.Equal(t, 40.0, altitudeScore(domain.Itinerary{TotalElevationGain: 1000}, prefs))
	})

	t.Run("daily change chart peaks at 600", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.AltitudeChangeImportant = true

		assert.Equal(t, 300.0, altitudeScore(domain.Itinerary{AvgDailyElevationChange: 700}, prefs))
		assert.Equal(t, 200.0, altitudeScore(domain.Itinerary{AvgDailyElevationChange: 900}, prefs))
		assert.Equal(t, 100.0, altitudeScore(domain.Itinerary{AvgDailyElevationChange: 1500}, prefs))
		assert.Equal(t, 100.0, altitudeScore(domain.Itinerary{AvgDailyElevationChange: 100}, prefs))
	})

	t.Run("parts combine independently", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.MaxAltitudeImportant = true
		prefs.TotalElevationGainImportant = true
		prefs.AltitudeChangeImportant = true

		itin := domain.Itinerary{MaxAltitude: 11000, TotalElevationGain: 4000, AvgDailyElevationChange: 600}
		assert.Equal(t, 110.0+100+300, altitudeScore(itin, prefs))
	})
}

func TestDistanceScore(t *testing.T) {
	f := DefaultScoringFactors()

	t.Run("linear in miles", func(t *testing.T) {
		got := distanceScore(domain.Itinerary{Distance: floatPtr(62.5)}, f)
		assert.InDelta(t, 6250.0, got, 1e-9)
	})

	t.Run("missing distance uses default", func(t *testing.T) {
		got := distanceScore(domain.Itinerary{}, f)
		assert.InDelta(t, 5000.0, got, 1e-9)
	})

	t.Run("mileage factor scales", func(t *testing.T) {
		f := f
		f.MileageFactor = 10
		got := distanceScore(domain.Itinerary{Distance: floatPtr(30)}, f)
		assert.InDelta(t, 300.0, got, 1e-9)
	})
}

func TestHikeScore(t *testing.T) {
	tests := []struct {
		name     string
		itin     domain.Itinerary
		mutate   func(*domain.CrewPreferences)
		want     float64
	}{
		{
			name: "hike out and hike in both rewarded",
			itin: domain.Itinerary{StartsAt: domain.HikeOut, EndsAt: domain.HikeIn},
			want: 1000,
		},
		{
			name: "hike out only",
			itin: domain.Itinerary{StartsAt: domain.HikeOut, EndsAt: "Bus"},
			want: 500,
		},
		{
			name: "neither sentinel",
			itin: domain.Itinerary{StartsAt: "Bus", EndsAt: "Bus"},
			want: 0,
		},
		{
			name:   "preference off suppresses reward",
			itin:   domain.Itinerary{StartsAt: domain.HikeOut, EndsAt: domain.HikeIn},
			mutate: func(p *domain.CrewPreferences) { p.HikeOutPreference = false },
			want:   500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := domain.DefaultPreferences()
			if tt.mutate != nil {
				tt.mutate(&prefs)
			}
			assert.Equal(t, tt.want, hikeScore(tt.itin, prefs))
		})
	}
}
