package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trailcrew/trekrank/internal/domain"
)

func TestPeakScore(t *testing.T) {
	f := DefaultScoringFactors()
	landmarks := map[string]float64{
		"Landmarks: Baldy Mountain": 40,
		"Landmarks: Tooth of Time":  30,
	}

	t.Run("wanted peak applies multiplier", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.ClimbBaldy = true
		itin := domain.Itinerary{BaldyMountain: true}

		// 40 * 2.0 Baldy multiplier * 1.5 program factor.
		assert.InDelta(t, 120.0, peakScore(itin, prefs, landmarks, f), 1e-9)
	})

	t.Run("unwanted peak on route earns unweighted rating", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		itin := domain.Itinerary{BaldyMountain: true}

		assert.InDelta(t, 40*1.5, peakScore(itin, prefs, landmarks, f), 1e-9)
	})

	t.Run("peak off route contributes nothing", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.ClimbBaldy = true
		itin := domain.Itinerary{MountPhillips: true}

		assert.Zero(t, peakScore(itin, prefs, landmarks, f))
	})

	t.Run("unrated program contributes nothing", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.ClimbPhillips = true
		itin := domain.Itinerary{MountPhillips: true}

		assert.Zero(t, peakScore(itin, prefs, landmarks, f))
	})

	t.Run("multiple peaks accumulate", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.ClimbBaldy = true
		prefs.ClimbTooth = true
		itin := domain.Itinerary{BaldyMountain: true, ToothOfTime: true}

		// Baldy 40*2.0*1.5 + Tooth 30*1.5*1.5.
		assert.InDelta(t, 120.0+67.5, peakScore(itin, prefs, landmarks, f), 1e-9)
	})
}
