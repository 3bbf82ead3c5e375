package engine

import (
	"github.com/trailcrew/trekrank/internal/domain"
)

// This file holds the seven pure sub-scorers. Each maps (itinerary,
// preferences) to one component of the total score; none touches the
// store. Missing attributes and absent preferences always resolve to a
// documented default, never an error.

// programScore sums the crew-level program scores of every program
// available on the itinerary and scales by the program factor. Programs
// the crew never rated are absent from scores and contribute 0.
func programScore(available []int64, scores map[int64]float64, f ScoringFactors) float64 {
	var total float64
	for _, programID := range available {
		total += scores[programID]
	}
	return total * f.ProgramFactor
}

// difficultyScore returns the skill-vs-difficulty table value scaled by
// the difficulty delta, or 0 when the crew rejects the itinerary's
// difficulty class.
func difficultyScore(itin domain.Itinerary, prefs domain.CrewPreferences, crewSkill int, f ScoringFactors) float64 {
	if !prefs.AcceptsDifficulty(itin.Difficulty) {
		return 0
	}
	return DifficultyFactor(crewSkill, itin.Difficulty) * f.DifficultDelta
}

// areaRankScores maps a crew's region rank to its bonus.
var areaRankScores = map[int]float64{1: 1000, 2: 600, 3: 200, 4: 150}

// areaScore accumulates the region-rank bonus for every region the
// itinerary covers. An itinerary crossing several ranked regions earns
// each bonus. Gated entirely on the area-important flag.
func areaScore(itin domain.Itinerary, prefs domain.CrewPreferences) float64 {
	if !prefs.AreaImportant {
		return 0
	}

	regions := []struct {
		covered bool
		rank    int
	}{
		{itin.CoversSouth, prefs.AreaRankSouth},
		{itin.CoversCentral, prefs.AreaRankCentral},
		{itin.CoversNorth, prefs.AreaRankNorth},
		{itin.CoversValleVidal, prefs.AreaRankValleVidal},
	}

	var score float64
	for _, r := range regions {
		if r.covered && r.rank != 0 {
			score += areaRankScores[r.rank]
		}
	}
	return score
}

// floorEntry is one row of a threshold table: value at or above
// Threshold earns Points, unless a higher threshold also matches.
type floorEntry struct {
	Threshold float64
	Points    float64
}

// floorLookup finds the highest threshold at or below value. Entries
// must be sorted by descending threshold; values below every threshold
// earn fallback.
func floorLookup(value float64, entries []floorEntry, fallback float64) float64 {
	for _, e := range entries {
		if value >= e.Threshold {
			return e.Points
		}
	}
	return fallback
}

// maxAltitudeScores is the highest-camp-elevation preference chart.
var maxAltitudeScores = []floorEntry{
	{12441, 130}, {11800, 120}, {11000, 110}, {10800, 100}, {10600, 90},
	{10500, 80}, {10000, 70}, {9800, 60}, {9200, 50}, {9100, 40},
	{9000, 30}, {8999, 20},
}

// elevationGainScores is the total-elevation-gain chart. Deliberately
// non-monotonic: it peaks at 4000' and falls away on both sides,
// modeling "moderate gain preferred".
var elevationGainScores = []floorEntry{
	{6500, 50}, {6000, 60}, {5500, 70}, {5000, 80}, {4500, 90},
	{4000, 100}, {3500, 90}, {3000, 80}, {2500, 70}, {2000, 60},
	{1500, 50}, {1499, 40},
}

// dailyChangeScores is the average-daily-elevation-change chart, also
// non-monotonic with its peak at 600'.
var dailyChangeScores = []floorEntry{
	{1200, 100}, {900, 200}, {600, 300}, {300, 100},
}

// altitudeScore combines three independently gated parts: highest camp
// elevation, total elevation gain, and average daily change. Each part
// applies only when its importance flag is set and the itinerary carries
// a positive value for it.
func altitudeScore(itin domain.Itinerary, prefs domain.CrewPreferences) float64 {
	var score float64

	if prefs.MaxAltitudeImportant && itin.MaxAltitude > 0 {
		score += floorLookup(float64(itin.MaxAltitude), maxAltitudeScores, 20)
	}

	if prefs.TotalElevationGainImportant && itin.TotalElevationGain > 0 {
		score += floorLookup(float64(itin.TotalElevationGain), elevationGainScores, 40)
	}

	if prefs.AltitudeChangeImportant && itin.AvgDailyElevationChange > 0 {
		score += floorLookup(itin.AvgDailyElevationChange, dailyChangeScores, 100)
	}

	return score
}

// defaultDistanceMiles stands in for itineraries whose catalog record
// omits distance.
const defaultDistanceMiles = 50

// distanceScore is linear in trail miles: longer treks score strictly
// higher, scaled by the mileage factor. This replaced an earlier
// "prefer ~50 miles" curve and the simplification is intentional.
func distanceScore(itin domain.Itinerary, f ScoringFactors) float64 {
	distance := float64(defaultDistanceMiles)
	if itin.Distance != nil {
		distance = *itin.Distance
	}
	return distance * f.MileageFactor
}

// hikeScore awards 500 points each for a hike-out start and a hike-in
// finish at base camp, when the crew holds the matching preference.
// Both preferences default to on.
func hikeScore(itin domain.Itinerary, prefs domain.CrewPreferences) float64 {
	var score float64
	if prefs.HikeOutPreference && itin.StartsAt == domain.HikeOut {
		score += 500
	}
	if prefs.HikeInPreference && itin.EndsAt == domain.HikeIn {
		score += 500
	}
	return score
}
