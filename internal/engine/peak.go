package engine

import (
	"github.com/trailcrew/trekrank/internal/domain"
)

// peakDef ties one named peak to its Landmarks program, its fixed
// multiplier, the preference flag that marks the crew's desire for it,
// and the itinerary flag that marks its presence on the route.
type peakDef struct {
	ProgramName string
	Multiplier  float64
	Wanted      func(domain.CrewPreferences) bool
	OnRoute     func(domain.Itinerary) bool
}

// peakDefs is the fixed set of scored peaks. Multipliers reflect each
// peak's difficulty and draw; Baldy, the highest summit, weighs most.
var peakDefs = []peakDef{
	{
		ProgramName: "Landmarks: Baldy Mountain",
		Multiplier:  2.0,
		Wanted:      func(p domain.CrewPreferences) bool { return p.ClimbBaldy },
		OnRoute:     func(i domain.Itinerary) bool { return i.BaldyMountain },
	},
	{
		ProgramName: "Landmarks: Mount Phillips",
		Multiplier:  1.5,
		Wanted:      func(p domain.CrewPreferences) bool { return p.ClimbPhillips },
		OnRoute:     func(i domain.Itinerary) bool { return i.MountPhillips },
	},
	{
		ProgramName: "Landmarks: Tooth of Time",
		Multiplier:  1.5,
		Wanted:      func(p domain.CrewPreferences) bool { return p.ClimbTooth },
		OnRoute:     func(i domain.Itinerary) bool { return i.ToothOfTime },
	},
	{
		ProgramName: "Landmarks: Inspiration Point",
		Multiplier:  1.0,
		Wanted:      func(p domain.CrewPreferences) bool { return p.ClimbInspirationPoint },
		OnRoute:     func(i domain.Itinerary) bool { return i.InspirationPoint },
	},
	{
		ProgramName: "Landmarks: Trail Peak",
		Multiplier:  1.5,
		Wanted:      func(p domain.CrewPreferences) bool { return p.ClimbTrailPeak },
		OnRoute:     func(i domain.Itinerary) bool { return i.TrailPeak },
	},
	{
		ProgramName: "Landmarks: Mountaineering",
		Multiplier:  1.2,
		Wanted:      func(p domain.CrewPreferences) bool { return p.ClimbOthers },
		OnRoute:     func(i domain.Itinerary) bool { return i.Mountaineering },
	},
}

// peakScore adds the landmark-program contribution for every peak the
// itinerary includes. A desired peak earns its aggregated program rating
// times the peak multiplier times the program factor; a peak on the
// route the crew did not ask for still earns the unweighted rating times
// the program factor, the benefit of passing it anyway. Peaks absent
// from the route, or whose program the crew never rated, contribute 0.
//
// landmarkScores is keyed by program name and aggregated with the run's
// method from the raw per-member ratings of that one program. This is a
// separate computation from the batch program scores on purpose: the
// batch path applies adult weighting, this one does not, so the two are
// not interchangeable. A future optimization could share the underlying
// raw-ratings fetch.
func peakScore(itin domain.Itinerary, prefs domain.CrewPreferences, landmarkScores map[string]float64, f ScoringFactors) float64 {
	var score float64
	for _, peak := range peakDefs {
		if !peak.OnRoute(itin) {
			continue
		}
		rating, ok := landmarkScores[peak.ProgramName]
		if !ok {
			continue
		}
		if peak.Wanted(prefs) {
			score += rating * peak.Multiplier * f.ProgramFactor
		} else {
			score += rating * f.ProgramFactor
		}
	}
	return score
}
