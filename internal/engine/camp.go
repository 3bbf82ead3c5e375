package engine

import (
	"github.com/trailcrew/trekrank/internal/domain"
)

// Camp-count lookup tables. Fewer dry camps and fewer trail camps score
// higher; counts past the last key reuse its value.
var (
	dryCampScores   = map[int]float64{0: 300, 1: 250, 2: 225, 3: 200, 4: 150, 5: 100, 6: 50, 7: 20}
	trailCampScores = map[int]float64{0: 250, 1: 200, 2: 175, 3: 150, 4: 125, 5: 100, 6: 75, 7: 50, 8: 25}

	// totalCampScores awards a bonus only when the dry+trail sum matches
	// a key exactly; sums outside the table earn nothing.
	totalCampScores = map[int]float64{3: 60, 4: 70, 5: 80, 6: 90, 7: 100, 8: 75, 9: 60, 10: 50}
)

// Shower and layover adjustments, applied only when the crew requires
// the feature.
const (
	showerBonus    = 1000
	showerPenalty  = -1500
	layoverBonus   = 800
	layoverPenalty = -1200

	// dryCampOveragePenalty is charged per dry camp over the crew's
	// stated maximum. Punitive: the table bonus is not awarded in that
	// branch.
	dryCampOveragePenalty = 500
)

// campScore combines the camp-count tables, the shower and layover
// requirements, and the food-resupply adjustments. The camps slice is
// consulted only for the shower and layover checks; callers may pass nil
// when the crew requires neither.
func campScore(itin domain.Itinerary, prefs domain.CrewPreferences, camps []domain.CampStop) float64 {
	var score float64

	dryCount := itin.DryCamps
	if prefs.MaxDryCamps != nil {
		if dryCount <= *prefs.MaxDryCamps {
			score += dryCampScores[clampCount(dryCount, 7)]
		} else {
			score -= float64(dryCount-*prefs.MaxDryCamps) * dryCampOveragePenalty
		}
	} else {
		score += dryCampScores[clampCount(dryCount, 7)]
	}

	// Trail camp table applies unconditionally; there is no preference
	// gate for it.
	score += trailCampScores[clampCount(itin.TrailCamps, 8)]

	if bonus, ok := totalCampScores[dryCount+itin.TrailCamps]; ok {
		score += bonus
	}

	if prefs.ShowersRequired {
		if anyShowers(camps) {
			score += showerBonus
		} else {
			score += showerPenalty
		}
	}

	if prefs.LayoversRequired {
		if anyLayovers(camps) {
			score += layoverBonus
		} else {
			score += layoverPenalty
		}
	}

	// Known discrepancy carried over from the original system: despite
	// the preference's name, this award grows with MORE days of starting
	// food (20 points at 1 day up to 100 at 9). Reproduced as-is pending
	// product-owner review; see DESIGN.md.
	if prefs.PreferLowStartingFood && itin.DaysFoodFromBase > 0 {
		score += 20 + float64(itin.DaysFoodFromBase-1)*10
	}

	if prefs.PreferShorterResupply && itin.MaxDaysFood > 0 {
		if food := 100 - float64(itin.MaxDaysFood-1)*10; food > 0 {
			score += food
		}
	}

	return score
}

// clampCount caps a camp count at the table's last key so oversized
// counts reuse the final row.
func clampCount(count, max int) int {
	if count > max {
		return max
	}
	return count
}

func anyShowers(camps []domain.CampStop) bool {
	for _, c := range camps {
		if c.HasShowers {
			return true
		}
	}
	return false
}

func anyLayovers(camps []domain.CampStop) bool {
	for _, c := range camps {
		if c.IsLayover {
			return true
		}
	}
	return false
}
