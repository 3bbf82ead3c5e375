package engine

import (
	"math"

	"github.com/trailcrew/trekrank/internal/domain"
)

// defaultDifficultyFactor is returned when a (skill, class) pair misses
// the table, e.g. a skill level outside 1-10 from a caller that skipped
// CrewSkillLevel clamping. Unknown difficulty classes never reach the
// table; the acceptance gate rejects them first.
const defaultDifficultyFactor = 2000

// skillDifficultyFactors maps crew skill level (1-10) and itinerary
// difficulty class to a difficulty score. The table is monotonic by
// design: as skill rises, easy classes (C) fall and hard classes (SS)
// rise, steering strenuous treks toward experienced crews.
var skillDifficultyFactors = map[int]map[domain.DifficultyClass]float64{
	1:  {domain.DifficultyChallenging: 5000, domain.DifficultyRugged: 3500, domain.DifficultyStrenuous: 2000, domain.DifficultySuperStrenuous: 500},
	2:  {domain.DifficultyChallenging: 4500, domain.DifficultyRugged: 3333, domain.DifficultyStrenuous: 2167, domain.DifficultySuperStrenuous: 1000},
	3:  {domain.DifficultyChallenging: 4000, domain.DifficultyRugged: 3167, domain.DifficultyStrenuous: 2333, domain.DifficultySuperStrenuous: 1500},
	4:  {domain.DifficultyChallenging: 3500, domain.DifficultyRugged: 3000, domain.DifficultyStrenuous: 2500, domain.DifficultySuperStrenuous: 2000},
	5:  {domain.DifficultyChallenging: 3000, domain.DifficultyRugged: 2833, domain.DifficultyStrenuous: 2667, domain.DifficultySuperStrenuous: 2500},
	6:  {domain.DifficultyChallenging: 2500, domain.DifficultyRugged: 2667, domain.DifficultyStrenuous: 2833, domain.DifficultySuperStrenuous: 3000},
	7:  {domain.DifficultyChallenging: 2000, domain.DifficultyRugged: 2500, domain.DifficultyStrenuous: 3000, domain.DifficultySuperStrenuous: 3500},
	8:  {domain.DifficultyChallenging: 1500, domain.DifficultyRugged: 2333, domain.DifficultyStrenuous: 3167, domain.DifficultySuperStrenuous: 4000},
	9:  {domain.DifficultyChallenging: 1000, domain.DifficultyRugged: 2167, domain.DifficultyStrenuous: 3333, domain.DifficultySuperStrenuous: 4500},
	10: {domain.DifficultyChallenging: 500, domain.DifficultyRugged: 2000, domain.DifficultyStrenuous: 3500, domain.DifficultySuperStrenuous: 5000},
}

// DifficultyFactor looks up the difficulty score for a crew skill level
// and difficulty class. A lookup miss returns defaultDifficultyFactor
// rather than failing; a partially imported table should degrade, not
// abort a ranking run.
func DifficultyFactor(crewSkill int, class domain.DifficultyClass) float64 {
	if row, ok := skillDifficultyFactors[crewSkill]; ok {
		if factor, ok := row[class]; ok {
			return factor
		}
	}
	return defaultDifficultyFactor
}

// CrewSkillLevel reduces member skill levels to the crew-level 1-10
// value the difficulty table is keyed by: the rounded average, clamped
// to [1, 10]. Members with no recorded level are already omitted by the
// store; a crew with no levels at all defaults to 5, mid-range.
func CrewSkillLevel(levels []int) int {
	if len(levels) == 0 {
		return 5
	}

	var total int
	for _, l := range levels {
		total += l
	}
	avg := float64(total) / float64(len(levels))

	skill := int(math.Round(avg))
	if skill < 1 {
		return 1
	}
	if skill > 10 {
		return 10
	}
	return skill
}
