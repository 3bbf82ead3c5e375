package domain

// ScoreComponents is the transparent per-component breakdown of one
// itinerary's total score. Component values may be negative; the camp
// component in particular carries penalties.
type ScoreComponents struct {
	// Program is the summed crew-level program scores for programs
	// available on the itinerary, scaled by the program factor.
	Program float64 `json:"program_score"`

	// Difficulty is the skill-vs-difficulty table value, or 0 when the
	// crew rejects the itinerary's difficulty class.
	Difficulty float64 `json:"difficulty_score"`

	// Area is the accumulated region-rank bonus.
	Area float64 `json:"area_score"`

	// Altitude combines the max-altitude, total-gain, and daily-change
	// parts, each gated by its own importance flag.
	Altitude float64 `json:"altitude_score"`

	// Distance is trail miles times the mileage factor.
	Distance float64 `json:"distance_score"`

	// Hike rewards hike-out starts and hike-in finishes at base camp.
	Hike float64 `json:"hike_score"`

	// Camp combines dry/trail/total camp tables, shower and layover
	// requirements, and the food-resupply adjustments.
	Camp float64 `json:"camp_score"`

	// Peak is the landmark-program contribution for peaks on the route.
	Peak float64 `json:"peak_score"`
}

// Total sums all eight components.
func (c ScoreComponents) Total() float64 {
	return c.Program + c.Difficulty + c.Area + c.Altitude +
		c.Distance + c.Hike + c.Camp + c.Peak
}

// ScoredItinerary is one ranked entry in a scoring run's output. Values
// are created fresh on every ranking call and never mutated afterward.
type ScoredItinerary struct {
	// Itinerary is the scored catalog record.
	Itinerary Itinerary `json:"itinerary"`

	// Components is the per-component breakdown behind TotalScore.
	Components ScoreComponents `json:"components"`

	// TotalScore is the sum of all components.
	TotalScore float64 `json:"total_score"`

	// Ranking is the dense 1..N rank, 1 being the best fit. Equal totals
	// keep catalog order, so ranks never collapse or gap.
	Ranking int `json:"ranking"`
}
