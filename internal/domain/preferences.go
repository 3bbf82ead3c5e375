package domain

// CrewPreferences holds every trip-preference flag the sub-scorers read,
// one record per crew. Each field carries an explicit default so a crew
// with no stored preference record scores against DefaultPreferences()
// rather than against silently absent map keys.
//
// Importance gates (AreaImportant, MaxAltitudeImportant, ...) default to
// false: a feature the crew never asked about contributes nothing.
// Acceptance gates (the four Difficulty* flags) and the hike in/out
// preferences default to true: an unstated opinion accepts everything.
type CrewPreferences struct {
	// CrewID is the crew this record belongs to. Zero in the default
	// record returned for crews with no stored preferences.
	CrewID int64 `json:"crew_id"`

	// TrekType is the crew's preferred trek type, empty when unset.
	TrekType TrekType `json:"trek_type"`

	// AreaImportant gates the area sub-score entirely.
	AreaImportant bool `json:"area_important"`

	// Per-region ranks 1-4; 0 means the crew did not rank the region.
	AreaRankSouth      int `json:"area_rank_south"`
	AreaRankCentral    int `json:"area_rank_central"`
	AreaRankNorth      int `json:"area_rank_north"`
	AreaRankValleVidal int `json:"area_rank_valle_vidal"`

	// MaxAltitudeImportant gates the max-altitude part of the altitude
	// sub-score. MaxAltitudeThreshold is the crew's stated ceiling in
	// feet; it is survey context and does not alter the lookup table.
	MaxAltitudeImportant bool `json:"max_altitude_important"`
	MaxAltitudeThreshold int  `json:"max_altitude_threshold"`

	// TotalElevationGainImportant gates the total-gain part of the
	// altitude sub-score.
	TotalElevationGainImportant bool `json:"total_elevation_gain_important"`

	// AltitudeChangeImportant gates the average-daily-change part of the
	// altitude sub-score; DailyAltitudeChangeThreshold is survey context.
	AltitudeChangeImportant      bool `json:"altitude_change_important"`
	DailyAltitudeChangeThreshold int  `json:"daily_altitude_change_threshold"`

	// Difficulty acceptance flags. An itinerary whose class the crew
	// rejects scores 0 on the difficulty component.
	DifficultyChallenging    bool `json:"difficulty_challenging"`
	DifficultyRugged         bool `json:"difficulty_rugged"`
	DifficultyStrenuous      bool `json:"difficulty_strenuous"`
	DifficultySuperStrenuous bool `json:"difficulty_super_strenuous"`

	// Peak-desire flags, one per named landmark program.
	ClimbBaldy            bool `json:"climb_baldy"`
	ClimbPhillips         bool `json:"climb_phillips"`
	ClimbTooth            bool `json:"climb_tooth"`
	ClimbInspirationPoint bool `json:"climb_inspiration_point"`
	ClimbTrailPeak        bool `json:"climb_trail_peak"`
	ClimbOthers           bool `json:"climb_others"`

	// HikeInPreference and HikeOutPreference reward itineraries that end
	// or start with a hike at base camp.
	HikeInPreference  bool `json:"hike_in_preference"`
	HikeOutPreference bool `json:"hike_out_preference"`

	// ProgramsImportant records whether the crew flagged program
	// availability as a priority. Survey context; the program component
	// is always computed.
	ProgramsImportant bool `json:"programs_important"`

	// AdultWeightEnabled scales ratings from members older than 20 by
	// AdultWeightPercent/100 before aggregation.
	AdultWeightEnabled bool `json:"adult_program_weight_enabled"`
	AdultWeightPercent int  `json:"adult_program_weight_percent"`

	// MaxDryCamps is the crew's dry-camp tolerance. Nil means no limit
	// was set and the dry-camp lookup table applies unconditionally.
	MaxDryCamps *int `json:"max_dry_camps,omitempty"`

	// ShowersRequired and LayoversRequired switch the corresponding camp
	// sub-score bonuses and penalties on.
	ShowersRequired  bool `json:"showers_required"`
	LayoversRequired bool `json:"layovers_required"`

	// PreferLowStartingFood and PreferShorterResupply enable the two
	// food-resupply adjustments of the camp sub-score.
	PreferLowStartingFood bool `json:"prefer_low_starting_food"`
	PreferShorterResupply bool `json:"prefer_shorter_resupply"`
}

// DefaultPreferences returns the preference record used when a crew has
// none stored: every importance gate off, every acceptance gate on.
func DefaultPreferences() CrewPreferences {
	return CrewPreferences{
		DifficultyChallenging:    true,
		DifficultyRugged:         true,
		DifficultyStrenuous:      true,
		DifficultySuperStrenuous: true,
		HikeInPreference:         true,
		HikeOutPreference:        true,
		AdultWeightPercent:       100,
	}
}

// AcceptsDifficulty reports whether the crew accepts itineraries of the
// given difficulty class. Classes outside the four codes are rejected,
// so an itinerary with a missing or unmapped difficulty scores 0 on the
// difficulty component rather than earning the table's miss default.
func (p CrewPreferences) AcceptsDifficulty(class DifficultyClass) bool {
	switch class {
	case DifficultyChallenging:
		return p.DifficultyChallenging
	case DifficultyRugged:
		return p.DifficultyRugged
	case DifficultyStrenuous:
		return p.DifficultyStrenuous
	case DifficultySuperStrenuous:
		return p.DifficultySuperStrenuous
	default:
		return false
	}
}
