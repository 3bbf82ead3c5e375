// Package domain defines the core value types and aggregation rules for
// trek itinerary scoring. Everything in this package is a plain value:
// entities are read-only snapshots of catalog and survey data, and all
// computations are pure functions over them.
package domain

import (
	"time"
)

// TrekType partitions the itinerary catalog by trip length and style.
// A crew ranks itineraries within exactly one trek type at a time.
type TrekType string

// The fixed set of trek types offered at the destination.
const (
	Trek12Day     TrekType = "12-day"
	Trek9Day      TrekType = "9-day"
	Trek7Day      TrekType = "7-day"
	TrekCavalcade TrekType = "Cavalcade"
)

// DefaultTrekType is the ultimate fallback when a crew has no trek-type
// preference and no itinerary data narrows the choice.
const DefaultTrekType = Trek12Day

// AllTrekTypes returns every trek type the catalog can hold, including
// types that currently have no itinerary data.
func AllTrekTypes() []TrekType {
	return []TrekType{Trek12Day, Trek9Day, Trek7Day, TrekCavalcade}
}

// DifficultyClass is one of the four itinerary difficulty codes.
type DifficultyClass string

// Difficulty codes in ascending order of physical demand.
const (
	DifficultyChallenging    DifficultyClass = "C"
	DifficultyRugged         DifficultyClass = "R"
	DifficultyStrenuous      DifficultyClass = "S"
	DifficultySuperStrenuous DifficultyClass = "SS"
)

// Itinerary start/end mode sentinels. An itinerary whose StartsAt equals
// HikeOut begins with a hike out of base camp; one whose EndsAt equals
// HikeIn finishes with a hike back in.
const (
	HikeOut = "Hike Out"
	HikeIn  = "Hike In"
)

// Crew identifies a scouting crew planning a trek.
type Crew struct {
	// ID uniquely identifies the crew.
	ID int64 `json:"id"`

	// Name is the crew's display name.
	Name string `json:"name"`

	// Size is the number of participants the crew plans to bring.
	Size int `json:"size"`
}

// CrewMember is a single participant in a crew. Age and skill level are
// both optional survey inputs; a nil value means the member never
// reported one.
type CrewMember struct {
	// ID uniquely identifies the member.
	ID int64 `json:"id"`

	// CrewID is the crew this member belongs to.
	CrewID int64 `json:"crew_id"`

	// Name is the member's display name.
	Name string `json:"name"`

	// Age in years, or nil when unreported. Members with a nil age are
	// never treated as adults by the adult-weighting rule.
	Age *int `json:"age,omitempty"`

	// SkillLevel is the member's self-reported backcountry skill on a
	// 1-10 scale, or nil when unreported.
	SkillLevel *int `json:"skill_level,omitempty"`
}

// Program is a bookable backcountry activity that members rate on a
// numeric interest scale.
type Program struct {
	// ID uniquely identifies the program.
	ID int64 `json:"id"`

	// Code is the program's short catalog code.
	Code string `json:"code"`

	// Name is the program's full name, e.g. "Landmarks: Baldy Mountain".
	Name string `json:"name"`

	// Category groups related programs, e.g. "Landmarks" or "Shooting".
	Category string `json:"category"`
}

// ProgramRating is one member's interest rating for one program, paired
// with the member's age so the adult-weighting rule can be applied
// without a second fetch. Ratings are typically 0-20.
type ProgramRating struct {
	// ProgramID is the rated program.
	ProgramID int64 `json:"program_id"`

	// Rating is the raw interest rating the member submitted.
	Rating float64 `json:"rating"`

	// MemberAge is the rating member's age, or nil when unreported.
	MemberAge *int `json:"member_age,omitempty"`
}

// Itinerary is a read-only catalog record describing one trek route.
// The engine scores itineraries independently; nothing here is mutated.
type Itinerary struct {
	// ID uniquely identifies the itinerary.
	ID int64 `json:"id"`

	// Code is the catalog code, e.g. "12-3". Codes define catalog order
	// and serve as the ranking tie-break.
	Code string `json:"code"`

	// TrekType is the trek type this itinerary belongs to.
	TrekType TrekType `json:"trek_type"`

	// Difficulty is the itinerary's difficulty class.
	Difficulty DifficultyClass `json:"difficulty"`

	// Distance is total trail miles, or nil when the catalog omits it.
	Distance *float64 `json:"distance,omitempty"`

	// DryCamps counts camps without a reliable water source.
	DryCamps int `json:"dry_camps"`

	// TrailCamps counts unstaffed backcountry camps.
	TrailCamps int `json:"trail_camps"`

	// StaffedCamps counts camps with program staff.
	StaffedCamps int `json:"staffed_camps"`

	// TotalCamps is the catalog's total camp count.
	TotalCamps int `json:"total_camps"`

	// Layovers counts days spent at a previously visited camp.
	Layovers int `json:"layovers"`

	// MinAltitude and MaxAltitude are the route's elevation extremes in feet.
	MinAltitude int `json:"min_altitude"`
	MaxAltitude int `json:"max_altitude"`

	// TotalElevationGain is the cumulative climb over the route in feet.
	TotalElevationGain int `json:"total_elevation_gain"`

	// AvgDailyElevationChange is the mean daily elevation change in feet.
	AvgDailyElevationChange float64 `json:"avg_daily_elevation_change"`

	// StartsAt and EndsAt name the route's start and end modes. The
	// sentinels HikeOut and HikeIn mark routes that begin or end on foot
	// at base camp.
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`

	// Region coverage flags. An itinerary can cover several regions.
	CoversSouth      bool `json:"covers_south"`
	CoversCentral    bool `json:"covers_central"`
	CoversNorth      bool `json:"covers_north"`
	CoversValleVidal bool `json:"covers_valle_vidal"`

	// Peak and landmark presence flags.
	BaldyMountain    bool `json:"baldy_mountain"`
	MountPhillips    bool `json:"mount_phillips"`
	ToothOfTime      bool `json:"tooth_of_time"`
	InspirationPoint bool `json:"inspiration_point"`
	TrailPeak        bool `json:"trail_peak"`
	Mountaineering   bool `json:"mountaineering"`

	// DaysFoodFromBase is how many days of food the crew carries from
	// base camp before the first resupply.
	DaysFoodFromBase int `json:"days_food_from_base"`

	// MaxDaysFood is the longest stretch of days between resupplies.
	MaxDaysFood int `json:"max_days_food"`
}

// CampStop is one day's camp on an itinerary, joined with the camp
// attributes the scorer reads.
type CampStop struct {
	// Day is the itinerary day number, starting at 1.
	Day int `json:"day"`

	// CampID identifies the camp.
	CampID int64 `json:"camp_id"`

	// CampName is the camp's display name.
	CampName string `json:"camp_name"`

	// HasShowers reports whether the camp has shower facilities.
	HasShowers bool `json:"has_showers"`

	// IsStaffed reports whether the camp has program staff.
	IsStaffed bool `json:"is_staffed"`

	// IsLayover reports whether this day is a layover at the camp.
	IsLayover bool `json:"is_layover"`
}

// RankingRun is the service-level envelope around one ranking invocation.
// The ID makes independent runs distinguishable in logs and traces even
// when their inputs, and therefore their results, are identical.
type RankingRun struct {
	// ID is a UUID assigned to this run.
	ID string `json:"id"`

	// CrewID is the crew that was scored.
	CrewID int64 `json:"crew_id"`

	// TrekType is the trek type the catalog was filtered to.
	TrekType TrekType `json:"trek_type"`

	// Method is the aggregation method used throughout the run.
	Method Method `json:"method"`

	// GeneratedAt records when the run completed.
	GeneratedAt time.Time `json:"generated_at"`

	// Results holds the ranked itineraries, best first.
	Results []ScoredItinerary `json:"results"`
}
