// Package storage implements ports.DataStore over a SQLite database
// using the pure-Go modernc.org/sqlite driver, so deployments need no
// cgo and no external database server.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/trailcrew/trekrank/internal/domain"
	"github.com/trailcrew/trekrank/internal/ports"
)

var _ ports.DataStore = (*Store)(nil)

// Store is the SQLite-backed data store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// SQLite serializes writers; a single connection avoids table-lock
// errors under the concurrent read load of parallel scoring runs.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// NewWithDB wraps an existing database handle. The caller keeps
// ownership of the handle's lifecycle; used by tests.
func NewWithDB(db *sql.DB) *Store { return &Store{db: db} }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS crews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		crew_name TEXT,
		crew_size INTEGER DEFAULT 9,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS crew_members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		crew_id INTEGER NOT NULL REFERENCES crews(id),
		member_number INTEGER NOT NULL,
		name TEXT,
		age INTEGER,
		skill_level INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_crew_members_crew ON crew_members(crew_id);

	CREATE TABLE IF NOT EXISTS programs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT UNIQUE,
		name TEXT NOT NULL,
		category TEXT
	);

	CREATE TABLE IF NOT EXISTS program_scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		crew_id INTEGER NOT NULL REFERENCES crews(id),
		crew_member_id INTEGER NOT NULL REFERENCES crew_members(id),
		program_id INTEGER NOT NULL REFERENCES programs(id),
		score INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_program_scores_crew ON program_scores(crew_id, program_id);

	CREATE TABLE IF NOT EXISTS crew_preferences (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		crew_id INTEGER NOT NULL UNIQUE REFERENCES crews(id),
		trek_type TEXT,
		area_important INTEGER DEFAULT 0,
		area_rank_south INTEGER,
		area_rank_central INTEGER,
		area_rank_north INTEGER,
		area_rank_valle_vidal INTEGER,
		max_altitude_important INTEGER DEFAULT 0,
		max_altitude_threshold INTEGER,
		total_elevation_gain_important INTEGER DEFAULT 0,
		altitude_change_important INTEGER DEFAULT 0,
		daily_altitude_change_threshold INTEGER,
		difficulty_challenging INTEGER DEFAULT 1,
		difficulty_rugged INTEGER DEFAULT 1,
		difficulty_strenuous INTEGER DEFAULT 1,
		difficulty_super_strenuous INTEGER DEFAULT 1,
		climb_baldy INTEGER DEFAULT 0,
		climb_phillips INTEGER DEFAULT 0,
		climb_tooth INTEGER DEFAULT 0,
		climb_inspiration_point INTEGER DEFAULT 0,
		climb_trail_peak INTEGER DEFAULT 0,
		climb_others INTEGER DEFAULT 0,
		hike_in_preference INTEGER DEFAULT 1,
		hike_out_preference INTEGER DEFAULT 1,
		programs_important INTEGER DEFAULT 0,
		adult_program_weight_enabled INTEGER DEFAULT 0,
		adult_program_weight_percent INTEGER DEFAULT 100,
		max_dry_camps INTEGER,
		showers_required INTEGER DEFAULT 0,
		layovers_required INTEGER DEFAULT 0,
		prefer_low_starting_food INTEGER DEFAULT 0,
		prefer_shorter_resupply INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS itineraries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		itinerary_code TEXT UNIQUE NOT NULL,
		trek_type TEXT NOT NULL,
		difficulty TEXT,
		distance REAL,
		days_food_from_base INTEGER,
		max_days_food INTEGER,
		staffed_camps INTEGER DEFAULT 0,
		trail_camps INTEGER DEFAULT 0,
		layovers INTEGER DEFAULT 0,
		total_camps INTEGER DEFAULT 0,
		dry_camps INTEGER DEFAULT 0,
		min_altitude INTEGER DEFAULT 0,
		max_altitude INTEGER DEFAULT 0,
		total_elevation_gain INTEGER DEFAULT 0,
		avg_daily_elevation_change REAL DEFAULT 0,
		starts_at TEXT,
		ends_at TEXT,
		covers_south INTEGER DEFAULT 0,
		covers_central INTEGER DEFAULT 0,
		covers_north INTEGER DEFAULT 0,
		covers_valle_vidal INTEGER DEFAULT 0,
		baldy_mountain INTEGER DEFAULT 0,
		mount_phillips INTEGER DEFAULT 0,
		tooth_of_time INTEGER DEFAULT 0,
		inspiration_point INTEGER DEFAULT 0,
		trail_peak INTEGER DEFAULT 0,
		mountaineering INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_itineraries_trek_type ON itineraries(trek_type);

	CREATE TABLE IF NOT EXISTS itinerary_programs (
		itinerary_id INTEGER NOT NULL REFERENCES itineraries(id),
		program_id INTEGER NOT NULL REFERENCES programs(id),
		trek_type TEXT NOT NULL,
		is_available INTEGER DEFAULT 0,
		PRIMARY KEY (itinerary_id, program_id, trek_type)
	);

	CREATE TABLE IF NOT EXISTS camps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		elevation INTEGER,
		is_staffed INTEGER DEFAULT 0,
		is_trail_camp INTEGER DEFAULT 0,
		is_dry_camp INTEGER DEFAULT 0,
		has_showers INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS itinerary_camps (
		itinerary_id INTEGER NOT NULL REFERENCES itineraries(id),
		camp_id INTEGER NOT NULL REFERENCES camps(id),
		day_number INTEGER NOT NULL,
		is_layover INTEGER DEFAULT 0,
		PRIMARY KEY (itinerary_id, day_number)
	);

	CREATE TABLE IF NOT EXISTS scoring_factors (
		factor_code TEXT PRIMARY KEY,
		multiplier REAL NOT NULL,
		is_active INTEGER DEFAULT 1
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Crew returns the crew record, or domain.ErrCrewNotFound.
func (s *Store) Crew(ctx context.Context, crewID int64) (domain.Crew, error) {
	var (
		crew domain.Crew
		name sql.NullString
		size sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, crew_name, crew_size FROM crews WHERE id = ?", crewID,
	).Scan(&crew.ID, &name, &size)
	if err == sql.ErrNoRows {
		return domain.Crew{}, fmt.Errorf("crew %d: %w", crewID, domain.ErrCrewNotFound)
	}
	if err != nil {
		return domain.Crew{}, fmt.Errorf("query crew %d: %w", crewID, err)
	}
	crew.Name = name.String
	crew.Size = int(size.Int64)
	return crew, nil
}

// Crews returns every crew ordered by ID.
func (s *Store) Crews(ctx context.Context) ([]domain.Crew, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, crew_name, crew_size FROM crews ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query crews: %w", err)
	}
	defer rows.Close()

	var crews []domain.Crew
	for rows.Next() {
		var (
			crew domain.Crew
			name sql.NullString
			size sql.NullInt64
		)
		if err := rows.Scan(&crew.ID, &name, &size); err != nil {
			return nil, fmt.Errorf("scan crew: %w", err)
		}
		crew.Name = name.String
		crew.Size = int(size.Int64)
		crews = append(crews, crew)
	}
	return crews, rows.Err()
}

// MemberSkillLevels returns the crew members' recorded skill levels,
// omitting members with none.
func (s *Store) MemberSkillLevels(ctx context.Context, crewID int64) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT skill_level FROM crew_members
		WHERE crew_id = ? AND skill_level IS NOT NULL
		ORDER BY member_number`, crewID)
	if err != nil {
		return nil, fmt.Errorf("query skill levels for crew %d: %w", crewID, err)
	}
	defer rows.Close()

	var levels []int
	for rows.Next() {
		var level int
		if err := rows.Scan(&level); err != nil {
			return nil, fmt.Errorf("scan skill level: %w", err)
		}
		levels = append(levels, level)
	}
	return levels, rows.Err()
}

// Ratings returns every rating submitted by the crew's members with the
// member's age attached, ordered by program and then member. The
// ordering feeds the engine's consecutive grouping.
func (s *Store) Ratings(ctx context.Context, crewID int64) ([]domain.ProgramRating, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ps.program_id, ps.score, cm.age
		FROM program_scores ps
		JOIN crew_members cm ON ps.crew_member_id = cm.id
		WHERE ps.crew_id = ?
		ORDER BY ps.program_id, ps.crew_member_id`, crewID)
	if err != nil {
		return nil, fmt.Errorf("query ratings for crew %d: %w", crewID, err)
	}
	defer rows.Close()

	var ratings []domain.ProgramRating
	for rows.Next() {
		var (
			r   domain.ProgramRating
			age sql.NullInt64
		)
		if err := rows.Scan(&r.ProgramID, &r.Rating, &age); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		if age.Valid {
			a := int(age.Int64)
			r.MemberAge = &a
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// RatingsForProgram returns the crew's raw ratings for one program.
func (s *Store) RatingsForProgram(ctx context.Context, programID, crewID int64) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT score FROM program_scores
		WHERE program_id = ? AND crew_id = ?
		ORDER BY crew_member_id`, programID, crewID)
	if err != nil {
		return nil, fmt.Errorf("query ratings for program %d crew %d: %w", programID, crewID, err)
	}
	defer rows.Close()

	var ratings []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, score)
	}
	return ratings, rows.Err()
}

// Preferences returns the crew's preference record, or (nil, nil) when
// none exists.
func (s *Store) Preferences(ctx context.Context, crewID int64) (*domain.CrewPreferences, error) {
	p := domain.DefaultPreferences()
	p.CrewID = crewID

	var (
		trekType                              sql.NullString
		rankSouth, rankCentral                sql.NullInt64
		rankNorth, rankValle                  sql.NullInt64
		maxAltThreshold, dailyChangeThreshold sql.NullInt64
		adultPercent, maxDryCamps             sql.NullInt64
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT trek_type,
			area_important, area_rank_south, area_rank_central, area_rank_north, area_rank_valle_vidal,
			max_altitude_important, max_altitude_threshold,
			total_elevation_gain_important,
			altitude_change_important, daily_altitude_change_threshold,
			difficulty_challenging, difficulty_rugged, difficulty_strenuous, difficulty_super_strenuous,
			climb_baldy, climb_phillips, climb_tooth, climb_inspiration_point, climb_trail_peak, climb_others,
			hike_in_preference, hike_out_preference, programs_important,
			adult_program_weight_enabled, adult_program_weight_percent,
			max_dry_camps, showers_required, layovers_required,
			prefer_low_starting_food, prefer_shorter_resupply
		FROM crew_preferences WHERE crew_id = ?`, crewID,
	).Scan(
		&trekType,
		&p.AreaImportant, &rankSouth, &rankCentral, &rankNorth, &rankValle,
		&p.MaxAltitudeImportant, &maxAltThreshold,
		&p.TotalElevationGainImportant,
		&p.AltitudeChangeImportant, &dailyChangeThreshold,
		&p.DifficultyChallenging, &p.DifficultyRugged, &p.DifficultyStrenuous, &p.DifficultySuperStrenuous,
		&p.ClimbBaldy, &p.ClimbPhillips, &p.ClimbTooth, &p.ClimbInspirationPoint, &p.ClimbTrailPeak, &p.ClimbOthers,
		&p.HikeInPreference, &p.HikeOutPreference, &p.ProgramsImportant,
		&p.AdultWeightEnabled, &adultPercent,
		&maxDryCamps, &p.ShowersRequired, &p.LayoversRequired,
		&p.PreferLowStartingFood, &p.PreferShorterResupply,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query preferences for crew %d: %w", crewID, err)
	}

	p.TrekType = domain.TrekType(trekType.String)
	p.AreaRankSouth = int(rankSouth.Int64)
	p.AreaRankCentral = int(rankCentral.Int64)
	p.AreaRankNorth = int(rankNorth.Int64)
	p.AreaRankValleVidal = int(rankValle.Int64)
	p.MaxAltitudeThreshold = int(maxAltThreshold.Int64)
	p.DailyAltitudeChangeThreshold = int(dailyChangeThreshold.Int64)
	if adultPercent.Valid {
		p.AdultWeightPercent = int(adultPercent.Int64)
	}
	if maxDryCamps.Valid {
		m := int(maxDryCamps.Int64)
		p.MaxDryCamps = &m
	}
	return &p, nil
}

// itineraryColumns is the shared select list for itinerary scans.
const itineraryColumns = `
	id, itinerary_code, trek_type, difficulty, distance,
	days_food_from_base, max_days_food,
	staffed_camps, trail_camps, layovers, total_camps, dry_camps,
	min_altitude, max_altitude, total_elevation_gain, avg_daily_elevation_change,
	starts_at, ends_at,
	covers_south, covers_central, covers_north, covers_valle_vidal,
	baldy_mountain, mount_phillips, tooth_of_time, inspiration_point, trail_peak, mountaineering`

// Itineraries returns the catalog for one trek type in catalog order.
func (s *Store) Itineraries(ctx context.Context, trekType domain.TrekType) ([]domain.Itinerary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT"+itineraryColumns+" FROM itineraries WHERE trek_type = ? ORDER BY itinerary_code",
		string(trekType))
	if err != nil {
		return nil, fmt.Errorf("query itineraries for trek type %q: %w", trekType, err)
	}
	defer rows.Close()

	var itineraries []domain.Itinerary
	for rows.Next() {
		itin, err := scanItinerary(rows)
		if err != nil {
			return nil, err
		}
		itineraries = append(itineraries, itin)
	}
	return itineraries, rows.Err()
}

func scanItinerary(rows *sql.Rows) (domain.Itinerary, error) {
	var (
		itin                   domain.Itinerary
		trekType, difficulty   sql.NullString
		startsAt, endsAt       sql.NullString
		distance, dailyChange  sql.NullFloat64
		daysFromBase, maxDays  sql.NullInt64
		staffed, trail, layo   sql.NullInt64
		total, dry             sql.NullInt64
		minAlt, maxAlt, gain   sql.NullInt64
	)
	err := rows.Scan(
		&itin.ID, &itin.Code, &trekType, &difficulty, &distance,
		&daysFromBase, &maxDays,
		&staffed, &trail, &layo, &total, &dry,
		&minAlt, &maxAlt, &gain, &dailyChange,
		&startsAt, &endsAt,
		&itin.CoversSouth, &itin.CoversCentral, &itin.CoversNorth, &itin.CoversValleVidal,
		&itin.BaldyMountain, &itin.MountPhillips, &itin.ToothOfTime, &itin.InspirationPoint, &itin.TrailPeak, &itin.Mountaineering,
	)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("scan itinerary: %w", err)
	}

	itin.TrekType = domain.TrekType(trekType.String)
	itin.Difficulty = domain.DifficultyClass(difficulty.String)
	if distance.Valid {
		d := distance.Float64
		itin.Distance = &d
	}
	itin.DaysFoodFromBase = int(daysFromBase.Int64)
	itin.MaxDaysFood = int(maxDays.Int64)
	itin.StaffedCamps = int(staffed.Int64)
	itin.TrailCamps = int(trail.Int64)
	itin.Layovers = int(layo.Int64)
	itin.TotalCamps = int(total.Int64)
	itin.DryCamps = int(dry.Int64)
	itin.MinAltitude = int(minAlt.Int64)
	itin.MaxAltitude = int(maxAlt.Int64)
	itin.TotalElevationGain = int(gain.Int64)
	itin.AvgDailyElevationChange = dailyChange.Float64
	itin.StartsAt = startsAt.String
	itin.EndsAt = endsAt.String
	return itin, nil
}

// AvailableTrekTypes returns the distinct trek types with itinerary data.
func (s *Store) AvailableTrekTypes(ctx context.Context) ([]domain.TrekType, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT trek_type FROM itineraries ORDER BY trek_type")
	if err != nil {
		return nil, fmt.Errorf("query trek types: %w", err)
	}
	defer rows.Close()

	var types []domain.TrekType
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan trek type: %w", err)
		}
		types = append(types, domain.TrekType(t))
	}
	return types, rows.Err()
}

// AvailablePrograms returns the program IDs bookable on the itinerary
// under the trek type.
func (s *Store) AvailablePrograms(ctx context.Context, itineraryID int64, trekType domain.TrekType) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT program_id FROM itinerary_programs
		WHERE itinerary_id = ? AND is_available = 1 AND trek_type = ?
		ORDER BY program_id`, itineraryID, string(trekType))
	if err != nil {
		return nil, fmt.Errorf("query available programs for itinerary %d: %w", itineraryID, err)
	}
	defer rows.Close()

	var programs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan program id: %w", err)
		}
		programs = append(programs, id)
	}
	return programs, rows.Err()
}

// Camps returns the itinerary's camp stops in day order.
func (s *Store) Camps(ctx context.Context, itineraryID int64) ([]domain.CampStop, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ic.day_number, c.id, c.name, c.has_showers, c.is_staffed, ic.is_layover
		FROM itinerary_camps ic
		JOIN camps c ON ic.camp_id = c.id
		WHERE ic.itinerary_id = ?
		ORDER BY ic.day_number`, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("query camps for itinerary %d: %w", itineraryID, err)
	}
	defer rows.Close()

	var camps []domain.CampStop
	for rows.Next() {
		var stop domain.CampStop
		if err := rows.Scan(&stop.Day, &stop.CampID, &stop.CampName, &stop.HasShowers, &stop.IsStaffed, &stop.IsLayover); err != nil {
			return nil, fmt.Errorf("scan camp stop: %w", err)
		}
		camps = append(camps, stop)
	}
	return camps, rows.Err()
}

// Programs returns the full program catalog ordered by ID.
func (s *Store) Programs(ctx context.Context) ([]domain.Program, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, code, name, category FROM programs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query programs: %w", err)
	}
	defer rows.Close()

	var programs []domain.Program
	for rows.Next() {
		var (
			p              domain.Program
			code, category sql.NullString
		)
		if err := rows.Scan(&p.ID, &code, &p.Name, &category); err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		p.Code = code.String
		p.Category = category.String
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

// ScoringFactorOverrides returns the active factor overrides keyed by
// factor code.
func (s *Store) ScoringFactorOverrides(ctx context.Context) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT factor_code, multiplier FROM scoring_factors WHERE is_active = 1")
	if err != nil {
		return nil, fmt.Errorf("query scoring factors: %w", err)
	}
	defer rows.Close()

	overrides := make(map[string]float64)
	for rows.Next() {
		var (
			code       string
			multiplier float64
		)
		if err := rows.Scan(&code, &multiplier); err != nil {
			return nil, fmt.Errorf("scan scoring factor: %w", err)
		}
		overrides[code] = multiplier
	}
	return overrides, rows.Err()
}
