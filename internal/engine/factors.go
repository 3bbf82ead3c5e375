// Package engine implements the itinerary scoring engine: crew-level
// program score aggregation, the skill-vs-difficulty table, the seven
// preference-driven sub-scorers, and the overall ranker. The engine is
// stateless beyond its immutable configuration; every operation is a
// pure computation over data fetched through ports.DataStore, safe for
// concurrent runs against independent crews.
package engine

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/trailcrew/trekrank/internal/domain"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// Factor codes recognized in scoring-factor overrides. Codes match the
// original factor table so existing databases keep working.
const (
	FactorProgram      = "programFactor"
	FactorDifficult    = "difficultDelta"
	FactorMileage      = "mileageFactor"
	FactorMaxDifficult = "maxDifficult"
	FactorMaxSkill     = "maxSkill"
	FactorSkillDelta   = "skillDelta"
	FactorMinDifficult = "minDifficult"
)

// ScoringFactors is the immutable tuning configuration the engine is
// constructed with. It replaces the original system's lazily populated
// factor cache: callers build it once from defaults plus stored
// overrides and pass it in, so scoring has no ordering dependency on a
// first call.
type ScoringFactors struct {
	// ProgramFactor scales the program and peak components.
	ProgramFactor float64 `validate:"gte=0"`

	// DifficultDelta scales the difficulty component.
	DifficultDelta float64 `validate:"gte=0"`

	// MileageFactor scales the distance component. Deliberately linear:
	// longer treks score strictly higher.
	MileageFactor float64 `validate:"gte=0"`

	// MaxDifficult, MaxSkill, SkillDelta, and MinDifficult are carried
	// from the original factor table for deployments that override them;
	// the difficulty table embeds their default envelope.
	MaxDifficult float64 `validate:"gte=0"`
	MaxSkill     float64 `validate:"gte=0"`
	SkillDelta   float64 `validate:"gte=0"`
	MinDifficult float64 `validate:"gte=0"`
}

// DefaultScoringFactors returns the factor values the original
// deployment shipped with.
func DefaultScoringFactors() ScoringFactors {
	return ScoringFactors{
		ProgramFactor:  1.5,
		DifficultDelta: 1.0,
		MileageFactor:  100.0,
		MaxDifficult:   1000.0,
		MaxSkill:       4000.0,
		SkillDelta:     1.0,
		MinDifficult:   500.0,
	}
}

// NewScoringFactors builds a ScoringFactors from the defaults overlaid
// with stored overrides keyed by factor code. Unknown codes are ignored
// so adding a factor to the database ahead of the code is harmless;
// non-finite values are rejected.
func NewScoringFactors(overrides map[string]float64) (ScoringFactors, error) {
	f := DefaultScoringFactors()

	for code, value := range overrides {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return ScoringFactors{}, fmt.Errorf("%w: %s=%f", domain.ErrInvalidFactor, code, value)
		}
		switch code {
		case FactorProgram:
			f.ProgramFactor = value
		case FactorDifficult:
			f.DifficultDelta = value
		case FactorMileage:
			f.MileageFactor = value
		case FactorMaxDifficult:
			f.MaxDifficult = value
		case FactorMaxSkill:
			f.MaxSkill = value
		case FactorSkillDelta:
			f.SkillDelta = value
		case FactorMinDifficult:
			f.MinDifficult = value
		}
	}

	if err := validate.Struct(f); err != nil {
		return ScoringFactors{}, fmt.Errorf("scoring factor validation failed: %w", err)
	}
	return f, nil
}
