package domain

import (
	"errors"
)

// Sentinel errors shared across the scoring engine and its adapters.
// Missing optional data (preferences, ages, ratings, table entries) is
// never an error; these cover the genuinely fatal conditions.
var (
	// ErrCrewNotFound indicates the requested crew does not exist.
	ErrCrewNotFound = errors.New("crew not found")

	// ErrProgramNotFound indicates a program lookup by ID or name failed.
	ErrProgramNotFound = errors.New("program not found")

	// ErrInvalidFactor indicates a scoring-factor override carried a
	// non-finite or otherwise unusable value.
	ErrInvalidFactor = errors.New("invalid scoring factor")
)
