package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailcrew/trekrank/internal/domain"
)

func TestDefaultScoringFactors(t *testing.T) {
	f := DefaultScoringFactors()

	assert.Equal(t, 1.5, f.ProgramFactor)
	assert.Equal(t, 1.0, f.DifficultDelta)
	assert.Equal(t, 100.0, f.MileageFactor)
	assert.Equal(t, 1000.0, f.MaxDifficult)
	assert.Equal(t, 4000.0, f.MaxSkill)
	assert.Equal(t, 1.0, f.SkillDelta)
	assert.Equal(t, 500.0, f.MinDifficult)
}

func TestNewScoringFactors(t *testing.T) {
	t.Run("no overrides keeps defaults", func(t *testing.T) {
		f, err := NewScoringFactors(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultScoringFactors(), f)
	})

	t.Run("overrides replace matching codes", func(t *testing.T) {
		f, err := NewScoringFactors(map[string]float64{
			FactorProgram: 2.0,
			FactorMileage: 50,
		})
		require.NoError(t, err)
		assert.Equal(t, 2.0, f.ProgramFactor)
		assert.Equal(t, 50.0, f.MileageFactor)
		assert.Equal(t, 1.0, f.DifficultDelta)
	})

	t.Run("unknown codes are ignored", func(t *testing.T) {
		f, err := NewScoringFactors(map[string]float64{"futureFactor": 7})
		require.NoError(t, err)
		assert.Equal(t, DefaultScoringFactors(), f)
	})

	t.Run("NaN is rejected", func(t *testing.T) {
		_, err := NewScoringFactors(map[string]float64{FactorProgram: math.NaN()})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidFactor)
	})

	t.Run("infinity is rejected", func(t *testing.T) {
		_, err := NewScoringFactors(map[string]float64{FactorMileage: math.Inf(1)})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidFactor)
	})

	t.Run("negative values fail validation", func(t *testing.T) {
		_, err := NewScoringFactors(map[string]float64{FactorDifficult: -1})
		require.Error(t, err)
	})

	t.Run("zero is a valid override", func(t *testing.T) {
		f, err := NewScoringFactors(map[string]float64{FactorMileage: 0})
		require.NoError(t, err)
		assert.Zero(t, f.MileageFactor)
	})
}
