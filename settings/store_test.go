package settings

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	s := New(Config{MaxSpeed: 10, Speed: 7, ExtraGates: 10})

	t.Run("initial values", func(t *testing.T) {
		assert.Equal(t, 7, s.AnimationSpeed(i.PhaseGeneration))
		assert.Equal(t, 7, s.AnimationSpeed(i.PhasePathfinding))
		assert.Equal(t, 10, s.AnimationSpeed(i.PhaseTestMap))
		assert.Equal(t, 10, s.ExtraGates())
		assert.Equal(t, 10, s.MaxAnimationSpeed())
	})

	t.Run("phases are independent", func(t *testing.T) {
		assert.NoError(t, s.SetAnimationSpeed(i.PhaseGeneration, 0))
		assert.NoError(t, s.SetAnimationSpeed(i.PhasePathfinding, 10))
		assert.Equal(t, 0, s.AnimationSpeed(i.PhaseGeneration))
		assert.Equal(t, 10, s.AnimationSpeed(i.PhasePathfinding))
	})

	t.Run("out of range", func(t *testing.T) {
		assert.ErrorIs(t, s.SetAnimationSpeed(i.PhaseGeneration, 11), ErrOutOfRange)
		assert.ErrorIs(t, s.SetAnimationSpeed(i.PhaseGeneration, -1), ErrOutOfRange)
		assert.ErrorIs(t, s.SetExtraGates(101), ErrOutOfRange)
		assert.ErrorIs(t, s.SetExtraGates(-1), ErrOutOfRange)
		assert.Equal(t, 0, s.AnimationSpeed(i.PhaseGeneration))
	})

	t.Run("unknown phase", func(t *testing.T) {
		assert.ErrorIs(t, s.SetAnimationSpeed(i.PhaseTestMap, 3), ErrUnknownPhase)
	})

	t.Run("gates", func(t *testing.T) {
		assert.NoError(t, s.SetExtraGates(100))
		assert.Equal(t, 100, s.ExtraGates())
	})

	t.Run("initial values are clamped", func(t *testing.T) {
		c := New(Config{MaxSpeed: 10, Speed: 50, ExtraGates: 500})
		assert.Equal(t, 10, c.AnimationSpeed(i.PhaseGeneration))
		assert.Equal(t, 100, c.ExtraGates())
	})
}
