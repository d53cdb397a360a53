package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestMap(t *testing.T) {
	t.Run("map 1 is an open field", func(t *testing.T) {
		g, err := NewTestMap(1, 25, 25)
		require.NoError(t, err)
		assert.Equal(t, 0, countInteriorWalls(g))
		assert.Equal(t, Start, g.State(TestMapStart))
		assert.Equal(t, Goal, g.State(TestMapGoal))
	})

	t.Run("map 2 has a vertical partition", func(t *testing.T) {
		g, err := NewTestMap(2, 30, 30)
		require.NoError(t, err)
		assert.Equal(t, 10, countInteriorWalls(g))
		for row := 0; row < 30; row++ {
			want := row >= 10 && row < 20
			assert.Equal(t, want, g.HasWall(Position{Row: row, Col: 14}, Right), "row %d", row)
		}
		assertWallSymmetry(t, g)
	})

	t.Run("map 3 has an L shape", func(t *testing.T) {
		g, err := NewTestMap(3, 25, 25)
		require.NoError(t, err)
		assert.Equal(t, 3+14, countInteriorWalls(g))
		assert.True(t, g.HasWall(Position{Row: 13, Col: 21}, Left))
		assert.False(t, g.HasWall(Position{Row: 12, Col: 20}, Right))
		assert.True(t, g.HasWall(Position{Row: 16, Col: 7}, Up))
		assert.False(t, g.HasWall(Position{Row: 15, Col: 6}, Down))
		assert.False(t, g.HasWall(Position{Row: 15, Col: 21}, Down))
		assertWallSymmetry(t, g)
	})

	t.Run("grid too small", func(t *testing.T) {
		_, err := NewTestMap(1, 24, 30)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("unknown map", func(t *testing.T) {
		_, err := NewTestMap(4, 25, 25)
		assert.ErrorIs(t, err, ErrUnknownTestMap)
	})
}

func countInteriorWalls(g *Grid) int {
	walls := 0
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			p := Position{Row: r, Col: c}
			if c+1 < g.Cols() && g.HasWall(p, Right) {
				walls++
			}
			if r+1 < g.Rows() && g.HasWall(p, Down) {
				walls++
			}
		}
	}
	return walls
}
