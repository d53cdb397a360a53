package service

import (
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/settings"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events  []i.Event
	lengths map[uuid.UUID]int
	sync.Mutex
}

func newRecorder() *recorder {
	return &recorder{lengths: make(map[uuid.UUID]int)}
}

func (r *recorder) Notify(e i.Event) {
	r.Lock()
	defer r.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) ReportPathLength(id uuid.UUID, length int) {
	r.Lock()
	defer r.Unlock()
	r.lengths[id] = length
}

func (r *recorder) last() i.Event {
	r.Lock()
	defer r.Unlock()
	return r.events[len(r.events)-1]
}

func (r *recorder) length(id uuid.UUID) (int, bool) {
	r.Lock()
	defer r.Unlock()
	l, ok := r.lengths[id]
	return l, ok
}

func openEdges(g *maze.Grid) int {
	edges := 0
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			p := maze.Position{Row: r, Col: c}
			if c+1 < g.Cols() && !g.HasWall(p, maze.Right) {
				edges++
			}
			if r+1 < g.Rows() && !g.HasWall(p, maze.Down) {
				edges++
			}
		}
	}
	return edges
}

func newTestRunner(t *testing.T, rows, cols int, store *settings.Store, rec *recorder, options ...RunnerOption) *Runner {
	t.Helper()
	options = append([]RunnerOption{WithLogger(log.New(io.Discard, "", 0))}, options...)
	r, err := NewRunner(RunnerConfig{
		Rows:     rows,
		Cols:     cols,
		Settings: store,
		Notifier: rec,
		Reporter: rec,
	}, options...)
	require.NoError(t, err)
	return r
}

func instantSettings(gates int) *settings.Store {
	return settings.New(settings.Config{MaxSpeed: 10, Speed: 10, ExtraGates: gates})
}

func TestNewRunner(t *testing.T) {
	t.Run("settings are required", func(t *testing.T) {
		_, err := NewRunner(RunnerConfig{Rows: 5, Cols: 5})
		assert.ErrorIs(t, err, ErrMissingSettings)
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := NewRunner(RunnerConfig{Rows: 0, Cols: 5, Settings: instantSettings(0)})
		assert.ErrorIs(t, err, maze.ErrInvalidSize)
	})

	t.Run("starts with a walled grid and no run", func(t *testing.T) {
		r := newTestRunner(t, 4, 6, instantSettings(0), newRecorder())
		assert.Equal(t, 4, r.Grid().Rows())
		assert.Equal(t, 6, r.Grid().Cols())
		assert.Equal(t, 0, openEdges(r.Grid()))
		assert.Equal(t, i.Status{}, r.Status())
		assert.NoError(t, r.Wait())
	})
}

func TestRunnerGeneration(t *testing.T) {
	t.Run("perfect maze with endpoints", func(t *testing.T) {
		rec := newRecorder()
		r := newTestRunner(t, 9, 11, instantSettings(0), rec, WithSeed(3))

		id, err := r.StartGeneration()
		require.NoError(t, err)
		require.NoError(t, r.Wait())

		g := r.Grid()
		assert.Equal(t, 9*11-1, openEdges(g))

		start, ok := g.Start()
		require.True(t, ok)
		goal, ok := g.Goal()
		require.True(t, ok)
		assert.NotEqual(t, start, goal)

		status := r.Status()
		assert.Equal(t, id, status.RunID)
		assert.Equal(t, i.PhaseGeneration, status.Phase)
		assert.False(t, status.Running)
		assert.Empty(t, status.Error)
		// marked and passage per cell, then the endpoint placement
		assert.Equal(t, 2*9*11+1, status.Steps)

		last := rec.last()
		assert.Equal(t, i.EventFinished, last.Kind)
		assert.Equal(t, id, last.RunID)
	})

	t.Run("gates add loops", func(t *testing.T) {
		r := newTestRunner(t, 15, 15, instantSettings(100), newRecorder(), WithSeed(3))
		_, err := r.StartGeneration()
		require.NoError(t, err)
		require.NoError(t, r.Wait())
		assert.Greater(t, openEdges(r.Grid()), 15*15-1)
	})

	t.Run("seeded runners repeat", func(t *testing.T) {
		draw := func() string {
			r := newTestRunner(t, 8, 8, instantSettings(10), newRecorder(), WithSeed(11))
			_, err := r.StartGeneration()
			require.NoError(t, err)
			require.NoError(t, r.Wait())
			return r.Grid().String()
		}
		assert.Equal(t, draw(), draw())
	})

	t.Run("too small", func(t *testing.T) {
		r := newTestRunner(t, 2, 8, instantSettings(0), newRecorder())
		_, err := r.StartGeneration()
		assert.ErrorIs(t, err, maze.ErrInvalidSize)
		assert.Equal(t, i.Status{}, r.Status())
	})
}

func TestRunnerPathfinding(t *testing.T) {
	t.Run("missing endpoints", func(t *testing.T) {
		r := newTestRunner(t, 5, 5, instantSettings(0), newRecorder())
		_, err := r.StartPathfinding()
		assert.ErrorIs(t, err, ErrMissingEndpoints)
	})

	t.Run("reports the length of a test map route", func(t *testing.T) {
		rec := newRecorder()
		r := newTestRunner(t, 30, 30, instantSettings(0), rec)
		require.NoError(t, r.ShowTestMap(2))

		id, err := r.StartPathfinding()
		require.NoError(t, err)
		require.NoError(t, r.Wait())

		length, ok := rec.length(id)
		require.True(t, ok)
		assert.Equal(t, 26, length)
		assert.Equal(t, maze.AchievedGoal, r.Grid().State(maze.TestMapGoal))
	})

	t.Run("searching twice keeps the walls", func(t *testing.T) {
		rec := newRecorder()
		r := newTestRunner(t, 12, 12, instantSettings(5), rec, WithSeed(8))
		_, err := r.StartGeneration()
		require.NoError(t, err)
		require.NoError(t, r.Wait())
		edges := openEdges(r.Grid())

		first, err := r.StartPathfinding()
		require.NoError(t, err)
		require.NoError(t, r.Wait())
		second, err := r.StartPathfinding()
		require.NoError(t, err)
		require.NoError(t, r.Wait())

		a, _ := rec.length(first)
		b, _ := rec.length(second)
		assert.Equal(t, a, b)
		assert.Equal(t, edges, openEdges(r.Grid()))
	})
}

func TestRunnerCancellation(t *testing.T) {
	store := settings.New(settings.Config{MaxSpeed: 10, Speed: 0, ExtraGates: 0})
	r := newTestRunner(t, 10, 10, store, newRecorder(), WithTimeUnit(time.Hour), WithSeed(5))

	_, err := r.StartGeneration()
	require.NoError(t, err)
	assert.True(t, r.Status().Running)

	_, err = r.StartPathfinding()
	assert.ErrorIs(t, err, ErrGenerationInProgress)

	r.Cancel()
	assert.NoError(t, r.Wait())
	status := r.Status()
	assert.False(t, status.Running)
	assert.Empty(t, status.Error)
	assert.Equal(t, 1, status.Steps)

	require.NoError(t, store.SetAnimationSpeed(i.PhaseGeneration, 10))
	_, err = r.StartGeneration()
	require.NoError(t, err)
	require.NoError(t, r.Wait())
	assert.Equal(t, 10*10-1, openEdges(r.Grid()))
}

func TestRunnerTestMaps(t *testing.T) {
	t.Run("replaces a slow run", func(t *testing.T) {
		store := settings.New(settings.Config{MaxSpeed: 10, Speed: 0})
		r := newTestRunner(t, 30, 30, store, newRecorder(), WithTimeUnit(time.Hour))
		_, err := r.StartGeneration()
		require.NoError(t, err)

		require.NoError(t, r.ShowTestMap(3))
		assert.False(t, r.Status().Running)
		start, ok := r.Grid().Start()
		require.True(t, ok)
		assert.Equal(t, maze.TestMapStart, start)
	})

	t.Run("unknown map", func(t *testing.T) {
		r := newTestRunner(t, 30, 30, instantSettings(0), newRecorder())
		assert.ErrorIs(t, r.ShowTestMap(4), maze.ErrUnknownTestMap)
	})

	t.Run("grid too small", func(t *testing.T) {
		r := newTestRunner(t, 20, 20, instantSettings(0), newRecorder())
		assert.ErrorIs(t, r.ShowTestMap(1), maze.ErrInvalidSize)
	})
}

func TestDelay(t *testing.T) {
	tests := []struct {
		speed, maxExponent int
		want               int64
	}{
		{10, 10, 0},
		{7, 10, 7},
		{5, 10, 31},
		{0, 10, 1023},
		{12, 10, 0},
		{0, 0, 0},
		{-40, 10, 1<<30 - 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Delay(tt.speed, tt.maxExponent), "speed %d of %d", tt.speed, tt.maxExponent)
	}
}
