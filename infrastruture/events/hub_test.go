package events

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub(t *testing.T) {
	t.Run("fan out to every subscriber", func(t *testing.T) {
		h := NewHub(4)
		a, cancelA := h.Subscribe()
		b, cancelB := h.Subscribe()
		defer cancelA()
		defer cancelB()

		ev := i.Event{RunID: uuid.New(), Phase: i.PhaseGeneration, Kind: i.EventStep, Step: 1}
		h.Notify(ev)

		assert.Equal(t, ev, <-a)
		assert.Equal(t, ev, <-b)
	})

	t.Run("slow subscribers drop events instead of blocking", func(t *testing.T) {
		h := NewHub(2)
		ch, cancel := h.Subscribe()
		defer cancel()

		for n := 1; n <= 5; n++ {
			h.Notify(i.Event{Kind: i.EventStep, Step: n})
		}

		require.Len(t, ch, 2)
		assert.Equal(t, 1, (<-ch).Step)
		assert.Equal(t, 2, (<-ch).Step)
	})

	t.Run("unsubscribe closes the channel once", func(t *testing.T) {
		h := NewHub(1)
		ch, cancel := h.Subscribe()
		assert.Equal(t, 1, h.Subscribers())

		cancel()
		cancel()
		assert.Equal(t, 0, h.Subscribers())
		_, open := <-ch
		assert.False(t, open)

		h.Notify(i.Event{Kind: i.EventStep})
	})

	t.Run("path length is remembered and published", func(t *testing.T) {
		h := NewHub(0)
		ch, cancel := h.Subscribe()
		defer cancel()

		id := uuid.New()
		h.ReportPathLength(id, 26)

		run, length := h.LastPathLength()
		assert.Equal(t, id, run)
		assert.Equal(t, 26, length)

		ev := <-ch
		assert.Equal(t, i.EventPathLength, ev.Kind)
		assert.Equal(t, 26, ev.PathLength)
	})
}
