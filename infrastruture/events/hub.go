package events

import (
	"sync"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const defaultBufferSize = 64

var (
	_ i.StepNotifier       = &Hub{}
	_ i.PathLengthReporter = &Hub{}
	_ i.EventSource        = &Hub{}
)

// Hub fans events out to every subscriber. Sends never block: a subscriber
// that falls behind misses events, which is fine for redraw requests.
type Hub struct {
	subscribers map[int]chan i.Event
	nextID      int
	bufferSize  int
	lastLength  int
	lastRun     uuid.UUID
	sync.RWMutex
}

// NewHub creates a hub whose subscriber channels buffer bufferSize events.
func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Hub{
		subscribers: make(map[int]chan i.Event),
		bufferSize:  bufferSize,
	}
}

// Notify implements i.StepNotifier.
func (h *Hub) Notify(e i.Event) {
	h.RLock()
	defer h.RUnlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}

// ReportPathLength implements i.PathLengthReporter.
func (h *Hub) ReportPathLength(runID uuid.UUID, length int) {
	h.Lock()
	h.lastLength = length
	h.lastRun = runID
	h.Unlock()

	h.Notify(i.Event{RunID: runID, Phase: i.PhasePathfinding, Kind: i.EventPathLength, PathLength: length})
}

// LastPathLength returns the most recently reported length and its run.
func (h *Hub) LastPathLength() (uuid.UUID, int) {
	h.RLock()
	defer h.RUnlock()
	return h.lastRun, h.lastLength
}

// Subscribe implements i.EventSource.
func (h *Hub) Subscribe() (<-chan i.Event, func()) {
	h.Lock()
	defer h.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan i.Event, h.bufferSize)
	h.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.Lock()
			defer h.Unlock()
			delete(h.subscribers, id)
			close(ch)
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.RLock()
	defer h.RUnlock()
	return len(h.subscribers)
}
