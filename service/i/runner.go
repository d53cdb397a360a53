package i

import (
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// Status describes the active or last run.
type Status struct {
	RunID   uuid.UUID `json:"run_id"`
	Phase   Phase     `json:"phase"`
	Running bool      `json:"running"`
	Steps   int       `json:"steps"`
	Error   string    `json:"error,omitempty"`
}

// AlgorithmRunner owns the single background execution slot of a grid.
type AlgorithmRunner interface {
	// StartGeneration cancels any active run and starts carving a new maze.
	StartGeneration() (uuid.UUID, error)

	// StartPathfinding searches the current maze. It is refused while a maze is being generated.
	StartPathfinding() (uuid.UUID, error)

	// ShowTestMap cancels any active run and installs one of the canned maps.
	ShowTestMap(number int) error

	// Cancel stops the active run and waits for it to unwind.
	Cancel()

	// Grid returns the grid the runner currently works on.
	Grid() *maze.Grid

	// Status reports the active or last run.
	Status() Status
}

// SettingsStore is a SettingsProvider that can be changed at runtime.
type SettingsStore interface {
	SettingsProvider
	SetAnimationSpeed(Phase, int) error
	SetExtraGates(int) error
	MaxAnimationSpeed() int
}

// EventSource lets readers follow the published events.
type EventSource interface {
	// Subscribe returns a channel of events and a function that releases it.
	Subscribe() (<-chan Event, func())
}
