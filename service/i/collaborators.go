package i

import (
	"github.com/google/uuid"
)

// Phase names the algorithm a run executes.
type Phase string

const (
	PhaseGeneration  Phase = "generation"
	PhasePathfinding Phase = "pathfinding"
	PhaseTestMap     Phase = "test_map"
)

// EventKind tells subscribers what changed.
type EventKind string

const (
	EventStep       EventKind = "step"        // the grid changed
	EventFinished   EventKind = "finished"    // a run ended
	EventPathLength EventKind = "path_length" // a search succeeded
)

// Event is published after every mutating step of a run.
type Event struct {
	RunID      uuid.UUID `json:"run_id"`
	Phase      Phase     `json:"phase"`
	Kind       EventKind `json:"kind"`
	Step       int       `json:"step"`
	PathLength int       `json:"path_length,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// StepNotifier is told about every state change so that it can redraw the grid.
type StepNotifier interface {
	// Notify must not block the running algorithm.
	Notify(Event)
}

// SettingsProvider supplies the user adjustable parameters. It is queried on
// every step, never cached.
type SettingsProvider interface {
	// AnimationSpeed returns the speed for the phase, from 0 (slow) up to the
	// configured maximum exponent (instant).
	AnimationSpeed(Phase) int

	// ExtraGates returns the number of extra gate iterations.
	ExtraGates() int
}

// PathLengthReporter receives the length of a successfully found path.
type PathLengthReporter interface {
	ReportPathLength(runID uuid.UUID, length int)
}
