// Package settings keeps the user adjustable animation parameters in memory.
package settings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/beka-birhanu/vinom-maze/service/i"
)

const (
	MinAnimationSpeed = 0 // slowest
	MaxExtraGates     = 100
)

var (
	ErrOutOfRange   = errors.New("value out of range")
	ErrUnknownPhase = errors.New("unknown phase")
)

var _ i.SettingsStore = &Store{}

// Store holds the animation speed of each phase and the extra gate count.
type Store struct {
	maxSpeed         int
	generationSpeed  int
	pathfindingSpeed int
	extraGates       int
	sync.RWMutex
}

// Config holds the initial values of a Store.
type Config struct {
	MaxSpeed   int // fastest speed, equal to the delay exponent K
	Speed      int // initial speed of both phases
	ExtraGates int
}

// New creates a store. Initial values outside their range are clamped.
func New(c Config) *Store {
	if c.MaxSpeed < MinAnimationSpeed {
		c.MaxSpeed = MinAnimationSpeed
	}
	speed := clamp(c.Speed, MinAnimationSpeed, c.MaxSpeed)
	return &Store{
		maxSpeed:         c.MaxSpeed,
		generationSpeed:  speed,
		pathfindingSpeed: speed,
		extraGates:       clamp(c.ExtraGates, 0, MaxExtraGates),
	}
}

// AnimationSpeed implements i.SettingsProvider. Unknown phases run at full speed.
func (s *Store) AnimationSpeed(p i.Phase) int {
	s.RLock()
	defer s.RUnlock()
	switch p {
	case i.PhaseGeneration:
		return s.generationSpeed
	case i.PhasePathfinding:
		return s.pathfindingSpeed
	default:
		return s.maxSpeed
	}
}

// ExtraGates implements i.SettingsProvider.
func (s *Store) ExtraGates() int {
	s.RLock()
	defer s.RUnlock()
	return s.extraGates
}

// MaxAnimationSpeed returns the speed at which no delay is applied.
func (s *Store) MaxAnimationSpeed() int {
	return s.maxSpeed
}

// SetAnimationSpeed changes the speed of one phase.
func (s *Store) SetAnimationSpeed(p i.Phase, speed int) error {
	if speed < MinAnimationSpeed || speed > s.maxSpeed {
		return fmt.Errorf("%w: speed %d not in [%d,%d]", ErrOutOfRange, speed, MinAnimationSpeed, s.maxSpeed)
	}

	s.Lock()
	defer s.Unlock()
	switch p {
	case i.PhaseGeneration:
		s.generationSpeed = speed
	case i.PhasePathfinding:
		s.pathfindingSpeed = speed
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPhase, p)
	}
	return nil
}

// SetExtraGates changes the number of extra gate iterations.
func (s *Store) SetExtraGates(n int) error {
	if n < 0 || n > MaxExtraGates {
		return fmt.Errorf("%w: gates %d not in [0,%d]", ErrOutOfRange, n, MaxExtraGates)
	}

	s.Lock()
	defer s.Unlock()
	s.extraGates = n
	return nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
