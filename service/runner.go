package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/pathfinding"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

// Runner errors.
var (
	ErrMissingEndpoints     = errors.New("start or goal is not set")
	ErrGenerationInProgress = errors.New("maze generation in progress")
	ErrCancelled            = errors.New("run cancelled")
	ErrMissingSettings      = errors.New("settings provider is required")
)

const (
	defaultMaxSpeedExponent = 10
	defaultTimeUnit         = time.Millisecond
	minGenerationSize       = 3

	maxDelayExponent = 30 // caps a single pause at about a million time units
)

var _ i.AlgorithmRunner = &Runner{}

// RunnerOption configures optional Runner parameters.
type RunnerOption func(*Runner)

// WithLogger sets the runner logger.
func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithSeed makes every run reproducible from seed.
func WithSeed(seed int64) RunnerOption {
	return func(r *Runner) { r.seeds = rand.New(rand.NewSource(seed)) }
}

// WithTimeUnit sets the length of one animation delay unit.
func WithTimeUnit(d time.Duration) RunnerOption {
	return func(r *Runner) { r.timeUnit = d }
}

// WithMaxSpeedExponent sets K in the delay formula 2^(K-speed)-1.
func WithMaxSpeedExponent(k int) RunnerOption {
	return func(r *Runner) { r.maxExponent = k }
}

// RunnerConfig holds the collaborators of a Runner.
type RunnerConfig struct {
	Rows     int                  // Rows of every generated grid.
	Cols     int                  // Columns of every generated grid.
	Settings i.SettingsProvider   // Animation speed and gate count, queried per step.
	Notifier i.StepNotifier       // Told about every step. Optional.
	Reporter i.PathLengthReporter // Told about found path lengths. Optional.
}

type run struct {
	id     uuid.UUID
	phase  i.Phase
	cancel context.CancelFunc
	done   chan struct{}
	steps  atomic.Int64
	err    error // written before done is closed
}

func (rn *run) running() bool {
	select {
	case <-rn.done:
		return false
	default:
		return true
	}
}

// Runner executes one maze algorithm at a time on a background goroutine.
// Starting a new run cancels the previous one and waits until it has unwound,
// so the grid never has two writers.
type Runner struct {
	rows        int
	cols        int
	grid        *maze.Grid
	settings    i.SettingsProvider
	notifier    i.StepNotifier
	reporter    i.PathLengthReporter
	maxExponent int
	timeUnit    time.Duration
	seeds       *rand.Rand
	logger      *log.Logger
	current     *run
	sync.Mutex
}

// NewRunner creates a runner with an empty, fully walled grid.
func NewRunner(c RunnerConfig, options ...RunnerOption) (*Runner, error) {
	if c.Settings == nil {
		return nil, ErrMissingSettings
	}

	grid, err := maze.New(c.Rows, c.Cols)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		rows:        c.Rows,
		cols:        c.Cols,
		grid:        grid,
		settings:    c.Settings,
		notifier:    c.Notifier,
		reporter:    c.Reporter,
		maxExponent: defaultMaxSpeedExponent,
		timeUnit:    defaultTimeUnit,
	}

	for _, opt := range options {
		opt(r)
	}

	if r.notifier == nil {
		r.notifier = nopNotifier{}
	}
	if r.reporter == nil {
		r.reporter = nopReporter{}
	}
	if r.seeds == nil {
		r.seeds = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if r.logger == nil {
		r.logger = log.New(os.Stdout, "[RUNNER] ", log.LstdFlags)
	}

	return r, nil
}

// StartGeneration cancels the active run, installs a fresh grid and carves a
// maze on it, followed by the extra gates and the start and goal placement.
func (r *Runner) StartGeneration() (uuid.UUID, error) {
	r.Lock()
	defer r.Unlock()

	if r.rows < minGenerationSize || r.cols < minGenerationSize {
		return uuid.Nil, fmt.Errorf("%w: generation needs at least %dx%d", maze.ErrInvalidSize, minGenerationSize, minGenerationSize)
	}

	r.stopLocked()

	grid, err := maze.New(r.rows, r.cols)
	if err != nil {
		return uuid.Nil, err
	}
	r.grid = grid

	rng := rand.New(rand.NewSource(r.seeds.Int63()))
	rn := r.launch(i.PhaseGeneration, func(_ *run, step maze.StepFunc) error {
		return maze.NewGenerator(rng, step).Generate(grid, r.settings.ExtraGates)
	})
	return rn.id, nil
}

// StartPathfinding resets the current maze to passages and searches it.
func (r *Runner) StartPathfinding() (uuid.UUID, error) {
	r.Lock()
	defer r.Unlock()

	if r.current != nil && r.current.running() && r.current.phase == i.PhaseGeneration {
		return uuid.Nil, ErrGenerationInProgress
	}

	grid := r.grid
	if _, ok := grid.Start(); !ok {
		return uuid.Nil, ErrMissingEndpoints
	}
	if _, ok := grid.Goal(); !ok {
		return uuid.Nil, ErrMissingEndpoints
	}

	r.stopLocked()
	grid.ResetToPassage()

	rn := r.launch(i.PhasePathfinding, func(rn *run, step maze.StepFunc) error {
		res, err := pathfinding.NewFinder(step).FindPath(grid)
		if err != nil {
			return err
		}
		r.reporter.ReportPathLength(rn.id, res.Length)
		r.logger.Printf("%s[INFO]%s run %s found a path of length %d after %d expansions", config.LogInfoColor, config.LogColorReset, rn.id, res.Length, res.ExpandedNodes)
		return nil
	})
	return rn.id, nil
}

// ShowTestMap cancels the active run and installs a canned map.
func (r *Runner) ShowTestMap(number int) error {
	r.Lock()
	defer r.Unlock()

	r.stopLocked()

	grid, err := maze.NewTestMap(number, r.rows, r.cols)
	if err != nil {
		return err
	}
	r.grid = grid
	r.notifier.Notify(i.Event{Phase: i.PhaseTestMap, Kind: i.EventStep})
	r.logger.Printf("%s[INFO]%s installed test map %d", config.LogInfoColor, config.LogColorReset, number)
	return nil
}

// Cancel stops the active run, if any, and waits for it to unwind.
func (r *Runner) Cancel() {
	r.Lock()
	defer r.Unlock()
	r.stopLocked()
}

// Wait blocks until the active run ends and returns its error. A cancelled run returns nil.
func (r *Runner) Wait() error {
	r.Lock()
	rn := r.current
	r.Unlock()

	if rn == nil {
		return nil
	}
	<-rn.done
	if errors.Is(rn.err, ErrCancelled) {
		return nil
	}
	return rn.err
}

// Grid returns the grid the runner currently works on.
func (r *Runner) Grid() *maze.Grid {
	r.Lock()
	defer r.Unlock()
	return r.grid
}

// Status reports the active or last run.
func (r *Runner) Status() i.Status {
	r.Lock()
	defer r.Unlock()

	rn := r.current
	if rn == nil {
		return i.Status{}
	}

	s := i.Status{
		RunID:   rn.id,
		Phase:   rn.phase,
		Running: rn.running(),
		Steps:   int(rn.steps.Load()),
	}
	if !s.Running && rn.err != nil && !errors.Is(rn.err, ErrCancelled) {
		s.Error = rn.err.Error()
	}
	return s
}

// stopLocked cancels the active run and waits for its goroutine to exit.
func (r *Runner) stopLocked() {
	if r.current == nil {
		return
	}
	r.current.cancel()
	<-r.current.done
}

func (r *Runner) launch(phase i.Phase, body func(*run, maze.StepFunc) error) *run {
	ctx, cancel := context.WithCancel(context.Background())
	rn := &run{
		id:     uuid.New(),
		phase:  phase,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	r.current = rn
	r.logger.Printf("%s[INFO]%s started %s run %s", config.LogInfoColor, config.LogColorReset, phase, rn.id)

	go func() {
		defer close(rn.done)
		defer cancel()

		rn.err = body(rn, r.stepFunc(ctx, rn))
		r.finish(rn)
	}()

	return rn
}

func (r *Runner) finish(rn *run) {
	ev := i.Event{RunID: rn.id, Phase: rn.phase, Kind: i.EventFinished, Step: int(rn.steps.Load())}

	switch {
	case rn.err == nil:
		r.logger.Printf("%s[INFO]%s %s run %s finished after %d steps", config.LogInfoColor, config.LogColorReset, rn.phase, rn.id, ev.Step)
	case errors.Is(rn.err, ErrCancelled):
		r.logger.Printf("%s[INFO]%s %s run %s cancelled after %d steps", config.LogInfoColor, config.LogColorReset, rn.phase, rn.id, ev.Step)
	default:
		ev.Error = rn.err.Error()
		r.logger.Printf("%s[ERROR]%s %s run %s: %s", config.LogErrorColor, config.LogColorReset, rn.phase, rn.id, rn.err)
	}

	r.notifier.Notify(ev)
}

// stepFunc publishes the step, then pauses for the configured delay. The
// pause is also the only point where cancellation is observed.
func (r *Runner) stepFunc(ctx context.Context, rn *run) maze.StepFunc {
	return func() error {
		step := rn.steps.Add(1)
		r.notifier.Notify(i.Event{RunID: rn.id, Phase: rn.phase, Kind: i.EventStep, Step: int(step)})
		return r.pause(ctx, rn.phase)
	}
}

func (r *Runner) pause(ctx context.Context, phase i.Phase) error {
	delay := time.Duration(Delay(r.settings.AnimationSpeed(phase), r.maxExponent)) * r.timeUnit
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}

	if ctx.Err() != nil {
		return ErrCancelled
	}
	return nil
}

// Delay returns the number of time units to wait for the given speed:
// 2^(maxExponent-speed)-1, and zero once speed reaches maxExponent.
func Delay(speed, maxExponent int) int64 {
	exp := maxExponent - speed
	if exp <= 0 {
		return 0
	}
	if exp > maxDelayExponent {
		exp = maxDelayExponent
	}
	return int64(1)<<exp - 1
}

type nopNotifier struct{}

func (nopNotifier) Notify(i.Event) {}

type nopReporter struct{}

func (nopReporter) ReportPathLength(uuid.UUID, int) {}
