package maze

import (
	"fmt"
	"math/rand"
)

const minGenerationSize = 3

// StepFunc is called after every state changing step. A non-nil error stops
// the running algorithm and is returned to its caller unchanged.
type StepFunc func() error

// Generator carves perfect mazes with the recursive backtracker and can
// relax them with extra gates.
type Generator struct {
	rng  *rand.Rand
	step StepFunc
}

// NewGenerator creates a generator drawing from rng. step may be nil.
func NewGenerator(rng *rand.Rand, step StepFunc) *Generator {
	if step == nil {
		step = func() error { return nil }
	}
	return &Generator{rng: rng, step: step}
}

// Generate carves a maze from a random cell, opens up to gates() extra gates
// and places the start and the goal.
func (gen *Generator) Generate(g *Grid, gates func() int) error {
	if g.Rows() < minGenerationSize || g.Cols() < minGenerationSize {
		return fmt.Errorf("%w: generation needs at least %dx%d", ErrInvalidSize, minGenerationSize, minGenerationSize)
	}

	if err := gen.Carve(g, gen.randomPosition(g, false)); err != nil {
		return err
	}
	if err := gen.AddExtraGates(g, gates); err != nil {
		return err
	}
	return gen.PlaceStartAndGoal(g)
}

// Carve runs the recursive backtracker from pos. The recursion is unrolled
// onto an explicit stack; the visiting order is the same as the recursive form.
func (gen *Generator) Carve(g *Grid, pos Position) error {
	if err := g.checkBounds(pos); err != nil {
		return err
	}

	stack := []Position{pos}
	if err := gen.mark(g, pos, Marked); err != nil {
		return err
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		if !gen.hasBlockNeighbor(g, cur) {
			stack = stack[:len(stack)-1]
			if err := gen.mark(g, cur, Passage); err != nil {
				return err
			}
			continue
		}

		dir := gen.nextDirection(g, cur)
		if err := g.OpenWall(cur, dir); err != nil {
			return err
		}

		next := cur.Move(dir)
		stack = append(stack, next)
		if err := gen.mark(g, next, Marked); err != nil {
			return err
		}
	}

	return nil
}

// nextDirection picks the carving direction. Both coins are always flipped
// so that a fixed seed replays the same maze.
func (gen *Generator) nextDirection(g *Grid, pos Position) Direction {
	topOK := g.IsBlock(pos.Move(Up))
	bottomOK := g.IsBlock(pos.Move(Down))
	leftOK := g.IsBlock(pos.Move(Left))
	rightOK := g.IsBlock(pos.Move(Right))

	if gen.coin() && (topOK || bottomOK) || !(leftOK || rightOK) {
		if gen.coin() && bottomOK || !topOK {
			return Down
		}
		return Up
	}

	if gen.coin() && rightOK || !leftOK {
		return Right
	}
	return Left
}

func (gen *Generator) hasBlockNeighbor(g *Grid, pos Position) bool {
	return g.IsBlock(pos.Move(Up)) ||
		g.IsBlock(pos.Move(Down)) ||
		g.IsBlock(pos.Move(Left)) ||
		g.IsBlock(pos.Move(Right))
}

func (gen *Generator) mark(g *Grid, pos Position, s State) error {
	if err := g.SetState(pos, s); err != nil {
		return err
	}
	return gen.step()
}

// AddExtraGates tries to open one vertical and one horizontal gate per
// iteration. A gate is only opened when both of its ends touch an existing
// border line, otherwise the attempt is skipped. gates is queried before
// every iteration.
func (gen *Generator) AddExtraGates(g *Grid, gates func() int) error {
	if gates == nil {
		return nil
	}
	if g.Rows() < minGenerationSize || g.Cols() < minGenerationSize {
		return fmt.Errorf("%w: gates need at least %dx%d", ErrInvalidSize, minGenerationSize, minGenerationSize)
	}

	for i := 0; i < gates(); i++ {
		p := gen.randomPosition(g, true)
		topBorder := g.HasWall(p, Up) ||
			g.HasWall(p.Move(Up), Right) ||
			g.HasWall(p.Move(Right), Up)
		bottomBorder := g.HasWall(p, Down) ||
			g.HasWall(p.Move(Down), Right) ||
			g.HasWall(p.Move(Right), Down)
		if g.HasWall(p, Right) && topBorder && bottomBorder {
			if err := gen.openGate(g, p, Right); err != nil {
				return err
			}
		}

		p = gen.randomPosition(g, true)
		leftBorder := g.HasWall(p, Left) ||
			g.HasWall(p.Move(Left), Down) ||
			g.HasWall(p.Move(Down), Left)
		rightBorder := g.HasWall(p, Right) ||
			g.HasWall(p.Move(Right), Down) ||
			g.HasWall(p.Move(Down), Right)
		if g.HasWall(p, Down) && leftBorder && rightBorder {
			if err := gen.openGate(g, p, Down); err != nil {
				return err
			}
		}
	}

	return nil
}

func (gen *Generator) openGate(g *Grid, p Position, d Direction) error {
	if err := g.OpenWall(p, d); err != nil {
		return err
	}
	return gen.step()
}

// PlaceStartAndGoal draws two distinct random cells and marks them.
func (gen *Generator) PlaceStartAndGoal(g *Grid) error {
	if g.Rows()*g.Cols() < 2 {
		return fmt.Errorf("%w: need two cells for start and goal", ErrInvalidSize)
	}

	start := gen.randomPosition(g, false)
	goal := gen.randomPosition(g, false)
	for goal == start {
		goal = gen.randomPosition(g, false)
	}

	if err := g.SetStart(start); err != nil {
		return err
	}
	if err := g.SetGoal(goal); err != nil {
		return err
	}
	return gen.step()
}

// randomPosition returns a uniform position, one cell away from the border
// when indent is set.
func (gen *Generator) randomPosition(g *Grid, indent bool) Position {
	if indent {
		return Position{Row: 1 + gen.rng.Intn(g.Rows()-2), Col: 1 + gen.rng.Intn(g.Cols()-2)}
	}
	return Position{Row: gen.rng.Intn(g.Rows()), Col: gen.rng.Intn(g.Cols())}
}

func (gen *Generator) coin() bool {
	return gen.rng.Intn(2) == 1
}
