/*
Package maze provides the walled cell grid shared by the maze generator and
the pathfinder.

The Grid owns every Cell. Walls are only ever changed in pairs through OpenWall
and CloseWall, so a wall seen from one side is always seen from the other.
Readers such as renderers may inspect the grid while a single writer mutates it.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrInvalidSize    = errors.New("invalid grid size")
	ErrOutOfBounds    = errors.New("position out of bounds")
	ErrUnknownTestMap = errors.New("unknown test map")
)

// Grid is a fixed size rectangle of walled cells with an optional start and goal.
type Grid struct {
	rows  int
	cols  int
	cells [][]Cell
	start *Position
	goal  *Position
	sync.RWMutex
}

// New creates a grid of fully walled Block cells.
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}

	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
		for c := range cells[r] {
			cells[r][c] = newBlockCell()
		}
	}

	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// NewOpen creates a grid of Passage cells without any walls.
func NewOpen(rows, cols int) (*Grid, error) {
	g, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = Cell{State: Passage}
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBound reports whether p lies inside the grid.
func (g *Grid) InBound(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

func (g *Grid) checkBounds(p Position) error {
	if !g.InBound(p) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, p.Row, p.Col, g.rows, g.cols)
	}
	return nil
}

// Cell returns a copy of the cell at p.
func (g *Grid) Cell(p Position) (Cell, error) {
	if err := g.checkBounds(p); err != nil {
		return Cell{}, err
	}
	g.RLock()
	defer g.RUnlock()
	c := g.cells[p.Row][p.Col]
	if c.Parent != nil {
		parent := *c.Parent
		c.Parent = &parent
	}
	return c, nil
}

// State returns the state of the cell at p. Positions outside the grid report Block.
func (g *Grid) State(p Position) State {
	if !g.InBound(p) {
		return Block
	}
	g.RLock()
	defer g.RUnlock()
	return g.cells[p.Row][p.Col].State
}

// IsBlock reports whether p is inside the grid and still an uncarved Block.
func (g *Grid) IsBlock(p Position) bool {
	return g.InBound(p) && g.State(p) == Block
}

// HasWall reports whether the cell at p has a wall on side d.
// Positions outside the grid are treated as solid.
func (g *Grid) HasWall(p Position, d Direction) bool {
	if !g.InBound(p) {
		return true
	}
	g.RLock()
	defer g.RUnlock()
	return g.cells[p.Row][p.Col].HasWall(d)
}

// OpenWall removes the wall on side d of p together with the matching wall of the neighbour.
func (g *Grid) OpenWall(p Position, d Direction) error {
	return g.setWallPair(p, d, false)
}

// CloseWall adds the wall on side d of p together with the matching wall of the neighbour.
func (g *Grid) CloseWall(p Position, d Direction) error {
	return g.setWallPair(p, d, true)
}

func (g *Grid) setWallPair(p Position, d Direction, present bool) error {
	next := p.Move(d)
	if err := g.checkBounds(p); err != nil {
		return err
	}
	if err := g.checkBounds(next); err != nil {
		return err
	}

	g.Lock()
	defer g.Unlock()
	g.cells[p.Row][p.Col].setWall(d, present)
	g.cells[next.Row][next.Col].setWall(d.Opposite(), present)
	return nil
}

// SetState changes the state of the cell at p.
func (g *Grid) SetState(p Position, s State) error {
	if err := g.checkBounds(p); err != nil {
		return err
	}
	g.Lock()
	defer g.Unlock()
	g.cells[p.Row][p.Col].State = s
	return nil
}

// SetCost records the A* costs of the cell at p and its predecessor.
func (g *Grid) SetCost(p Position, parent Position, cost, heuristic int) error {
	if err := g.checkBounds(p); err != nil {
		return err
	}
	g.Lock()
	defer g.Unlock()
	c := &g.cells[p.Row][p.Col]
	c.G = cost
	c.H = heuristic
	c.F = cost + heuristic
	c.Parent = &parent
	return nil
}

// SetStartCost initialises the A* fields of the search source.
func (g *Grid) SetStartCost(p Position, heuristic int) error {
	if err := g.checkBounds(p); err != nil {
		return err
	}
	g.Lock()
	defer g.Unlock()
	c := &g.cells[p.Row][p.Col]
	c.G = 0
	c.H = heuristic
	c.F = heuristic
	c.Parent = nil
	return nil
}

// Annotate marks the link between from and its successor to on the reconstructed path.
func (g *Grid) Annotate(from Position, toward Direction, to Position) error {
	if err := g.checkBounds(from); err != nil {
		return err
	}
	if err := g.checkBounds(to); err != nil {
		return err
	}
	g.Lock()
	defer g.Unlock()
	g.cells[from.Row][from.Col].DirTowardGoal = toward
	g.cells[to.Row][to.Col].DirFromStart = toward.Opposite()
	return nil
}

// SetStart marks p as the search source.
func (g *Grid) SetStart(p Position) error {
	if err := g.checkBounds(p); err != nil {
		return err
	}
	g.Lock()
	defer g.Unlock()
	g.start = &p
	g.cells[p.Row][p.Col].State = Start
	return nil
}

// SetGoal marks p as the search destination.
func (g *Grid) SetGoal(p Position) error {
	if err := g.checkBounds(p); err != nil {
		return err
	}
	g.Lock()
	defer g.Unlock()
	g.goal = &p
	g.cells[p.Row][p.Col].State = Goal
	return nil
}

// Start returns the search source, if set.
func (g *Grid) Start() (Position, bool) {
	g.RLock()
	defer g.RUnlock()
	if g.start == nil {
		return Position{}, false
	}
	return *g.start, true
}

// Goal returns the search destination, if set.
func (g *Grid) Goal() (Position, bool) {
	g.RLock()
	defer g.RUnlock()
	if g.goal == nil {
		return Position{}, false
	}
	return *g.goal, true
}

// ResetToPassage prepares the grid for a new search. Every cell becomes a
// Passage, the search fields are cleared and start and goal are marked again.
// The wall layout is kept.
func (g *Grid) ResetToPassage() {
	g.Lock()
	defer g.Unlock()
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c].State = Passage
			g.cells[r][c].clearSearch()
		}
	}
	if g.start != nil {
		g.cells[g.start.Row][g.start.Col].State = Start
	}
	if g.goal != nil {
		g.cells[g.goal.Row][g.goal.Col].State = Goal
	}
}

// String provides a textual representation of the grid.
func (g *Grid) String() string {
	g.RLock()
	defer g.RUnlock()

	var sb strings.Builder

	// Top boundary
	sb.WriteString("+")
	for c := 0; c < g.cols; c++ {
		if g.cells[0][c].TopWall {
			sb.WriteString("---+")
		} else {
			sb.WriteString("   +")
		}
	}
	sb.WriteString("\n")

	for r := 0; r < g.rows; r++ {
		// Cell rows
		if g.cells[r][0].LeftWall {
			sb.WriteString("|")
		} else {
			sb.WriteString(" ")
		}
		for c := 0; c < g.cols; c++ {
			cell := g.cells[r][c]
			sb.WriteString(" " + glyph(cell) + " ")
			if cell.RightWall {
				sb.WriteString("|")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")

		// Wall rows
		sb.WriteString("+")
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c].BottomWall {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func glyph(c Cell) string {
	switch c.State {
	case Start:
		return "S"
	case Goal, AchievedGoal:
		return "G"
	case Marked:
		return "~"
	case OpenSet:
		return "o"
	case ClosedSet:
		if c.DirTowardGoal != NoDirection {
			return "*"
		}
		return "."
	case Block:
		return "#"
	default:
		return " "
	}
}
