// Package pathfinding solves a carved maze.Grid with A*.
//
// The search uses the Manhattan distance as heuristic, a unit cost per move and
// only crosses walls that have been removed. Progress is written into the grid
// cell states so that a renderer can follow every expansion.
package pathfinding

import (
	"container/heap"
	"errors"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var (
	ErrInvalidStartOrGoal = errors.New("start or goal is not set")
	ErrNoPathFound        = errors.New("no path found")
)

// Result contains the outcome of a search.
type Result struct {
	Length        int             // g of the goal cell
	Path          []maze.Position // start to goal inclusive
	ExpandedNodes int
}

// Finder runs A* on a grid and calls step after every expansion and after
// every reconstructed link.
type Finder struct {
	step maze.StepFunc
}

// NewFinder creates a finder. step may be nil.
func NewFinder(step maze.StepFunc) *Finder {
	if step == nil {
		step = func() error { return nil }
	}
	return &Finder{step: step}
}

// FindPath searches from the grid's start to its goal. The grid must have been
// reset with ResetToPassage if it was searched before.
func (f *Finder) FindPath(g *maze.Grid) (Result, error) {
	start, ok := g.Start()
	if !ok {
		return Result{}, ErrInvalidStartOrGoal
	}
	goal, ok := g.Goal()
	if !ok {
		return Result{}, ErrInvalidStartOrGoal
	}

	s := &search{
		grid:  g,
		goal:  goal,
		open:  make(openSet, 0),
		items: make(map[maze.Position]*queueItem),
	}

	h := start.Manhattan(goal)
	if err := g.SetStartCost(start, h); err != nil {
		return Result{}, err
	}
	s.push(start, h)

	found := false
	expanded := 0
	for s.open.Len() > 0 {
		current := heap.Pop(&s.open).(*queueItem).pos
		delete(s.items, current)
		expanded++

		for _, d := range maze.Directions {
			if g.HasWall(current, d) {
				continue
			}
			if err := s.tryToOpen(current, current.Move(d)); err != nil {
				return Result{}, err
			}
		}

		if g.State(current) != maze.Start {
			if err := g.SetState(current, maze.ClosedSet); err != nil {
				return Result{}, err
			}
		}

		if err := f.step(); err != nil {
			return Result{}, err
		}

		if g.State(goal) == maze.AchievedGoal {
			found = true
			break
		}
	}

	if !found {
		return Result{ExpandedNodes: expanded}, ErrNoPathFound
	}

	path, err := f.reconstructPath(g, start, goal)
	if err != nil {
		return Result{}, err
	}

	goalCell, err := g.Cell(goal)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Length:        goalCell.G,
		Path:          path,
		ExpandedNodes: expanded,
	}, nil
}

type search struct {
	grid  *maze.Grid
	goal  maze.Position
	open  openSet
	items map[maze.Position]*queueItem
}

func (s *search) push(p maze.Position, f int) {
	item := &queueItem{pos: p, f: f}
	heap.Push(&s.open, item)
	s.items[p] = item
}

// tryToOpen adds next to the open set, or improves it when it is already there.
// Members of the open set are removed and pushed again because their key changes.
func (s *search) tryToOpen(parent, next maze.Position) error {
	if !s.grid.InBound(next) {
		return nil
	}

	switch s.grid.State(next) {
	case maze.Start, maze.Block, maze.ClosedSet:
		return nil
	}

	parentCell, err := s.grid.Cell(parent)
	if err != nil {
		return err
	}
	tentative := parentCell.G + 1

	if item, inOpen := s.items[next]; inOpen {
		heap.Remove(&s.open, item.index)
		delete(s.items, next)

		cell, err := s.grid.Cell(next)
		if err != nil {
			return err
		}
		if tentative < cell.G {
			if err := s.grid.SetCost(next, parent, tentative, cell.H); err != nil {
				return err
			}
			cell.G = tentative
		}
		s.push(next, cell.G+cell.H)
		return nil
	}

	state := maze.OpenSet
	if s.grid.State(next) == maze.Goal {
		state = maze.AchievedGoal
	}
	if err := s.grid.SetState(next, state); err != nil {
		return err
	}

	h := next.Manhattan(s.goal)
	if err := s.grid.SetCost(next, parent, tentative, h); err != nil {
		return err
	}
	s.push(next, tentative+h)
	return nil
}

// reconstructPath walks the parent links back from the goal and marks the
// direction of every link on both of its cells.
func (f *Finder) reconstructPath(g *maze.Grid, start, goal maze.Position) ([]maze.Position, error) {
	path := []maze.Position{goal}
	stage := goal
	for {
		cell, err := g.Cell(stage)
		if err != nil {
			return nil, err
		}
		if cell.Parent == nil {
			break
		}
		parent := *cell.Parent

		if err := g.Annotate(parent, linkDirection(parent, stage), stage); err != nil {
			return nil, err
		}
		path = append(path, parent)
		stage = parent

		if err := f.step(); err != nil {
			return nil, err
		}
	}

	if stage != start {
		return nil, ErrNoPathFound
	}

	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// linkDirection is the move from parent to child. Columns decide first.
func linkDirection(parent, child maze.Position) maze.Direction {
	switch {
	case parent.Col < child.Col:
		return maze.Right
	case parent.Col > child.Col:
		return maze.Left
	case parent.Row < child.Row:
		return maze.Down
	default:
		return maze.Up
	}
}
