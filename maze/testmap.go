package maze

import "fmt"

const (
	// MinTestMapSize is the smallest side length the canned maps fit in.
	MinTestMapSize = 25

	testMapOpen      = 1 // only start and goal
	testMapPartition = 2 // ~shape: '|'
	testMapL         = 3 // ~shape: '_____|'
)

var (
	TestMapStart = Position{Row: 15, Col: 7}
	TestMapGoal  = Position{Row: 15, Col: 23}
)

// NewTestMap builds one of the canned demonstration maps on an open grid.
func NewTestMap(number, rows, cols int) (*Grid, error) {
	if rows < MinTestMapSize || cols < MinTestMapSize {
		return nil, fmt.Errorf("%w: test maps need at least %dx%d", ErrInvalidSize, MinTestMapSize, MinTestMapSize)
	}

	g, err := NewOpen(rows, cols)
	if err != nil {
		return nil, err
	}

	switch number {
	case testMapOpen:
	case testMapPartition:
		for row := 10; row < 20; row++ {
			if err := g.CloseWall(Position{Row: row, Col: 14}, Right); err != nil {
				return nil, err
			}
		}
	case testMapL:
		for row := 13; row < 16; row++ {
			if err := g.CloseWall(Position{Row: row, Col: 20}, Right); err != nil {
				return nil, err
			}
		}
		for col := 7; col < 21; col++ {
			if err := g.CloseWall(Position{Row: 15, Col: col}, Down); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTestMap, number)
	}

	if err := g.SetStart(TestMapStart); err != nil {
		return nil, err
	}
	if err := g.SetGoal(TestMapGoal); err != nil {
		return nil, err
	}
	return g, nil
}
