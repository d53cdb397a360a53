package maze

// Position represents the position of a cell in the maze grid.
type Position struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Move returns the position one step away in direction d.
func (p Position) Move(d Direction) Position {
	delta := d.delta()
	return Position{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Manhattan returns the sum of the absolute row and column differences.
func (p Position) Manhattan(o Position) int {
	return abs(p.Row-o.Row) + abs(p.Col-o.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is one of the four orthogonal moves on the grid.
type Direction int

const (
	NoDirection Direction = iota
	Up
	Right
	Down
	Left
)

// Directions lists the moves in the order the search inspects them.
var Directions = [4]Direction{Up, Left, Right, Down}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return ""
	}
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return NoDirection
	}
}

func (d Direction) delta() Position {
	switch d {
	case Up:
		return Position{Row: -1}
	case Down:
		return Position{Row: 1}
	case Left:
		return Position{Col: -1}
	case Right:
		return Position{Col: 1}
	default:
		return Position{}
	}
}

// MarshalText implements encoding.TextMarshaler so directions serialise by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to NoDirection.
func (d *Direction) UnmarshalText(text []byte) error {
	*d = NoDirection
	for _, dir := range Directions {
		if dir.String() == string(text) {
			*d = dir
		}
	}
	return nil
}
