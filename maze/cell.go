package maze

// State is the visual and algorithmic state of a cell. It is shared by the
// generation and the pathfinding lifecycles.
type State int

const (
	Block        State = iota // Untouched cell with all four walls.
	Marked                    // Cell on the current carving stack.
	Passage                   // Carved cell, or any cell before a search.
	Start                     // Search source.
	Goal                      // Search destination, not yet discovered.
	AchievedGoal              // Destination discovered by the search.
	OpenSet                   // Cell waiting in the A* frontier.
	ClosedSet                 // Cell fully expanded by A*.
)

var stateNames = [...]string{"block", "marked", "passage", "start", "goal", "achieved_goal", "open", "closed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Cell represents a single cell in a maze grid.
// It includes properties for walls on each side, the current state and the
// working data of the A* search.
type Cell struct {
	TopWall    bool // TopWall indicates whether there is a wall on the top side of the cell.
	RightWall  bool // RightWall indicates whether there is a wall on the right side of the cell.
	BottomWall bool // BottomWall indicates whether there is a wall on the bottom side of the cell.
	LeftWall   bool // LeftWall indicates whether there is a wall on the left side of the cell.

	State State

	G      int       // Path cost from the start.
	H      int       // Heuristic estimate to the goal.
	F      int       // G + H.
	Parent *Position // Predecessor on the current best path, nil when unset.

	DirFromStart  Direction // Direction of the link back toward the start.
	DirTowardGoal Direction // Direction of the link toward the goal.
}

func newBlockCell() Cell {
	return Cell{
		TopWall:    true,
		RightWall:  true,
		BottomWall: true,
		LeftWall:   true,
		State:      Block,
	}
}

// HasWall reports whether the cell has a wall on the given side.
func (c *Cell) HasWall(d Direction) bool {
	switch d {
	case Up:
		return c.TopWall
	case Right:
		return c.RightWall
	case Down:
		return c.BottomWall
	case Left:
		return c.LeftWall
	default:
		return true
	}
}

func (c *Cell) setWall(d Direction, present bool) {
	switch d {
	case Up:
		c.TopWall = present
	case Right:
		c.RightWall = present
	case Down:
		c.BottomWall = present
	case Left:
		c.LeftWall = present
	}
}

func (c *Cell) clearSearch() {
	c.G, c.H, c.F = 0, 0, 0
	c.Parent = nil
	c.DirFromStart = NoDirection
	c.DirTowardGoal = NoDirection
}
