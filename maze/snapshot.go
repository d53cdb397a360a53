package maze

// CellView is the serialisable form of a cell.
type CellView struct {
	Walls         [4]bool   `json:"walls"` // top, right, bottom, left
	State         string    `json:"state"`
	G             int       `json:"g"`
	H             int       `json:"h"`
	F             int       `json:"f"`
	DirFromStart  Direction `json:"dir_from_start,omitempty"`
	DirTowardGoal Direction `json:"dir_toward_goal,omitempty"`
}

// Snapshot is a consistent copy of the grid taken under a single read lock.
type Snapshot struct {
	Rows  int          `json:"rows"`
	Cols  int          `json:"cols"`
	Start *Position    `json:"start,omitempty"`
	Goal  *Position    `json:"goal,omitempty"`
	Cells [][]CellView `json:"cells"`
}

// Snapshot copies the grid for renderers.
func (g *Grid) Snapshot() Snapshot {
	g.RLock()
	defer g.RUnlock()

	s := Snapshot{
		Rows:  g.rows,
		Cols:  g.cols,
		Cells: make([][]CellView, g.rows),
	}
	if g.start != nil {
		start := *g.start
		s.Start = &start
	}
	if g.goal != nil {
		goal := *g.goal
		s.Goal = &goal
	}

	for r := range g.cells {
		s.Cells[r] = make([]CellView, g.cols)
		for c, cell := range g.cells[r] {
			s.Cells[r][c] = CellView{
				Walls:         [4]bool{cell.TopWall, cell.RightWall, cell.BottomWall, cell.LeftWall},
				State:         cell.State.String(),
				G:             cell.G,
				H:             cell.H,
				F:             cell.F,
				DirFromStart:  cell.DirFromStart,
				DirTowardGoal: cell.DirTowardGoal,
			}
		}
	}
	return s
}
