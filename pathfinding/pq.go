package pathfinding

import "github.com/beka-birhanu/vinom-maze/maze"

type queueItem struct {
	pos   maze.Position
	f     int
	index int
}

// openSet is a binary heap ordered by f, indexed so that members can be removed.
type openSet []*queueItem

func (q openSet) Len() int           { return len(q) }
func (q openSet) Less(i, j int) bool { return q[i].f < q[j].f }
func (q openSet) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openSet) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *openSet) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}
