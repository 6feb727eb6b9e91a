package maze

import "errors"

var ErrGoalOutOfBounds = errors.New("flood-fill goal cell outside the maze")

// Distance is a hop count in the flood-fill distance map.
type Distance int

// Unreachable marks a cell no wall-respecting path reaches from any goal.
const Unreachable Distance = -1

// Reachable reports whether d is an actual hop count.
func (d Distance) Reachable() bool { return d >= 0 }

// DistanceMap holds, for every cell, the shortest wall-respecting hop
// count to the nearest goal cell. It is recomputed wholesale after every
// wall discovery and has no identity across navigation cycles.
type DistanceMap struct {
	width  int
	height int
	dist   [][]Distance
}

// Flood computes the distance map for the maze and goal set with a
// multi-source breadth-first search: every cell starts Unreachable, all
// goals start at zero in insertion order, and the wavefront relaxes
// neighbors in canonical direction order whenever it improves on the
// recorded distance.
func Flood(m *Maze, goals []Cell) (*DistanceMap, error) {
	dm := &DistanceMap{
		width:  m.Width,
		height: m.Height,
		dist:   make([][]Distance, m.Width),
	}
	for x := range dm.dist {
		dm.dist[x] = make([]Distance, m.Height)
		for y := range dm.dist[x] {
			dm.dist[x][y] = Unreachable
		}
	}

	queue := make([]Cell, 0, m.Width*m.Height)
	for _, g := range goals {
		if !m.InBound(g) {
			return nil, ErrGoalOutOfBounds
		}
		dm.dist[g.X][g.Y] = 0
		queue = append(queue, g)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		next := dm.dist[cur.X][cur.Y] + 1

		for _, d := range Directions {
			if m.IsWall(cur, d) {
				continue
			}
			// No wall implies the neighbor is in bounds: the outer
			// boundary is always walled.
			n := cur.Neighbor(d)
			if got := dm.dist[n.X][n.Y]; got.Reachable() && got <= next {
				continue
			}
			dm.dist[n.X][n.Y] = next
			queue = append(queue, n)
		}
	}

	return dm, nil
}

// At returns the distance recorded for the cell. Out-of-range cells are
// Unreachable.
func (dm *DistanceMap) At(c Cell) Distance {
	if c.X < 0 || c.X >= dm.width || c.Y < 0 || c.Y >= dm.height {
		return Unreachable
	}
	return dm.dist[c.X][c.Y]
}
