package maze

import "math/rand"

// Generate builds a random perfect maze with Wilson's algorithm: repeated
// loop-erased random walks from unvisited cells are merged into the
// visited tree, opening one wall per walk step. Every cell ends up
// reachable from every other cell. The caller supplies the random source,
// so a fixed seed yields a fixed maze.
//
// Generated mazes serve as fixtures for flood-fill and navigation tests;
// the controller itself only ever discovers walls through its sensors.
func Generate(width, height int, rng *rand.Rand) (*Maze, error) {
	m, err := New(width, height)
	if err != nil {
		return nil, err
	}

	// Start fully walled; walks knock walls down.
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			m.walls[x][y] = North.Bit() | East.Bit() | South.Bit() | West.Bit()
		}
	}

	visited := make(map[Cell]struct{})
	visited[Cell{X: rng.Intn(width), Y: rng.Intn(height)}] = struct{}{}

	for len(visited) < width*height {
		for cell, dir := range m.randomWalk(rng, visited) {
			m.openWall(cell, dir)
			visited[cell] = struct{}{}
		}
	}

	return m, nil
}

// randomWalk walks randomly from an unvisited cell until it hits the
// visited tree, recording the final exit direction of every cell touched.
// Overwriting a revisited cell's direction erases the loop.
func (m *Maze) randomWalk(rng *rand.Rand, visited map[Cell]struct{}) map[Cell]Direction {
	cell := m.randomUnvisited(rng, visited)
	visits := make(map[Cell]Direction)

	for {
		dirs := m.inBoundDirections(cell)
		dir := dirs[rng.Intn(len(dirs))]
		visits[cell] = dir

		next := cell.Neighbor(dir)
		if _, included := visited[next]; included {
			break
		}
		cell = next
	}

	return visits
}

// randomUnvisited selects a random cell that is not yet part of the tree.
func (m *Maze) randomUnvisited(rng *rand.Rand, visited map[Cell]struct{}) Cell {
	for {
		c := Cell{X: rng.Intn(m.Width), Y: rng.Intn(m.Height)}
		if _, included := visited[c]; !included {
			return c
		}
	}
}

// inBoundDirections lists the directions whose neighbor stays inside the
// grid.
func (m *Maze) inBoundDirections(c Cell) []Direction {
	out := make([]Direction, 0, directionCount)
	for _, d := range Directions {
		if m.InBound(c.Neighbor(d)) {
			out = append(out, d)
		}
	}
	return out
}

// openWall removes the wall between the cell and its neighbor in the
// given direction, on both sides.
func (m *Maze) openWall(c Cell, d Direction) {
	n := c.Neighbor(d)
	if !m.InBound(n) {
		return
	}
	m.walls[c.X][c.Y] &^= d.Bit()
	m.walls[n.X][n.Y] &^= d.Opposite().Bit()
}
