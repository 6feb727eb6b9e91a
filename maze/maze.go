/*
Package maze implements the discovered-wall model of a rectangular
micromouse maze and the flood-fill distance engine over it.

Every cell carries a 4-bit wall mask, one bit per compass direction.
SetWall maintains wall symmetry between neighboring cells, and the outer
boundary is pre-walled at construction and on every Reset, so a missing
wall always implies an in-bounds neighbor.

The package also provides parity-based center-goal derivation and a
Wilson's-algorithm random maze generator used as test infrastructure.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

const maxDimension = 64

var ErrInvalidDimensions = errors.New("invalid maze dimensions")

// Maze is the set of walls discovered so far in a Width x Height grid.
// Walls are only ever added, never removed, except by a full Reset.
type Maze struct {
	Width  int
	Height int
	walls  [][]uint8 // walls[x][y] is the wall mask of cell (x,y)
}

// New creates a maze of the given dimensions with only the outer boundary
// walls set.
func New(width, height int) (*Maze, error) {
	if min(width, height) <= 0 || max(width, height) > maxDimension {
		return nil, ErrInvalidDimensions
	}

	walls := make([][]uint8, width)
	for x := range walls {
		walls[x] = make([]uint8, height)
	}

	m := &Maze{Width: width, Height: height, walls: walls}
	m.initBoundaries()
	return m, nil
}

// InBound reports whether the cell lies inside the grid.
func (m *Maze) InBound(c Cell) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}

// IsWall reports whether a wall blocks the given side of the cell. Any
// direction that would leave the grid reports a wall, so callers never
// need separate bounds checks.
func (m *Maze) IsWall(c Cell, d Direction) bool {
	if !m.InBound(c) {
		return true
	}
	return m.walls[c.X][c.Y]&d.Bit() != 0
}

// SetWall records a wall on the given side of the cell and, when the
// neighbor on that side exists, the matching wall on the neighbor's
// opposite side. Setting an already-present wall is a no-op. Calling with
// an out-of-range cell is a programming error: sensor scans always run
// from the robot's current, in-bounds cell.
func (m *Maze) SetWall(c Cell, d Direction) {
	if !m.InBound(c) {
		panic(fmt.Sprintf("maze: SetWall on out-of-range cell (%d,%d)", c.X, c.Y))
	}
	m.walls[c.X][c.Y] |= d.Bit()
	if n := c.Neighbor(d); m.InBound(n) {
		m.walls[n.X][n.Y] |= d.Opposite().Bit()
	}
}

// Reset drops every discovered wall and re-applies the outer boundary,
// returning the maze to its freshly constructed state.
func (m *Maze) Reset() {
	for x := range m.walls {
		for y := range m.walls[x] {
			m.walls[x][y] = 0
		}
	}
	m.initBoundaries()
}

// initBoundaries pre-sets the four maze-boundary wall segments.
func (m *Maze) initBoundaries() {
	for x := 0; x < m.Width; x++ {
		m.walls[x][0] |= South.Bit()
		m.walls[x][m.Height-1] |= North.Bit()
	}
	for y := 0; y < m.Height; y++ {
		m.walls[0][y] |= West.Bit()
		m.walls[m.Width-1][y] |= East.Bit()
	}
}

// CenterGoals returns the goal cells at the maze center, chosen by the
// parity of the dimensions: odd x odd gives one cell, one even dimension
// gives two, even x even gives the four-cell center block.
func CenterGoals(width, height int) []Cell {
	cx, cy := width/2, height/2
	switch {
	case width%2 == 0 && height%2 == 0:
		return []Cell{{cx - 1, cy - 1}, {cx, cy - 1}, {cx - 1, cy}, {cx, cy}}
	case width%2 == 0:
		return []Cell{{cx - 1, cy}, {cx, cy}}
	case height%2 == 0:
		return []Cell{{cx, cy - 1}, {cx, cy}}
	default:
		return []Cell{{cx, cy}}
	}
}

// String provides a textual representation of the discovered walls, with
// row Height-1 on top.
func (m *Maze) String() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", m.Width) + "\n")

	for y := m.Height - 1; y >= 0; y-- {
		// Cell row
		cellRow := "|"
		for x := 0; x < m.Width; x++ {
			cellRow += "   "
			if m.IsWall(Cell{X: x, Y: y}, East) {
				cellRow += "|"
			} else {
				cellRow += " "
			}
		}
		b.WriteString(cellRow + "\n")

		// Wall row
		wallRow := "+"
		for x := 0; x < m.Width; x++ {
			if m.IsWall(Cell{X: x, Y: y}, South) {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		b.WriteString(wallRow + "\n")
	}

	return b.String()
}
