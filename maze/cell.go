package maze

// Cell identifies a maze cell by its grid coordinates. Cell (0,0) is the
// bottom-left corner; North is +Y and East is +X, matching the simulator's
// coordinate convention.
type Cell struct {
	X int
	Y int
}

// Neighbor returns the cell one step away in the given direction.
func (c Cell) Neighbor(d Direction) Cell {
	dx, dy := d.Offset()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Direction is one of the four absolute compass directions.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West

	directionCount = 4
)

// Directions lists the four directions in canonical order. Flood-fill
// relaxation and move-selection tie breaking both follow this order.
var Directions = [directionCount]Direction{North, East, South, West}

// Bit returns the wall-mask bit for the direction:
// North=1, East=2, South=4, West=8.
func (d Direction) Bit() uint8 { return 1 << d }

// Opposite returns the direction rotated by 180 degrees.
func (d Direction) Opposite() Direction { return (d + 2) % directionCount }

// RotatedRight returns the direction after one clockwise quarter turn.
func (d Direction) RotatedRight() Direction { return (d + 1) % directionCount }

// RotatedLeft returns the direction after one counterclockwise quarter turn.
func (d Direction) RotatedLeft() Direction { return (d + 3) % directionCount }

// Rotated returns the direction rotated clockwise by the given number of
// quarter turns. The count must be non-negative.
func (d Direction) Rotated(quarterTurns int) Direction {
	return Direction((int(d) + quarterTurns) % directionCount)
}

// Offset returns the grid delta of one step in the direction.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	default:
		return -1, 0
	}
}

// Letter returns the single-letter wire encoding of the direction used by
// the simulator's wall commands.
func (d Direction) Letter() string {
	return [directionCount]string{"n", "e", "s", "w"}[d]
}

func (d Direction) String() string {
	return [directionCount]string{"North", "East", "South", "West"}[d]
}
