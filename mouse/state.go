package mouse

import "github.com/WRH-05/polymaze/maze"

// Phase is the navigation mode the robot is currently in.
type Phase uint8

const (
	// Exploring maps the maze while approaching the center goals.
	Exploring Phase = iota
	// SpeedRunning follows the shortest known path back to the start.
	SpeedRunning
)

func (p Phase) String() string {
	if p == SpeedRunning {
		return "speed-run"
	}
	return "explore"
}

// State is the robot's pose and exploration progress: position, heading,
// phase, and the set of cells ever occupied. It is owned exclusively by
// the navigation loop and mutated only within a cycle.
type State struct {
	Pos     maze.Cell
	Heading maze.Direction
	Phase   Phase

	visited map[maze.Cell]struct{}
}

// NewState creates a state at the start cell, facing North, exploring.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores the construction values: position (0,0), heading North,
// phase Exploring, and a visited set holding only the start cell.
func (s *State) Reset() {
	s.Pos = maze.Cell{}
	s.Heading = maze.North
	s.Phase = Exploring
	s.visited = map[maze.Cell]struct{}{{}: {}}
}

// MarkVisited inserts the cell into the visited set.
func (s *State) MarkVisited(c maze.Cell) {
	s.visited[c] = struct{}{}
}

// Visited reports whether the robot has ever occupied the cell.
func (s *State) Visited(c maze.Cell) bool {
	_, included := s.visited[c]
	return included
}

// VisitedCount returns the number of distinct cells ever occupied.
func (s *State) VisitedCount() int {
	return len(s.visited)
}
