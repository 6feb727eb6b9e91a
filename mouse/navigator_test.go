package mouse

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/WRH-05/polymaze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopLogger satisfies the navigator's logger dependency in tests.
type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}
func (nopLogger) Debug(string)   {}

// fakeDriver is a deterministic in-memory simulator. It answers wall
// queries from a fully known maze, tracks the robot's pose from the
// movement commands it receives, and records every command line it is
// sent. Reset answers can be scripted per cycle; once the script runs
// out it keeps answering false.
type fakeDriver struct {
	truth   *maze.Maze
	pos     maze.Cell
	heading maze.Direction

	resets   []bool
	acked    int
	queryErr error
	commands []string
}

func newFakeDriver(truth *maze.Maze) *fakeDriver {
	return &fakeDriver{truth: truth, heading: maze.North}
}

func (f *fakeDriver) record(format string, args ...any) {
	f.commands = append(f.commands, fmt.Sprintf(format, args...))
}

func (f *fakeDriver) MazeWidth() (int, error) {
	if f.queryErr != nil {
		return 0, f.queryErr
	}
	return f.truth.Width, nil
}

func (f *fakeDriver) MazeHeight() (int, error) {
	if f.queryErr != nil {
		return 0, f.queryErr
	}
	return f.truth.Height, nil
}

func (f *fakeDriver) wall(quarterTurns int) (bool, error) {
	if f.queryErr != nil {
		return false, f.queryErr
	}
	return f.truth.IsWall(f.pos, f.heading.Rotated(quarterTurns)), nil
}

func (f *fakeDriver) WallFront() (bool, error) { return f.wall(0) }
func (f *fakeDriver) WallRight() (bool, error) { return f.wall(1) }
func (f *fakeDriver) WallBack() (bool, error)  { return f.wall(2) }
func (f *fakeDriver) WallLeft() (bool, error)  { return f.wall(3) }

func (f *fakeDriver) WasReset() (bool, error) {
	if f.queryErr != nil {
		return false, f.queryErr
	}
	if len(f.resets) == 0 {
		return false, nil
	}
	v := f.resets[0]
	f.resets = f.resets[1:]
	return v, nil
}

func (f *fakeDriver) MoveForward(cells int) {
	f.record("moveForward %d", cells)
	for i := 0; i < cells; i++ {
		f.pos = f.pos.Neighbor(f.heading)
	}
}

func (f *fakeDriver) TurnRight() {
	f.record("turnRight")
	f.heading = f.heading.RotatedRight()
}

func (f *fakeDriver) TurnLeft() {
	f.record("turnLeft")
	f.heading = f.heading.RotatedLeft()
}

// AckReset mirrors the simulator: the robot is put back on the start
// cell facing North.
func (f *fakeDriver) AckReset() {
	f.record("ackReset")
	f.acked++
	f.pos = maze.Cell{}
	f.heading = maze.North
}

func (f *fakeDriver) SetWall(c maze.Cell, d maze.Direction) {
	f.record("setWall %d %d %s", c.X, c.Y, d.Letter())
}

func (f *fakeDriver) ClearWall(c maze.Cell, d maze.Direction) {
	f.record("clearWall %d %d %s", c.X, c.Y, d.Letter())
}

func (f *fakeDriver) SetColor(c maze.Cell, color byte) {
	f.record("setColor %d %d %c", c.X, c.Y, color)
}

func (f *fakeDriver) ClearColor(c maze.Cell) { f.record("clearColor %d %d", c.X, c.Y) }
func (f *fakeDriver) ClearAllColor()         { f.record("clearAllColor") }

func (f *fakeDriver) SetText(c maze.Cell, text string) {
	f.record("setText %d %d %s", c.X, c.Y, text)
}

func (f *fakeDriver) ClearText(c maze.Cell) { f.record("clearText %d %d", c.X, c.Y) }
func (f *fakeDriver) ClearAllText()         { f.record("clearAllText") }

func emptyMaze(t *testing.T, width, height int) *maze.Maze {
	t.Helper()
	m, err := maze.New(width, height)
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	t.Run("invalid max steps", func(t *testing.T) {
		_, err := New(newFakeDriver(emptyMaze(t, 3, 3)), nopLogger{}, 0)
		assert.ErrorIs(t, err, ErrInvalidMaxSteps)
	})

	t.Run("driver failure surfaces", func(t *testing.T) {
		f := newFakeDriver(emptyMaze(t, 3, 3))
		f.queryErr = errors.New("stream closed")

		_, err := New(f, nopLogger{}, 100)
		assert.ErrorContains(t, err, "stream closed")
	})

	t.Run("paints start and goal markers", func(t *testing.T) {
		f := newFakeDriver(emptyMaze(t, 3, 3))
		_, err := New(f, nopLogger{}, 100)
		require.NoError(t, err)

		assert.Contains(t, f.commands, "setColor 0 0 G")
		assert.Contains(t, f.commands, "setColor 1 1 R")
	})
}

func TestTurnTo(t *testing.T) {
	f := newFakeDriver(emptyMaze(t, 3, 3))
	n, err := New(f, nopLogger{}, 100)
	require.NoError(t, err)

	for h := 0; h < 4; h++ {
		for target := 0; target < 4; target++ {
			heading := maze.Direction(h)
			want := maze.Direction(target)

			n.state.Heading = heading
			f.heading = heading
			f.commands = nil

			n.turnTo(want)

			assert.Equal(t, want, n.state.Heading, "%s -> %s", heading, want)
			assert.Equal(t, want, f.heading, "%s -> %s", heading, want)
			assert.LessOrEqual(t, len(f.commands), 2, "%s -> %s", heading, want)
		}
	}
}

func TestTurnTo_SingleRightTurn(t *testing.T) {
	f := newFakeDriver(emptyMaze(t, 3, 3))
	n, err := New(f, nopLogger{}, 100)
	require.NoError(t, err)

	f.commands = nil
	n.turnTo(maze.East)

	assert.Equal(t, []string{"turnRight"}, f.commands)
	assert.Equal(t, maze.East, n.state.Heading)
}

func TestTurnTo_HalfTurnIsTwoRights(t *testing.T) {
	f := newFakeDriver(emptyMaze(t, 3, 3))
	n, err := New(f, nopLogger{}, 100)
	require.NoError(t, err)

	f.commands = nil
	n.turnTo(maze.South)

	assert.Equal(t, []string{"turnRight", "turnRight"}, f.commands)
	assert.Equal(t, maze.South, n.state.Heading)
}

func TestRun_Empty3x3(t *testing.T) {
	f := newFakeDriver(emptyMaze(t, 3, 3))
	n, err := New(f, nopLogger{}, 100)
	require.NoError(t, err)

	require.NoError(t, n.Run())

	// Reached the center during exploration, then returned to start.
	assert.Equal(t, SpeedRunning, n.state.Phase)
	assert.Equal(t, maze.Cell{}, f.pos)
	assert.True(t, n.state.Visited(maze.Cell{X: 1, Y: 1}))
}

func TestRun_GeneratedMazes(t *testing.T) {
	for _, tt := range []struct {
		width, height int
		seed          int64
	}{
		{8, 8, 1},
		{8, 8, 2},
		{16, 16, 3},
		{16, 16, 4},
		{7, 10, 5},
	} {
		t.Run(fmt.Sprintf("%dx%d seed %d", tt.width, tt.height, tt.seed), func(t *testing.T) {
			truth, err := maze.Generate(tt.width, tt.height, rand.New(rand.NewSource(tt.seed)))
			require.NoError(t, err)

			f := newFakeDriver(truth)
			n, err := New(f, nopLogger{}, 10000)
			require.NoError(t, err)

			require.NoError(t, n.Run())
			assert.Equal(t, maze.Cell{}, f.pos)
			assert.Equal(t, SpeedRunning, n.state.Phase)
		})
	}
}

func TestRun_StepCeiling(t *testing.T) {
	truth, err := maze.Generate(16, 16, rand.New(rand.NewSource(8)))
	require.NoError(t, err)

	n, err := New(newFakeDriver(truth), nopLogger{}, 3)
	require.NoError(t, err)

	assert.ErrorIs(t, n.Run(), ErrStepLimit)
}

func TestRun_NoMoveIsFatal(t *testing.T) {
	truth := emptyMaze(t, 5, 5)
	// Box the start cell in; South and West are already the boundary.
	truth.SetWall(maze.Cell{}, maze.North)
	truth.SetWall(maze.Cell{}, maze.East)

	n, err := New(newFakeDriver(truth), nopLogger{}, 100)
	require.NoError(t, err)

	assert.ErrorIs(t, n.Run(), ErrNoMove)
}

func TestRun_QueryFailureSurfaces(t *testing.T) {
	f := newFakeDriver(emptyMaze(t, 5, 5))
	n, err := New(f, nopLogger{}, 100)
	require.NoError(t, err)

	f.queryErr = errors.New("simulator went away")
	assert.ErrorContains(t, n.Run(), "simulator went away")
}

func TestRun_ResetRestartsTheRun(t *testing.T) {
	f := newFakeDriver(emptyMaze(t, 5, 5))
	// Let the robot move twice, then signal a reset.
	f.resets = []bool{false, false, true}

	n, err := New(f, nopLogger{}, 1000)
	require.NoError(t, err)

	require.NoError(t, n.Run())

	assert.Equal(t, 1, f.acked)
	assert.Equal(t, maze.Cell{}, f.pos)
	// The overlays were wiped and the start marker reapplied after the ack.
	assert.Contains(t, f.commands, "clearAllColor")

	var ackIdx, clearIdx int
	for idx, cmd := range f.commands {
		switch cmd {
		case "ackReset":
			ackIdx = idx
		case "clearAllColor":
			clearIdx = idx
		}
	}
	assert.Greater(t, clearIdx, ackIdx)
}

func TestRun_BackToBackResets(t *testing.T) {
	f := newFakeDriver(emptyMaze(t, 5, 5))
	f.resets = []bool{true, true}

	n, err := New(f, nopLogger{}, 1000)
	require.NoError(t, err)

	require.NoError(t, n.Run())
	assert.Equal(t, 2, f.acked)
	assert.Equal(t, maze.Cell{}, f.pos)
}

func TestReset_RestoresConstructionState(t *testing.T) {
	f := newFakeDriver(emptyMaze(t, 5, 5))
	n, err := New(f, nopLogger{}, 1000)
	require.NoError(t, err)

	// Dirty every piece of state a run would touch.
	n.state.Pos = maze.Cell{X: 3, Y: 2}
	n.state.Heading = maze.West
	n.state.Phase = SpeedRunning
	n.state.MarkVisited(maze.Cell{X: 3, Y: 2})
	n.maze.SetWall(maze.Cell{X: 1, Y: 1}, maze.North)
	n.goals = []maze.Cell{{}}

	n.reset()

	assert.Equal(t, maze.Cell{}, n.state.Pos)
	assert.Equal(t, maze.North, n.state.Heading)
	assert.Equal(t, Exploring, n.state.Phase)
	assert.Equal(t, 1, n.state.VisitedCount())
	assert.Equal(t, maze.CenterGoals(5, 5), n.goals)
	assert.False(t, n.maze.IsWall(maze.Cell{X: 1, Y: 1}, maze.North))

	// A second reset yields the identical state.
	before := n.maze.String()
	n.reset()
	assert.Equal(t, before, n.maze.String())
	assert.Equal(t, 1, n.state.VisitedCount())
	assert.Equal(t, maze.CenterGoals(5, 5), n.goals)
}

func TestScanWalls_TranslatesRelativeReadings(t *testing.T) {
	truth := emptyMaze(t, 5, 5)
	truth.SetWall(maze.Cell{}, maze.North)
	truth.SetWall(maze.Cell{}, maze.East)

	f := newFakeDriver(truth)
	n, err := New(f, nopLogger{}, 100)
	require.NoError(t, err)

	// Face East so "front" is East and "left" is North.
	n.state.Heading = maze.East
	f.heading = maze.East

	require.NoError(t, n.scanWalls())

	assert.True(t, n.maze.IsWall(maze.Cell{}, maze.North))
	assert.True(t, n.maze.IsWall(maze.Cell{}, maze.East))
	assert.Contains(t, f.commands, "setWall 0 0 n")
	assert.Contains(t, f.commands, "setWall 0 0 e")
	// Symmetry propagated to the neighbors.
	assert.True(t, n.maze.IsWall(maze.Cell{X: 1, Y: 0}, maze.West))
	assert.True(t, n.maze.IsWall(maze.Cell{X: 0, Y: 1}, maze.South))
}

func TestSelectDirection_PrefersUnvisitedNeighbors(t *testing.T) {
	f := newFakeDriver(emptyMaze(t, 5, 5))
	n, err := New(f, nopLogger{}, 100)
	require.NoError(t, err)

	// Robot at (1,1): (1,0) was already visited, the rest were not. The
	// visited southern neighbor is closer to the goal set than the
	// northern one, but the unvisited bonus must win.
	n.state.Pos = maze.Cell{X: 1, Y: 1}
	n.state.MarkVisited(maze.Cell{X: 1, Y: 1})
	n.state.MarkVisited(maze.Cell{X: 1, Y: 0})

	dm, err := maze.Flood(n.maze, []maze.Cell{{X: 1, Y: 0}})
	require.NoError(t, err)
	n.dist = dm

	dir, ok := n.selectDirection()
	require.True(t, ok)
	assert.Equal(t, maze.North, dir)
}

func TestSelectDirection_SpeedRunFollowsDistance(t *testing.T) {
	f := newFakeDriver(emptyMaze(t, 5, 5))
	n, err := New(f, nopLogger{}, 100)
	require.NoError(t, err)

	n.state.Phase = SpeedRunning
	n.state.Pos = maze.Cell{X: 1, Y: 1}
	n.goals = []maze.Cell{{}}

	dm, err := maze.Flood(n.maze, n.goals)
	require.NoError(t, err)
	n.dist = dm

	// (0,1) and (1,0) both sit at distance 1; canonical order breaks the
	// tie in favor of South over West.
	dir, ok := n.selectDirection()
	require.True(t, ok)
	assert.Equal(t, maze.South, dir)
}
