/*
Package mouse implements the navigation state machine of a flood-fill
micromouse: scan walls, recompute distances, pick the lowest-valued
unblocked neighbor, rotate and advance, switching from exploration to a
speed run at the center goals and back to the start cell.

The navigator drives a Driver capability for all sensing and actuation
and owns the wall model, robot state and goal set exclusively; the whole
loop is strictly synchronous.
*/
package mouse

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/WRH-05/polymaze/maze"
	"github.com/WRH-05/polymaze/mouse/i"
	"github.com/google/uuid"
)

// Navigation errors. ErrNoMove and ErrStepLimit are fatal for the run:
// a move is a physical action, so there is nothing to retry or roll back.
var (
	ErrInvalidMaxSteps = errors.New("max steps must be positive")
	ErrNoMove          = errors.New("no unblocked neighbor to move to")
	ErrStepLimit       = errors.New("step-count ceiling exceeded")
)

// Cell highlight colors understood by the simulator. Green marks the
// start cell and any reached goal, red the current goal set, blue the
// robot's cell while exploring, yellow while speed-running.
const (
	colorStart    = 'G'
	colorGoal     = 'R'
	colorExplore  = 'B'
	colorSpeedRun = 'Y'
)

// Exploration-continuation policy. Empirically tuned, not an invariant:
// unvisited neighbors get a scoring bonus large enough to beat any
// distance rank, and exploration stops at 90% cell coverage, or 70% when
// already standing on a goal.
const (
	unvisitedBonus     = 100
	coverageStop       = 0.9
	coverageStopAtGoal = 0.7
)

// stepResult is the typed outcome of one navigation cycle. Fatal outcomes
// travel as errors alongside it.
type stepResult uint8

const (
	stepContinue stepResult = iota
	stepComplete
)

// Navigator orchestrates the decision cycles of a single run.
type Navigator struct {
	driver i.Driver
	log    i.Logger

	maze  *maze.Maze
	state *State
	goals []maze.Cell
	dist  *maze.DistanceMap

	start    maze.Cell
	maxSteps int
	runID    uuid.UUID
}

// New builds a Navigator over the given driver: it queries the maze
// dimensions once, sizes the wall model, derives the parity-based center
// goal set, and paints the start and goal markers.
func New(driver i.Driver, log i.Logger, maxSteps int) (*Navigator, error) {
	if maxSteps <= 0 {
		return nil, ErrInvalidMaxSteps
	}

	width, err := driver.MazeWidth()
	if err != nil {
		return nil, fmt.Errorf("querying maze width: %w", err)
	}
	height, err := driver.MazeHeight()
	if err != nil {
		return nil, fmt.Errorf("querying maze height: %w", err)
	}

	m, err := maze.New(width, height)
	if err != nil {
		return nil, err
	}

	n := &Navigator{
		driver:   driver,
		log:      log,
		maze:     m,
		state:    NewState(),
		goals:    maze.CenterGoals(width, height),
		maxSteps: maxSteps,
		runID:    uuid.New(),
	}

	n.log.Info(fmt.Sprintf("run %s: maze %dx%d, goals %v", n.runID, width, height, n.goals))
	n.paintMarkers()
	return n, nil
}

// Run executes navigation cycles until the speed run completes (nil), a
// fatal condition occurs (ErrNoMove, ErrStepLimit), or the driver fails.
// The step ceiling is a runaway-loop safety net counted over the whole
// process lifetime; it deliberately survives external resets.
func (n *Navigator) Run() error {
	for step := 1; ; step++ {
		if step > n.maxSteps {
			n.log.Error(fmt.Sprintf("run %s: step ceiling %d exceeded at (%d,%d), phase %s",
				n.runID, n.maxSteps, n.state.Pos.X, n.state.Pos.Y, n.state.Phase))
			return ErrStepLimit
		}

		n.log.Debug(fmt.Sprintf("step %d at (%d,%d), phase %s",
			step, n.state.Pos.X, n.state.Pos.Y, n.state.Phase))

		res, err := n.cycle()
		if err != nil {
			return err
		}
		if res == stepComplete {
			n.log.Info(fmt.Sprintf("run %s: speed run complete after %d steps", n.runID, step))
			return nil
		}
	}
}

// cycle performs one decision cycle: reset check, wall scan, flood
// recomputation and distance redraw, goal handling, move selection, and
// the actual turn-and-advance.
func (n *Navigator) cycle() (stepResult, error) {
	wasReset, err := n.driver.WasReset()
	if err != nil {
		return stepContinue, fmt.Errorf("polling reset signal: %w", err)
	}
	if wasReset {
		n.reset()
		return stepContinue, nil
	}

	if err := n.scanWalls(); err != nil {
		return stepContinue, err
	}

	if n.state.Phase == Exploring {
		n.driver.SetColor(n.state.Pos, colorExplore)
	} else {
		n.driver.SetColor(n.state.Pos, colorSpeedRun)
	}

	dist, err := maze.Flood(n.maze, n.goals)
	if err != nil {
		return stepContinue, err
	}
	n.dist = dist
	n.publishDistances()

	if n.atGoal() {
		// Same green as the start marker.
		n.driver.SetColor(n.state.Pos, colorStart)
		if n.state.Phase == Exploring {
			n.log.Info(fmt.Sprintf("run %s: reached goal at (%d,%d), starting speed run to (%d,%d)",
				n.runID, n.state.Pos.X, n.state.Pos.Y, n.start.X, n.start.Y))
			n.state.Phase = SpeedRunning
			n.goals = []maze.Cell{n.start}
			return stepContinue, nil
		}
		return stepComplete, nil
	}

	dir, ok := n.selectDirection()
	if !ok {
		n.log.Error(fmt.Sprintf("run %s: no unblocked neighbor at (%d,%d), phase %s",
			n.runID, n.state.Pos.X, n.state.Pos.Y, n.state.Phase))
		return stepContinue, ErrNoMove
	}

	n.turnTo(dir)
	n.advance()
	return stepContinue, nil
}

// scanWalls reads the four relative wall sensors, translates each reading
// to an absolute direction using the current heading, and records every
// hit in both the wall model and the visualizer.
func (n *Navigator) scanWalls() error {
	readings := []struct {
		query        func() (bool, error)
		quarterTurns int // clockwise offset from the heading
	}{
		{n.driver.WallFront, 0},
		{n.driver.WallRight, 1},
		{n.driver.WallBack, 2},
		{n.driver.WallLeft, 3},
	}

	for _, r := range readings {
		hasWall, err := r.query()
		if err != nil {
			return fmt.Errorf("reading wall sensor: %w", err)
		}
		if !hasWall {
			continue
		}
		abs := n.state.Heading.Rotated(r.quarterTurns)
		n.maze.SetWall(n.state.Pos, abs)
		n.driver.SetWall(n.state.Pos, abs)
	}
	return nil
}

// publishDistances redraws every reachable cell's distance as cell text.
// Presentation only; the distance map itself is the source of truth.
func (n *Navigator) publishDistances() {
	n.driver.ClearAllText()
	for x := 0; x < n.maze.Width; x++ {
		for y := 0; y < n.maze.Height; y++ {
			c := maze.Cell{X: x, Y: y}
			if d := n.dist.At(c); d.Reachable() {
				n.driver.SetText(c, strconv.Itoa(int(d)))
			}
		}
	}
}

// paintMarkers highlights the start cell and the current goal set.
func (n *Navigator) paintMarkers() {
	n.driver.SetColor(n.start, colorStart)
	for _, g := range n.goals {
		n.driver.SetColor(g, colorGoal)
	}
}

// atGoal reports whether the robot stands on any current goal cell.
func (n *Navigator) atGoal() bool {
	for _, g := range n.goals {
		if g == n.state.Pos {
			return true
		}
	}
	return false
}

// selectDirection picks the next absolute direction to move, or reports
// that no unblocked neighbor exists.
func (n *Navigator) selectDirection() (maze.Direction, bool) {
	if n.state.Phase == Exploring && n.keepExploring() {
		return n.bestDirection(true)
	}
	return n.bestDirection(false)
}

// bestDirection returns the unblocked neighbor with the lowest score,
// ties resolved by canonical direction order. With the exploration bias
// on, unvisited neighbors score their distance minus a bonus large enough
// that new territory beats any visited cell.
func (n *Navigator) bestDirection(exploreBias bool) (maze.Direction, bool) {
	var best maze.Direction
	var bestScore int
	found := false

	for _, d := range maze.Directions {
		if n.maze.IsWall(n.state.Pos, d) {
			continue
		}
		next := n.state.Pos.Neighbor(d)
		dist := n.dist.At(next)
		if !dist.Reachable() {
			continue
		}
		score := int(dist)
		if exploreBias && !n.state.Visited(next) {
			score -= unvisitedBonus
		}
		if !found || score < bestScore {
			best, bestScore, found = d, score, true
		}
	}

	return best, found
}

// keepExploring is the tuned continuation policy: always follow an
// unvisited reachable neighbor; once standing on a goal with more than
// 70% of the cells covered, stop; otherwise continue until 90% coverage.
func (n *Navigator) keepExploring() bool {
	for _, d := range maze.Directions {
		if n.maze.IsWall(n.state.Pos, d) {
			continue
		}
		if !n.state.Visited(n.state.Pos.Neighbor(d)) {
			return true
		}
	}

	total := float64(n.maze.Width * n.maze.Height)
	covered := float64(n.state.VisitedCount())
	if n.atGoal() && covered > total*coverageStopAtGoal {
		return false
	}
	return covered < total*coverageStop
}

// turnTo rotates in place to face the target direction using at most two
// turn commands: a single quarter turn right or left, or two rights for a
// half turn. Rotation is open loop; every command is assumed to succeed.
func (n *Navigator) turnTo(target maze.Direction) {
	diff := (int(target) - int(n.state.Heading) + 4) % 4
	switch diff {
	case 1:
		n.driver.TurnRight()
	case 3:
		n.driver.TurnLeft()
	case 2:
		n.driver.TurnRight()
		n.driver.TurnRight()
	}
	n.state.Heading = target
}

// advance moves one cell forward and records the new cell as visited.
func (n *Navigator) advance() {
	n.driver.MoveForward(1)
	n.state.Pos = n.state.Pos.Neighbor(n.state.Heading)
	n.state.MarkVisited(n.state.Pos)
}

// reset acknowledges the external reset signal and restores the robot
// state, wall model, goal set and every visualizer overlay to their
// construction values. Idempotent: a second reset with no discoveries in
// between changes nothing further.
func (n *Navigator) reset() {
	n.driver.AckReset()

	n.state.Reset()
	n.maze.Reset()
	n.goals = maze.CenterGoals(n.maze.Width, n.maze.Height)

	n.driver.ClearAllColor()
	n.driver.ClearAllText()
	n.paintMarkers()

	n.runID = uuid.New()
	n.log.Info(fmt.Sprintf("external reset acknowledged, restarting as run %s", n.runID))
}
