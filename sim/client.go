/*
Package sim speaks the micromouse simulator's text line protocol over a
reader/writer pair (stdin and stdout in production).

Commands are single fire-and-forget lines. Queries write a line and block
for the reply, skipping any "ack"/"reset" acknowledgment tokens the
simulator interleaves into the response stream. Every written line is
flushed immediately: the simulator blocks on our output.
*/
package sim

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/WRH-05/polymaze/maze"
)

// Client implements the driver capability expected by the mouse package.
type Client struct {
	r *bufio.Reader
	w *bufio.Writer
}

// NewClient wraps the given streams in a protocol client.
func NewClient(r io.Reader, w io.Writer) *Client {
	return &Client{
		r: bufio.NewReader(r),
		w: bufio.NewWriter(w),
	}
}

// command emits one fire-and-forget protocol line.
func (c *Client) command(line string) {
	fmt.Fprintln(c.w, line)
	_ = c.w.Flush()
}

// query emits a protocol line and returns the simulator's reply, skipping
// interleaved acknowledgment tokens.
func (c *Client) query(line string) (string, error) {
	c.command(line)
	for {
		reply, err := c.r.ReadString('\n')
		reply = strings.TrimSpace(reply)
		if err != nil && !(err == io.EOF && reply != "") {
			return "", fmt.Errorf("reading %q reply: %w", line, err)
		}
		if reply == "ack" || reply == "reset" {
			continue
		}
		return reply, nil
	}
}

func (c *Client) intQuery(cmd string) (int, error) {
	reply, err := c.query(cmd)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(reply)
	if err != nil {
		return 0, fmt.Errorf("parsing %q reply %q: %w", cmd, reply, err)
	}
	return v, nil
}

func (c *Client) boolQuery(cmd string) (bool, error) {
	reply, err := c.query(cmd)
	if err != nil {
		return false, err
	}
	return reply == "true", nil
}

// MazeWidth queries the maze width in cells.
func (c *Client) MazeWidth() (int, error) { return c.intQuery("mazeWidth") }

// MazeHeight queries the maze height in cells.
func (c *Client) MazeHeight() (int, error) { return c.intQuery("mazeHeight") }

// WallFront reports a wall ahead of the robot.
func (c *Client) WallFront() (bool, error) { return c.boolQuery("wallFront") }

// WallRight reports a wall to the robot's right.
func (c *Client) WallRight() (bool, error) { return c.boolQuery("wallRight") }

// WallBack reports a wall behind the robot.
func (c *Client) WallBack() (bool, error) { return c.boolQuery("wallBack") }

// WallLeft reports a wall to the robot's left.
func (c *Client) WallLeft() (bool, error) { return c.boolQuery("wallLeft") }

// WasReset reports whether an external reset was requested since the
// last check.
func (c *Client) WasReset() (bool, error) { return c.boolQuery("wasReset") }

// MoveForward advances the robot by the given number of cells.
func (c *Client) MoveForward(cells int) {
	c.command(fmt.Sprintf("moveForward %d", cells))
}

// TurnRight rotates the robot 90 degrees clockwise in place.
func (c *Client) TurnRight() { c.command("turnRight") }

// TurnLeft rotates the robot 90 degrees counterclockwise in place.
func (c *Client) TurnLeft() { c.command("turnLeft") }

// AckReset acknowledges an observed reset signal.
func (c *Client) AckReset() { c.command("ackReset") }

// SetWall shows a discovered wall in the visualizer.
func (c *Client) SetWall(cell maze.Cell, d maze.Direction) {
	c.command(fmt.Sprintf("setWall %d %d %s", cell.X, cell.Y, d.Letter()))
}

// ClearWall removes a wall from the visualizer.
func (c *Client) ClearWall(cell maze.Cell, d maze.Direction) {
	c.command(fmt.Sprintf("clearWall %d %d %s", cell.X, cell.Y, d.Letter()))
}

// SetColor highlights a cell with the given color letter.
func (c *Client) SetColor(cell maze.Cell, color byte) {
	c.command(fmt.Sprintf("setColor %d %d %c", cell.X, cell.Y, color))
}

// ClearColor removes the highlight from a cell.
func (c *Client) ClearColor(cell maze.Cell) {
	c.command(fmt.Sprintf("clearColor %d %d", cell.X, cell.Y))
}

// ClearAllColor removes every cell highlight.
func (c *Client) ClearAllColor() { c.command("clearAllColor") }

// SetText draws text on a cell.
func (c *Client) SetText(cell maze.Cell, text string) {
	c.command(fmt.Sprintf("setText %d %d %s", cell.X, cell.Y, text))
}

// ClearText removes the text from a cell.
func (c *Client) ClearText(cell maze.Cell) {
	c.command(fmt.Sprintf("clearText %d %d", cell.X, cell.Y))
}

// ClearAllText removes every cell text.
func (c *Client) ClearAllText() { c.command("clearAllText") }
