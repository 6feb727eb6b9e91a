// Package i holds the interfaces consumed by the mouse package.
package i

import "github.com/WRH-05/polymaze/maze"

// Driver is the robot's sensor/actuator capability. Queries block until
// the simulator or hardware answers; commands are fire-and-forget. The
// navigator is the only caller, so implementations need no locking.
type Driver interface {
	// Queries
	MazeWidth() (int, error)
	MazeHeight() (int, error)
	WallFront() (bool, error)
	WallRight() (bool, error)
	WallBack() (bool, error)
	WallLeft() (bool, error)
	WasReset() (bool, error)

	// Movement commands
	MoveForward(cells int)
	TurnRight()
	TurnLeft()
	AckReset()

	// Visualization commands
	SetWall(c maze.Cell, d maze.Direction)
	ClearWall(c maze.Cell, d maze.Direction)
	SetColor(c maze.Cell, color byte)
	ClearColor(c maze.Cell)
	ClearAllColor()
	SetText(c maze.Cell, text string)
	ClearText(c maze.Cell)
	ClearAllText()
}

// Logger is the leveled logger the navigator reports through.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
	Debug(string)
}
