// Package logger provides a small colored prefix logger for the controller.
//
// Every subsystem gets its own prefix and color; all records share the
// `[PREFIX] [LEVEL] message` shape. The writer is injected so the maze
// protocol on stdout is never polluted: the process always logs to stderr.
package logger

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/WRH-05/polymaze/config"
)

// Logger-related errors.
var (
	ErrEmptyPrefix = errors.New("logger prefix must not be empty")
	ErrNilWriter   = errors.New("logger writer must not be nil")
)

// level name to color mapping.
var levelColors = map[string]string{
	"INFO":    config.ColorGreen,
	"WARNING": config.ColorYellow,
	"ERROR":   config.ColorRed,
	"DEBUG":   config.ColorMagenta,
}

// Logger writes leveled, prefixed records to a single writer.
type Logger struct {
	prefix string
	color  string
	out    io.Writer
	debug  bool
	mu     sync.Mutex
}

// New creates a Logger with the given prefix, prefix color, and destination
// writer. The color should be one of the config.Color* constants.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	if out == nil {
		return nil, ErrNilWriter
	}
	return &Logger{prefix: prefix, color: color, out: out}, nil
}

// EnableDebug toggles emission of Debug records.
func (l *Logger) EnableDebug(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = on
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.log("INFO", msg)
}

// Warning logs a warning message.
func (l *Logger) Warning(msg string) {
	l.log("WARNING", msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.log("ERROR", msg)
}

// Debug logs a debug message. Dropped unless EnableDebug(true) was called.
func (l *Logger) Debug(msg string) {
	l.mu.Lock()
	on := l.debug
	l.mu.Unlock()
	if !on {
		return
	}
	l.log("DEBUG", msg)
}

func (l *Logger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s[%s]%s %s[%s]%s %s\n",
		time.Now().Format(time.RFC3339),
		l.color, l.prefix, config.ColorReset,
		levelColors[level], level, config.ColorReset,
		msg,
	)
}
