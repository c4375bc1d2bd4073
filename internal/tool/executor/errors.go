package executor

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = errors.New("command timeout")

// ErrEmptyCommand is returned when asked to run an empty command line.
var ErrEmptyCommand = errors.New("command cannot be empty")

// CommandError reports a process that could not be started.
type CommandError struct {
	Cmd   string
	Cause error
	Stage string // "start"
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed at %s: %v", e.Cmd, e.Stage, e.Cause)
}
func (e *CommandError) Unwrap() error { return e.Cause }
