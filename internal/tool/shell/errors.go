package shell

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrCommandRequired is returned when the command line is blank.
var ErrCommandRequired = errors.New("command cannot be empty")

// TimeoutError is returned when a shell command exceeds its timeout.
type TimeoutError struct {
	Command  string
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %q timed out after %v", e.Command, e.Duration)
}

func (e *TimeoutError) Timeout() bool {
	return true
}

// CommandFailedError is returned when a command runs but exits non-zero.
type CommandFailedError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *CommandFailedError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "command failed with exit code %d: %s", e.ExitCode, e.Command)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		sb.WriteString("\n")
		sb.WriteString(stderr)
	}
	return sb.String()
}

// CancelledError is returned when the caller's context ends before the command does.
type CancelledError struct {
	Command string
	Cause   error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("command %q cancelled: %v", e.Command, e.Cause)
}

func (e *CancelledError) Unwrap() error { return e.Cause }
