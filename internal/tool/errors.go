package tool

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyName is returned when registering a tool whose declaration has no name.
var ErrEmptyName = errors.New("tool name is empty")

// DuplicateToolError is returned when two tools share a name at registry construction.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool %q registered twice", e.Name)
}

// UnknownToolError is returned when the model asks for a tool that is not registered.
// It is distinct from a registered tool's own runtime failure.
type UnknownToolError struct {
	Name      string
	Available []string
}

func (e *UnknownToolError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("tool %q does not exist", e.Name)
	}
	return fmt.Sprintf("tool %q does not exist. Available tools: %s", e.Name, strings.Join(e.Available, ", "))
}

// ExecutionFailedError wraps a registered tool's own failure.
// Its message is the cause's message, unchanged.
type ExecutionFailedError struct {
	Tool  string
	Cause error
}

func (e *ExecutionFailedError) Error() string {
	return e.Cause.Error()
}

func (e *ExecutionFailedError) Unwrap() error { return e.Cause }
