// Package shell provides executeCommand, which runs a command line through
// the configured shell inside the workspace. Commands are not sandboxed.
package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Cyclone1070/stepagent/internal/config"
	"github.com/Cyclone1070/stepagent/internal/tool"
	"github.com/Cyclone1070/stepagent/internal/tool/executor"
)

// Name is the tool name exposed to the model.
const Name = "executeCommand"

// ShellTool executes commands on the local machine.
type ShellTool struct {
	commandExecutor commandExecutor
	config          *config.Config
	workspaceRoot   string
}

// NewShellTool creates a new ShellTool with injected dependencies.
func NewShellTool(commandExecutor commandExecutor, cfg *config.Config, workspaceRoot string) *ShellTool {
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	return &ShellTool{
		commandExecutor: commandExecutor,
		config:          cfg,
		workspaceRoot:   workspaceRoot,
	}
}

func (t *ShellTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name: Name,
		Description: "Execute a shell command in the workspace and return its stdout and stderr. " +
			"Use URL-friendly names for files/folders (no spaces). Combine related commands with && when possible.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"command": {
					Type:        tool.TypeString,
					Description: "The command to execute",
				},
			},
			Required: []string{"command"},
		},
	}
}

// Invoke runs input with `<shell> -c`. The result is "stdout <out>\nstderr <err>".
// Non-zero exits, timeouts and cancellation are errors.
func (t *ShellTool) Invoke(ctx context.Context, input string) (string, error) {
	command := strings.TrimSpace(input)
	if command == "" {
		return "", ErrCommandRequired
	}

	timeout := time.Duration(t.config.Tools.ShellTimeoutSeconds) * time.Second
	result, execErr := t.commandExecutor.Run(ctx, executor.Command{
		Argv:    []string{t.config.Tools.Shell, "-c", command},
		Dir:     t.workspaceRoot,
		Env:     os.Environ(),
		Timeout: timeout,
	})
	if execErr != nil {
		switch {
		case errors.Is(execErr, executor.ErrTimeout):
			return "", &TimeoutError{Command: command, Duration: timeout}
		case errors.Is(execErr, context.Canceled), errors.Is(execErr, context.DeadlineExceeded):
			return "", &CancelledError{Command: command, Cause: execErr}
		case result != nil && result.ExitCode > 0:
			return "", &CommandFailedError{
				Command:  command,
				ExitCode: result.ExitCode,
				Stdout:   result.Stdout,
				Stderr:   result.Stderr,
			}
		default:
			return "", execErr
		}
	}

	out := fmt.Sprintf("stdout %s\nstderr %s", result.Stdout, result.Stderr)
	if result.Truncated {
		out += "\n[output truncated]"
	}
	return out, nil
}
