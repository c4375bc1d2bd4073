package executor

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/Cyclone1070/stepagent/internal/config"
)

// Command describes one process to run.
type Command struct {
	Argv    []string
	Dir     string
	Env     []string
	Timeout time.Duration // 0 means no limit beyond the context
}

// Result is what a finished process left behind.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor runs real processes with os/exec.
type OSCommandExecutor struct {
	config *config.Config
}

func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{config: cfg}
}

// Run starts c and waits for it. When c.Timeout elapses the process group is
// interrupted and, after the configured grace period, killed; the error is
// ErrTimeout. Cancelling ctx kills the group at once and returns ctx.Err().
// A non-zero exit is reported through Result.ExitCode and the returned error.
func (e *OSCommandExecutor) Run(ctx context.Context, c Command) (*Result, error) {
	if len(c.Argv) == 0 {
		return nil, ErrEmptyCommand
	}

	limit := int(e.config.Tools.MaxCommandOutputSize)
	sample := e.config.Tools.BinaryDetectionSample
	stdout := newCappedOutput(limit, sample)
	stderr := newCappedOutput(limit, sample)

	// exec.CommandContext would kill only the shell, not its children.
	cmd := exec.Command(c.Argv[0], c.Argv[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: c.Argv[0], Cause: err, Stage: "start"}
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	var deadline <-chan time.Time
	if c.Timeout > 0 {
		timer := time.NewTimer(c.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	var err error
	select {
	case err = <-waitErr:
	case <-ctx.Done():
		killGroup(cmd)
		<-waitErr
		err = ctx.Err()
	case <-deadline:
		e.stopGracefully(cmd, waitErr)
		err = ErrTimeout
	}

	return &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  exitCode(err),
		Truncated: stdout.truncated || stderr.truncated,
	}, err
}

func (e *OSCommandExecutor) stopGracefully(cmd *exec.Cmd, waitErr <-chan error) {
	interruptGroup(cmd)
	grace := time.Duration(e.config.Tools.GracefulShutdownMs) * time.Millisecond
	select {
	case <-waitErr:
	case <-time.After(grace):
		killGroup(cmd)
		<-waitErr
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
