package shell

import (
	"context"

	"github.com/Cyclone1070/stepagent/internal/tool/executor"
)

// commandExecutor defines the interface for executing shell commands.
type commandExecutor interface {
	Run(ctx context.Context, cmd executor.Command) (*executor.Result, error)
}
