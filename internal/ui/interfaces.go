package ui

import (
	"context"

	"github.com/Cyclone1070/stepagent/internal/workflow/loop"
)

// queryRunner answers one query, reporting progress on the events channel
// the console was built with.
type queryRunner interface {
	Run(ctx context.Context, query string) (*loop.Result, error)
}

// markdownRenderer turns the final answer into terminal output.
type markdownRenderer interface {
	Render(in string) (string, error)
}
