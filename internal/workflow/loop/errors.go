package loop

import "fmt"

// IterationLimitError is returned when no OUTPUT arrives within the round cap.
type IterationLimitError struct {
	Limit int
}

func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("max iterations (%d) reached", e.Limit)
}

// CompletionError is returned when the completion backend fails.
type CompletionError struct {
	Round int
	Cause error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed in round %d: %v", e.Round, e.Cause)
}

func (e *CompletionError) Unwrap() error { return e.Cause }
