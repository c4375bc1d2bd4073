package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/stepagent/internal/step"
	"github.com/Cyclone1070/stepagent/internal/workflow"
	"github.com/Cyclone1070/stepagent/internal/workflow/loop"
)

// previewLimit is how many characters of a tool result are echoed.
const previewLimit = 200

// Preview shortens s to previewLimit characters, marking the cut with "...".
func Preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLimit {
		return s
	}
	return string(r[:previewLimit]) + "..."
}

// renderEvent returns the text for one event, or "" when it prints nothing.
// The final answer goes through md when it is set.
func renderEvent(e workflow.Event, md markdownRenderer) string {
	switch ev := e.(type) {
	case workflow.RoundStartEvent:
		return RoundStyle.Render(fmt.Sprintf("--- Step %d/%d ---", ev.Round, ev.Max)) + "\n"

	case workflow.ActionEvent:
		var b strings.Builder
		if ev.Description != "" {
			b.WriteString(ActionStyle.Render("🔧 Action: "+ev.Description) + "\n")
		}
		b.WriteString(fmt.Sprintf("   Tool: %s | Input: %s\n", ev.Tool, ev.Input))
		return b.String()

	case workflow.ObservationEvent:
		if ev.IsError {
			return ErrorStyle.Render("   ❌ "+Preview(ev.Content)) + "\n"
		}
		return ResultStyle.Render("   ✅ Result: "+Preview(ev.Content)) + "\n"

	case workflow.ThoughtEvent:
		return ThoughtStyle.Render("💭 "+ev.Content) + "\n"

	case workflow.UnknownStepEvent:
		return WarnStyle.Render(fmt.Sprintf("⚠️  Unknown step: %s %s", ev.Discriminator, ev.Content)) + "\n"

	case workflow.OutputEvent:
		return "\n" + AnswerStyle.Render("✅ Final Answer:") + "\n" + renderAnswer(ev.Content, md) + "\n"

	case workflow.AbortEvent:
		return renderAbort(ev) + "\n"
	}
	return ""
}

func renderAnswer(content string, md markdownRenderer) string {
	if md == nil {
		return content
	}
	out, err := md.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

func renderAbort(ev workflow.AbortEvent) string {
	var parseErr *step.ParseError
	var limitErr *loop.IterationLimitError
	switch {
	case errors.As(ev.Err, &parseErr):
		return ErrorStyle.Render("❌ Failed to parse JSON: " + Preview(parseErr.Raw))
	case errors.As(ev.Err, &limitErr):
		return WarnStyle.Render(fmt.Sprintf("\n⚠️  Reached max iterations (%d). Stopping.", limitErr.Limit))
	case loop.Status(ev.Reason) == loop.StatusCancelled:
		return WarnStyle.Render("\n⏹  Cancelled.")
	default:
		return ErrorStyle.Render(fmt.Sprintf("❌ %v", ev.Err))
	}
}
