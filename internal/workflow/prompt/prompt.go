// Package prompt renders the system prompt that teaches the model the step protocol.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Cyclone1070/stepagent/internal/tool"
)

const systemTemplate = `You are an AI assistant that resolves user queries using tools. Be direct and efficient.

You respond in JSON with one of two step types: ACTION or OUTPUT.
- ACTION: Call a tool. Think internally first, then immediately output the action.
- OUTPUT: Give the final answer to the user.

Do NOT output THINK steps. Think internally, then respond with ACTION or OUTPUT only.
After each ACTION, you will receive an OBSERVE message with the tool result. Use it to decide your next ACTION or final OUTPUT.
{{- if .Platform}}

The shell runs on {{.Platform}}.
{{- end}}

Available tools:
{{- range .Tools}}
- {{.Signature}}: {{.Description}}
{{- end}}

JSON format for ACTION:
{ "step": "ACTION", "tool": "<tool_name>", "tool_input": "<input>", "content": "<brief description>" }

JSON format for OUTPUT:
{ "step": "OUTPUT", "content": "<final answer>" }

Rules:
- Output strictly valid JSON, one step per response.
- Only use the tools listed above.
- tool_input is always a single string.
- Always respond with ACTION or OUTPUT, never THINK.
`

var systemTmpl = template.Must(template.New("system").Parse(systemTemplate))

// Data is the input to the system prompt template.
type Data struct {
	Tools    []tool.Declaration
	Platform string // OS the shell runs on, e.g. "linux"; optional
}

// declarer is satisfied by *tool.Registry.
type declarer interface {
	Declarations() []tool.Declaration
}

// Render renders the system prompt listing every declared tool.
func Render(tools declarer, platform string) (string, error) {
	var b strings.Builder
	data := Data{Tools: tools.Declarations(), Platform: platform}
	if err := systemTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render system prompt: %w", err)
	}
	return b.String(), nil
}
