package prompt

import (
	"context"
	"testing"

	"github.com/Cyclone1070/stepagent/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTool struct {
	decl tool.Declaration
}

func (f fakeTool) Declaration() tool.Declaration { return f.decl }

func (f fakeTool) Invoke(ctx context.Context, input string) (string, error) { return "", nil }

func oneParam(name, desc, param string) fakeTool {
	return fakeTool{decl: tool.Declaration{
		Name:        name,
		Description: desc,
		Parameters: &tool.Schema{
			Type:       tool.TypeObject,
			Properties: map[string]*tool.Schema{param: {Type: tool.TypeString}},
			Required:   []string{param},
		},
	}}
}

func TestRender_ListsToolsSorted(t *testing.T) {
	reg, err := tool.NewRegistry(
		oneParam("getWeatherInfo", "Get the weather information for a city", "city"),
		oneParam("executeCommand", "Execute a command", "command"),
	)
	require.NoError(t, err)

	out, err := Render(reg, "")

	require.NoError(t, err)
	assert.Contains(t, out, "Available tools:\n- executeCommand(command: string): Execute a command\n- getWeatherInfo(city: string): Get the weather information for a city\n")
	assert.Contains(t, out, `{ "step": "ACTION", "tool": "<tool_name>", "tool_input": "<input>", "content": "<brief description>" }`)
	assert.Contains(t, out, `{ "step": "OUTPUT", "content": "<final answer>" }`)
	assert.NotContains(t, out, "The shell runs on")
}

func TestRender_Platform(t *testing.T) {
	reg, err := tool.NewRegistry()
	require.NoError(t, err)

	out, err := Render(reg, "linux")

	require.NoError(t, err)
	assert.Contains(t, out, "OUTPUT.\n\nThe shell runs on linux.\n\nAvailable tools:\n\nJSON format")
}
