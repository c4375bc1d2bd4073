package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cyclone1070/stepagent/internal/config"
	"github.com/Cyclone1070/stepagent/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	responses []string
	requests  []*provider.Request
}

func (m *mockClient) Complete(ctx context.Context, req *provider.Request) (string, error) {
	m.requests = append(m.requests, req)
	if len(m.requests) > len(m.responses) {
		return "", errors.New("no more scripted responses")
	}
	return m.responses[len(m.requests)-1], nil
}

func envOf(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func testDeps(client provider.Client, in string) (Dependencies, *bytes.Buffer) {
	var out bytes.Buffer
	return Dependencies{
		Config: config.DefaultConfig(),
		ProviderFactory: func(ctx context.Context, cfg *config.Config, apiKey string) (provider.Client, error) {
			return client, nil
		},
		Getenv:   envOf(map[string]string{"GEMINI_API_KEY": "test-key"}),
		In:       strings.NewReader(in),
		Out:      &out,
		ErrOut:   &bytes.Buffer{},
		LogLevel: "warn",
	}, &out
}

func TestCreateTools_AllToolsPresent(t *testing.T) {
	tools := createTools(config.DefaultConfig(), t.TempDir())

	var names []string
	for _, tl := range tools {
		decl := tl.Declaration()
		assert.NotEmpty(t, decl.Description, decl.Name)
		names = append(names, decl.Name)
	}
	assert.ElementsMatch(t, []string{"getWeatherInfo", "executeCommand", "listDirectory"}, names)
}

func TestApiKeyFor(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		env      map[string]string
		want     string
		wantErr  bool
	}{
		{"gemini key", "gemini", map[string]string{"GEMINI_API_KEY": "g"}, "g", false},
		{"provider specific key", "openai", map[string]string{"OPENAI_API_KEY": "o", "GEMINI_API_KEY": "g"}, "o", false},
		{"override wins", "openai", map[string]string{"OPENAI_API_KEY": "o", "STEPAGENT_API_KEY": "s"}, "s", false},
		{"missing", "anthropic", map[string]string{"GEMINI_API_KEY": "g"}, "", true},
		{"keyless provider", "ollama", map[string]string{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := apiKeyFor(tt.provider, envOf(tt.env))

			if tt.wantErr {
				var credErr *provider.MissingCredentialError
				require.ErrorAs(t, err, &credErr)
				assert.Contains(t, credErr.EnvVars, strings.ToUpper(tt.provider)+"_API_KEY")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyFlags(t *testing.T) {
	set := func(names ...string) func(string) bool {
		return func(n string) bool {
			for _, name := range names {
				if name == n {
					return true
				}
			}
			return false
		}
	}

	t.Run("nothing changed", func(t *testing.T) {
		cfg := config.DefaultConfig()
		applyFlags(cfg, &flagValues{maxIterations: 3}, set())
		assert.Equal(t, config.DefaultConfig(), cfg)
	})

	t.Run("provider switch picks default model", func(t *testing.T) {
		cfg := config.DefaultConfig()
		applyFlags(cfg, &flagValues{provider: "groq"}, set("provider"))
		assert.Equal(t, "groq", cfg.Provider.Name)
		assert.Equal(t, "llama-3.3-70b-versatile", cfg.Provider.Model)
	})

	t.Run("explicit model kept", func(t *testing.T) {
		cfg := config.DefaultConfig()
		applyFlags(cfg, &flagValues{provider: "openai", model: "gpt-4.1"}, set("provider", "model"))
		assert.Equal(t, "gpt-4.1", cfg.Provider.Model)
	})

	t.Run("loop limits", func(t *testing.T) {
		cfg := config.DefaultConfig()
		applyFlags(cfg, &flagValues{maxIterations: 5, roundTimeout: 0}, set("max-iterations", "round-timeout"))
		assert.Equal(t, 5, cfg.Agent.MaxIterations)
		assert.Equal(t, 0, cfg.Agent.RoundTimeoutSeconds)
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "info", false)
	require.NoError(t, err)
	logger.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = newLogger(&buf, "loud", false)
	assert.Error(t, err)
}

func TestRun_OneShotQuery_ActionThenAnswer(t *testing.T) {
	client := &mockClient{responses: []string{
		`{"step":"ACTION","tool":"getWeatherInfo","tool_input":"Patiala","content":"check weather"}`,
		`{"step":"OUTPUT","content":"It is 28 degrees in Patiala."}`,
	}}
	deps, out := testDeps(client, "")

	err := run(context.Background(), deps, "weather in Patiala?")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Tool: getWeatherInfo | Input: Patiala")
	assert.Contains(t, out.String(), "✅ Result: 28 DEGREE CELSIUS for Patiala")
	assert.Contains(t, out.String(), "It is 28 degrees in Patiala.")

	require.Len(t, client.requests, 2)
	system := client.requests[0].Messages[0].Content
	assert.Contains(t, system, "getWeatherInfo(city: string)")
	assert.Contains(t, system, "executeCommand(command: string)")
	assert.True(t, client.requests[0].Params.JSONMode)
}

func TestRun_OneShotQuery_ParseFailureReturnsError(t *testing.T) {
	client := &mockClient{responses: []string{"not json"}}
	deps, out := testDeps(client, "")

	err := run(context.Background(), deps, "hi")

	assert.Error(t, err)
	assert.Contains(t, out.String(), "Failed to parse JSON: not json")
}

func TestRun_REPL_ExitsOnSentinel(t *testing.T) {
	client := &mockClient{responses: []string{`{"step":"OUTPUT","content":"hello"}`}}
	deps, out := testDeps(client, "hi\nexit\n")

	err := run(context.Background(), deps, "")

	require.NoError(t, err)
	assert.Len(t, client.requests, 1)
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRun_MissingCredential(t *testing.T) {
	deps, _ := testDeps(&mockClient{}, "")
	deps.Getenv = envOf(nil)

	err := run(context.Background(), deps, "hi")

	var credErr *provider.MissingCredentialError
	assert.ErrorAs(t, err, &credErr)
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"provider", "model", "max-iterations", "round-timeout", "log-level", "query"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestConfigCmd_PathAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// comments are allowed
		"agent": {"max_iterations": 7},
	}`), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "path", "--config", path})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, path+"\n", out.String())

	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "show", "--config", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"max_iterations": 7`)
	assert.Contains(t, out.String(), `"name": "gemini"`)
}

func TestConfigCmd_ValidateRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"agent": {"max_iterations": 0}}`), 0o644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "validate", "--config", path})

	err := cmd.Execute()

	var verr *config.ValidationError
	assert.ErrorAs(t, err, &verr)
}

type fakeLister struct {
	models []string
}

func (f fakeLister) ListModels(ctx context.Context) ([]string, error) { return f.models, nil }

func (f fakeLister) Model() string { return "gemini-2.5-flash" }

func TestPrintModels_MarksCurrent(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)

	err := printModels(context.Background(), cmd, fakeLister{models: []string{"gemini-2.5-pro", "gemini-2.5-flash"}})

	require.NoError(t, err)
	assert.Equal(t, "  gemini-2.5-pro\n* gemini-2.5-flash\n", out.String())
}
