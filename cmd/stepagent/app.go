package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/Cyclone1070/stepagent/internal/config"
	"github.com/Cyclone1070/stepagent/internal/provider"
	"github.com/Cyclone1070/stepagent/internal/provider/gemini"
	"github.com/Cyclone1070/stepagent/internal/provider/gollm"
	"github.com/Cyclone1070/stepagent/internal/tool"
	"github.com/Cyclone1070/stepagent/internal/tool/directory"
	"github.com/Cyclone1070/stepagent/internal/tool/executor"
	"github.com/Cyclone1070/stepagent/internal/tool/shell"
	"github.com/Cyclone1070/stepagent/internal/tool/weather"
	"github.com/Cyclone1070/stepagent/internal/ui"
	"github.com/Cyclone1070/stepagent/internal/workflow"
	"github.com/Cyclone1070/stepagent/internal/workflow/loop"
	"github.com/Cyclone1070/stepagent/internal/workflow/prompt"
)

// overrideKeyEnv, when set, is used as the API key for any provider.
const overrideKeyEnv = "STEPAGENT_API_KEY"

// keylessProviders run locally and need no credential.
var keylessProviders = map[string]bool{"ollama": true}

// defaultModels is used when --provider switches backend without --model.
var defaultModels = map[string]string{
	"gemini":    "gemini-2.5-flash",
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-3-5-haiku-latest",
	"groq":      "llama-3.3-70b-versatile",
	"mistral":   "mistral-small-latest",
	"ollama":    "llama3.2",
}

func defaultModel(providerName string) string {
	if m, ok := defaultModels[providerName]; ok {
		return m
	}
	return defaultModels["openai"]
}

// ProviderFactory builds the completion client for the configured backend.
type ProviderFactory func(ctx context.Context, cfg *config.Config, apiKey string) (provider.Client, error)

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Config          *config.Config
	ProviderFactory ProviderFactory
	Getenv          func(string) string
	In              io.Reader
	Out             io.Writer
	ErrOut          io.Writer
	Interactive     bool
	LogLevel        string
}

// apiKeyFor resolves the credential for a provider from the environment.
func apiKeyFor(providerName string, getenv func(string) string) (string, error) {
	if key := getenv(overrideKeyEnv); key != "" {
		return key, nil
	}
	envVar := strings.ToUpper(providerName) + "_API_KEY"
	if key := getenv(envVar); key != "" {
		return key, nil
	}
	if keylessProviders[providerName] {
		return "", nil
	}
	return "", &provider.MissingCredentialError{
		Provider: providerName,
		EnvVars:  []string{envVar, overrideKeyEnv},
	}
}

func createRealProvider(ctx context.Context, cfg *config.Config, apiKey string) (provider.Client, error) {
	switch cfg.Provider.Name {
	case "gemini":
		client, err := gemini.NewRealGeminiClientFromKey(ctx, apiKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return gemini.New(client, cfg.Provider.Model), nil
	default:
		return gollm.New(cfg.Provider.Name, cfg.Provider.Model, apiKey, providerParams(cfg))
	}
}

func providerParams(cfg *config.Config) provider.Params {
	return provider.Params{
		Temperature: cfg.Provider.Temperature,
		MaxTokens:   cfg.Provider.MaxTokens,
		JSONMode:    cfg.Provider.JSONMode,
	}
}

func createTools(cfg *config.Config, workspaceRoot string) []tool.Tool {
	commandExecutor := executor.NewOSCommandExecutor(cfg)

	return []tool.Tool{
		weather.NewWeatherTool(),
		shell.NewShellTool(commandExecutor, cfg, workspaceRoot),
		directory.NewListDirectoryTool(cfg, workspaceRoot),
	}
}

// newLogger writes to w, as text for terminals and JSON otherwise.
func newLogger(w io.Writer, level string, interactive bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	options := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if interactive {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler), nil
}

func workspaceRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	root, err := filepath.EvalSymlinks(wd)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize workspace root: %w", err)
	}
	return root, nil
}

// run wires the agent and either answers query once or starts the REPL.
func run(ctx context.Context, deps Dependencies, query string) error {
	cfg := deps.Config

	logger, err := newLogger(deps.ErrOut, deps.LogLevel, deps.Interactive)
	if err != nil {
		return err
	}

	root, err := workspaceRoot()
	if err != nil {
		return err
	}

	registry, err := tool.NewRegistry(createTools(cfg, root)...)
	if err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	systemPrompt, err := prompt.Render(registry, runtime.GOOS)
	if err != nil {
		return err
	}

	apiKey, err := apiKeyFor(cfg.Provider.Name, deps.Getenv)
	if err != nil {
		return err
	}
	client, err := deps.ProviderFactory(ctx, cfg, apiKey)
	if err != nil {
		return err
	}

	events := make(chan workflow.Event, 16)
	agentLoop := loop.NewLoop(client, registry, loop.Options{
		MaxIterations:       cfg.Agent.MaxIterations,
		RoundTimeout:        time.Duration(cfg.Agent.RoundTimeoutSeconds) * time.Second,
		Params:              providerParams(cfg),
		SystemPrompt:        systemPrompt,
		CorrectUnknownSteps: cfg.Agent.CorrectUnknownSteps,
		Logger:              logger.With("provider", cfg.Provider.Name, "model", cfg.Provider.Model),
		Events:              events,
	})

	uiConfig := ui.Config{
		Subtitle:    fmt.Sprintf("%s · %s", cfg.Provider.Name, cfg.Provider.Model),
		Interactive: deps.Interactive,
	}
	if md, err := ui.NewMarkdownRenderer(deps.Interactive, 100); err == nil {
		uiConfig.Markdown = md
	} else {
		logger.Warn("markdown rendering disabled", "error", err)
	}
	console := ui.NewConsole(deps.In, deps.Out, agentLoop, events, uiConfig)

	if query != "" {
		_, err := console.RunQuery(ctx, query)
		return err
	}
	return console.Serve(ctx)
}
