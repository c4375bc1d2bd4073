package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cyclone1070/stepagent/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// flagValues holds the root command's flags before they are applied to the config.
type flagValues struct {
	configPath    string
	provider      string
	model         string
	maxIterations int
	roundTimeout  int
	logLevel      string
	query         string
}

func newRootCmd() *cobra.Command {
	var flags flagValues
	cmd := &cobra.Command{
		Use:   "stepagent",
		Short: "Answer queries with a tool-using language model",
		Long: "stepagent sends your query to a language model that replies in JSON steps.\n" +
			"ACTION steps run a tool (weather lookup, shell command, directory listing) and\n" +
			"the result is fed back until the model gives an OUTPUT step with the answer.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			deps := Dependencies{
				Config:          cfg,
				ProviderFactory: createRealProvider,
				Getenv:          os.Getenv,
				In:              cmd.InOrStdin(),
				Out:             cmd.OutOrStdout(),
				ErrOut:          cmd.ErrOrStderr(),
				Interactive:     term.IsTerminal(int(os.Stdout.Fd())),
				LogLevel:        flags.logLevel,
			}
			return run(ctx, deps, flags.query)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/stepagent/config.json)")
	cmd.Flags().StringVar(&flags.provider, "provider", "", "completion backend: gemini, openai, anthropic, groq, mistral, ollama, ...")
	cmd.Flags().StringVar(&flags.model, "model", "", "model name (default depends on provider)")
	cmd.Flags().IntVar(&flags.maxIterations, "max-iterations", 0, "maximum model calls per query")
	cmd.Flags().IntVar(&flags.roundTimeout, "round-timeout", 0, "seconds allowed for one round, 0 for no limit")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "answer a single query and exit")

	cmd.AddCommand(configCmd(&flags))
	cmd.AddCommand(modelsCmd(&flags))
	return cmd
}

// loadConfig loads the config file and applies explicitly set flags over it.
func loadConfig(cmd *cobra.Command, flags *flagValues) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, flags, cmd.Flags().Changed)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies flags the user set onto cfg. Switching provider without
// naming a model selects that provider's default model.
func applyFlags(cfg *config.Config, flags *flagValues, changed func(string) bool) {
	if changed("provider") && flags.provider != cfg.Provider.Name {
		cfg.Provider.Name = flags.provider
		if !changed("model") {
			cfg.Provider.Model = defaultModel(flags.provider)
		}
	}
	if changed("model") {
		cfg.Provider.Model = flags.model
	}
	if changed("max-iterations") {
		cfg.Agent.MaxIterations = flags.maxIterations
	}
	if changed("round-timeout") {
		cfg.Agent.RoundTimeoutSeconds = flags.roundTimeout
	}
}

// runWithSignals is used by subcommands that talk to the network.
func runWithSignals(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return fn(ctx)
}
