package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Cyclone1070/stepagent/internal/config"
	"github.com/Cyclone1070/stepagent/internal/provider/gemini"
	"github.com/spf13/cobra"
)

func modelsCmd(flags *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the Gemini models available to your API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithSignals(cmd, func(ctx context.Context) error {
				apiKey, err := apiKeyFor("gemini", os.Getenv)
				if err != nil {
					return err
				}
				client, err := gemini.NewRealGeminiClientFromKey(ctx, apiKey)
				if err != nil {
					return fmt.Errorf("failed to create Gemini client: %w", err)
				}
				cfg, err := config.Load(flags.configPath)
				if err != nil {
					return err
				}
				return printModels(ctx, cmd, gemini.New(client, cfg.Provider.Model))
			})
		},
	}
}

// modelLister is satisfied by *gemini.GeminiProvider.
type modelLister interface {
	ListModels(ctx context.Context) ([]string, error)
	Model() string
}

func printModels(ctx context.Context, cmd *cobra.Command, lister modelLister) error {
	models, err := lister.ListModels(ctx)
	if err != nil {
		return err
	}
	for _, m := range models {
		marker := "  "
		if m == lister.Model() {
			marker = "* "
		}
		fmt.Fprintln(cmd.OutOrStdout(), marker+m)
	}
	return nil
}
