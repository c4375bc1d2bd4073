package main

import (
	"encoding/json"
	"fmt"

	"github.com/Cyclone1070/stepagent/internal/config"
	"github.com/spf13/cobra"
)

func configCmd(flags *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View the effective configuration",
	}
	cmd.AddCommand(configShowCmd(flags))
	cmd.AddCommand(configPathCmd(flags))
	cmd.AddCommand(configValidateCmd(flags))
	return cmd
}

func configShowCmd(flags *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configuration after defaults are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func configPathCmd(flags *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), resolveConfigPath(flags))
		},
	}
}

func configValidateCmd(flags *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(flags.configPath); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config at %s is valid.\n", resolveConfigPath(flags))
			return nil
		},
	}
}

func resolveConfigPath(flags *flagValues) string {
	if flags.configPath != "" {
		return flags.configPath
	}
	return config.NewLoader().DefaultPath()
}
