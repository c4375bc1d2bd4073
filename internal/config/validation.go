package config

// Validate checks config values for correctness.
// Returns a *ValidationError listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Agent validation
	if c.Agent.MaxIterations < 1 {
		errs = append(errs, "agent.max_iterations must be >= 1")
	}
	if c.Agent.RoundTimeoutSeconds < 0 {
		errs = append(errs, "agent.round_timeout_seconds must be >= 0")
	}

	// Provider validation
	if c.Provider.Name == "" {
		errs = append(errs, "provider.name must not be empty")
	}
	if c.Provider.Model == "" {
		errs = append(errs, "provider.model must not be empty")
	}
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 2 {
		errs = append(errs, "provider.temperature must be between 0 and 2")
	}
	if c.Provider.MaxTokens < 1 {
		errs = append(errs, "provider.max_tokens must be >= 1")
	}

	// Tools validation
	if c.Tools.Shell == "" {
		errs = append(errs, "tools.shell must not be empty")
	}
	if c.Tools.MaxCommandOutputSize < 1 {
		errs = append(errs, "tools.max_command_output_size must be >= 1")
	}
	if c.Tools.ShellTimeoutSeconds < 1 {
		errs = append(errs, "tools.shell_timeout_seconds must be >= 1")
	}
	if c.Tools.GracefulShutdownMs < 1 {
		errs = append(errs, "tools.graceful_shutdown_ms must be >= 1")
	}
	if c.Tools.BinaryDetectionSample < 1 {
		errs = append(errs, "tools.binary_detection_sample must be >= 1")
	}
	if c.Tools.MaxListDirectoryResults < 1 {
		errs = append(errs, "tools.max_list_directory_results must be >= 1")
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}

	return nil
}
