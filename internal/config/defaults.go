package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Agent    AgentConfig    `json:"agent"`
	Provider ProviderConfig `json:"provider"`
	Tools    ToolsConfig    `json:"tools"`
}

type AgentConfig struct {
	MaxIterations       int  `json:"max_iterations"`        // Default: 25
	RoundTimeoutSeconds int  `json:"round_timeout_seconds"` // Default: 120, 0 disables the per-round deadline
	CorrectUnknownSteps bool `json:"correct_unknown_steps"` // Default: false
}

type ProviderConfig struct {
	Name        string  `json:"name"`        // Default: "gemini"
	Model       string  `json:"model"`       // Default: "gemini-2.5-flash"
	Temperature float32 `json:"temperature"` // Default: 0.6
	MaxTokens   int     `json:"max_tokens"`  // Default: 2048
	JSONMode    bool    `json:"json_mode"`   // Default: true
}

type ToolsConfig struct {
	// Command Execution
	Shell                 string `json:"shell"`                   // Default: /bin/sh
	MaxCommandOutputSize  int64  `json:"max_command_output_size"` // Default: 10 * 1024 * 1024 (10MB)
	ShellTimeoutSeconds   int    `json:"shell_timeout_seconds"`   // Default: 600 (10 minutes)
	GracefulShutdownMs    int    `json:"graceful_shutdown_ms"`    // Default: 2000
	BinaryDetectionSample int    `json:"binary_detection_sample"` // Default: 8000

	// Directory Listing
	MaxListDirectoryResults int `json:"max_list_directory_results"` // Default: 1000
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			MaxIterations:       25,
			RoundTimeoutSeconds: 120,
		},
		Provider: ProviderConfig{
			Name:        "gemini",
			Model:       "gemini-2.5-flash",
			Temperature: 0.6,
			MaxTokens:   2048,
			JSONMode:    true,
		},
		Tools: ToolsConfig{
			Shell:                   "/bin/sh",
			MaxCommandOutputSize:    10 * 1024 * 1024,
			ShellTimeoutSeconds:     600,
			GracefulShutdownMs:      2000,
			BinaryDetectionSample:   8000,
			MaxListDirectoryResults: 1000,
		},
	}
}
