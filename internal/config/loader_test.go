package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

const testConfigPath = "/home/user/.config/stepagent/config.json"

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load("")

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Agent.MaxIterations)
	assert.Equal(t, 2048, cfg.Provider.MaxTokens)
	assert.Equal(t, float32(0.6), cfg.Provider.Temperature)
	assert.True(t, cfg.Provider.JSONMode)
	assert.Equal(t, "/bin/sh", cfg.Tools.Shell)
}

func TestLoad_FullOverride_AllValuesReplaced(t *testing.T) {
	configJSON := `{
		"agent": {"max_iterations": 10, "round_timeout_seconds": 30, "correct_unknown_steps": true},
		"provider": {"name": "openai", "model": "gpt-4o-mini", "temperature": 0.2, "max_tokens": 512, "json_mode": false},
		"tools": {"shell": "/bin/bash", "shell_timeout_seconds": 60, "max_list_directory_results": 5}
	}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(configJSON)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load("")

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Agent.MaxIterations)
	assert.Equal(t, 30, cfg.Agent.RoundTimeoutSeconds)
	assert.True(t, cfg.Agent.CorrectUnknownSteps)
	assert.Equal(t, "openai", cfg.Provider.Name)
	assert.Equal(t, "gpt-4o-mini", cfg.Provider.Model)
	assert.False(t, cfg.Provider.JSONMode)
	assert.Equal(t, "/bin/bash", cfg.Tools.Shell)
	assert.Equal(t, 5, cfg.Tools.MaxListDirectoryResults)
}

func TestLoad_PartialOverride_MergesWithDefaults(t *testing.T) {
	configJSON := `{"agent": {"max_iterations": 3}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(configJSON)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load("")

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Agent.MaxIterations)         // Overridden
	assert.Equal(t, 120, cfg.Agent.RoundTimeoutSeconds) // Default
	assert.Equal(t, "gemini", cfg.Provider.Name)        // Default
	assert.Equal(t, 600, cfg.Tools.ShellTimeoutSeconds) // Default
}

func TestLoad_CommentsAndTrailingCommas_Accepted(t *testing.T) {
	configJSON := `{
		// fewer rounds while testing
		"agent": {"max_iterations": 7,},
	}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(configJSON)},
	}

	cfg, err := NewLoaderWithFS(fs).Load("")

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Agent.MaxIterations)
}

func TestLoad_ExplicitPath_UsedInsteadOfDotfile(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			testConfigPath:    []byte(`{"agent": {"max_iterations": 2}}`),
			"/etc/agent.json": []byte(`{"agent": {"max_iterations": 9}}`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load("/etc/agent.json")

	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Agent.MaxIterations)
}

func TestLoad_ZeroValueExplicit_Overrides(t *testing.T) {
	// Explicit zero values replace defaults; round timeout 0 disables the deadline.
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(`{"agent": {"round_timeout_seconds": 0}}`)},
	}

	cfg, err := NewLoaderWithFS(fs).Load("")

	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Agent.RoundTimeoutSeconds)
}

// --- UNHAPPY PATH TESTS ---

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(`{invalid json`)},
	}

	cfg, err := NewLoaderWithFS(fs).Load("")

	assert.Nil(t, cfg)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, testConfigPath, parseErr.Path)
}

func TestLoad_PermissionDenied_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}

	cfg, err := NewLoaderWithFS(fs).Load("")

	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDirErr: errors.New("homeless"),
	}

	cfg, err := NewLoaderWithFS(fs).Load("")

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Agent.MaxIterations)
}

func TestLoad_WrongJSONType_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(`["not", "an", "object"]`)},
	}

	cfg, err := NewLoaderWithFS(fs).Load("")

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidValues_ReturnsValidationError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(`{"agent": {"max_iterations": 0}}`)},
	}

	cfg, err := NewLoaderWithFS(fs).Load("")

	assert.Nil(t, cfg)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, err.Error(), "agent.max_iterations")
}
