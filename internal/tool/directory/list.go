// Package directory provides listDirectory, a .gitignore-aware listing of
// workspace directories.
package directory

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Cyclone1070/stepagent/internal/config"
	"github.com/Cyclone1070/stepagent/internal/tool"
)

// Name is the tool name exposed to the model.
const Name = "listDirectory"

// ListDirectoryTool lists one directory level inside the workspace.
type ListDirectoryTool struct {
	fs            fileSystem
	config        *config.Config
	workspaceRoot string
}

// NewListDirectoryTool creates a ListDirectoryTool backed by the real filesystem.
func NewListDirectoryTool(cfg *config.Config, workspaceRoot string) *ListDirectoryTool {
	return newListDirectoryTool(osFileSystem{}, cfg, workspaceRoot)
}

func newListDirectoryTool(fs fileSystem, cfg *config.Config, workspaceRoot string) *ListDirectoryTool {
	if cfg == nil {
		panic("cfg is required")
	}
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	return &ListDirectoryTool{
		fs:            fs,
		config:        cfg,
		workspaceRoot: filepath.Clean(workspaceRoot),
	}
}

func (t *ListDirectoryTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        Name,
		Description: "List the entries of a workspace directory, one per line. Directories end with '/'. Entries ignored by .gitignore are skipped.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path": {
					Type:        tool.TypeString,
					Description: "Directory path relative to the workspace root; empty for the root",
				},
			},
		},
	}
}

func (t *ListDirectoryTool) Invoke(ctx context.Context, input string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := strings.TrimSpace(input)
	abs, rel, err := t.resolve(rel)
	if err != nil {
		return "", err
	}

	info, err := t.fs.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", &NotDirectoryError{Path: rel}
	}

	matcher, err := loadIgnoreMatcher(t.fs, t.workspaceRoot)
	if err != nil {
		return "", err
	}

	entries, err := t.fs.ReadDir(abs)
	if err != nil {
		return "", err
	}

	var names []string
	for _, entry := range entries {
		if entry.Name() == ".git" {
			continue
		}
		entryRel := filepath.Join(rel, entry.Name())
		if matcher.ShouldIgnore(entryRel, entry.IsDir()) {
			continue
		}
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		return "(empty directory)", nil
	}

	limit := t.config.Tools.MaxListDirectoryResults
	omitted := 0
	if len(names) > limit {
		omitted = len(names) - limit
		names = names[:limit]
	}

	out := strings.Join(names, "\n")
	if omitted > 0 {
		out += fmt.Sprintf("\n[%d more entries omitted]", omitted)
	}
	return out, nil
}

// resolve maps a workspace-relative path to an absolute one, rejecting escapes.
func (t *ListDirectoryTool) resolve(path string) (abs, rel string, err error) {
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else {
		abs = filepath.Join(t.workspaceRoot, path)
	}
	rel, err = filepath.Rel(t.workspaceRoot, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", &OutsideWorkspaceError{Path: path}
	}
	return abs, rel, nil
}
