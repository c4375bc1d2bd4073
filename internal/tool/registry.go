package tool

import (
	"context"
	"sort"
)

// Registry is a static mapping from tool name to Tool, fixed at construction.
// It is safe for concurrent use because it is never mutated after NewRegistry returns.
type Registry struct {
	tools map[string]Tool
	names []string
}

// NewRegistry builds a registry from tools. Empty or duplicate names are rejected.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]Tool, len(tools)),
		names: make([]string, 0, len(tools)),
	}
	for _, t := range tools {
		name := t.Declaration().Name
		if name == "" {
			return nil, ErrEmptyName
		}
		if _, exists := r.tools[name]; exists {
			return nil, &DuplicateToolError{Name: name}
		}
		r.tools[name] = t
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Resolve looks up a tool by name.
func (r *Registry) Resolve(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Declarations returns all tool schemas sorted by name.
func (r *Registry) Declarations() []Declaration {
	decls := make([]Declaration, 0, len(r.names))
	for _, name := range r.names {
		decls = append(decls, r.tools[name].Declaration())
	}
	return decls
}

// Invoke dispatches input to the named tool.
// It returns *UnknownToolError when name is not registered and
// *ExecutionFailedError when the tool itself fails.
func (r *Registry) Invoke(ctx context.Context, name, input string) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", &UnknownToolError{Name: name, Available: r.Names()}
	}

	result, err := t.Invoke(ctx, input)
	if err != nil {
		return "", &ExecutionFailedError{Tool: name, Cause: err}
	}
	return result, nil
}
