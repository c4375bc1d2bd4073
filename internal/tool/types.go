package tool

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Type represents JSON Schema types.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Schema represents a JSON Schema for tool parameters.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Declaration declares a tool's function signature for the LLM.
type Declaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// Signature renders the declaration as name(param: type, ...) for prompts.
// Parameters are listed in required order, then alphabetically.
func (d Declaration) Signature() string {
	if d.Parameters == nil || len(d.Parameters.Properties) == 0 {
		return d.Name + "()"
	}

	seen := make(map[string]bool, len(d.Parameters.Properties))
	names := make([]string, 0, len(d.Parameters.Properties))
	for _, name := range d.Parameters.Required {
		if _, ok := d.Parameters.Properties[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range d.Parameters.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	params := make([]string, 0, len(names))
	for _, name := range names {
		params = append(params, fmt.Sprintf("%s: %s", name, d.Parameters.Properties[name].Type))
	}
	return fmt.Sprintf("%s(%s)", d.Name, strings.Join(params, ", "))
}

// Tool is a named capability taking exactly one string argument.
//
// Invoke returns a human-readable error on failure; the registry forwards
// its message to the model verbatim.
type Tool interface {
	Declaration() Declaration
	Invoke(ctx context.Context, input string) (string, error)
}
