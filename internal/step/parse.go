package step

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type actionFields struct {
	Tool      string `mapstructure:"tool"`
	ToolInput string `mapstructure:"tool_input"`
}

type contentFields struct {
	Content string `mapstructure:"content"`
}

// Parse turns one raw model response into a Step.
//
// Invalid JSON and recognised steps with a bad shape are errors. Any other
// JSON value yields Unknown so the caller decides how to proceed.
func Parse(raw string) (Step, error) {
	var decoded any
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&decoded); err != nil {
		return nil, &ParseError{Kind: Malformed, Raw: raw, Cause: err}
	}
	if dec.More() {
		return nil, &ParseError{Kind: Malformed, Raw: raw, Cause: errors.New("trailing data after JSON value")}
	}

	fields, ok := decoded.(map[string]any)
	if !ok {
		return Unknown{Content: compact(decoded)}, nil
	}

	kind, _ := fields["step"].(string)
	switch kind {
	case KindOutput:
		var out contentFields
		if err := decodeFields(fields, &out, "content"); err != nil {
			return nil, &ParseError{Kind: InvalidShape, Raw: raw, Cause: err}
		}
		if out.Content == "" {
			return nil, &ParseError{Kind: InvalidShape, Raw: raw, Cause: errors.New("OUTPUT content is empty")}
		}
		return Output{Content: out.Content}, nil

	case KindAction:
		var act actionFields
		if err := decodeFields(fields, &act, "tool", "tool_input"); err != nil {
			return nil, &ParseError{Kind: InvalidShape, Raw: raw, Cause: err}
		}
		// content is free-form description text; any JSON value is accepted.
		return Action{Tool: act.Tool, Input: act.ToolInput, Description: contentString(fields["content"])}, nil

	case KindThink:
		var think contentFields
		if err := decodeFields(fields, &think, "content"); err != nil {
			return nil, &ParseError{Kind: InvalidShape, Raw: raw, Cause: err}
		}
		return Think{Content: think.Content}, nil

	default:
		disc := kind
		if disc == "" && fields["step"] != nil {
			disc = compact(fields["step"])
		}
		return Unknown{Discriminator: disc, Content: contentString(fields["content"])}, nil
	}
}

// decodeFields checks the required keys are present and decodes the map into
// target. Type mismatches are errors; no weak conversion is applied.
func decodeFields(fields map[string]any, target any, required ...string) error {
	for _, key := range required {
		if fields[key] == nil {
			return fmt.Errorf("missing required field %q", key)
		}
	}
	if err := mapstructure.Decode(fields, target); err != nil {
		return err
	}
	return nil
}

func contentString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return compact(v)
}

func compact(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
