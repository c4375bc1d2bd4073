package step

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// observe is the wire shape of an OBSERVE message.
type observe struct {
	Step    string `json:"step"`
	Content string `json:"content"`
}

// Observation serialises a tool result as a single-line OBSERVE message.
func Observation(content string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a struct of two strings cannot fail.
	_ = enc.Encode(observe{Step: KindObserve, Content: content})
	return strings.TrimSuffix(buf.String(), "\n")
}

// ErrorObservation reports a failure to the model as "Error: <message>".
func ErrorObservation(err error) string {
	return Observation("Error: " + err.Error())
}

// ParseObservation decodes an OBSERVE message and returns its content.
func ParseObservation(s string) (string, error) {
	var obs observe
	if err := json.Unmarshal([]byte(s), &obs); err != nil {
		return "", fmt.Errorf("failed to decode observation: %w", err)
	}
	if obs.Step != KindObserve {
		return "", fmt.Errorf("not an observation: step %q", obs.Step)
	}
	return obs.Content, nil
}
