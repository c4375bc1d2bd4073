package step

import "fmt"

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

const (
	// Malformed means the response was not valid JSON.
	Malformed ParseErrorKind = iota
	// InvalidShape means a recognised step lacked a required field or had a mistyped one.
	InvalidShape
)

func (k ParseErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case InvalidShape:
		return "invalid shape"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// ParseError is returned when a model response cannot be turned into a Step.
type ParseError struct {
	Kind  ParseErrorKind
	Raw   string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s step: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s step", e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Cause }
