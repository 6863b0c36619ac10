package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTool matches any *UnknownToolError via errors.Is.
var ErrUnknownTool = errors.New("unknown tool")

// UnknownToolError is returned for a name no handler is registered under.
type UnknownToolError struct {
	Name       string
	Suggestion string
}

func (e *UnknownToolError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("Unknown tool: %s (did you mean %s?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

func (e *UnknownToolError) Is(target error) bool { return target == ErrUnknownTool }

// ArgumentError reports arguments that failed binding or validation.
type ArgumentError struct {
	Problems []string
	Err      error
}

func (e *ArgumentError) Error() string {
	return "invalid arguments: " + strings.Join(e.Problems, "; ")
}

func (e *ArgumentError) Unwrap() error { return e.Err }
