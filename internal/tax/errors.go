package tax

import (
	"errors"
	"fmt"
)

// ErrMalformedBracket matches any MalformedBracketError via errors.Is.
var ErrMalformedBracket = errors.New("malformed bracket")

// MalformedBracketError describes a bracket entry lacking a required field.
type MalformedBracketError struct {
	Index int    // zero-based position in the configured list
	Field string // "up_to" or "rate"
}

func (e *MalformedBracketError) Error() string {
	return fmt.Sprintf("bracket %d: missing %s", e.Index, e.Field)
}

// Is reports whether target is ErrMalformedBracket.
func (e *MalformedBracketError) Is(target error) bool {
	return target == ErrMalformedBracket
}
