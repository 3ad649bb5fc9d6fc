package countdown

import (
	"errors"
	"fmt"
)

// ErrInvalidDurationInput is matched by every error Configure returns for
// pending text that does not parse.
var ErrInvalidDurationInput = errors.New("invalid duration input")

// InputError describes a rejected pending field.
type InputError struct {
	// Field is "hours", "minutes" or "seconds"
	Field string
	// Text is the pending text as typed
	Text string
	// Err is the underlying parse error
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s %q", ErrInvalidDurationInput, e.Field, e.Text)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidDurationInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidDurationInput
}
