package validate

import (
	"errors"
	"fmt"
)

// Error marks input the caller can correct. Handlers answer these with a 400
// and the message; every other service error is masked as a server error.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// Errorf builds a validation Error.
func Errorf(format string, args ...interface{}) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// IsInvalid reports whether err is, or wraps, a validation Error.
func IsInvalid(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}
