package cfg

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes an error related to an element in a configuration
// struct.
type FieldError struct {
	elementPath []string
	err         error
}

// newFieldError creates a new FieldError with the given error message and
// element path.
func newFieldError(msg string, path ...string) *FieldError {
	return &FieldError{
		err:         errors.New(msg),
		elementPath: path,
	}
}

// fieldErrorWrap returns a new FieldError that wraps the passed err, if err
// is not of type FieldError.
// If it is of type FieldError, the passed paths are prepended to its element
// path and err is returned.
func fieldErrorWrap(err error, path ...string) error {
	var fErr *FieldError
	if errors.As(err, &fErr) {
		fErr.elementPath = append(path, fErr.elementPath...)
		return err
	}

	return &FieldError{
		elementPath: path,
		err:         err,
	}
}

func (f *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", strings.Join(f.elementPath, "."), f.err)
}

func (f *FieldError) Unwrap() error {
	if err := errors.Unwrap(f.err); err != nil {
		return err
	}

	return f.err
}
