package metadata

import (
	"errors"
	"fmt"
)

var (
	// ErrNotManaged is returned for PE images without a CLI header.
	ErrNotManaged = errors.New("not a managed assembly")
	// ErrMalformed is returned when metadata structures are inconsistent.
	ErrMalformed = errors.New("malformed metadata")
	// ErrNoAssembly is returned for modules without an Assembly row.
	ErrNoAssembly = errors.New("module has no assembly manifest")
)

// IOError wraps a file system failure while reading an image.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsIOError reports whether err was caused by the file system rather than
// by the content of the image.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
