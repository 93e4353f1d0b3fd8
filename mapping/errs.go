package mapping

import (
	"errors"
	"fmt"
)

var (
	ErrLookup   = errors.New("unknown inclusion name")
	ErrNotFound = errors.New("mapping file not found")
	ErrEntry    = errors.New("bad mapping entry")
)

// LookupError reports a symbolic name absent from the table.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %q", ErrLookup.Error(), e.Name)
}

func (e *LookupError) Unwrap() error {
	return ErrLookup
}
