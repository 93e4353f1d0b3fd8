package assemble

import "errors"

var (
	ErrMissingBase = errors.New("base file does not exist")
	ErrCycle       = errors.New("fragment includes itself")
)
