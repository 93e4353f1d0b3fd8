package ultrametric

import (
	"errors"
	"fmt"
)

var (
	ErrTolerance     = errors.New("adjustment exceeds tolerance")
	ErrMissingLength = errors.New("missing edge length")
)

// ToleranceError reports a leaf whose age is further from the expected
// age than Fix may adjust.
type ToleranceError struct {
	Leaf     string
	Age      float64
	Expected float64
	Max      float64
}

func (e *ToleranceError) Error() string {
	return fmt.Sprintf("%s has age %v, which is %v from %v (max allowed delta is %v)",
		e.Leaf, e.Age, abs(e.Age-e.Expected), e.Expected, e.Max)
}

func (e *ToleranceError) Unwrap() error {
	return ErrTolerance
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
