package dating

import "errors"

var (
	ErrUndatedRoot    = errors.New("root node has no date")
	ErrNegativeBranch = errors.New("negative branch length")
	ErrAge            = errors.New("invalid age")
)
