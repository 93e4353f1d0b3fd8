package token

import "errors"

var ErrUnresolved = errors.New("unresolved inclusion")
