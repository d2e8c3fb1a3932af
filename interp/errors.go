package interp

import "errors"

// ErrInvalidInput reports samples or options that cannot form an interpolator.
var ErrInvalidInput = errors.New("interp: invalid input")
