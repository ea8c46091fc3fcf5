package bitutil

import "errors"

// ErrInvalidArgument is returned when a caller violates a precondition of a
// bit container operation: an out-of-range index or range, mismatched
// dimensions, or malformed text passed to ParseStringMatrix.
var ErrInvalidArgument = errors.New("invalid argument")
