package hrhash

import (
	"errors"
	"fmt"
)

// ErrInputWidth is matched by [InputWidthError] through [errors.Is].
var ErrInputWidth = errors.New("hash input width mismatch")

// InputWidthError is returned by fixed-input-length hashers
// when given an input whose element count differs from the configured one.
type InputWidthError struct {
	Want, Got int
}

func (e InputWidthError) Error() string {
	return fmt.Sprintf("hash input width mismatch: want %d elements, got %d", e.Want, e.Got)
}

func (e InputWidthError) Is(target error) bool {
	return target == ErrInputWidth
}
