package hrleaf

import (
	"errors"
	"fmt"
)

// ErrInvalidLeafCount is matched by [LeafCountError] through [errors.Is].
var ErrInvalidLeafCount = errors.New("invalid leaf count")

// LeafCountError reports a leaf count that cannot form a tree.
type LeafCountError struct {
	N int

	// Why the count was rejected, e.g. "must be even".
	Reason string
}

func (e LeafCountError) Error() string {
	return fmt.Sprintf("invalid leaf count %d: %s", e.N, e.Reason)
}

func (e LeafCountError) Is(target error) bool {
	return target == ErrInvalidLeafCount
}

// CheckCount reports whether n leaves can be encoded:
// n must be even and not negative.
// The returned error is a [LeafCountError].
func CheckCount(n int) error {
	if n < 0 {
		return LeafCountError{N: n, Reason: "must not be negative"}
	}
	if n%2 != 0 {
		return LeafCountError{N: n, Reason: "must be even"}
	}
	return nil
}
