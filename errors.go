package hashroot

import (
	"errors"
	"fmt"

	"github.com/gordian-engine/hashroot/hrhash"
	"github.com/gordian-engine/hashroot/hrleaf"
)

// ErrInvalidLeafCount is matched by every error rejecting a leaf count.
// The concrete error is an [hrleaf.LeafCountError].
var ErrInvalidLeafCount = hrleaf.ErrInvalidLeafCount

// ErrInputWidth is matched when a hash input has the wrong element count.
// The concrete error is an [hrhash.InputWidthError].
// Correct encoders never produce it.
var ErrInputWidth = hrhash.ErrInputWidth

// ErrSchemeMismatch is matched by [SchemeMismatchError] through [errors.Is].
var ErrSchemeMismatch = errors.New("unsupported scheme")

// SchemeMismatchError is returned for a hash and leaf shape pairing
// that is not one of the supported schemes,
// or for an unknown scheme tag.
type SchemeMismatchError struct {
	Hash  HashKind
	Shape LeafShape

	// Set instead of Hash and Shape when the error is about a scheme tag.
	Tag        uint32
	UnknownTag bool
}

func (e SchemeMismatchError) Error() string {
	if e.UnknownTag {
		return fmt.Sprintf("unsupported scheme: unknown tag %d", e.Tag)
	}
	return fmt.Sprintf(
		"unsupported scheme: %s hash cannot be used with %s leaves",
		e.Hash, e.Shape,
	)
}

func (e SchemeMismatchError) Is(target error) bool {
	return target == ErrSchemeMismatch
}
