// Package hrleaf generates the synthetic leaf records of a hash tree
// and encodes them into first-level hash inputs.
//
// There are two record shapes.
// A [Record] is a bare leaf with an identifier and a value.
// A [PlaceholderRecord] additionally carries left and right
// child placeholders, filled with a digest-shaped broadcast of the value;
// they stand in for child references at the leaf level.
//
// Each shape has its own encoding: [PerLeaf] encodes every placeholder record
// independently, and [Pairwise] encodes bare records two at a time.
package hrleaf

import (
	"fmt"

	"github.com/gordian-engine/hashroot/hrhash"
)

// Identifier is the identifier of every generated leaf.
const Identifier = 42

// Record is a bare leaf.
type Record struct {
	Identifier uint64
	Value      uint64
}

// PlaceholderRecord is a self-contained leaf
// whose child placeholders are digest-shaped.
type PlaceholderRecord[D any] struct {
	Record

	Left, Right D
}

// Generate returns n bare records.
// Record i has Value i and Identifier [Identifier].
func Generate(n int) []Record {
	if n < 0 {
		panic(fmt.Errorf(
			"BUG: leaf count must not be negative (got %d)", n,
		))
	}

	out := make([]Record, n)
	for i := range out {
		out[i] = Record{
			Identifier: Identifier,
			Value:      uint64(i),
		}
	}
	return out
}

// GeneratePlaceholder returns n placeholder records.
// Record i has Value i, Identifier [Identifier],
// and both placeholders set to b.Broadcast(i).
func GeneratePlaceholder[D any](n int, b hrhash.Broadcaster[D]) []PlaceholderRecord[D] {
	bare := Generate(n)

	out := make([]PlaceholderRecord[D], n)
	for i, r := range bare {
		p := b.Broadcast(r.Value)
		out[i] = PlaceholderRecord[D]{
			Record: r,
			Left:   p,
			Right:  p,
		}
	}
	return out
}
