// Package hrhash defines the hash abstraction shared by every tree backend.
//
// A backend provides a [Hasher] producing a fixed-width [Digest],
// and the [Scalars] and [Broadcaster] encodings used to turn
// leaf integers into hash input.
// See the hrkeccak and hrposeidon subpackages for the concrete backends.
package hrhash

// Digest is a fixed-width hash output made of elements of type E.
//
// Digests are values: they are compared with == and combined only
// by concatenating their elements and hashing the result.
type Digest[E any] interface {
	comparable

	// Elements returns the digest's elements in order.
	// The returned slice must not alias the receiver.
	Elements() []E
}

// Hasher maps a variable-length input to one [Digest].
//
// Hash must be a pure function of in:
// no state is carried between calls.
// Hasher must not retain or modify in,
// and it must be safe to call Hash concurrently.
type Hasher[E any, D Digest[E]] interface {
	Hash(in []E) (D, error)
}

// Scalars encodes leaf integers as hash input elements.
type Scalars[E any] interface {
	// Scalar returns the elements encoding v as a single leaf field.
	Scalar(v uint64) []E
}

// Broadcaster builds digest-shaped values from leaf integers.
type Broadcaster[D any] interface {
	// Broadcast returns a digest whose every slot is derived from v.
	Broadcast(v uint64) D
}
