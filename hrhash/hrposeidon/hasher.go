// Package hrposeidon provides a hash tree backend over the Goldilocks field.
//
// The hash is a sponge built on the Poseidon2 permutation of width 12
// from gnark-crypto.
// Input is absorbed [Rate] elements at a time by overwriting
// the front of the state, and the first [DigestSize] state elements
// are squeezed as the digest.
// No padding is ever applied, so every [Hasher] is bound
// to one input length and rejects any other.
package hrposeidon

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark-crypto/field/goldilocks/poseidon2"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gordian-engine/hashroot/hrhash"
)

const (
	// StateWidth is the number of field elements in the sponge state.
	StateWidth = 12

	// Rate is the number of input elements absorbed per permutation.
	Rate = 8

	// DigestSize is the number of field elements in a [Digest].
	DigestSize = 4

	fullRounds    = 6
	partialRounds = 17
)

var permutation = sync.OnceValue(func() *poseidon2.Permutation {
	return poseidon2.NewPermutation(StateWidth, fullRounds, partialRounds)
})

// Digest is four Goldilocks field elements.
type Digest [DigestSize]goldilocks.Element

func (d Digest) Elements() []goldilocks.Element {
	out := make([]goldilocks.Element, DigestSize)
	copy(out, d[:])
	return out
}

// Bytes returns the canonical 32-byte form of d:
// each element as a big-endian 8-byte word, in order.
func (d Digest) Bytes() []byte {
	out := make([]byte, 0, DigestSize*goldilocks.Bytes)
	for i := range d {
		b := d[i].Bytes()
		out = append(out, b[:]...)
	}
	return out
}

// String returns the canonical bytes of d as 0x-prefixed hex.
func (d Digest) String() string {
	return hexutil.Encode(d.Bytes())
}

// Hasher is a fixed-input-length [hrhash.Hasher].
// Use [NewHasher] to create one.
type Hasher struct {
	inputLen int
	perm     *poseidon2.Permutation
}

var _ hrhash.Hasher[goldilocks.Element, Digest] = (*Hasher)(nil)

// NewHasher returns a Hasher that only accepts inputs
// of exactly inputLen elements.
func NewHasher(inputLen int) *Hasher {
	if inputLen <= 0 {
		panic(fmt.Errorf(
			"BUG: inputLen must be positive (got %d)", inputLen,
		))
	}

	return &Hasher{
		inputLen: inputLen,
		perm:     permutation(),
	}
}

// InputLen reports the only input length h accepts.
func (h *Hasher) InputLen() int {
	return h.inputLen
}

// Hash absorbs in and returns the squeezed digest.
// If len(in) differs from h's input length,
// Hash returns an [hrhash.InputWidthError].
func (h *Hasher) Hash(in []goldilocks.Element) (Digest, error) {
	if len(in) != h.inputLen {
		return Digest{}, hrhash.InputWidthError{Want: h.inputLen, Got: len(in)}
	}

	var state [StateWidth]goldilocks.Element
	for len(in) > 0 {
		// Overwrite mode: the chunk replaces the rate portion,
		// and a short final chunk leaves the rest of it untouched.
		n := copy(state[:Rate], in)
		in = in[n:]

		if err := h.perm.Permutation(state[:]); err != nil {
			return Digest{}, fmt.Errorf("poseidon2 permutation: %w", err)
		}
	}

	var d Digest
	copy(d[:], state[:DigestSize])
	return d, nil
}

// Scalars encodes leaf integers for the Goldilocks backend.
// A value is reduced modulo the field order.
type Scalars struct{}

var (
	_ hrhash.Scalars[goldilocks.Element] = Scalars{}
	_ hrhash.Broadcaster[Digest]         = Scalars{}
)

func (Scalars) Scalar(v uint64) []goldilocks.Element {
	return []goldilocks.Element{goldilocks.NewElement(v)}
}

func (Scalars) Broadcast(v uint64) Digest {
	e := goldilocks.NewElement(v)
	return Digest{e, e, e, e}
}
