// Package hrkeccak provides the Keccak-256 backend for hash trees.
package hrkeccak

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gordian-engine/hashroot/hrhash"
	"golang.org/x/crypto/sha3"
)

// Size is the width in bytes of a [Digest].
const Size = 32

// Digest is a Keccak-256 output.
type Digest [Size]byte

func (d Digest) Elements() []byte {
	out := make([]byte, Size)
	copy(out, d[:])
	return out
}

// Bytes returns the canonical 32-byte form of d.
func (d Digest) Bytes() []byte {
	return d.Elements()
}

// String returns d as 0x-prefixed hex.
func (d Digest) String() string {
	return hexutil.Encode(d[:])
}

// Hasher is a [hrhash.Hasher] backed by Keccak-256
// with the original Keccak padding, as used by Ethereum.
// It accepts input of any length.
type Hasher struct{}

var _ hrhash.Hasher[byte, Digest] = Hasher{}

func (Hasher) Hash(in []byte) (Digest, error) {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(in)

	var d Digest
	h.Sum(d[:0])
	return d, nil
}

// Scalars encodes leaf integers for the Keccak backend.
// Every leaf field is a full 32-byte word made of one repeated byte,
// so only the low byte of a value is represented.
type Scalars struct{}

var (
	_ hrhash.Scalars[byte]       = Scalars{}
	_ hrhash.Broadcaster[Digest] = Scalars{}
)

func (Scalars) Scalar(v uint64) []byte {
	out := make([]byte, Size)
	fill(out, byte(v))
	return out
}

func (Scalars) Broadcast(v uint64) Digest {
	var d Digest
	fill(d[:], byte(v))
	return d
}

func fill(dst []byte, b byte) {
	for i := range dst {
		dst[i] = b
	}
}
