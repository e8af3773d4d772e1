package hashroot

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/gordian-engine/hashroot/hrtree"
)

// RootDigest is the root of a tree, independent of the hash backend.
// Concretely it is an hrkeccak.Digest or an hrposeidon.Digest.
type RootDigest interface {
	// The canonical 32-byte form of the digest.
	Bytes() []byte

	// The canonical bytes as 0x-prefixed hex.
	String() string
}

// Result is the output of [*Builder.Build].
type Result struct {
	// Number of leaves.
	N int

	Scheme Scheme
	Root   RootDigest

	Stats hrtree.Stats
}

// publicValuesArgs is the ABI tuple (uint32 n, uint32 scheme).
var publicValuesArgs = func() abi.Arguments {
	u32, err := abi.NewType("uint32", "", nil)
	if err != nil {
		panic(fmt.Errorf("BUG: failed to create uint32 ABI type: %w", err))
	}

	return abi.Arguments{
		{Name: "n", Type: u32},
		{Name: "scheme", Type: u32},
	}
}()

// PublicValues returns the ABI encoding of (uint32 n, uint32 scheme tag),
// two 32-byte big-endian words.
// The root itself is not part of the encoding.
func (r Result) PublicValues() ([]byte, error) {
	if r.N < 0 || uint64(r.N) > math.MaxUint32 {
		return nil, fmt.Errorf("leaf count %d does not fit in uint32", r.N)
	}

	b, err := publicValuesArgs.Pack(uint32(r.N), uint32(r.Scheme))
	if err != nil {
		return nil, fmt.Errorf("pack public values: %w", err)
	}
	return b, nil
}

// DecodePublicValues parses the output of [Result.PublicValues].
// An unknown scheme tag is rejected with a [SchemeMismatchError].
func DecodePublicValues(b []byte) (n int, s Scheme, err error) {
	vals, err := publicValuesArgs.Unpack(b)
	if err != nil {
		return 0, 0, fmt.Errorf("unpack public values: %w", err)
	}

	rawN, ok := vals[0].(uint32)
	if !ok {
		panic(fmt.Errorf("BUG: public value n unpacked as %T", vals[0]))
	}
	rawS, ok := vals[1].(uint32)
	if !ok {
		panic(fmt.Errorf("BUG: public value scheme unpacked as %T", vals[1]))
	}

	if rawS > math.MaxUint8 {
		return 0, 0, SchemeMismatchError{Tag: rawS, UnknownTag: true}
	}
	s = Scheme(rawS)
	if err := s.Validate(); err != nil {
		return 0, 0, err
	}

	return int(rawN), s, nil
}
