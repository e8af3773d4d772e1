package hashroot

import (
	"fmt"
	"strings"
)

// Scheme identifies the hash backend and leaf shape that produced a root.
// Its numeric value is the scheme tag committed in [Result.PublicValues].
type Scheme uint8

const (
	// SchemeFieldPlaceholder hashes placeholder leaves one at a time
	// with the Goldilocks Poseidon2 sponge.
	SchemeFieldPlaceholder Scheme = 0

	// SchemeBytePlaceholder hashes placeholder leaves one at a time
	// with Keccak-256.
	SchemeBytePlaceholder Scheme = 1

	// SchemeFieldPairwise hashes bare leaves two at a time
	// with the Goldilocks Poseidon2 sponge.
	SchemeFieldPairwise Scheme = 2
)

// HashKind selects a hash backend.
type HashKind uint8

const (
	HashPoseidon HashKind = iota
	HashKeccak
)

func (k HashKind) String() string {
	switch k {
	case HashPoseidon:
		return "poseidon"
	case HashKeccak:
		return "keccak"
	default:
		return fmt.Sprintf("HashKind(%d)", uint8(k))
	}
}

// LeafShape selects a leaf record shape and, with it, an encoding.
type LeafShape uint8

const (
	// ShapePlaceholder leaves carry child placeholders
	// and are encoded one per input.
	ShapePlaceholder LeafShape = iota

	// ShapeBare leaves have only an identifier and a value,
	// and are encoded two per input.
	ShapeBare
)

func (s LeafShape) String() string {
	switch s {
	case ShapePlaceholder:
		return "placeholder"
	case ShapeBare:
		return "bare"
	default:
		return fmt.Sprintf("LeafShape(%d)", uint8(s))
	}
}

// SchemeFor returns the scheme combining the given hash and leaf shape.
// Combinations outside the supported schemes
// are rejected with a [SchemeMismatchError].
func SchemeFor(h HashKind, s LeafShape) (Scheme, error) {
	switch {
	case h == HashPoseidon && s == ShapePlaceholder:
		return SchemeFieldPlaceholder, nil
	case h == HashKeccak && s == ShapePlaceholder:
		return SchemeBytePlaceholder, nil
	case h == HashPoseidon && s == ShapeBare:
		return SchemeFieldPairwise, nil
	default:
		return 0, SchemeMismatchError{Hash: h, Shape: s}
	}
}

// Hash returns the hash backend of s.
// The result is meaningless if s fails [Scheme.Validate].
func (s Scheme) Hash() HashKind {
	if s == SchemeBytePlaceholder {
		return HashKeccak
	}
	return HashPoseidon
}

// Shape returns the leaf shape of s.
// The result is meaningless if s fails [Scheme.Validate].
func (s Scheme) Shape() LeafShape {
	if s == SchemeFieldPairwise {
		return ShapeBare
	}
	return ShapePlaceholder
}

// Validate returns a [SchemeMismatchError] if s is not a known scheme.
func (s Scheme) Validate() error {
	switch s {
	case SchemeFieldPlaceholder, SchemeBytePlaceholder, SchemeFieldPairwise:
		return nil
	default:
		return SchemeMismatchError{Tag: uint32(s), UnknownTag: true}
	}
}

var schemeNames = map[Scheme]string{
	SchemeFieldPlaceholder: "poseidon",
	SchemeBytePlaceholder:  "keccak",
	SchemeFieldPairwise:    "poseidon-pairwise",
}

func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scheme(%d)", uint8(s))
}

// ParseScheme returns the scheme whose [Scheme.String] is name,
// ignoring case.
func ParseScheme(name string) (Scheme, error) {
	for s, n := range schemeNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown scheme %q (want one of poseidon, keccak, poseidon-pairwise)", name)
}
