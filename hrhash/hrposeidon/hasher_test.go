package hrposeidon_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/gordian-engine/hashroot/hrhash"
	"github.com/gordian-engine/hashroot/hrhash/hrhashtest"
	"github.com/gordian-engine/hashroot/hrhash/hrposeidon"
	"github.com/stretchr/testify/require"
)

func TestCompliance(t *testing.T) {
	t.Parallel()

	// Exercise a single-chunk, an exact-rate and a multi-chunk input.
	for _, inputLen := range []int{4, hrposeidon.Rate, 10} {
		t.Run(fmt.Sprintf("input length %d", inputLen), func(t *testing.T) {
			t.Parallel()

			hrhashtest.TestHasherCompliance(t, func() hrhashtest.Fixture[goldilocks.Element, hrposeidon.Digest] {
				return hrhashtest.Fixture[goldilocks.Element, hrposeidon.Digest]{
					Hasher: hrposeidon.NewHasher(inputLen),
					NewInput: func(seed []byte) []goldilocks.Element {
						return elementsFromSeed(seed, inputLen)
					},
				}
			})
		})
	}
}

func TestHasher_Hash_rejectsOtherWidths(t *testing.T) {
	t.Parallel()

	h := hrposeidon.NewHasher(8)
	require.Equal(t, 8, h.InputLen())

	for _, n := range []int{0, 7, 9, 16} {
		_, err := h.Hash(make([]goldilocks.Element, n))
		require.ErrorIs(t, err, hrhash.ErrInputWidth)

		var iwe hrhash.InputWidthError
		require.ErrorAs(t, err, &iwe)
		require.Equal(t, hrhash.InputWidthError{Want: 8, Got: n}, iwe)
	}
}

func TestHasher_Hash_overwriteAbsorb(t *testing.T) {
	t.Parallel()

	// A short input is absorbed into a zero state without any padding,
	// so it matches the same input followed by zeros up to the rate.
	in := elementsFromSeed([]byte("no padding"), 4)
	padded := append(append([]goldilocks.Element(nil), in...), make([]goldilocks.Element, 4)...)

	d4, err := hrposeidon.NewHasher(4).Hash(in)
	require.NoError(t, err)

	d8, err := hrposeidon.NewHasher(8).Hash(padded)
	require.NoError(t, err)

	require.Equal(t, d4, d8)

	// A length that needs a second chunk absorbs differently.
	d10, err := hrposeidon.NewHasher(10).Hash(append(padded, in[:2]...))
	require.NoError(t, err)
	require.NotEqual(t, d8, d10)
}

func TestDigest_Bytes(t *testing.T) {
	t.Parallel()

	d := hrposeidon.Scalars{}.Broadcast(0x0102)
	b := d.Bytes()
	require.Len(t, b, 32)

	for i := range hrposeidon.DigestSize {
		word := b[i*8 : (i+1)*8]
		require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0x01, 0x02}, word)
	}

	require.Equal(t, "0x"+strings.Repeat("0000000000000102", 4), d.String())
}

func TestScalars_Scalar(t *testing.T) {
	t.Parallel()

	got := hrposeidon.Scalars{}.Scalar(42)
	require.Len(t, got, 1)
	require.Equal(t, uint64(42), got[0].Uint64())
}

func elementsFromSeed(seed []byte, n int) []goldilocks.Element {
	out := make([]goldilocks.Element, n)
	for i := range out {
		var word [8]byte
		for j := range word {
			word[j] = seed[(i*8+j)%len(seed)]
		}
		out[i].SetBytes(word[:])
	}
	return out
}
