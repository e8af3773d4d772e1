package hrleaf_test

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/gordian-engine/hashroot/hrhash/hrkeccak"
	"github.com/gordian-engine/hashroot/hrhash/hrposeidon"
	"github.com/gordian-engine/hashroot/hrleaf"
	"github.com/stretchr/testify/require"
)

func TestPerLeaf_Encode_keccak(t *testing.T) {
	t.Parallel()

	var s hrkeccak.Scalars
	enc := hrleaf.PerLeaf[byte, hrkeccak.Digest]{Scalars: s}
	require.Equal(t, 128, enc.InputWidth())

	inputs, err := enc.Encode(hrleaf.GeneratePlaceholder[hrkeccak.Digest](4, s))
	require.NoError(t, err)
	require.Len(t, inputs, 4)

	for i, in := range inputs {
		v := byte(i)
		want := bytes.Join([][]byte{
			bytes.Repeat([]byte{42}, 32),
			bytes.Repeat([]byte{v}, 32),
			bytes.Repeat([]byte{v}, 32),
			bytes.Repeat([]byte{v}, 32),
		}, nil)
		require.Equal(t, want, in)
	}
}

func TestPerLeaf_Encode_poseidon(t *testing.T) {
	t.Parallel()

	var s hrposeidon.Scalars
	enc := hrleaf.PerLeaf[goldilocks.Element, hrposeidon.Digest]{Scalars: s}
	require.Equal(t, 10, enc.InputWidth())

	for _, n := range []int{0, 2, 8} {
		inputs, err := enc.Encode(hrleaf.GeneratePlaceholder[hrposeidon.Digest](n, s))
		require.NoError(t, err)
		require.Len(t, inputs, n)

		for i, in := range inputs {
			require.Equal(t, []uint64{
				42, uint64(i),
				uint64(i), uint64(i), uint64(i), uint64(i),
				uint64(i), uint64(i), uint64(i), uint64(i),
			}, toUint64s(in))
		}
	}
}

func TestPerLeaf_Encode_oddCount(t *testing.T) {
	t.Parallel()

	var s hrposeidon.Scalars
	enc := hrleaf.PerLeaf[goldilocks.Element, hrposeidon.Digest]{Scalars: s}

	inputs, err := enc.Encode(hrleaf.GeneratePlaceholder[hrposeidon.Digest](3, s))
	require.ErrorIs(t, err, hrleaf.ErrInvalidLeafCount)
	require.Nil(t, inputs)
}

func TestPairwise_Encode(t *testing.T) {
	t.Parallel()

	enc := hrleaf.Pairwise[goldilocks.Element]{Scalars: hrposeidon.Scalars{}}
	require.Equal(t, 4, enc.InputWidth())

	for _, n := range []int{0, 2, 4, 10} {
		inputs, err := enc.Encode(hrleaf.Generate(n))
		require.NoError(t, err)
		require.Len(t, inputs, n/2)

		for i, in := range inputs {
			odd := uint64(2*i + 1)
			require.Equal(t, []uint64{42, odd, 42, odd}, toUint64s(in))
		}
	}
}

func TestPairwise_Encode_ignoresEvenValue(t *testing.T) {
	t.Parallel()

	enc := hrleaf.Pairwise[goldilocks.Element]{Scalars: hrposeidon.Scalars{}}

	leaves := hrleaf.Generate(2)
	a, err := enc.Encode(leaves)
	require.NoError(t, err)

	leaves[0].Value = 1000
	b, err := enc.Encode(leaves)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestPairwise_Encode_oddCount(t *testing.T) {
	t.Parallel()

	enc := hrleaf.Pairwise[byte]{Scalars: hrkeccak.Scalars{}}

	_, err := enc.Encode(hrleaf.Generate(3))
	require.ErrorIs(t, err, hrleaf.ErrInvalidLeafCount)

	var lce hrleaf.LeafCountError
	require.ErrorAs(t, err, &lce)
	require.Equal(t, 3, lce.N)
}

func TestCheckCount(t *testing.T) {
	t.Parallel()

	require.NoError(t, hrleaf.CheckCount(0))
	require.NoError(t, hrleaf.CheckCount(186))

	require.ErrorIs(t, hrleaf.CheckCount(1), hrleaf.ErrInvalidLeafCount)
	require.ErrorIs(t, hrleaf.CheckCount(-2), hrleaf.ErrInvalidLeafCount)
}

func toUint64s(in []goldilocks.Element) []uint64 {
	out := make([]uint64, len(in))
	for i := range in {
		out[i] = in[i].Uint64()
	}
	return out
}
