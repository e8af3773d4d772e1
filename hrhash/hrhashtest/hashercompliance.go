package hrhashtest

import (
	"slices"
	"sync"
	"testing"

	"github.com/gordian-engine/hashroot/hrhash"
	"github.com/gordian-engine/hashroot/internal/hrtest"
	"github.com/stretchr/testify/require"
)

// Fixture is what a backend supplies to [TestHasherCompliance].
type Fixture[E any, D hrhash.Digest[E]] struct {
	Hasher hrhash.Hasher[E, D]

	// NewInput returns an input Hasher accepts,
	// derived deterministically from the given seed bytes.
	// Different seeds must produce different inputs.
	NewInput func(seed []byte) []E
}

// FixtureFactory returns a fresh Fixture for each subtest.
type FixtureFactory[E any, D hrhash.Digest[E]] func() Fixture[E, D]

// TestHasherCompliance runs the behavior every [hrhash.Hasher] must satisfy.
func TestHasherCompliance[E any, D hrhash.Digest[E]](t *testing.T, f FixtureFactory[E, D]) {
	t.Run("hash is deterministic", func(t *testing.T) {
		t.Parallel()

		fx := f()
		in := fx.NewInput(hrtest.RandomDataForTest(t, 256))

		d01, err := fx.Hasher.Hash(in)
		require.NoError(t, err)

		d02, err := fx.Hasher.Hash(in)
		require.NoError(t, err)

		require.Equal(t, d01, d02)
	})

	t.Run("hash respects input", func(t *testing.T) {
		t.Parallel()

		fx := f()
		seed := hrtest.RandomDataForTest(t, 256)

		d01, err := fx.Hasher.Hash(fx.NewInput(seed))
		require.NoError(t, err)

		seed[0]++
		d02, err := fx.Hasher.Hash(fx.NewInput(seed))
		require.NoError(t, err)

		require.NotEqual(t, d01, d02)
	})

	t.Run("hash does not modify input", func(t *testing.T) {
		t.Parallel()

		fx := f()
		in := fx.NewInput(hrtest.RandomDataForTest(t, 256))
		orig := slices.Clone(in)

		_, err := fx.Hasher.Hash(in)
		require.NoError(t, err)

		require.Equal(t, orig, in)
	})

	t.Run("digest elements do not alias", func(t *testing.T) {
		t.Parallel()

		fx := f()
		d, err := fx.Hasher.Hash(fx.NewInput(hrtest.RandomDataForTest(t, 256)))
		require.NoError(t, err)

		els := d.Elements()
		require.NotEmpty(t, els)

		var zero E
		for i := range els {
			els[i] = zero
		}

		require.NotEqual(t, els, d.Elements())
	})

	t.Run("hash is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		fx := f()
		in := fx.NewInput(hrtest.RandomDataForTest(t, 256))

		want, err := fx.Hasher.Hash(in)
		require.NoError(t, err)

		const n = 16
		got := make([]D, n)
		errs := make([]error, n)

		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got[i], errs[i] = fx.Hasher.Hash(in)
			}()
		}
		wg.Wait()

		for i := range n {
			require.NoError(t, errs[i])
			require.Equal(t, want, got[i])
		}
	})
}
