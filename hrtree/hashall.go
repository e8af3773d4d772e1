package hrtree

import (
	"fmt"

	"github.com/gordian-engine/hashroot/hrhash"
	"golang.org/x/sync/errgroup"
)

// HashAll hashes each input into the digest at the same position.
//
// If workers is greater than one, up to that many goroutines
// hash concurrently; the output order is unaffected.
func HashAll[E any, D hrhash.Digest[E]](
	h hrhash.Hasher[E, D], inputs [][]E, workers int,
) ([]D, error) {
	out := make([]D, len(inputs))

	if workers <= 1 || len(inputs) < 2 {
		for i, in := range inputs {
			d, err := h.Hash(in)
			if err != nil {
				return nil, fmt.Errorf("hash input %d: %w", i, err)
			}
			out[i] = d
		}
		return out, nil
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, in := range inputs {
		eg.Go(func() error {
			d, err := h.Hash(in)
			if err != nil {
				return fmt.Errorf("hash input %d: %w", i, err)
			}
			out[i] = d
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
