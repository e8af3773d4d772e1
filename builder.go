package hashroot

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/gordian-engine/hashroot/hrhash"
	"github.com/gordian-engine/hashroot/hrhash/hrkeccak"
	"github.com/gordian-engine/hashroot/hrhash/hrposeidon"
	"github.com/gordian-engine/hashroot/hrleaf"
	"github.com/gordian-engine/hashroot/hrtree"
)

// Builder computes roots for one [Scheme].
// Use [NewBuilder] to create one.
//
// A Builder holds no state between calls to [*Builder.Build],
// so it is safe for concurrent use.
type Builder struct {
	log *slog.Logger

	scheme Scheme
	cfg    hrtree.Config

	run pipeline
}

// BuilderConfig is the configuration passed to [NewBuilder].
type BuilderConfig struct {
	Scheme Scheme

	// Upper bound on goroutines hashing within one level.
	// Zero or one hashes serially.
	// The root does not depend on this value.
	Workers int
}

// pipeline turns n leaves into a root.
// It is bound to one hash backend and leaf shape.
type pipeline func(log *slog.Logger, n int, cfg hrtree.Config) (RootDigest, hrtree.Stats, error)

// NewBuilder returns a Builder for cfg.Scheme.
// An unknown scheme is rejected with a [SchemeMismatchError].
func NewBuilder(log *slog.Logger, cfg BuilderConfig) (*Builder, error) {
	if err := cfg.Scheme.Validate(); err != nil {
		return nil, err
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative (got %d)", cfg.Workers)
	}

	var run pipeline
	switch cfg.Scheme {
	case SchemeBytePlaceholder:
		// Keccak takes any input length,
		// so one hasher serves both leaves and nodes.
		var h hrkeccak.Hasher
		run = perLeafPipeline[byte, hrkeccak.Digest](h, h, hrkeccak.Scalars{})

	case SchemeFieldPlaceholder:
		var sc hrposeidon.Scalars
		enc := hrleaf.PerLeaf[goldilocks.Element, hrposeidon.Digest]{Scalars: sc}
		run = perLeafPipeline[goldilocks.Element, hrposeidon.Digest](
			hrposeidon.NewHasher(enc.InputWidth()),
			hrposeidon.NewHasher(2*hrposeidon.DigestSize),
			sc,
		)

	case SchemeFieldPairwise:
		var sc hrposeidon.Scalars
		enc := hrleaf.Pairwise[goldilocks.Element]{Scalars: sc}
		run = pairwisePipeline[goldilocks.Element, hrposeidon.Digest](
			hrposeidon.NewHasher(enc.InputWidth()),
			hrposeidon.NewHasher(2*hrposeidon.DigestSize),
			sc,
		)

	default:
		panic(fmt.Errorf("BUG: validated scheme %s has no pipeline", cfg.Scheme))
	}

	return &Builder{
		log: log.With("scheme", cfg.Scheme.String()),

		scheme: cfg.Scheme,
		cfg:    hrtree.Config{Workers: cfg.Workers},

		run: run,
	}, nil
}

// Scheme returns the scheme b was created for.
func (b *Builder) Scheme() Scheme {
	return b.scheme
}

// Build computes the root over n generated leaves.
//
// n must be positive and even.
// Any other count is rejected with an [hrleaf.LeafCountError]
// before any hashing happens.
func (b *Builder) Build(n int) (Result, error) {
	if err := checkLeafCount(n); err != nil {
		return Result{}, err
	}

	root, stats, err := b.run(b.log, n, b.cfg)
	if err != nil {
		if errors.Is(err, ErrInputWidth) {
			return Result{}, fmt.Errorf("BUG: leaf encoding disagrees with hasher: %w", err)
		}
		return Result{}, fmt.Errorf("build root over %d leaves: %w", n, err)
	}

	b.log.Info(
		"Computed root",
		"n", n,
		"first_level", stats.FirstLevel,
		"rounds", stats.Rounds,
		"root", root.String(),
	)

	return Result{
		N:      n,
		Scheme: b.scheme,
		Root:   root,
		Stats:  stats,
	}, nil
}

// checkLeafCount applies the encoder's count rules,
// and additionally rejects zero since an empty tree has no root.
func checkLeafCount(n int) error {
	if n == 0 {
		return hrleaf.LeafCountError{N: n, Reason: "must be positive"}
	}
	return hrleaf.CheckCount(n)
}

// rootDigest is the constraint on digests that can leave a pipeline.
type rootDigest[E any] interface {
	hrhash.Digest[E]
	RootDigest
}

// scalarSet is what both leaf shapes need from a backend's scalar encoding.
type scalarSet[E any, D any] interface {
	hrhash.Scalars[E]
	hrhash.Broadcaster[D]
}

func perLeafPipeline[E any, D rootDigest[E]](
	leafHash, nodeHash hrhash.Hasher[E, D], sc scalarSet[E, D],
) pipeline {
	enc := hrleaf.PerLeaf[E, D]{Scalars: sc}
	return func(log *slog.Logger, n int, cfg hrtree.Config) (RootDigest, hrtree.Stats, error) {
		leaves := hrleaf.GeneratePlaceholder[D](n, sc)
		inputs, err := enc.Encode(leaves)
		if err != nil {
			return nil, hrtree.Stats{}, err
		}
		return reduceInputs[E, D](log, leafHash, nodeHash, inputs, cfg)
	}
}

func pairwisePipeline[E any, D rootDigest[E]](
	leafHash, nodeHash hrhash.Hasher[E, D], sc scalarSet[E, D],
) pipeline {
	enc := hrleaf.Pairwise[E]{Scalars: sc}
	return func(log *slog.Logger, n int, cfg hrtree.Config) (RootDigest, hrtree.Stats, error) {
		inputs, err := enc.Encode(hrleaf.Generate(n))
		if err != nil {
			return nil, hrtree.Stats{}, err
		}
		return reduceInputs[E, D](log, leafHash, nodeHash, inputs, cfg)
	}
}

// reduceInputs hashes inputs into the first level with leafHash
// and reduces that level with nodeHash.
func reduceInputs[E any, D rootDigest[E]](
	log *slog.Logger,
	leafHash, nodeHash hrhash.Hasher[E, D],
	inputs [][]E,
	cfg hrtree.Config,
) (RootDigest, hrtree.Stats, error) {
	first, err := hrtree.HashAll[E, D](leafHash, inputs, cfg.Workers)
	if err != nil {
		return nil, hrtree.Stats{}, fmt.Errorf("hash first level: %w", err)
	}

	r, err := hrtree.NewReducer[E, D](nodeHash, first, cfg)
	if err != nil {
		return nil, hrtree.Stats{}, err
	}

	for r.State() == hrtree.StateReducing {
		res, err := r.Step()
		if err != nil {
			return nil, hrtree.Stats{}, err
		}

		log.Debug(
			"Reduced level",
			"round", res.Round,
			"in", res.In,
			"out", res.Out(),
			"carried", res.Carried,
		)
	}

	root, ok := r.Root()
	if !ok {
		panic(errors.New("BUG: reducer stopped before reaching the root"))
	}
	return root, r.Stats(), nil
}
