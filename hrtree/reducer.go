package hrtree

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/hashroot/hrhash"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyLevel is returned when attempting to reduce a level with no digests.
var ErrEmptyLevel = errors.New("cannot reduce an empty level")

// ErrReduced is returned from [*Reducer.Step] once the root has been reached.
var ErrReduced = errors.New("level already reduced to a root")

// Level is an ordered sequence of digests at one stage of reduction.
type Level[D any] []D

// State is the state of a [Reducer].
type State uint8

const (
	// StateReducing means the current level has more than one digest.
	StateReducing State = iota + 1

	// StateDone means the current level holds only the root.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateReducing:
		return "reducing"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Config is the configuration for [NewReducer] and [Reduce].
type Config struct {
	// Workers bounds the number of goroutines
	// hashing the pairs of a single round.
	// Zero or one hashes serially.
	// Rounds always run one after another.
	Workers int
}

// RoundResult describes one transition made by [*Reducer.Step].
type RoundResult struct {
	// Zero-based index of the round.
	Round int

	// Length of the level consumed by the round.
	In int

	// Number of pairs hashed.
	Pairs int

	// Whether the last digest of the consumed level
	// was carried into the next level unchanged.
	Carried bool
}

// Out returns the length of the level produced by the round.
func (r RoundResult) Out() int {
	if r.Carried {
		return r.Pairs + 1
	}
	return r.Pairs
}

// Stats summarizes a completed reduction.
type Stats struct {
	// Length of the first level.
	FirstLevel int

	// Number of rounds performed.
	Rounds int

	// Set bit i means round i carried an odd tail.
	CarriedRounds *bitset.BitSet
}

// Reducer folds a level into a root, one round per call to [*Reducer.Step].
//
// A Reducer is not safe for concurrent use.
type Reducer[E any, D hrhash.Digest[E]] struct {
	h       hrhash.Hasher[E, D]
	workers int

	firstLen int
	level    Level[D]
	round    int

	carried *bitset.BitSet
}

// NewReducer returns a Reducer starting at the given first level.
// The Reducer takes ownership of first;
// the caller must not modify it afterwards.
//
// An empty first level is rejected with [ErrEmptyLevel].
func NewReducer[E any, D hrhash.Digest[E]](
	h hrhash.Hasher[E, D], first Level[D], cfg Config,
) (*Reducer[E, D], error) {
	if len(first) == 0 {
		return nil, ErrEmptyLevel
	}

	return &Reducer[E, D]{
		h:       h,
		workers: cfg.Workers,

		firstLen: len(first),
		level:    first,

		carried: bitset.New(0),
	}, nil
}

// State reports whether r is still reducing or has reached the root.
func (r *Reducer[E, D]) State() State {
	if len(r.level) == 1 {
		return StateDone
	}
	return StateReducing
}

// Level returns the current level.
// The returned slice must not be modified.
func (r *Reducer[E, D]) Level() Level[D] {
	return r.level
}

// Rounds returns the number of rounds performed so far.
func (r *Reducer[E, D]) Rounds() int {
	return r.round
}

// Root returns the root and true once r is in [StateDone].
// Otherwise it returns the zero digest and false.
func (r *Reducer[E, D]) Root() (D, bool) {
	if r.State() != StateDone {
		var zero D
		return zero, false
	}
	return r.level[0], true
}

// Step performs one round, replacing the current level with the next one.
// Step returns [ErrReduced] when r is already in [StateDone].
func (r *Reducer[E, D]) Step() (RoundResult, error) {
	if r.State() == StateDone {
		return RoundResult{}, ErrReduced
	}

	in := r.level
	nPairs := len(in) / 2

	next := make(Level[D], nPairs, nPairs+len(in)%2)
	if err := r.hashPairs(in, next); err != nil {
		return RoundResult{}, fmt.Errorf("round %d: %w", r.round, err)
	}

	res := RoundResult{
		Round: r.round,
		In:    len(in),
		Pairs: nPairs,
	}

	switch len(in) % 2 {
	case 0:
		// Every digest had a sibling.
	case 1:
		// Odd tail: the unpaired last digest moves up as is.
		next = append(next, in[len(in)-1])
		r.carried.Set(uint(r.round))
		res.Carried = true
	}

	r.level = next
	r.round++

	return res, nil
}

// Run steps r until it reaches the root, and returns the root.
func (r *Reducer[E, D]) Run() (D, error) {
	for r.State() == StateReducing {
		if _, err := r.Step(); err != nil {
			var zero D
			return zero, err
		}
	}

	root, _ := r.Root()
	return root, nil
}

// Stats returns a summary of the rounds performed so far.
func (r *Reducer[E, D]) Stats() Stats {
	return Stats{
		FirstLevel:    r.firstLen,
		Rounds:        r.round,
		CarriedRounds: r.carried.Clone(),
	}
}

// hashPairs writes Hash(in[2k] || in[2k+1]) into next[k]
// for every k < len(next).
func (r *Reducer[E, D]) hashPairs(in, next Level[D]) error {
	if r.workers <= 1 || len(next) < 2 {
		var buf []E
		for k := range next {
			d, err := r.hashPair(&buf, in[2*k], in[2*k+1])
			if err != nil {
				return fmt.Errorf("pair %d: %w", k, err)
			}
			next[k] = d
		}
		return nil
	}

	var eg errgroup.Group
	eg.SetLimit(r.workers)
	for k := range next {
		eg.Go(func() error {
			var buf []E
			d, err := r.hashPair(&buf, in[2*k], in[2*k+1])
			if err != nil {
				return fmt.Errorf("pair %d: %w", k, err)
			}
			next[k] = d
			return nil
		})
	}
	return eg.Wait()
}

func (r *Reducer[E, D]) hashPair(buf *[]E, left, right D) (D, error) {
	b := append((*buf)[:0], left.Elements()...)
	b = append(b, right.Elements()...)
	*buf = b

	return r.h.Hash(b)
}

// Reduce reduces first to its root.
// It takes ownership of first as [NewReducer] does.
// A first level of length one is its own root, after zero rounds.
func Reduce[E any, D hrhash.Digest[E]](
	h hrhash.Hasher[E, D], first Level[D], cfg Config,
) (D, Stats, error) {
	r, err := NewReducer(h, first, cfg)
	if err != nil {
		var zero D
		return zero, Stats{}, err
	}

	root, err := r.Run()
	if err != nil {
		var zero D
		return zero, Stats{}, err
	}

	return root, r.Stats(), nil
}
