// Package hrtree reduces a level of digests to a single root.
//
// Each round hashes adjacent pairs of the current level
// into the next level, which is half as long, rounded up.
// When a level has odd length, its last digest has no sibling:
// it is carried into the next level unchanged, without being hashed.
// A carried digest may therefore reach the root
// without ever being combined with a sibling.
// Callers must not substitute a padded or self-paired sibling,
// since every root depends on this exact rule.
//
// [Reducer] exposes the reduction as a state machine, one round per step,
// and [Reduce] runs it to completion.
package hrtree
