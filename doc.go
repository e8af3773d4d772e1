// Package hashroot computes a commitment root over synthetic leaf records.
//
// A run is described by a leaf count n and a [Scheme],
// which pairs a hash backend with a leaf record shape.
// [NewBuilder] binds the scheme once,
// and [*Builder.Build] generates the leaves, encodes them into the first level,
// and reduces that level to a root:
//
//	b, err := hashroot.NewBuilder(log, hashroot.BuilderConfig{
//		Scheme: hashroot.SchemeBytePlaceholder,
//	})
//	// handle err
//	res, err := b.Build(6)
//
// The leaf machinery lives in the hrleaf package,
// the hash backends under hrhash,
// and the level reduction in hrtree.
package hashroot
