package hrleaf

import "github.com/gordian-engine/hashroot/hrhash"

// PerLeaf encodes every placeholder record into its own hash input:
// the identifier, the value, then the elements of the left
// and right placeholders.
// It produces one input per leaf.
type PerLeaf[E any, D hrhash.Digest[E]] struct {
	Scalars hrhash.Scalars[E]
}

// InputWidth returns the element count of every input from [PerLeaf.Encode].
func (p PerLeaf[E, D]) InputWidth() int {
	var d D
	return 2*len(p.Scalars.Scalar(0)) + 2*len(d.Elements())
}

// Encode returns one hash input per leaf, in leaf order.
// An odd number of leaves is rejected with a [LeafCountError]
// before anything is encoded.
func (p PerLeaf[E, D]) Encode(leaves []PlaceholderRecord[D]) ([][]E, error) {
	if err := CheckCount(len(leaves)); err != nil {
		return nil, err
	}

	w := p.InputWidth()

	// Every input has the same width,
	// so back all of them with a single allocation.
	mem := make([]E, w*len(leaves))
	out := make([][]E, len(leaves))
	for i, l := range leaves {
		in := mem[i*w : i*w : (i+1)*w]
		in = append(in, p.Scalars.Scalar(l.Identifier)...)
		in = append(in, p.Scalars.Scalar(l.Value)...)
		in = append(in, l.Left.Elements()...)
		in = append(in, l.Right.Elements()...)
		out[i] = in
	}

	return out, nil
}

// Pairwise encodes bare records two at a time.
// The input for the pair (2i, 2i+1) is
//
//	leaf[2i].Identifier, leaf[2i+1].Value, leaf[2i+1].Identifier, leaf[2i+1].Value
//
// so the value of the even leaf never reaches the hash.
// Changing this layout changes every digest built on it.
// It produces one input per pair.
type Pairwise[E any] struct {
	Scalars hrhash.Scalars[E]
}

// InputWidth returns the element count of every input from [Pairwise.Encode].
func (p Pairwise[E]) InputWidth() int {
	return 4 * len(p.Scalars.Scalar(0))
}

// Encode returns one hash input per pair of leaves, in pair order.
// An odd number of leaves is rejected with a [LeafCountError]
// before anything is encoded.
func (p Pairwise[E]) Encode(leaves []Record) ([][]E, error) {
	if err := CheckCount(len(leaves)); err != nil {
		return nil, err
	}

	w := p.InputWidth()
	nPairs := len(leaves) / 2

	mem := make([]E, w*nPairs)
	out := make([][]E, nPairs)
	for i := range nPairs {
		even, odd := leaves[2*i], leaves[2*i+1]

		in := mem[i*w : i*w : (i+1)*w]
		in = append(in, p.Scalars.Scalar(even.Identifier)...)
		in = append(in, p.Scalars.Scalar(odd.Value)...)
		in = append(in, p.Scalars.Scalar(odd.Identifier)...)
		in = append(in, p.Scalars.Scalar(odd.Value)...)
		out[i] = in
	}

	return out, nil
}
