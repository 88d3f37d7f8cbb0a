// Package permutation derives pixel shuffles from chaotic sequences.
package permutation

import (
	"cmp"
	"fmt"
	"slices"
)

// Table maps each output position to the input position it gathers from.
type Table []int

// Derive ranks the indices of seq by value. Ties keep index order, so the
// same sequence always yields the same table.
func Derive(seq []float64) Table {
	t := make(Table, len(seq))
	for i := range t {
		t[i] = i
	}
	slices.SortStableFunc(t, func(a, b int) int {
		return cmp.Compare(seq[a], seq[b])
	})
	return t
}

// Invert returns the table that undoes t.
func Invert(t Table) Table {
	inv := make(Table, len(t))
	for i, src := range t {
		inv[src] = i
	}
	return inv
}

// Validate reports an error unless t is a bijection on [0, len(t)).
func (t Table) Validate() error {
	seen := make([]bool, len(t))
	for i, src := range t {
		if src < 0 || src >= len(t) {
			return fmt.Errorf("permutation entry %d points outside [0,%d): %d", i, len(t), src)
		}
		if seen[src] {
			return fmt.Errorf("permutation target %d used twice", src)
		}
		seen[src] = true
	}
	return nil
}

// Apply gathers src in blocks of stride elements: block i of the result is
// block t[i] of src. len(src) must be len(t)*stride and t must be a bijection.
func Apply[E any](t Table, src []E, stride int) ([]E, error) {
	if stride <= 0 || len(src) != len(t)*stride {
		return nil, fmt.Errorf("permutation of %d blocks cannot apply to %d elements with stride %d",
			len(t), len(src), stride)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	dst := make([]E, len(src))
	for i, from := range t {
		copy(dst[i*stride:(i+1)*stride], src[from*stride:(from+1)*stride])
	}
	return dst, nil
}
