package dna_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danishprabhu04/image-encrypt/dna"
)

var bases = []dna.Base{dna.A, dna.C, dna.G, dna.T}

func TestCombine_SubInvertsAdd(t *testing.T) {
	for _, a := range bases {
		for _, b := range bases {
			sum := dna.Combine(a, b, dna.OpAdd)
			assert.Equal(t, a, dna.Combine(sum, b, dna.OpSub), "%s+%s-%s", a, b, b)
		}
	}
}

func TestCombine_XorIsSelfInverse(t *testing.T) {
	for _, a := range bases {
		for _, b := range bases {
			x := dna.Combine(a, b, dna.OpXor)
			assert.Equal(t, a, dna.Combine(x, b, dna.OpXor))
		}
	}
}

func TestCombine_AddTable(t *testing.T) {
	// rows: A C G T, columns: A C G T
	want := [4]string{"ACGT", "CGTA", "GTAC", "TACG"}
	for i, a := range bases {
		row := make(dna.Sequence, 4)
		for j, b := range bases {
			row[j] = dna.Combine(a, b, dna.OpAdd)
		}
		assert.Equal(t, want[i], row.String())
	}
}

func TestApply_Sequences(t *testing.T) {
	a := dna.EncodeBytes([]byte{0x00, 0x5A, 0xFF, 0x13}, dna.Rule3)
	b := dna.EncodeBytes([]byte{0x77, 0x01, 0x80, 0xC4}, dna.Rule3)

	sum, err := dna.Apply(a, b, dna.OpAdd)
	require.NoError(t, err)
	back, err := dna.Apply(sum, b, dna.OpSub)
	require.NoError(t, err)
	require.Equal(t, a, back)

	_, err = dna.Apply(a, b[:4], dna.OpAdd)
	require.Error(t, err)
}

func TestApply_RejectsUnknownOp(t *testing.T) {
	a := dna.EncodeBytes([]byte{1, 2}, dna.Rule1)
	_, err := dna.Apply(a, a, dna.Op(7))
	require.ErrorContains(t, err, "op(7)")
	assert.False(t, dna.Op(3).Valid())
	assert.Panics(t, func() { dna.Combine(dna.A, dna.C, dna.Op(3)) })
}
