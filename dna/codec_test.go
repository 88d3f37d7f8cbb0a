package dna_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danishprabhu04/image-encrypt/dna"
)

func TestEncodeDecode_AllRulesAllBytes(t *testing.T) {
	for r := dna.Rule1; r <= dna.Rule8; r++ {
		for v := 0; v < 256; v++ {
			b := byte(v)
			if got := dna.Decode(dna.Encode(b, r), r); got != b {
				t.Fatalf("%s: decode(encode(%d)) = %d", r, b, got)
			}
		}
	}
}

func TestRules_AreComplementaryBijections(t *testing.T) {
	for r := dna.Rule1; r <= dna.Rule8; r++ {
		seen := map[dna.Base]bool{}
		for v := byte(0); v < 4; v++ {
			// 0b000000vv puts v in the last base
			base := dna.Encode(v, r)[3]
			require.False(t, seen[base], "%s maps two values to %s", r, base)
			seen[base] = true

			partner := dna.Encode(3-v, r)[3]
			assert.Equal(t, base.Complement(), partner, "%s: %d and %d are not complementary", r, v, 3-v)
		}
	}
}

func TestEncode_Rule1MatchesBinaryOrder(t *testing.T) {
	// 0b00_01_10_11
	got := dna.Encode(0x1B, dna.Rule1)
	assert.Equal(t, "ACGT", dna.Sequence(got[:]).String())
}

func TestEncodeBytes_RoundTrip(t *testing.T) {
	data := []byte("chaotic DNA")
	for r := dna.Rule1; r <= dna.Rule8; r++ {
		seq := dna.EncodeBytes(data, r)
		require.Len(t, seq, 4*len(data))
		back, err := dna.DecodeSequence(seq, r)
		require.NoError(t, err)
		require.Equal(t, data, back)
	}
}

func TestDecodeSequence_RejectsPartialByte(t *testing.T) {
	_, err := dna.DecodeSequence(dna.Sequence{dna.A, dna.C, dna.G}, dna.Rule1)
	require.Error(t, err)
}

func TestRuleFromByte(t *testing.T) {
	for v := 0; v < 256; v++ {
		assert.True(t, dna.RuleFromByte(byte(v)).Valid())
	}
	assert.False(t, dna.Rule(8).Valid())
}
