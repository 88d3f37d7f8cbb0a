// Package dna converts bytes to and from DNA bases under the eight
// complementary encoding rules and implements DNA-domain algebra.
package dna

import (
	"fmt"
	"strings"
)

// Base is a nucleotide stored as its canonical 2-bit code.
type Base uint8

// Canonical codes. Complementary pairs sum to 3.
const (
	A Base = iota
	C
	G
	T
)

func (b Base) String() string {
	switch b & 3 {
	case A:
		return "A"
	case C:
		return "C"
	case G:
		return "G"
	default:
		return "T"
	}
}

// Complement returns the Watson-Crick partner of b.
func (b Base) Complement() Base {
	return 3 - b&3
}

// Rule is one of the eight 2-bit to base mappings.
type Rule uint8

const (
	Rule1 Rule = iota
	Rule2
	Rule3
	Rule4
	Rule5
	Rule6
	Rule7
	Rule8
)

// NumRules is the number of valid encoding rules.
const NumRules = 8

// rules[r][v] is the base that value v (00, 01, 10, 11) encodes to.
var rules = [NumRules][4]Base{
	{A, C, G, T},
	{A, G, C, T},
	{C, A, T, G},
	{C, T, A, G},
	{G, A, T, C},
	{G, T, A, C},
	{T, C, G, A},
	{T, G, C, A},
}

// inverse[r][base] is the 2-bit value that decodes from base.
var inverse = func() (inv [NumRules][4]byte) {
	for r, table := range rules {
		for v, b := range table {
			inv[r][b] = byte(v)
		}
	}
	return inv
}()

// Valid reports whether r is one of Rule1..Rule8.
func (r Rule) Valid() bool {
	return r < NumRules
}

func (r Rule) String() string {
	return fmt.Sprintf("rule%d", int(r)+1)
}

// RuleFromByte selects a rule from any byte value.
func RuleFromByte(b byte) Rule {
	return Rule(b % NumRules)
}

// Encode maps one byte to four bases, most significant bit pair first.
func Encode(b byte, rule Rule) [4]Base {
	table := &rules[rule%NumRules]
	return [4]Base{
		table[(b>>6)&3],
		table[(b>>4)&3],
		table[(b>>2)&3],
		table[b&3],
	}
}

// Decode maps four bases back to the byte they encode under rule.
func Decode(bases [4]Base, rule Rule) byte {
	inv := &inverse[rule%NumRules]
	return inv[bases[0]&3]<<6 | inv[bases[1]&3]<<4 | inv[bases[2]&3]<<2 | inv[bases[3]&3]
}

// Sequence is a flat run of bases, four per encoded byte.
type Sequence []Base

func (s Sequence) String() string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, b := range s {
		sb.WriteString(b.String())
	}
	return sb.String()
}

// EncodeBytes encodes every byte of data under rule.
func EncodeBytes(data []byte, rule Rule) Sequence {
	seq := make(Sequence, 4*len(data))
	for i, b := range data {
		quad := Encode(b, rule)
		copy(seq[4*i:4*i+4], quad[:])
	}
	return seq
}

// DecodeSequence decodes seq back to bytes under rule.
func DecodeSequence(seq Sequence, rule Rule) ([]byte, error) {
	if len(seq)%4 != 0 {
		return nil, fmt.Errorf("DNA sequence length %d is not a multiple of 4", len(seq))
	}
	out := make([]byte, len(seq)/4)
	for i := range out {
		out[i] = Decode([4]Base(seq[4*i:4*i+4]), rule)
	}
	return out, nil
}
