// Package diffusion mixes a DNA-encoded plane with chaotic key material.
//
// A round runs two chained passes over the DNA plane, decodes it, and runs
// two more chained passes over the bytes through a key-derived box S:
//
//	forward:  f[i] = p[i] + k[i] + f[i-1]      with f[-1] = k[n-1]
//	backward: c[i] = (f[i] + k[i]) xor c[i+1]  with c[n]  = k[0]
//	bytes:    g[i] = S[b[i] + g[i-1]]          with g[-1] = kb[n-1]
//	          o[i] = S[g[i] + o[i+1]]          with o[n]  = kb[0]
//
// b is c decoded to bytes and kb is the keystream as bytes. The DNA chains
// carry a single base, and they carry a difference unchanged, so on their own
// two different edits can cancel or leave the same output difference. The
// byte chains carry a full byte through a bijection: once two inputs differ
// at some position, every later value of that chain differs too, and what
// the difference looks like depends on the data.
//
// Undiffuse and Unscramble invert the passes in the opposite order. Every
// inverse pass only reads values that are already known, so each is a
// straight loop.
package diffusion

import (
	"fmt"

	"github.com/Danishprabhu04/image-encrypt/chaos"
	"github.com/Danishprabhu04/image-encrypt/dna"
	"github.com/Danishprabhu04/image-encrypt/models"
	"github.com/Danishprabhu04/image-encrypt/permutation"
)

// SBoxSize is the number of chaotic values a round spends on its box.
const SBoxSize = 256

// SBox maps each byte value to its substitute.
type SBox [SBoxSize]byte

// DeriveSBox ranks SBoxSize chaotic values into a byte permutation.
func DeriveSBox(vals []float64) (SBox, error) {
	var box SBox
	if len(vals) != SBoxSize {
		return box, fmt.Errorf("substitution box needs %d values, got %d", SBoxSize, len(vals))
	}
	for i, src := range permutation.Derive(vals) {
		box[i] = byte(src)
	}
	return box, nil
}

// Inverse returns the box that undoes b.
func (b *SBox) Inverse() SBox {
	var inv SBox
	for i, v := range b {
		inv[v] = byte(i)
	}
	return inv
}

// Scramble runs the forward and backward byte chains of data through box,
// starting from first and last respectively.
func Scramble(data []byte, box *SBox, first, last byte) []byte {
	n := len(data)
	g := make([]byte, n)
	prev := first
	for i, v := range data {
		g[i] = box[v+prev]
		prev = g[i]
	}

	out := make([]byte, n)
	next := last
	for i := n - 1; i >= 0; i-- {
		out[i] = box[g[i]+next]
		next = out[i]
	}
	return out
}

// Unscramble reverses Scramble; inv must be the inverse of its box.
func Unscramble(data []byte, inv *SBox, first, last byte) []byte {
	n := len(data)
	g := make([]byte, n)
	for i, v := range data {
		next := last
		if i+1 < n {
			next = data[i+1]
		}
		g[i] = inv[v] - next
	}

	out := make([]byte, n)
	for i, v := range g {
		prev := first
		if i > 0 {
			prev = g[i-1]
		}
		out[i] = inv[v] - prev
	}
	return out
}

// Round is the key material of one diffusion round.
type Round struct {
	rule  dna.Rule
	ks    dna.Sequence
	first byte
	last  byte
	box   SBox
	inv   SBox
}

// NewRound builds a round from n+SBoxSize chaotic values, n >= 1: the first
// n become the keystream of an n-byte plane and the last SBoxSize the box.
func NewRound(vals []float64, rule dna.Rule) (*Round, error) {
	if len(vals) <= SBoxSize {
		return nil, fmt.Errorf("diffusion round needs more than %d values, got %d", SBoxSize, len(vals))
	}
	split := len(vals) - SBoxSize
	box, err := DeriveSBox(vals[split:])
	if err != nil {
		return nil, err
	}
	return &Round{
		rule:  rule,
		ks:    Keystream(vals[:split], rule),
		first: chaos.Quantize(vals[split-1]),
		last:  chaos.Quantize(vals[0]),
		box:   box,
		inv:   box.Inverse(),
	}, nil
}

// Forward runs the DNA chains and then the byte chains.
func (r *Round) Forward(plain dna.Sequence) (dna.Sequence, error) {
	c, err := Diffuse(plain, r.ks)
	if err != nil {
		return nil, err
	}
	data, err := dna.DecodeSequence(c, r.rule)
	if err != nil {
		return nil, err
	}
	return dna.EncodeBytes(Scramble(data, &r.box, r.first, r.last), r.rule), nil
}

// Backward undoes Forward.
func (r *Round) Backward(cipher dna.Sequence) (dna.Sequence, error) {
	if err := checkLengths(cipher, r.ks); err != nil {
		return nil, err
	}
	data, err := dna.DecodeSequence(cipher, r.rule)
	if err != nil {
		return nil, err
	}
	return Undiffuse(dna.EncodeBytes(Unscramble(data, &r.inv, r.first, r.last), r.rule), r.ks)
}

// Keystream quantizes each chaotic value to a byte and DNA-encodes it, so the
// keystream holds four bases per value.
func Keystream(seq []float64, rule dna.Rule) dna.Sequence {
	ks := make(dna.Sequence, 4*len(seq))
	for i, x := range seq {
		quad := dna.Encode(chaos.Quantize(x), rule)
		copy(ks[4*i:4*i+4], quad[:])
	}
	return ks
}

// Diffuse runs the forward and backward chains of plain against ks.
func Diffuse(plain, ks dna.Sequence) (dna.Sequence, error) {
	if err := checkLengths(plain, ks); err != nil {
		return nil, err
	}
	n := len(plain)
	if n == 0 {
		return dna.Sequence{}, nil
	}

	f := make(dna.Sequence, n)
	prev := ks[n-1]
	for i := range n {
		f[i] = add3(plain[i], ks[i], prev)
		prev = f[i]
	}

	c := make(dna.Sequence, n)
	next := ks[0]
	for i := n - 1; i >= 0; i-- {
		c[i] = dna.Combine(dna.Combine(f[i], ks[i], dna.OpAdd), next, dna.OpXor)
		next = c[i]
	}
	return c, nil
}

// Undiffuse reverses Diffuse with the same keystream.
func Undiffuse(cipher, ks dna.Sequence) (dna.Sequence, error) {
	if err := checkLengths(cipher, ks); err != nil {
		return nil, err
	}
	n := len(cipher)
	if n == 0 {
		return dna.Sequence{}, nil
	}

	// c[i+1], with c[n] = k[0]
	next := append(append(make(dna.Sequence, 0, n), cipher[1:]...), ks[0])
	x, err := dna.Apply(cipher, next, dna.OpXor)
	if err != nil {
		return nil, err
	}
	f, err := dna.Apply(x, ks, dna.OpSub)
	if err != nil {
		return nil, err
	}

	p := make(dna.Sequence, n)
	for i := range n {
		prev := ks[n-1]
		if i > 0 {
			prev = f[i-1]
		}
		p[i] = sub3(f[i], ks[i], prev)
	}
	return p, nil
}

func add3(a, b, c dna.Base) dna.Base {
	return dna.Combine(dna.Combine(a, b, dna.OpAdd), c, dna.OpAdd)
}

func sub3(a, b, c dna.Base) dna.Base {
	return dna.Combine(dna.Combine(a, b, dna.OpSub), c, dna.OpSub)
}

func checkLengths(data, ks dna.Sequence) error {
	if len(data) != len(ks) {
		return fmt.Errorf("%w: %d bases against a %d-base keystream",
			models.ErrDimensionMismatch, len(data), len(ks))
	}
	return nil
}
