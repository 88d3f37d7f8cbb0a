package dna

import "fmt"

// Op is a DNA-domain binary operation over the canonical codes.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpXor
)

// Valid reports whether op is one of OpAdd, OpSub or OpXor.
func (op Op) Valid() bool {
	return op <= OpXor
}

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpXor:
		return "xor"
	default:
		return fmt.Sprintf("op(%d)", uint8(op))
	}
}

// Combine applies op to a single pair of bases. Add and sub are cyclic
// modulo 4, so Combine(Combine(a, b, OpAdd), b, OpSub) == a. It panics on an
// op outside OpAdd, OpSub and OpXor.
func Combine(a, b Base, op Op) Base {
	switch op {
	case OpAdd:
		return (a + b) & 3
	case OpSub:
		return (a - b) & 3
	case OpXor:
		return (a ^ b) & 3
	default:
		panic(fmt.Sprintf("dna: unknown %s", op))
	}
}

// Apply combines two equal-length sequences base by base.
func Apply(a, b Sequence, op Op) (Sequence, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("DNA %s: unknown operation", op)
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("DNA %s: operand lengths differ (%d vs %d)", op, len(a), len(b))
	}
	out := make(Sequence, len(a))
	for i := range a {
		out[i] = Combine(a[i], b[i], op)
	}
	return out, nil
}
