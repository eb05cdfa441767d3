package genewave

/*------------------------------------------------------------------
 *
 * Purpose:	Arithmetic over GF(32), the symbol field of the
 *		Reed-Solomon code.
 *
 * Description:	Multiplication and division are table lookups against
 *		log/antilog tables built once from a primitive
 *		polynomial of degree 5.  Addition and subtraction are
 *		both bitwise XOR in characteristic 2.  Everything is
 *		exact integer arithmetic; no floating point anywhere.
 *
 *----------------------------------------------------------------*/

import "fmt"

const (
	// FieldOrder is the number of elements in GF(32).
	FieldOrder = 32

	// fieldMax is the order of the multiplicative group, 2^5 - 1.
	fieldMax = FieldOrder - 1

	// PrimitivePoly is x^5 + x^2 + 1, the conventional primitive
	// polynomial for GF(2^5).
	PrimitivePoly = 0x25
)

// Field holds the log/antilog tables for GF(32).  It is immutable after
// NewField and safe for concurrent use.
type Field struct {
	// exp[i] = alpha^i for i in 0..61.  Double length so products of
	// two logs never need an explicit reduction mod 31.
	exp [2 * fieldMax]byte

	// log[a] = i such that alpha^i = a, for a in 1..31.
	// log[0] is never consulted; zero is special-cased everywhere.
	log [FieldOrder]byte
}

// NewField builds the lookup tables from the given primitive polynomial.
// It fails if the polynomial does not generate the full multiplicative
// group, detected the same way as the generator-cycle check in the
// classic Karn codec: alpha^31 must return to 1.
func NewField(primPoly uint) (*Field, error) {
	var f = new(Field)

	var sr uint = 1
	for i := 0; i < fieldMax; i++ {
		f.exp[i] = byte(sr)
		f.log[sr] = byte(i)
		sr <<= 1
		if sr&FieldOrder != 0 {
			sr ^= primPoly
		}
		sr &= fieldMax
	}
	if sr != 1 {
		return nil, fmt.Errorf("genewave: polynomial 0x%x is not primitive over GF(32)", primPoly)
	}

	// Extend the antilog table so exp[log a + log b] works directly.
	for i := fieldMax; i < 2*fieldMax; i++ {
		f.exp[i] = f.exp[i-fieldMax]
	}

	return f, nil
}

// Add returns a + b.  In GF(2^5) this is bitwise XOR.
func (f *Field) Add(a, b byte) byte {
	return a ^ b
}

// Sub returns a - b, identical to Add in characteristic 2.
func (f *Field) Sub(a, b byte) byte {
	return a ^ b
}

// Mul returns a * b.
func (f *Field) Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[int(f.log[a])+int(f.log[b])]
}

// Div returns a / b, or ErrDivideByZero when b is the zero element.
func (f *Field) Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	if a == 0 {
		return 0, nil
	}
	return f.exp[int(f.log[a])+fieldMax-int(f.log[b])], nil
}

// Inv returns the multiplicative inverse of a, or ErrDivideByZero for
// the zero element.
func (f *Field) Inv(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrDivideByZero
	}
	return f.exp[fieldMax-int(f.log[a])], nil
}

// Pow returns a raised to the n-th power, n >= 0.  Like repeated
// multiplication it maps a^0 to 1 for any a, including zero.
func (f *Field) Pow(a byte, n int) byte {
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	return f.exp[(int(f.log[a])*n)%fieldMax]
}

// Alpha returns the e-th power of the primitive element, for any e
// including negative exponents.
func (f *Field) Alpha(e int) byte {
	e %= fieldMax
	if e < 0 {
		e += fieldMax
	}
	return f.exp[e]
}

// Log returns the discrete logarithm of a, or ErrDivideByZero for the
// zero element, which has none.
func (f *Field) Log(a byte) (int, error) {
	if a == 0 {
		return 0, ErrDivideByZero
	}
	return int(f.log[a]), nil
}
