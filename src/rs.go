package genewave

/*------------------------------------------------------------------
 *
 * Purpose:	Reed-Solomon RS(31,23) block codec over GF(32).
 *
 * Description:	Systematic encoder and syndrome-based decoder in the
 *		lineage of the classic Karn RS codec: the generator
 *		polynomial is built from 8 consecutive powers of the
 *		primitive element, decoding runs Berlekamp-Massey over
 *		the syndromes, finds the error-locator roots by trial
 *		substitution of every nonzero field element, and
 *		computes error magnitudes with the Forney formula.
 *
 *		The root search is intentionally brute force.  The
 *		field has 31 nonzero elements; simplicity is worth
 *		more than a cleverer search here.
 *
 *----------------------------------------------------------------*/

import "fmt"

const (
	// BlockLength is the codeword size n.
	BlockLength = 31

	// MessageLength is the number of data symbols k per block.
	MessageLength = 23

	// ParityLength is the number of parity symbols n - k.
	ParityLength = BlockLength - MessageLength

	// CorrectionCapacity is the guaranteed number of repairable symbol
	// errors per block, (n - k) / 2.  This bound is exact.
	CorrectionCapacity = ParityLength / 2

	// firstRoot is the exponent of the first generator polynomial root:
	// the roots are alpha^1 through alpha^8.
	firstRoot = 1
)

// Codec is an RS(31,23) encoder/decoder.  It is immutable after NewCodec
// and safe for concurrent use; every call is a pure function of its input.
type Codec struct {
	field *Field

	// genpoly holds the monic degree-8 generator polynomial with the
	// highest-degree coefficient first, so genpoly[0] == 1.
	genpoly [ParityLength + 1]byte
}

// NewCodec derives the generator polynomial from the field and returns a
// ready-to-use codec.
func NewCodec(f *Field) *Codec {
	var c = &Codec{field: f}

	// Multiply out (x - alpha^1)(x - alpha^2)...(x - alpha^8).
	// Negation is identity in characteristic 2.
	var gen = []byte{1}
	for i := 0; i < ParityLength; i++ {
		var root = f.Alpha(firstRoot + i)
		var next = make([]byte, len(gen)+1)
		for j, g := range gen {
			next[j] ^= g
			next[j+1] ^= f.Mul(g, root)
		}
		gen = next
	}
	copy(c.genpoly[:], gen)

	return c
}

// GeneratorPoly returns a copy of the generator polynomial coefficients,
// highest degree first.
func (c *Codec) GeneratorPoly() []byte {
	var out = make([]byte, len(c.genpoly))
	copy(out, c.genpoly[:])
	return out
}

func checkSymbolRange(block []byte) error {
	for i, s := range block {
		if s >= FieldOrder {
			return fmt.Errorf("genewave: symbol %d at position %d outside GF(32): %w", s, i, ErrMalformedBlock)
		}
	}
	return nil
}

/*------------------------------------------------------------------
 *
 * Name:	EncodeBlock
 *
 * Purpose:	Systematic encode of one 23-symbol data block.
 *
 * Inputs:	data	- Exactly 23 field elements.
 *
 * Returns:	The 31-symbol codeword: the 23 data symbols unchanged,
 *		followed by the 8 parity symbols, which are the
 *		remainder of data(x) * x^8 divided by the generator
 *		polynomial.
 *
 *----------------------------------------------------------------*/

func (c *Codec) EncodeBlock(data []byte) ([]byte, error) {
	if len(data) != MessageLength {
		return nil, fmt.Errorf("genewave: encode input is %d symbols, want %d: %w", len(data), MessageLength, ErrMalformedBlock)
	}
	if err := checkSymbolRange(data); err != nil {
		return nil, err
	}

	// Polynomial long division with data[0] as the highest-degree
	// coefficient.  After the loop the low 8 positions hold the
	// remainder, i.e. the parity symbols.
	var rem = make([]byte, BlockLength)
	copy(rem, data)
	for i := 0; i < MessageLength; i++ {
		var coef = rem[i]
		if coef == 0 {
			continue
		}
		for j, g := range c.genpoly {
			rem[i+j] ^= c.field.Mul(g, coef)
		}
	}

	var out = make([]byte, BlockLength)
	copy(out, data)
	copy(out[MessageLength:], rem[MessageLength:])
	return out, nil
}

/*------------------------------------------------------------------
 *
 * Name:	DecodeBlock
 *
 * Purpose:	Correct up to 4 symbol errors in one received block and
 *		return its 23 data symbols.
 *
 * Inputs:	received - Exactly 31 field elements, possibly corrupted.
 *
 * Returns:	Corrected data symbols, the number of symbols that were
 *		repaired, and an error.  ErrUncorrectable means more
 *		errors than the code can repair were detected; the
 *		caller must not use the data in that case.
 *
 *----------------------------------------------------------------*/

func (c *Codec) DecodeBlock(received []byte) ([]byte, int, error) {
	if len(received) != BlockLength {
		return nil, 0, fmt.Errorf("genewave: decode input is %d symbols, want %d: %w", len(received), BlockLength, ErrMalformedBlock)
	}
	if err := checkSymbolRange(received); err != nil {
		return nil, 0, err
	}

	var f = c.field

	// Syndromes: evaluate the received polynomial at each generator
	// root alpha^1..alpha^8, received[0] being the highest-degree
	// coefficient (Horner's rule).
	var synd [ParityLength]byte
	var nonzero byte
	for i := 0; i < ParityLength; i++ {
		var root = f.Alpha(firstRoot + i)
		var s = received[0]
		for j := 1; j < BlockLength; j++ {
			s = received[j] ^ f.Mul(s, root)
		}
		synd[i] = s
		nonzero |= s
	}

	if nonzero == 0 {
		// Already a codeword.
		var out = make([]byte, MessageLength)
		copy(out, received[:MessageLength])
		return out, 0, nil
	}

	// Berlekamp-Massey: find the minimal-degree error locator
	// polynomial lambda, low-order coefficient first.
	var lambda = make([]byte, ParityLength+1)
	var prev = make([]byte, ParityLength+1)
	lambda[0], prev[0] = 1, 1
	var degL = 0      // current locator degree L
	var shift = 1     // x^m gap since prev was last updated
	var prevD byte = 1 // discrepancy associated with prev

	for n := 0; n < ParityLength; n++ {
		var d = synd[n]
		for i := 1; i <= degL; i++ {
			d ^= f.Mul(lambda[i], synd[n-i])
		}
		if d == 0 {
			shift++
			continue
		}

		// next = lambda - (d/prevD) * x^shift * prev
		var scale, _ = f.Div(d, prevD)
		var next = make([]byte, ParityLength+1)
		copy(next, lambda)
		for i := 0; i+shift <= ParityLength; i++ {
			next[i+shift] ^= f.Mul(scale, prev[i])
		}

		if 2*degL <= n {
			degL, prev, prevD, shift = n+1-degL, lambda, d, 1
			lambda = next
		} else {
			lambda = next
			shift++
		}
	}

	// Actual degree of lambda; a mismatch against degL means the error
	// pattern is inconsistent.
	var degLambda = 0
	for j := 1; j <= ParityLength; j++ {
		if lambda[j] != 0 {
			degLambda = j
		}
	}
	if degLambda > CorrectionCapacity || degLambda != degL {
		return nil, 0, ErrUncorrectable
	}

	// Root search by trial substitution of every nonzero field element
	// x = alpha^e.  A root at exponent e marks an error at position
	// e - 1 mod 31 within the block.
	var rootExp []int
	var errPos []int
	for e := 0; e < fieldMax; e++ {
		var q byte
		for j := 0; j <= degLambda; j++ {
			if lambda[j] != 0 {
				q ^= f.exp[(int(f.log[lambda[j]])+e*j)%fieldMax]
			}
		}
		if q == 0 {
			rootExp = append(rootExp, e)
			errPos = append(errPos, (e+BlockLength-1)%fieldMax)
		}
	}
	if len(rootExp) != degLambda {
		// deg(lambda) roots must all exist and be distinct, otherwise
		// more than t errors occurred.
		return nil, 0, ErrUncorrectable
	}

	// Error evaluator omega(x) = synd(x) * lambda(x) mod x^8.
	var omega [ParityLength]byte
	for i := 0; i < ParityLength; i++ {
		var t byte
		for j := 0; j <= i && j <= degLambda; j++ {
			t ^= f.Mul(synd[i-j], lambda[j])
		}
		omega[i] = t
	}

	// Forney: magnitude at each located position is
	// omega(Xinv) / lambda'(Xinv), with Xinv = alpha^e.  The first
	// generator root being alpha^1 makes the usual X^(1-fcr) factor
	// vanish.
	var corrected = make([]byte, BlockLength)
	copy(corrected, received)
	var repaired = 0
	for r, e := range rootExp {
		var num, den byte
		for j := 0; j < ParityLength; j++ {
			if omega[j] != 0 {
				num ^= f.exp[(int(f.log[omega[j]])+e*j)%fieldMax]
			}
		}
		for j := 1; j <= degLambda; j += 2 {
			// lambda' keeps only odd-degree terms in characteristic 2.
			if lambda[j] != 0 {
				den ^= f.exp[(int(f.log[lambda[j]])+e*(j-1))%fieldMax]
			}
		}
		if den == 0 {
			return nil, 0, ErrUncorrectable
		}
		if num != 0 {
			var mag, _ = f.Div(num, den)
			corrected[errPos[r]] ^= mag
			repaired++
		}
	}

	return corrected[:MessageLength], repaired, nil
} /* end DecodeBlock */
