// Package genewave transmits DNA sequences through a lossy acoustic
// channel and recovers them with guaranteed error correction.
//
// Bases are mapped to symbols of GF(32), protected with a Reed-Solomon
// RS(31,23) block code, and rendered as a sequence of fixed-duration
// musical tones.  The receiving side slices the waveform on the same
// deterministic time grid, recovers one symbol per tone by spectral
// peak detection, and lets the Reed-Solomon decoder repair up to 4
// corrupted symbols per block.
//
// All components are pure functions over immutable inputs plus constant
// tables built once at construction time.  Audio file handling and
// playback are collaborator glue; the codec itself never touches a file.
package genewave

import (
	"errors"
	"fmt"
	"strings"
)

/*
 * Error taxonomy.
 *
 * DomainError (ErrDivideByZero) and MalformedBlock are caller contract
 * violations, always fatal to the call.  Uncorrectable and OutOfAlphabet
 * are channel conditions, reported per block with the block index so the
 * caller can decide whether to abort or continue.
 */

var (
	// ErrDivideByZero is returned for division or inversion by the
	// zero element of the field.
	ErrDivideByZero = errors.New("genewave: division by zero field element")

	// ErrMalformedBlock is returned when an encode input is not exactly
	// 23 symbols or a decode input is not exactly 31 symbols.
	ErrMalformedBlock = errors.New("genewave: malformed block length")

	// ErrUncorrectable is returned when a received block contains more
	// errors than the code can repair.
	ErrUncorrectable = errors.New("genewave: too many errors to correct")

	// ErrOutOfAlphabet is returned when a data symbol still lies outside
	// the DNA alphabet after an apparently successful correction.  This
	// means the true error count exceeded the correction capacity even
	// though the syndrome check passed.
	ErrOutOfAlphabet = errors.New("genewave: corrected symbol outside DNA alphabet")

	// ErrEmptySequence is returned when an input contains no valid bases.
	ErrEmptySequence = errors.New("genewave: no valid DNA bases in input")

	// ErrShortWaveform is returned when a waveform does not cover the
	// expected symbol grid.
	ErrShortWaveform = errors.New("genewave: waveform shorter than symbol grid")
)

// BlockError wraps a per-block decode failure with the zero-based index
// of the offending block within the stream.
type BlockError struct {
	Index int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d: %s", e.Index, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

/*
 * DNA alphabet.
 *
 * The four bases occupy field elements 0..3.  Parity symbols may use the
 * full 0..31 range; only data positions are required to stay within the
 * alphabet after decoding.
 */

const (
	BaseA = 0
	BaseT = 1
	BaseG = 2
	BaseC = 3
)

var baseLetters = [4]byte{'A', 'T', 'G', 'C'}

// ScrubSequence upcases the input and drops every character that is not
// one of A, T, G, C.  The original stream length must be recorded from
// the scrubbed result, not the raw input.
func ScrubSequence(dna string) string {
	var sb strings.Builder
	for _, c := range strings.ToUpper(dna) {
		switch c {
		case 'A', 'T', 'G', 'C':
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// BasesToSymbols converts a scrubbed DNA string to field elements in 0..3.
func BasesToSymbols(dna string) ([]byte, error) {
	if len(dna) == 0 {
		return nil, ErrEmptySequence
	}
	var symbols = make([]byte, len(dna))
	for i := 0; i < len(dna); i++ {
		switch dna[i] {
		case 'A':
			symbols[i] = BaseA
		case 'T':
			symbols[i] = BaseT
		case 'G':
			symbols[i] = BaseG
		case 'C':
			symbols[i] = BaseC
		default:
			return nil, fmt.Errorf("genewave: invalid base %q at position %d", dna[i], i)
		}
	}
	return symbols, nil
}

// SymbolsToBases converts data symbols back to a DNA string.  Any symbol
// outside 0..3 yields ErrOutOfAlphabet with its position.
func SymbolsToBases(symbols []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(symbols))
	for i, s := range symbols {
		if s > BaseC {
			return "", fmt.Errorf("genewave: symbol %d at position %d: %w", s, i, ErrOutOfAlphabet)
		}
		sb.WriteByte(baseLetters[s])
	}
	return sb.String(), nil
}
