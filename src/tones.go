package genewave

/*------------------------------------------------------------------
 *
 * Purpose:	Bidirectional mapping between GF(32) symbols and tone
 *		fundamental frequencies.
 *
 * Description:	The 32 symbols map onto a chromatic equal-tempered
 *		scale, MIDI notes 60 through 91 (C4 through G6).  One
 *		semitone of spacing (about 6%) is far wider than the
 *		worst-case detection error of the demodulator's FFT at
 *		the configured segment length, so a measured peak can
 *		never cross the midpoint to an adjacent entry under
 *		normal operating conditions.
 *
 *		The table is built once and shared by encoder and
 *		decoder; both sides must use identical frequencies or
 *		decoding fails.
 *
 *----------------------------------------------------------------*/

import "math"

// baseMIDINote is the MIDI note of symbol 0 (C4, middle C).
const baseMIDINote = 60

// ToneTable maps field elements to fundamental frequencies and back.
// Immutable after NewToneTable, safe for concurrent use.
type ToneTable struct {
	freqs [FieldOrder]float64
}

// NewToneTable builds the standard 32-entry chromatic table.
func NewToneTable() *ToneTable {
	var t = new(ToneTable)
	for i := 0; i < FieldOrder; i++ {
		t.freqs[i] = midiToHz(baseMIDINote + i)
	}
	return t
}

// midiToHz converts a MIDI note number to its equal-tempered frequency,
// A4 (note 69) = 440 Hz.
func midiToHz(note int) float64 {
	return 440.0 * math.Pow(2, float64(note-69)/12.0)
}

// Frequency returns the fundamental frequency for a symbol.
func (t *ToneTable) Frequency(symbol byte) float64 {
	return t.freqs[symbol&fieldMax]
}

// ClosestSymbol resolves a measured frequency to the symbol whose table
// entry is nearest by absolute distance.  It never fails: every finite
// frequency maps to exactly one symbol, even under channel distortion.
func (t *ToneTable) ClosestSymbol(freq float64) byte {
	var best byte
	var bestDist = math.Inf(1)
	for i, f := range t.freqs {
		var d = math.Abs(f - freq)
		if d < bestDist {
			bestDist = d
			best = byte(i)
		}
	}
	return best
}

// MaxFrequency returns the highest table entry, used by configuration
// validation to keep every harmonic below Nyquist.
func (t *ToneTable) MaxFrequency() float64 {
	return t.freqs[FieldOrder-1]
}
