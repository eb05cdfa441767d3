package genewave

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestStreamCodec(t testing.TB) *StreamCodec {
	t.Helper()
	var sc, err = NewStreamCodec(DefaultModemConfig(), nil)
	require.NoError(t, err)
	return sc
}

// 24 bases need two blocks: 23 + 1 padded to 23.  The waveform covers
// the 4 header symbols plus 62 block symbols, each exactly one tone.
func TestEncodeStreamTwoBlocks(t *testing.T) {
	var sc = newTestStreamCodec(t)
	var cfg = DefaultModemConfig()

	var dna = strings.Repeat("ATGC", 6) // 24 bases
	var wave, err = sc.EncodeStream(dna)
	require.NoError(t, err)
	assert.Equal(t, (headerSymbols+2*BlockLength)*cfg.SamplesPerTone(), len(wave))

	decoded, corrected, err := sc.DecodeStream(wave)
	require.NoError(t, err)
	assert.Equal(t, dna, decoded, "padding must be stripped after decode")
	assert.Equal(t, 0, corrected)
}

func TestStreamRoundTrip(t *testing.T) {
	var sc = newTestStreamCodec(t)

	var cases = []string{
		"A",
		"ATGC",
		"ATGCATGCATGCATGCATGCATG", // exactly one block
		strings.Repeat("GATTACA", 10),
	}
	for _, dna := range cases {
		var wave, err = sc.EncodeStream(dna)
		require.NoError(t, err)

		decoded, corrected, err := sc.DecodeStream(wave)
		require.NoError(t, err, "round trip of %q", dna)
		assert.Equal(t, dna, decoded)
		assert.Equal(t, 0, corrected)
	}
}

func TestStreamRoundTripProperty(t *testing.T) {
	var sc = newTestStreamCodec(t)

	rapid.Check(t, func(t *rapid.T) {
		var bases = rapid.SliceOfN(rapid.SampledFrom([]byte("ATGC")), 1, 30).Draw(t, "bases")
		var dna = string(bases)

		var wave, err = sc.EncodeStream(dna)
		require.NoError(t, err)

		decoded, _, err := sc.DecodeStream(wave)
		require.NoError(t, err)
		assert.Equal(t, dna, decoded)
	})
}

// Encoding scrubs the input: case folds, everything outside ATGC dropped.
func TestEncodeStreamScrubsInput(t *testing.T) {
	var sc = newTestStreamCodec(t)

	var wave, err = sc.EncodeStream("  at-gc\nNNN atGC!")
	require.NoError(t, err)

	decoded, _, err := sc.DecodeStream(wave)
	require.NoError(t, err)
	assert.Equal(t, "ATGCATGC", decoded)
}

// Overwrite four tones of the single block with wrong symbols: the
// Reed-Solomon layer repairs all of them.
func TestStreamCorrectsCorruptedTones(t *testing.T) {
	var sc = newTestStreamCodec(t)
	var cfg = DefaultModemConfig()
	var synth = newTestSynth(t, cfg)

	var dna = "ATGCATGCATGCATGCATGCATG" // 23 bases, one block
	var wave, err = sc.EncodeStream(dna)
	require.NoError(t, err)

	// Slots 0..3 are the header; slots 4..26 carry the data symbols.
	var n = cfg.SamplesPerTone()
	for _, slot := range []int{5, 9, 16, 25} {
		var wrong = synth.Synthesize([]byte{20})
		copy(wave[slot*n:(slot+1)*n], wrong)
	}

	decoded, corrected, err := sc.DecodeStream(wave)
	require.NoError(t, err)
	assert.Equal(t, dna, decoded)
	assert.Equal(t, 4, corrected)
}

// Six corrupted tones exceed the per-block capacity.  The stream decoder
// must either report the block or produce a visibly wrong result; the
// original sequence must never come back marked clean by accident.
func TestStreamBeyondCapacity(t *testing.T) {
	var sc = newTestStreamCodec(t)
	var cfg = DefaultModemConfig()
	var synth = newTestSynth(t, cfg)

	var dna = "ATGCATGCATGCATGCATGCATG"
	var wave, err = sc.EncodeStream(dna)
	require.NoError(t, err)

	var n = cfg.SamplesPerTone()
	for _, slot := range []int{4, 7, 11, 15, 19, 23} {
		var wrong = synth.Synthesize([]byte{27})
		copy(wave[slot*n:(slot+1)*n], wrong)
	}

	var decoded, _, decErr = sc.DecodeStream(wave)
	if decErr == nil {
		assert.NotEqual(t, dna, decoded)
	} else {
		var be *BlockError
		if assert.ErrorAs(t, decErr, &be) {
			assert.Equal(t, 0, be.Index, "failure must name the corrupted block")
		}
	}
}

func TestEncodeStreamRejectsEmpty(t *testing.T) {
	var sc = newTestStreamCodec(t)

	var _, err = sc.EncodeStream("")
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = sc.EncodeStream("xyz 123")
	assert.ErrorIs(t, err, ErrEmptySequence, "scrubbing may leave nothing behind")
}

func TestEncodeStreamRejectsOversized(t *testing.T) {
	var sc = newTestStreamCodec(t)

	var _, err = sc.EncodeStream(strings.Repeat("A", MaxStreamBases+1))
	assert.Error(t, err)
}

func TestDecodeStreamShortWaveform(t *testing.T) {
	var sc = newTestStreamCodec(t)
	var cfg = DefaultModemConfig()

	var _, _, err = sc.DecodeStream(make([]float64, cfg.SamplesPerTone()*3))
	assert.ErrorIs(t, err, ErrShortWaveform)
}

// The header travels unprotected; a corrupted header symbol is an
// explicit failure, not a garbage-length decode.
func TestDecodeStreamCorruptHeader(t *testing.T) {
	var sc = newTestStreamCodec(t)
	var cfg = DefaultModemConfig()
	var synth = newTestSynth(t, cfg)

	var wave, err = sc.EncodeStream("ATGC")
	require.NoError(t, err)

	var n = cfg.SamplesPerTone()
	copy(wave[:n], synth.Synthesize([]byte{29})) // 29 > 0xF

	var _, _, decErr = sc.DecodeStream(wave)
	assert.ErrorContains(t, decErr, "header")
}

func TestHeaderRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var n = rapid.IntRange(1, MaxStreamBases).Draw(t, "n")

		var syms = encodeHeader(n)
		require.Len(t, syms, headerSymbols)
		for _, s := range syms {
			assert.LessOrEqual(t, s, byte(0xF), "header symbols stay in nibble range")
		}

		var got, err = decodeHeader(syms)
		require.NoError(t, err)
		assert.Equal(t, n, got)
	})
}

func TestDecodeHeaderErrors(t *testing.T) {
	var _, err = decodeHeader([]byte{0, 0, 16, 0})
	assert.Error(t, err)

	_, err = decodeHeader([]byte{0, 0, 0, 0})
	assert.Error(t, err, "zero declared bases means a broken stream")
}
