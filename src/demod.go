package genewave

/*------------------------------------------------------------------
 *
 * Purpose:	Recover GF(32) symbols from a received waveform.
 *
 * Description:	The waveform is partitioned into equal-duration chunks
 *		by pure arithmetic on the known sample rate and tone
 *		duration.  There is no onset detection and no pitch
 *		tracking; the encoder's grid invariant makes both
 *		unnecessary.
 *
 *		For each chunk the first and last quarter are dropped
 *		(synthesis and playback transients live there), the
 *		central half goes through a real FFT, and the peak bin
 *		of the positive-frequency half resolves to the nearest
 *		table frequency.  A real signal's spectrum is conjugate
 *		symmetric, so the negative half carries nothing new.
 *
 *		Demodulation never rejects a chunk.  Whatever garbage a
 *		chunk contains, the closest symbol is returned and the
 *		Reed-Solomon layer downstream decides what was real.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Demodulator slices waveforms on the symbol grid and detects one symbol
// per slot.  Immutable after NewDemodulator apart from the FFT scratch
// buffers, so each Demodulator must be confined to one goroutine; they
// are cheap to create per worker.
type Demodulator struct {
	cfg   ModemConfig
	table *ToneTable

	segLen int
	fft    *fourier.FFT
	coeffs []complex128
}

// NewDemodulator validates the configuration and sizes the FFT for the
// retained central half of one tone.
func NewDemodulator(cfg ModemConfig, table *ToneTable) (*Demodulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var n = cfg.SamplesPerTone()
	var segLen = 3*n/4 - n/4

	return &Demodulator{
		cfg:    cfg,
		table:  table,
		segLen: segLen,
		fft:    fourier.NewFFT(segLen),
		coeffs: make([]complex128, segLen/2+1),
	}, nil
}

// Demodulate partitions wave into expectedSymbols chunks and returns the
// most probable symbol for each, in order.  The only failure mode is a
// waveform too short to cover the grid.
func (d *Demodulator) Demodulate(wave []float64, expectedSymbols int) ([]byte, error) {
	var n = d.cfg.SamplesPerTone()
	if len(wave) < expectedSymbols*n {
		return nil, fmt.Errorf("genewave: %d samples for %d symbols of %d: %w",
			len(wave), expectedSymbols, n, ErrShortWaveform)
	}

	var symbols = make([]byte, expectedSymbols)
	for i := 0; i < expectedSymbols; i++ {
		var chunk = wave[i*n : (i+1)*n]
		symbols[i] = d.detectSymbol(chunk)
	}
	return symbols, nil
}

// detectSymbol finds the dominant frequency in the stable middle of one
// chunk and maps it to the nearest table entry.
func (d *Demodulator) detectSymbol(chunk []float64) byte {
	var n = len(chunk)
	var segment = chunk[n/4 : n/4+d.segLen]

	var coeffs = d.fft.Coefficients(d.coeffs, segment)

	var peakBin int
	var peakMag float64
	for bin, c := range coeffs {
		var mag = real(c)*real(c) + imag(c)*imag(c)
		if mag > peakMag {
			peakMag = mag
			peakBin = bin
		}
	}

	var freq = float64(peakBin) * float64(d.cfg.SampleRate) / float64(d.segLen)
	return d.table.ClosestSymbol(freq)
}

// SymbolCount returns how many whole tones fit in the waveform, the
// inverse of the synthesizer's grid invariant.
func (d *Demodulator) SymbolCount(wave []float64) int {
	return len(wave) / d.cfg.SamplesPerTone()
}
