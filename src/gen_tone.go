package genewave

/*------------------------------------------------------------------
 *
 * Purpose:	Render GF(32) symbols into fixed-duration audio tones.
 *
 * Description:	Each symbol becomes one tone: a fundamental sine at the
 *		symbol's table frequency plus a small number of harmonic
 *		partials at decreasing amplitude, shaped by an
 *		exponential decay envelope and normalized to the
 *		configured peak volume.  The partials make the tones
 *		audibly richer without moving the spectral peak off the
 *		fundamental.
 *
 *		Tones are concatenated with no gap and no crossfade.
 *		The decoder's deterministic grid depends on every tone
 *		being exactly SamplesPerTone() long.
 *
 *----------------------------------------------------------------*/

import "math"

// Synthesizer renders symbol sequences to waveforms.  Immutable after
// NewSynthesizer, safe for concurrent use.
type Synthesizer struct {
	cfg   ModemConfig
	table *ToneTable

	// envelope is precomputed once; it is the same for every tone.
	envelope []float64
}

// NewSynthesizer validates the configuration and precomputes the tone
// envelope.
func NewSynthesizer(cfg ModemConfig, table *ToneTable) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var n = cfg.SamplesPerTone()
	var env = make([]float64, n)
	for j := 0; j < n; j++ {
		env[j] = math.Exp(-cfg.Decay * float64(j) / float64(n-1))
	}

	return &Synthesizer{cfg: cfg, table: table, envelope: env}, nil
}

// Synthesize renders a symbol sequence into one continuous waveform of
// exactly len(symbols) * SamplesPerTone() samples.
func (s *Synthesizer) Synthesize(symbols []byte) []float64 {
	var n = s.cfg.SamplesPerTone()
	var wave = make([]float64, len(symbols)*n)
	for i, sym := range symbols {
		s.renderTone(sym, wave[i*n:(i+1)*n])
	}
	return wave
}

// renderTone writes one tone into dst, which must be SamplesPerTone()
// long.
func (s *Synthesizer) renderTone(symbol byte, dst []float64) {
	var freq = s.table.Frequency(symbol)
	var rate = float64(s.cfg.SampleRate)

	var peak float64
	for j := range dst {
		var t = float64(j) / rate
		var v = math.Sin(2 * math.Pi * freq * t)
		for h, amp := range s.cfg.Harmonics {
			v += amp * math.Sin(2*math.Pi*float64(h+2)*freq*t)
		}
		v *= s.envelope[j]
		dst[j] = v
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	// Per-tone peak normalization, as loud as the configured volume
	// allows regardless of how the partials happen to sum.
	if peak > 0 {
		var gain = s.cfg.Volume / peak
		for j := range dst {
			dst[j] *= gain
		}
	}
}
