package genewave

/*------------------------------------------------------------------
 *
 * Purpose:	Shared modem configuration for encoder and decoder.
 *
 * Description:	These parameters must be bit-identical on both sides
 *		of the channel: the decoder's deterministic time grid
 *		and the frequency table both depend on them.  They are
 *		read once at startup, either from built-in defaults or
 *		from a YAML file, and never mutated afterwards.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModemConfig holds every parameter shared between synthesis and
// demodulation.  Harmonics affect synthesis only, not correctness, but
// keeping them here means one file describes the whole channel.
type ModemConfig struct {
	// SampleRate in Hz.
	SampleRate int `yaml:"sample_rate"`

	// ToneDuration is the fixed duration of one symbol tone in seconds.
	ToneDuration float64 `yaml:"tone_duration"`

	// Volume is the peak amplitude of each tone on a 0..1 scale.
	Volume float64 `yaml:"volume"`

	// Harmonics lists the amplitude of each overtone relative to the
	// fundamental; entry i is the (i+2)-th harmonic.  Amplitudes must
	// decrease and stay below 1 so the spectral peak never moves off
	// the fundamental.
	Harmonics []float64 `yaml:"harmonics"`

	// Decay is the exponent of the per-tone exponential amplitude
	// envelope; the tone fades by a factor of e^-Decay over its length.
	Decay float64 `yaml:"decay"`
}

// DefaultModemConfig returns the standard channel parameters: CD sample
// rate, 0.2 second tones, one overtone at half amplitude.
func DefaultModemConfig() ModemConfig {
	return ModemConfig{
		SampleRate:   44100,
		ToneDuration: 0.2,
		Volume:       0.5,
		Harmonics:    []float64{0.5},
		Decay:        5.0,
	}
}

// LoadModemConfig reads a YAML config file and validates it.
func LoadModemConfig(path string) (ModemConfig, error) {
	var cfg = DefaultModemConfig()

	var raw, err = os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("genewave: reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("genewave: parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("genewave: config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects parameter combinations the modem cannot operate with.
func (c ModemConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.ToneDuration <= 0 {
		return fmt.Errorf("tone_duration must be positive, got %g", c.ToneDuration)
	}
	if c.Volume <= 0 || c.Volume > 1 {
		return fmt.Errorf("volume must be in (0, 1], got %g", c.Volume)
	}
	if c.Decay < 0 {
		return fmt.Errorf("decay must not be negative, got %g", c.Decay)
	}
	var prev = 1.0
	for i, a := range c.Harmonics {
		if a <= 0 || a >= prev {
			return fmt.Errorf("harmonic %d amplitude %g must be positive and below the previous partial", i+2, a)
		}
		prev = a
	}

	// The demodulator analyzes the central half of each tone; it needs
	// a minimum segment length to resolve a peak at all.
	if c.SamplesPerTone()/2 < 16 {
		return fmt.Errorf("tone_duration %g too short for sample_rate %d", c.ToneDuration, c.SampleRate)
	}

	// Every partial of the highest tone must stay below Nyquist or its
	// alias could outweigh a legitimate fundamental.
	var top = NewToneTable().MaxFrequency() * float64(len(c.Harmonics)+1)
	if top >= float64(c.SampleRate)/2 {
		return fmt.Errorf("highest harmonic %.0f Hz exceeds Nyquist for sample_rate %d", top, c.SampleRate)
	}
	return nil
}

// SamplesPerTone returns the exact length of one symbol tone in samples.
// The waveform grid invariant is len(wave) == nSymbols * SamplesPerTone().
func (c ModemConfig) SamplesPerTone() int {
	return int(float64(c.SampleRate) * c.ToneDuration)
}
