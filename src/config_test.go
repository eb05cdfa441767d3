package genewave

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModemConfig(t *testing.T) {
	var cfg = DefaultModemConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8820, cfg.SamplesPerTone())
}

func TestModemConfigValidate(t *testing.T) {
	var cases = []struct {
		name   string
		mutate func(*ModemConfig)
	}{
		{"zero sample rate", func(c *ModemConfig) { c.SampleRate = 0 }},
		{"negative tone duration", func(c *ModemConfig) { c.ToneDuration = -0.2 }},
		{"zero volume", func(c *ModemConfig) { c.Volume = 0 }},
		{"volume above one", func(c *ModemConfig) { c.Volume = 1.5 }},
		{"negative decay", func(c *ModemConfig) { c.Decay = -1 }},
		{"harmonic at full amplitude", func(c *ModemConfig) { c.Harmonics = []float64{1.0} }},
		{"harmonics not decreasing", func(c *ModemConfig) { c.Harmonics = []float64{0.5, 0.6} }},
		{"tone too short to analyze", func(c *ModemConfig) { c.ToneDuration = 0.0001 }},
		{"harmonic beyond nyquist", func(c *ModemConfig) { c.SampleRate = 4000 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg = DefaultModemConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadModemConfig(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "modem.yaml")
	var yaml = `
sample_rate: 22050
tone_duration: 0.25
volume: 0.8
harmonics: [0.4, 0.2]
decay: 3.0
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	var cfg, err = LoadModemConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 22050, cfg.SampleRate)
	assert.Equal(t, 0.25, cfg.ToneDuration)
	assert.Equal(t, 0.8, cfg.Volume)
	assert.Equal(t, []float64{0.4, 0.2}, cfg.Harmonics)
	assert.Equal(t, 3.0, cfg.Decay)
}

func TestLoadModemConfigPartialKeepsDefaults(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "modem.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tone_duration: 0.1\n"), 0o644))

	var cfg, err = LoadModemConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.1, cfg.ToneDuration)
	assert.Equal(t, DefaultModemConfig().SampleRate, cfg.SampleRate)
}

func TestLoadModemConfigErrors(t *testing.T) {
	var _, err = LoadModemConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	var path = filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sample_rate: -5\n"), 0o644))
	_, err = LoadModemConfig(path)
	assert.Error(t, err)

	path = filepath.Join(t.TempDir(), "notyaml.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sample_rate: [unclosed\n"), 0o644))
	_, err = LoadModemConfig(path)
	assert.Error(t, err)
}
