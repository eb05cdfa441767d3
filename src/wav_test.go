package genewave

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWAVRoundTrip(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "tones.wav")

	var cfg = DefaultModemConfig()
	var synth = newTestSynth(t, cfg)
	var wave = synth.Synthesize([]byte{0, 15, 31})

	require.NoError(t, WriteWAV(path, wave, cfg.SampleRate))

	var got, rate, err = ReadWAV(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.SampleRate, rate)
	require.Len(t, got, len(wave))

	// 16-bit quantization noise only.
	for i := range wave {
		assert.InDelta(t, wave[i], got[i], 1.0/32767+1e-9)
	}
}

// The whole point of the container glue: a waveform that has been
// through 16-bit PCM quantization still demodulates exactly.
func TestWAVSurvivesModemRoundTrip(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "stream.wav")

	var sc = newTestStreamCodec(t)
	var cfg = DefaultModemConfig()

	var dna = "GATTACAGATTACAGATTACAGATTACA"
	var wave, err = sc.EncodeStream(dna)
	require.NoError(t, err)

	require.NoError(t, WriteWAV(path, wave, cfg.SampleRate))
	loaded, rate, err := ReadWAV(path)
	require.NoError(t, err)
	require.Equal(t, cfg.SampleRate, rate)

	decoded, _, err := sc.DecodeStream(loaded)
	require.NoError(t, err)
	assert.Equal(t, dna, decoded)
}

func TestWAVClipsOutOfRangeSamples(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "clip.wav")

	require.NoError(t, WriteWAV(path, []float64{2.0, -2.0, 0.5}, 44100))

	var got, _, err = ReadWAV(path)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.InDelta(t, 1.0, got[0], 1e-3)
	assert.InDelta(t, -1.0, got[1], 1e-3)
	assert.InDelta(t, 0.5, got[2], 1e-3)
}

func TestReadWAVMissingFile(t *testing.T) {
	var _, _, err = ReadWAV(filepath.Join(t.TempDir(), "nope.wav"))
	assert.Error(t, err)
}

func TestWriteWAVEmpty(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "empty.wav")
	require.NoError(t, WriteWAV(path, nil, 44100))

	var got, rate, err = ReadWAV(path)
	require.NoError(t, err)
	assert.Equal(t, 44100, rate)
	assert.Empty(t, got)
}
