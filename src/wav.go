package genewave

/*------------------------------------------------------------------
 *
 * Purpose:	WAV container glue for the command line tools.
 *
 * Description:	The codec itself works on in-memory sample buffers and
 *		never touches files; persistence is collaborator
 *		territory.  These helpers round-trip mono 16-bit PCM
 *		through the WAV container so the CLIs have something to
 *		hand a sound card or another process.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavBitDepth = 16

// WriteWAV stores a waveform as mono 16-bit PCM.  Samples are expected
// in -1..1; anything outside is clipped.
func WriteWAV(path string, samples []float64, sampleRate int) error {
	var f, err = os.Create(path)
	if err != nil {
		return fmt.Errorf("genewave: creating %s: %w", path, err)
	}
	defer f.Close()

	var data = make([]int, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		data[i] = int(s * 32767)
	}

	var enc = wav.NewEncoder(f, sampleRate, wavBitDepth, 1, 1)
	var buf = &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:   data,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("genewave: encoding %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("genewave: finalizing %s: %w", path, err)
	}
	return nil
}

// ReadWAV loads a WAV file as a mono float64 waveform in -1..1 plus its
// sample rate.  Multichannel input is averaged down to mono.
func ReadWAV(path string) ([]float64, int, error) {
	var f, err = os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("genewave: opening %s: %w", path, err)
	}
	defer f.Close()

	var dec = wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("genewave: decoding %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("genewave: %s has no channel format", path)
	}

	var channels = buf.Format.NumChannels
	var bitDepth = int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = wavBitDepth
	}
	var scale = float64(int(1) << (bitDepth - 1))

	var frames = len(buf.Data) / channels
	var samples = make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum = 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		samples[i] = sum / float64(channels) / scale
	}

	return samples, buf.Format.SampleRate, nil
}
