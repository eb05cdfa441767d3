package genewave

/*------------------------------------------------------------------
 *
 * Purpose:	Sound card playback for the command line tools.
 *
 * Description:	Blocking playback of an in-memory waveform through the
 *		default output device.  Like the WAV helpers this is
 *		collaborator glue; nothing in the codec depends on it.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const playbackFrames = 4096

// Play renders a waveform on the default output device and blocks until
// the last buffer has been written.
func Play(samples []float64, sampleRate int) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("genewave: portaudio init: %w", err)
	}
	defer portaudio.Terminate()

	var buf = make([]float32, playbackFrames)
	var stream, err = portaudio.OpenDefaultStream(0, 1, float64(sampleRate), playbackFrames, &buf)
	if err != nil {
		return fmt.Errorf("genewave: opening output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("genewave: starting output stream: %w", err)
	}
	defer stream.Stop()

	for off := 0; off < len(samples); off += playbackFrames {
		for i := range buf {
			if off+i < len(samples) {
				buf[i] = float32(samples[off+i])
			} else {
				buf[i] = 0
			}
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("genewave: writing to output stream: %w", err)
		}
	}
	return nil
}
