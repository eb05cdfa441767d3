/* Developer utility: render raw GF(32) symbols as tones for listening tests */
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	genewave "github.com/genewave/genewave/src"
)

func main() {
	var symbolList = pflag.StringP("symbols", "s", "", "Comma-separated symbol values in 0..31.  Default is the full ascending scale.")
	var output = pflag.StringP("output", "o", "tones.wav", "Output WAV file")
	var configPath = pflag.StringP("config", "c", "", "YAML modem configuration")
	pflag.Parse()

	var logger = log.New(os.Stderr)

	var cfg = genewave.DefaultModemConfig()
	if *configPath != "" {
		var err error
		cfg, err = genewave.LoadModemConfig(*configPath)
		if err != nil {
			logger.Fatal("bad config", "err", err)
		}
	}

	var symbols []byte
	if *symbolList == "" {
		// All 32 tones in order: handy for checking the scale by ear.
		for i := 0; i < genewave.FieldOrder; i++ {
			symbols = append(symbols, byte(i))
		}
	} else {
		for _, tok := range strings.Split(*symbolList, ",") {
			var v, err = strconv.Atoi(strings.TrimSpace(tok))
			if err != nil || v < 0 || v >= genewave.FieldOrder {
				logger.Fatal("symbols must be integers in 0..31", "got", tok)
			}
			symbols = append(symbols, byte(v))
		}
	}

	var table = genewave.NewToneTable()
	var synth, err = genewave.NewSynthesizer(cfg, table)
	if err != nil {
		logger.Fatal("synthesizer setup failed", "err", err)
	}

	var wave = synth.Synthesize(symbols)
	if err := genewave.WriteWAV(*output, wave, cfg.SampleRate); err != nil {
		logger.Fatal("cannot write WAV", "err", err)
	}

	fmt.Printf("Wrote %d tones (%.1f s) to %s\n",
		len(symbols), float64(len(wave))/float64(cfg.SampleRate), *output)
}
