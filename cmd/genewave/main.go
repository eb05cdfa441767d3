/* DNA <-> audio modem with Reed-Solomon forward error correction */
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	genewave "github.com/genewave/genewave/src"
)

func main() {
	var sequence = pflag.StringP("sequence", "s", "", "DNA sequence to encode, given directly on the command line")
	var input = pflag.StringP("input", "i", "", "Input file: DNA text for encode, WAV for decode and play")
	var output = pflag.StringP("output", "o", "dna.wav", "Output WAV file for encode")
	var configPath = pflag.StringP("config", "c", "", "YAML modem configuration.  Both sides of the channel must use the same file.")
	var verbose = pflag.BoolP("verbose", "v", false, "Verbose.  Show per-stream encode/decode details.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] encode|decode|play\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  encode   Render a DNA sequence (-s or -i) to a WAV file (-o).\n")
		fmt.Fprintf(os.Stderr, "  decode   Recover the DNA sequence from a WAV file (-i) and print it.\n")
		fmt.Fprintf(os.Stderr, "  play     Play a WAV file (-i) on the default output device.\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || pflag.NArg() != 1 {
		pflag.Usage()
		if *help {
			return
		}
		os.Exit(1)
	}

	var logger = log.New(os.Stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	var cfg = genewave.DefaultModemConfig()
	if *configPath != "" {
		var err error
		cfg, err = genewave.LoadModemConfig(*configPath)
		if err != nil {
			logger.Fatal("bad config", "err", err)
		}
	}

	var sc, err = genewave.NewStreamCodec(cfg, logger)
	if err != nil {
		logger.Fatal("modem setup failed", "err", err)
	}

	switch pflag.Arg(0) {
	case "encode":
		doEncode(sc, cfg, logger, *sequence, *input, *output)
	case "decode":
		doDecode(sc, cfg, logger, *input)
	case "play":
		doPlay(logger, *input)
	default:
		pflag.Usage()
		os.Exit(1)
	}
}

func doEncode(sc *genewave.StreamCodec, cfg genewave.ModemConfig, logger *log.Logger, sequence, input, output string) {
	if sequence == "" && input == "" {
		logger.Fatal("encode needs a sequence (-s) or an input file (-i)")
	}
	if sequence == "" {
		var raw, err = os.ReadFile(input)
		if err != nil {
			logger.Fatal("cannot read sequence file", "err", err)
		}
		sequence = strings.TrimSpace(string(raw))
	}

	var wave, err = sc.EncodeStream(sequence)
	if err != nil {
		logger.Fatal("encode failed", "err", err)
	}
	if err := genewave.WriteWAV(output, wave, cfg.SampleRate); err != nil {
		logger.Fatal("cannot write WAV", "err", err)
	}
	logger.Info("wrote encoded audio", "file", output,
		"seconds", float64(len(wave))/float64(cfg.SampleRate))
}

func doDecode(sc *genewave.StreamCodec, cfg genewave.ModemConfig, logger *log.Logger, input string) {
	if input == "" {
		logger.Fatal("decode needs an input WAV file (-i)")
	}
	var wave, rate, err = genewave.ReadWAV(input)
	if err != nil {
		logger.Fatal("cannot read WAV", "err", err)
	}
	if rate != cfg.SampleRate {
		logger.Fatal("sample rate mismatch breaks the symbol grid",
			"file", rate, "config", cfg.SampleRate)
	}

	dna, corrected, err := sc.DecodeStream(wave)
	if err != nil {
		logger.Fatal("decode failed", "err", err)
	}
	logger.Info("verified", "corrected", corrected)
	fmt.Println(dna)
}

func doPlay(logger *log.Logger, input string) {
	if input == "" {
		logger.Fatal("play needs an input WAV file (-i)")
	}
	var wave, rate, err = genewave.ReadWAV(input)
	if err != nil {
		logger.Fatal("cannot read WAV", "err", err)
	}
	if err := genewave.Play(wave, rate); err != nil {
		logger.Fatal("playback failed", "err", err)
	}
}
