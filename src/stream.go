package genewave

/*------------------------------------------------------------------
 *
 * Purpose:	Stream driver: arbitrary-length DNA in, waveform out,
 *		and the inverse.
 *
 * Description:	Encoding chunks the base sequence into 23-symbol blocks
 *		(the last one padded with the reserved pad symbol),
 *		prepends a 4-symbol header carrying the true base count
 *		as a 16-bit integer, Reed-Solomon encodes every block,
 *		and renders the whole symbol stream as tones.  Decoding
 *		runs the same pipeline backwards, using the header to
 *		strip the padding.
 *
 *		Blocks have no data dependency on each other, so both
 *		directions fan the block codec out over a worker pool
 *		and reassemble results in block order.  Failures are
 *		block-scoped and carry the block index.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
)

const (
	// PadSymbol fills the tail of a short final block.  The header's
	// base count tells the decoder how much of the last block is real.
	PadSymbol = 0

	// headerSymbols is the length of the stream header: four symbols
	// carrying four bits of the base count each.  Header symbols stay
	// in 0..15, comfortably inside the field.
	headerSymbols = 4

	// MaxStreamBases is the largest base count the 16-bit header can
	// describe.
	MaxStreamBases = 1<<16 - 1
)

// StreamCodec ties the block codec, the synthesizer and the demodulator
// together behind two stream-level operations.  Immutable after
// NewStreamCodec and safe for concurrent use.
type StreamCodec struct {
	cfg    ModemConfig
	codec  *Codec
	table  *ToneTable
	synth  *Synthesizer
	logger *log.Logger
}

// NewStreamCodec builds the constant tables once and wires the
// components together.  A nil logger silences all logging.
func NewStreamCodec(cfg ModemConfig, logger *log.Logger) (*StreamCodec, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var field, err = NewField(PrimitivePoly)
	if err != nil {
		return nil, err
	}
	var table = NewToneTable()
	synth, err := NewSynthesizer(cfg, table)
	if err != nil {
		return nil, err
	}

	return &StreamCodec{
		cfg:    cfg,
		codec:  NewCodec(field),
		table:  table,
		synth:  synth,
		logger: logger,
	}, nil
}

/*------------------------------------------------------------------
 *
 * Name:	EncodeStream
 *
 * Purpose:	Encode a DNA sequence into a waveform.
 *
 * Inputs:	dna	- Base sequence.  Upcased and scrubbed of
 *			  anything that is not A, T, G or C first.
 *
 * Returns:	The concatenated tone waveform at the configured sample
 *		rate, exactly (4 + 31 * blocks) * SamplesPerTone()
 *		samples long.
 *
 *----------------------------------------------------------------*/

func (sc *StreamCodec) EncodeStream(dna string) ([]float64, error) {
	var seq = ScrubSequence(dna)
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	if len(seq) > MaxStreamBases {
		return nil, fmt.Errorf("genewave: %d bases exceeds the %d the header can describe", len(seq), MaxStreamBases)
	}

	var symbols, err = BasesToSymbols(seq)
	if err != nil {
		return nil, err
	}

	// Pad to a whole number of blocks.
	var padding = (MessageLength - len(symbols)%MessageLength) % MessageLength
	for i := 0; i < padding; i++ {
		symbols = append(symbols, PadSymbol)
	}
	var blocks = len(symbols) / MessageLength

	var codewords = make([][]byte, blocks)
	var errs = make([]error, blocks)
	forEachBlock(blocks, func(i int) {
		codewords[i], errs[i] = sc.codec.EncodeBlock(symbols[i*MessageLength : (i+1)*MessageLength])
	})
	for i, e := range errs {
		if e != nil {
			return nil, &BlockError{Index: i, Err: e}
		}
	}

	var stream = encodeHeader(len(seq))
	for _, cw := range codewords {
		stream = append(stream, cw...)
	}

	sc.logger.Info("encoded DNA stream", "bases", len(seq), "blocks", blocks,
		"symbols", len(stream), "seconds", float64(len(stream))*sc.cfg.ToneDuration)

	return sc.synth.Synthesize(stream), nil
}

/*------------------------------------------------------------------
 *
 * Name:	DecodeStream
 *
 * Purpose:	Recover a DNA sequence from a received waveform.
 *
 * Returns:	The decoded base string, the total number of symbols the
 *		Reed-Solomon layer repaired, and an error.  Block-scoped
 *		failures come back as *BlockError so the caller knows
 *		which block went bad.
 *
 *----------------------------------------------------------------*/

func (sc *StreamCodec) DecodeStream(wave []float64) (string, int, error) {
	var demod, err = NewDemodulator(sc.cfg, sc.table)
	if err != nil {
		return "", 0, err
	}

	var total = demod.SymbolCount(wave)
	if total < headerSymbols+BlockLength {
		return "", 0, fmt.Errorf("genewave: %d whole tones, need at least %d: %w",
			total, headerSymbols+BlockLength, ErrShortWaveform)
	}

	symbols, err := demod.Demodulate(wave, total)
	if err != nil {
		return "", 0, err
	}

	baseCount, err := decodeHeader(symbols[:headerSymbols])
	if err != nil {
		return "", 0, err
	}

	// Slice the body into blocks, padding a short final block the same
	// way the encoder would have.
	var body = symbols[headerSymbols:]
	var blocks = (len(body) + BlockLength - 1) / BlockLength
	if blocks*MessageLength < baseCount {
		return "", 0, fmt.Errorf("genewave: header declares %d bases but only %d blocks received: %w",
			baseCount, blocks, ErrShortWaveform)
	}
	for len(body) < blocks*BlockLength {
		body = append(body, PadSymbol)
	}

	var data = make([][]byte, blocks)
	var repaired = make([]int, blocks)
	var errs = make([]error, blocks)
	forEachBlock(blocks, func(i int) {
		data[i], repaired[i], errs[i] = sc.codec.DecodeBlock(body[i*BlockLength : (i+1)*BlockLength])
	})

	var corrected = 0
	for i := 0; i < blocks; i++ {
		if errs[i] != nil {
			return "", 0, &BlockError{Index: i, Err: errs[i]}
		}
		corrected += repaired[i]
	}

	var joined = make([]byte, 0, blocks*MessageLength)
	for _, d := range data {
		joined = append(joined, d...)
	}
	joined = joined[:baseCount]

	// A data symbol outside the alphabet means the true error count
	// beat the correction capacity without tripping the syndrome
	// check.  Residual risk of any finite-capacity code; never accept
	// it silently.
	for i, s := range joined {
		if s > BaseC {
			return "", corrected, &BlockError{Index: i / MessageLength, Err: ErrOutOfAlphabet}
		}
	}

	dna, err := SymbolsToBases(joined)
	if err != nil {
		return "", corrected, err
	}

	sc.logger.Info("decoded DNA stream", "bases", baseCount, "blocks", blocks, "corrected", corrected)

	return dna, corrected, nil
} /* end DecodeStream */

// encodeHeader packs a base count into four 4-bit symbols, most
// significant nibble first.
func encodeHeader(n int) []byte {
	return []byte{
		byte(n >> 12 & 0xF),
		byte(n >> 8 & 0xF),
		byte(n >> 4 & 0xF),
		byte(n & 0xF),
	}
}

// decodeHeader unpacks the base count.  The header travels unprotected,
// so a symbol outside the nibble range means it was corrupted in transit
// and nothing downstream can be trusted.
func decodeHeader(syms []byte) (int, error) {
	var n = 0
	for _, s := range syms {
		if s > 0xF {
			return 0, fmt.Errorf("genewave: corrupt stream header symbol %d", s)
		}
		n = n<<4 | int(s)
	}
	if n == 0 {
		return 0, fmt.Errorf("genewave: stream header declares zero bases")
	}
	return n, nil
}

// forEachBlock runs fn(0..n-1) across a pool of workers, one per CPU.
// Callers collect results through index-addressed slices so completed
// blocks never reorder.
func forEachBlock(n int, fn func(i int)) {
	var workers = runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var indices = make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()
}
