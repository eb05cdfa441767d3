package genewave

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestToneTableBijective(t *testing.T) {
	var table = NewToneTable()

	for s := 0; s < FieldOrder; s++ {
		var f = table.Frequency(byte(s))
		assert.Equal(t, byte(s), table.ClosestSymbol(f),
			"exact table frequency %f must map back to symbol %d", f, s)
	}
}

func TestToneTableKnownFrequencies(t *testing.T) {
	var table = NewToneTable()

	// Symbol 0 is middle C; symbol 9 is MIDI 69, the 440 Hz reference.
	assert.InDelta(t, 261.6256, table.Frequency(0), 1e-3)
	assert.InDelta(t, 440.0, table.Frequency(9), 1e-9)
	assert.InDelta(t, 1567.98, table.MaxFrequency(), 1e-2)

	for s := 1; s < FieldOrder; s++ {
		assert.Greater(t, table.Frequency(byte(s)), table.Frequency(byte(s-1)),
			"table must be strictly ascending")
	}
}

// A semitone is about 5.9%, so any detection error below half of that
// must still resolve to the right symbol.
func TestToneTableToleratesDetectionError(t *testing.T) {
	var table = NewToneTable()

	rapid.Check(t, func(t *rapid.T) {
		var s = rapid.ByteRange(0, fieldMax).Draw(t, "s")
		var skew = rapid.Float64Range(-0.02, 0.02).Draw(t, "skew")

		var measured = table.Frequency(s) * (1 + skew)
		assert.Equal(t, s, table.ClosestSymbol(measured))
	})
}

func TestToneTableNeverFails(t *testing.T) {
	var table = NewToneTable()

	// Nonsense inputs still resolve to the nearest entry.
	assert.Equal(t, byte(0), table.ClosestSymbol(0))
	assert.Equal(t, byte(0), table.ClosestSymbol(-500))
	assert.Equal(t, byte(FieldOrder-1), table.ClosestSymbol(1e6))
	assert.False(t, math.IsNaN(float64(table.ClosestSymbol(22050))))
}
