package compress

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/KitchenMishap/huffcodes/huffman"
)

var ErrMissingCode = errors.New("compress: symbol has no code")

// CompressionStats describes what encoding an input with a code table would
// cost, without producing the bitstream.
type CompressionStats struct {
	Symbols       int     `json:"symbols"`        // Distinct symbols
	InputSymbols  int64   `json:"input_symbols"`  // Input length
	TotalBits     uint64  `json:"total_bits"`     // Encoded size
	FixedBits     uint64  `json:"fixed_bits"`     // Size with a fixed-width code over the same alphabet
	AverageLength float64 `json:"average_length"` // Bits per input symbol
	Entropy       float64 `json:"entropy"`        // Shannon entropy, bits per input symbol
	Efficiency    float64 `json:"efficiency"`     // Entropy / AverageLength, 1 is perfect
}

// Simulate totals count * code length over every symbol of ft.
func Simulate[S comparable](ft *huffman.FreqTable[S], codes map[S]huffman.BitCode) (CompressionStats, error) {
	stats := CompressionStats{
		Symbols:      ft.Len(),
		InputSymbols: ft.Total(),
	}
	for _, s := range ft.Symbols() {
		code, ok := codes[s]
		if !ok {
			return CompressionStats{}, fmt.Errorf("%w: %v", ErrMissingCode, s)
		}
		stats.TotalBits += uint64(ft.Count(s)) * uint64(code.Length)
	}
	stats.FixedBits = uint64(ft.Total()) * uint64(FixedWidth(ft.Len()))
	stats.Entropy = Entropy(ft)
	if stats.InputSymbols > 0 {
		stats.AverageLength = float64(stats.TotalBits) / float64(stats.InputSymbols)
		stats.Efficiency = stats.Entropy / stats.AverageLength
	}
	return stats, nil
}

// FixedWidth is the number of bits a fixed-length code needs for n symbols.
// Like the Huffman codes, a lone symbol still costs one bit.
func FixedWidth(n int) int {
	switch {
	case n <= 0:
		return 0
	case n == 1:
		return 1
	}
	return bits.Len(uint(n - 1))
}

// Entropy is the Shannon entropy of ft in bits per symbol.
func Entropy[S comparable](ft *huffman.FreqTable[S]) float64 {
	total := float64(ft.Total())
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, s := range ft.Symbols() {
		p := float64(ft.Count(s)) / total
		h -= p * math.Log2(p)
	}
	return h
}
