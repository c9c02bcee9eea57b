package compress

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/KitchenMishap/huffcodes/huffman"
)

func simulateString(t *testing.T, s string) CompressionStats {
	t.Helper()
	ft := huffman.TabulateString(s)
	bcs, err := huffman.CodesFor(ft).BitCodes()
	if err != nil {
		t.Fatal(err)
	}
	stats, err := Simulate(ft, bcs)
	if err != nil {
		t.Fatal(err)
	}
	return stats
}

func TestSimulateAbracadabra(t *testing.T) {
	stats := simulateString(t, "abracadabra")
	if stats.TotalBits != 23 {
		t.Errorf("TotalBits = %d, want 23", stats.TotalBits)
	}
	if stats.FixedBits != 33 {
		t.Errorf("FixedBits = %d, want 33 (11 symbols * 3 bits)", stats.FixedBits)
	}
	if stats.Symbols != 5 || stats.InputSymbols != 11 {
		t.Errorf("Symbols=%d InputSymbols=%d", stats.Symbols, stats.InputSymbols)
	}
	if math.Abs(stats.AverageLength-23.0/11.0) > 1e-12 {
		t.Errorf("AverageLength = %v", stats.AverageLength)
	}
}

func TestSimulateEmpty(t *testing.T) {
	stats := simulateString(t, "")
	if stats != (CompressionStats{}) {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestSimulateSingleSymbol(t *testing.T) {
	stats := simulateString(t, "aaaa")
	if stats.TotalBits != 4 || stats.FixedBits != 4 {
		t.Errorf("TotalBits=%d FixedBits=%d, want 4 and 4", stats.TotalBits, stats.FixedBits)
	}
	if stats.Entropy != 0 || stats.Efficiency != 0 {
		t.Errorf("Entropy=%v Efficiency=%v, want 0", stats.Entropy, stats.Efficiency)
	}
}

func TestSimulateMissingCode(t *testing.T) {
	ft := huffman.TabulateString("ab")
	_, err := Simulate(ft, map[rune]huffman.BitCode{'a': {Bits: 0, Length: 1}})
	if !errors.Is(err, ErrMissingCode) {
		t.Errorf("expected ErrMissingCode, got %v", err)
	}
}

func TestEntropyBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 100; trial++ {
		data := make([]byte, 2+rng.Intn(2000))
		for i := range data {
			data[i] = byte(rng.Intn(2 + rng.Intn(64)))
		}
		ft := huffman.TabulateBytes(data)
		if ft.Len() < 2 {
			continue
		}
		bcs, err := huffman.CodesFor(ft).BitCodes()
		if err != nil {
			t.Fatal(err)
		}
		stats, err := Simulate(ft, bcs)
		if err != nil {
			t.Fatal(err)
		}
		// Huffman codes are within one bit of the entropy and never beat it
		if stats.AverageLength < stats.Entropy-1e-9 || stats.AverageLength >= stats.Entropy+1 {
			t.Fatalf("trial %d: average %v outside [%v, %v)", trial, stats.AverageLength, stats.Entropy, stats.Entropy+1)
		}
		if stats.TotalBits > stats.FixedBits {
			t.Fatalf("trial %d: Huffman %d bits worse than fixed width %d", trial, stats.TotalBits, stats.FixedBits)
		}
	}
}

func TestFixedWidth(t *testing.T) {
	tests := map[int]int{0: 0, 1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 256: 8, 257: 9}
	for n, want := range tests {
		if got := FixedWidth(n); got != want {
			t.Errorf("FixedWidth(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestEntropyUniform(t *testing.T) {
	if h := Entropy(huffman.TabulateString("abcd")); math.Abs(h-2) > 1e-12 {
		t.Errorf("Entropy = %v, want 2", h)
	}
}
