package verify

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/KitchenMishap/huffcodes/huffman"
)

var (
	ErrEmptyCode      = errors.New("verify: empty code")
	ErrPrefixConflict = errors.New("verify: code is a prefix of another code")
	ErrMissingSymbol  = errors.New("verify: symbol has no code")
	ErrExtraSymbol    = errors.New("verify: code for a symbol not in the input")
)

type entry[S comparable] struct {
	symbol S
	code   string
}

// PrefixFree reports an error if any code is empty, non-binary, or a prefix
// of another code (duplicates count as prefixes).
func PrefixFree[S comparable](codes huffman.CodeTable[S]) error {
	entries := make([]entry[S], 0, len(codes))
	for s, c := range codes {
		if c == "" {
			return fmt.Errorf("%w: symbol %v", ErrEmptyCode, s)
		}
		if err := huffman.CheckCode(c); err != nil {
			return fmt.Errorf("symbol %v: %w", s, err)
		}
		entries = append(entries, entry[S]{s, c})
	}
	// After sorting, a code that prefixes any other code also prefixes its successor
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].code < entries[j].code
	})
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if strings.HasPrefix(cur.code, prev.code) {
			return fmt.Errorf("%w: %q (%v) and %q (%v)", ErrPrefixConflict, prev.code, prev.symbol, cur.code, cur.symbol)
		}
	}
	return nil
}

// Complete checks that codes has exactly one entry per symbol of ft.
func Complete[S comparable](ft *huffman.FreqTable[S], codes huffman.CodeTable[S]) error {
	for _, s := range ft.Symbols() {
		if _, ok := codes[s]; !ok {
			return fmt.Errorf("%w: %v", ErrMissingSymbol, s)
		}
	}
	if len(codes) != ft.Len() {
		for s := range codes {
			if ft.Count(s) == 0 {
				return fmt.Errorf("%w: %v", ErrExtraSymbol, s)
			}
		}
	}
	return nil
}

func Check[S comparable](ft *huffman.FreqTable[S], codes huffman.CodeTable[S]) error {
	if err := PrefixFree(codes); err != nil {
		return err
	}
	return Complete(ft, codes)
}
