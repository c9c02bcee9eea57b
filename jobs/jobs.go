package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KitchenMishap/huffcodes/compress"
	"github.com/KitchenMishap/huffcodes/huffman"
	"github.com/KitchenMishap/huffcodes/logger"
	"github.com/KitchenMishap/huffcodes/verify"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrInvalidText = errors.New("jobs: input is not valid UTF-8 text")

type Result struct {
	Path  string
	Codes huffman.CodeTable[rune]
	Stats compress.CompressionStats
}

// ReadSymbols reads a text file as a sequence of runes.
// Line endings are read the way text mode does: "\r\n" and a lone "\r" become "\n".
func ReadSymbols(path string) ([]rune, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidText, path)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return []rune(text), nil
}

// Analyze computes the code table for symbols and what it would compress to.
// With check set the table is verified before the stats are computed.
func Analyze(symbols []rune, check bool) (Result, error) {
	ft := huffman.Tabulate(symbols)
	codes := huffman.CodesFor(ft)
	if check {
		if err := verify.Check(ft, codes); err != nil {
			return Result{}, err
		}
	}
	bitCodes, err := codes.BitCodes()
	if err != nil {
		return Result{}, err
	}
	stats, err := compress.Simulate(ft, bitCodes)
	if err != nil {
		return Result{}, err
	}
	return Result{Codes: codes, Stats: stats}, nil
}

// GatherCodes analyzes every file in paths using a pool of numWorkers.
// Results come back in the order of paths. The first failure stops the rest.
func GatherCodes(ctx context.Context, paths []string, numWorkers int, check bool, log logger.Logger) ([]Result, error) {
	startTime := time.Now()
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > len(paths) && len(paths) > 0 {
		numWorkers = len(paths)
	}

	// Each index is written by exactly one worker
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	pathChan := make(chan int)

	for w := 0; w < numWorkers; w++ {
		g.Go(func() error {
			for idx := range pathChan {
				// Check if another worker already failed
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				symbols, err := ReadSymbols(paths[idx])
				if err != nil {
					return err
				}
				res, err := Analyze(symbols, check)
				if err != nil {
					return fmt.Errorf("%s: %w", paths[idx], err)
				}
				res.Path = paths[idx]
				results[idx] = res
				log.Infof("%s: %d distinct symbols, %d bits", res.Path, res.Stats.Symbols, res.Stats.TotalBits)
			}
			return nil
		})
	}

	// The producer
	g.Go(func() error {
		defer close(pathChan) // Workers stop when the channel is closed
		for idx := range paths {
			select {
			case pathChan <- idx:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Errorf("gathering codes: %v", err)
		return nil, err
	}
	log.Infof("[%5.1f sec] %d files analyzed with %d workers", time.Since(startTime).Seconds(), len(paths), numWorkers)
	return results, nil
}

// WriteJSON prints codes as a JSON object with two-space indentation.
func WriteJSON(w io.Writer, codes huffman.CodeTable[rune]) error {
	return writeIndented(w, huffman.StringKeys(codes))
}

// WriteJSONByPath prints one JSON object mapping each result's path to its table.
func WriteJSONByPath(w io.Writer, results []Result) error {
	byPath := make(map[string]map[string]string, len(results))
	for _, r := range results {
		byPath[r.Path] = huffman.StringKeys(r.Codes)
	}
	return writeIndented(w, byPath)
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Report writes a one line summary per result.
func Report(w io.Writer, results []Result) {
	p := message.NewPrinter(language.English) // For commas between thousands
	for _, r := range results {
		s := r.Stats
		p.Fprintf(w, "%s: %d symbols (%d distinct), %d bits (fixed width %d), %.3f bits/symbol, entropy %.3f, efficiency %.1f%%\n",
			r.Path, s.InputSymbols, s.Symbols, s.TotalBits, s.FixedBits, s.AverageLength, s.Entropy, s.Efficiency*100)
	}
}
