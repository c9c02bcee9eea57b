package huffman

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCodeTooLong = errors.New("huffman: code longer than 64 bits")
	ErrNotBinary   = errors.New("huffman: code contains characters other than 0 and 1")
)

// CodeTable maps each symbol to its code, a non-empty string of '0' and '1'.
type CodeTable[S comparable] map[S]string

// The compressed representation
type BitCode struct {
	Bits   uint64 // The actual bit pattern, first bit of the code is the most significant
	Length int    // How many bits used
}

func (bc BitCode) String() string {
	if bc.Length == 0 {
		return ""
	}
	return fmt.Sprintf("%0*b", bc.Length, bc.Bits)
}

// CheckCode reports ErrNotBinary if code holds anything but '0' and '1'.
func CheckCode(code string) error {
	if strings.Trim(code, "01") != "" {
		return fmt.Errorf("%w: %q", ErrNotBinary, code)
	}
	return nil
}

func ParseBitCode(code string) (BitCode, error) {
	if err := CheckCode(code); err != nil {
		return BitCode{}, err
	}
	if len(code) > 64 {
		return BitCode{}, fmt.Errorf("%w: %d bits", ErrCodeTooLong, len(code))
	}
	var bc BitCode
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '0':
			bc.Bits <<= 1
		case '1':
			bc.Bits = bc.Bits<<1 | 1
		}
	}
	bc.Length = len(code)
	return bc, nil
}

// BitCodes packs every code of the table.
func (ct CodeTable[S]) BitCodes() (map[S]BitCode, error) {
	out := make(map[S]BitCode, len(ct))
	for s, code := range ct {
		bc, err := ParseBitCode(code)
		if err != nil {
			return nil, err
		}
		out[s] = bc
	}
	return out, nil
}

// AssignCodes walks the tree depth first, appending 0 for a left edge and 1
// for a right edge. A root that is itself a leaf gets the code "0".
func AssignCodes[S comparable](root Node[S]) CodeTable[S] {
	codes := make(CodeTable[S])
	if root != nil {
		walk(root, "", codes)
	}
	return codes
}

func walk[S comparable](n Node[S], acc string, codes CodeTable[S]) {
	switch n := n.(type) {
	case Leaf[S]:
		if acc == "" {
			acc = "0" // a zero-length code can't be transmitted
		}
		codes[n.Symbol] = acc
	case *Internal[S]:
		walk(n.Left, acc+"0", codes)
		walk(n.Right, acc+"1", codes)
	}
}

// CodesFor builds the tree for ft and assigns its codes.
// An empty table gives an empty CodeTable.
func CodesFor[S comparable](ft *FreqTable[S]) CodeTable[S] {
	root, err := BuildTree(ft)
	if errors.Is(err, ErrEmptyInput) {
		return CodeTable[S]{}
	}
	return AssignCodes[S](root)
}

// Codes computes the Huffman code table for a sequence of symbols.
func Codes[S comparable](symbols []S) CodeTable[S] {
	return CodesFor(Tabulate(symbols))
}

// WeightedLength is the number of bits needed to encode the tabulated input
// with ct, i.e. the sum of count * code length over all symbols.
func WeightedLength[S comparable](ft *FreqTable[S], ct CodeTable[S]) int64 {
	var total int64
	for _, s := range ft.order {
		total += ft.counts[s] * int64(len(ct[s]))
	}
	return total
}

// Depth is the length of the longest code in ct.
func (ct CodeTable[S]) Depth() int {
	depth := 0
	for _, code := range ct {
		if len(code) > depth {
			depth = len(code)
		}
	}
	return depth
}

// StringKeys returns a copy of ct keyed by the symbols' %c or %v rendering,
// the shape used when printing tables as JSON.
func StringKeys[S comparable](ct CodeTable[S]) map[string]string {
	out := make(map[string]string, len(ct))
	var sb strings.Builder
	for s, code := range ct {
		sb.Reset()
		switch v := any(s).(type) {
		case rune:
			sb.WriteRune(v)
		case string:
			sb.WriteString(v)
		default:
			fmt.Fprint(&sb, v)
		}
		out[sb.String()] = code
	}
	return out
}
