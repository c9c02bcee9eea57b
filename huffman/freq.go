package huffman

// FreqTable counts occurrences of each distinct symbol.
// It remembers the order in which symbols were first seen, so that
// iterating it is deterministic (a plain Go map is not).
type FreqTable[S comparable] struct {
	counts map[S]int64
	order  []S // first-seen order
	total  int64
}

func Tabulate[S comparable](symbols []S) *FreqTable[S] {
	ft := &FreqTable[S]{counts: make(map[S]int64)}
	for _, s := range symbols {
		ft.add(s)
	}
	return ft
}

// TabulateString counts the runes of s.
func TabulateString(s string) *FreqTable[rune] {
	ft := &FreqTable[rune]{counts: make(map[rune]int64)}
	for _, r := range s {
		ft.add(r)
	}
	return ft
}

func TabulateBytes(b []byte) *FreqTable[byte] {
	return Tabulate(b)
}

func (ft *FreqTable[S]) add(s S) {
	if _, ok := ft.counts[s]; !ok {
		ft.order = append(ft.order, s)
	}
	ft.counts[s]++
	ft.total++
}

// Count returns how often s occurred (0 if never).
func (ft *FreqTable[S]) Count(s S) int64 { return ft.counts[s] }

// Len is the number of distinct symbols.
func (ft *FreqTable[S]) Len() int { return len(ft.order) }

// Total is the input length.
func (ft *FreqTable[S]) Total() int64 { return ft.total }

// Symbols returns the distinct symbols in first-seen order.
func (ft *FreqTable[S]) Symbols() []S {
	out := make([]S, len(ft.order))
	copy(out, ft.order)
	return out
}
