package huffman

import (
	"container/heap"
	"errors"
)

// ErrEmptyInput is returned by BuildTree when there are no symbols.
// It is not a failure: an empty input simply has an empty code table.
var ErrEmptyInput = errors.New("huffman: empty input")

// Node is either a Leaf or an *Internal. Weights are only tracked
// while building and are not kept in the finished tree.
type Node[S comparable] interface {
	node()
}

type Leaf[S comparable] struct {
	Symbol S
}

// Internal owns exactly two children. Left contributes a 0 bit, Right a 1.
type Internal[S comparable] struct {
	Left, Right Node[S]
}

func (Leaf[S]) node()      {}
func (*Internal[S]) node() {}

// pending is a tree waiting to be merged.
// seq breaks weight ties so that merge order never depends on the heap layout.
type pending[S comparable] struct {
	weight int64
	seq    int
	node   Node[S]
}

type priorityQueue[S comparable] []pending[S]

func (pq priorityQueue[S]) Len() int { return len(pq) }
func (pq priorityQueue[S]) Less(i, j int) bool {
	if pq[i].weight != pq[j].weight {
		return pq[i].weight < pq[j].weight
	}
	return pq[i].seq < pq[j].seq
}
func (pq priorityQueue[S]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue[S]) Push(x any)   { *pq = append(*pq, x.(pending[S])) }
func (pq *priorityQueue[S]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = pending[S]{} // drop the node reference
	*pq = old[0 : n-1]
	return item
}

// BuildTree greedily merges the two lightest pending trees until one is left.
// Symbols are seeded in the table's first-seen order, so the same table
// always produces the same tree.
func BuildTree[S comparable](ft *FreqTable[S]) (Node[S], error) {
	if ft == nil || ft.Len() == 0 {
		return nil, ErrEmptyInput
	}

	seq := 0
	pq := make(priorityQueue[S], 0, ft.Len())
	for _, s := range ft.order {
		pq = append(pq, pending[S]{weight: ft.counts[s], seq: seq, node: Leaf[S]{Symbol: s}})
		seq++
	}
	heap.Init(&pq)

	for pq.Len() > 1 {
		left := heap.Pop(&pq).(pending[S])
		right := heap.Pop(&pq).(pending[S])

		// Parent weighs the sum of its children and sorts after every existing entry of equal weight
		heap.Push(&pq, pending[S]{
			weight: left.weight + right.weight,
			seq:    seq,
			node:   &Internal[S]{Left: left.node, Right: right.node},
		})
		seq++
	}
	return pq[0].node, nil
}
