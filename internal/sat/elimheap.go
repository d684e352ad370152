package sat

import "github.com/rhartert/yagh"

// EliminationHeap is the min-heap used to pick bounded-variable-elimination
// candidates: variables with min(posOcc,negOcc) == 1 rank strictly before
// everything else, ties break on posOcc*negOcc, and final ties break on
// variable id. Reusing yagh's generic indexed priority queue (already a
// dependency via ActivityHeap) means the whole two-tier order collapses
// onto a single composite int64 key instead of a second hand-rolled heap
// type: bits 48+ carry the tier, bits 20-47 the occurrence product
// (masked to its low 28 bits -- exact below ~268M occurrence pairs), bits
// 0-19 the variable id (masked likewise -- exact below ~1M variables).
type EliminationHeap struct {
	queue *yagh.IntMap[int64]
}

// NewEliminationHeap returns an empty elimination heap.
func NewEliminationHeap() *EliminationHeap {
	return &EliminationHeap{queue: yagh.New[int64](0)}
}

// Grow adds the slot for one freshly allocated variable.
func (e *EliminationHeap) Grow() { e.queue.GrowBy(1) }

func eliminationKey(v Var, posOcc, negOcc int) int64 {
	tier := int64(1)
	if min(posOcc, negOcc) == 1 {
		tier = 0
	}
	product := int64(posOcc) * int64(negOcc) & 0xFFFFFFF
	return tier<<48 | product<<20 | int64(v)&0xFFFFF
}

// Put inserts or re-keys v according to its current occurrence counts.
func (e *EliminationHeap) Put(v Var, posOcc, negOcc int) {
	e.queue.Put(int(v), eliminationKey(v, posOcc, negOcc))
}

// Contains reports whether v is currently queued.
func (e *EliminationHeap) Contains(v Var) bool { return e.queue.Contains(int(v)) }

// Pop removes and returns the lowest-ranked candidate.
func (e *EliminationHeap) Pop() (Var, bool) {
	next, ok := e.queue.Pop()
	if !ok {
		return 0, false
	}
	return Var(next.Elem), true
}
