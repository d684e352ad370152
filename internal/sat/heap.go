package sat

import "github.com/rhartert/yagh"

// ActivityHeap is the max-heap on variable activity used for branching: a
// dense activity array plus a generic indexed priority queue keyed by
// negated activity (so the queue's own min-heap pops the highest-activity
// variable first). Index bookkeeping -- the "position array is a
// functional inverse of the heap array" invariant -- lives inside yagh
// itself; this type only owns the activity scores and the decay knobs.
type ActivityHeap struct {
	queue *yagh.IntMap[float64]
	score []float64
	inc   float64
	decay float64
}

// NewActivityHeap returns an empty heap that decays activity by 1/decay
// after every conflict (decay in (0,1], e.g. 0.95).
func NewActivityHeap(decay float64) *ActivityHeap {
	return &ActivityHeap{
		queue: yagh.New[float64](0),
		inc:   1,
		decay: decay,
	}
}

// AddVar registers a freshly allocated variable with the given initial
// activity and inserts it into the queue.
func (h *ActivityHeap) AddVar(initScore float64) {
	v := len(h.score)
	h.score = append(h.score, initScore)
	h.queue.GrowBy(1)
	h.queue.Put(v, -initScore)
}

// Score returns v's current activity.
func (h *ActivityHeap) Score(v Var) float64 { return h.score[v] }

// Reinsert puts v back into the queue (e.g. after it is unassigned by a
// backtrack), keyed by its current activity.
func (h *ActivityHeap) Reinsert(v Var) {
	h.queue.Put(int(v), -h.score[v])
}

// Contains reports whether v is currently present in the queue.
func (h *ActivityHeap) Contains(v Var) bool { return h.queue.Contains(int(v)) }

// Bump increases v's activity by the current increment, rescaling every
// score (and the increment itself) if the bump would overflow 1e100.
func (h *ActivityHeap) Bump(v Var) {
	newScore := h.score[v] + h.inc
	h.score[v] = newScore
	if h.queue.Contains(int(v)) {
		h.queue.Put(int(v), -newScore)
	}
	if newScore > 1e100 {
		h.rescale()
	}
}

func (h *ActivityHeap) rescale() {
	h.inc *= 1e-100
	for v, s := range h.score {
		ns := s * 1e-100
		h.score[v] = ns
		if h.queue.Contains(v) {
			h.queue.Put(v, -ns)
		}
	}
}

// Decay shrinks future bumps' relative weight by growing the increment,
// called once per conflict.
func (h *ActivityHeap) Decay() {
	h.inc /= h.decay
}

// PeekActive returns the highest-activity active variable without
// consuming it (stale, already-settled entries encountered along the way
// are still dropped), used by the restart policy's partial backjump.
func (h *ActivityHeap) PeekActive(isActive func(Var) bool) (Var, bool) {
	v, ok := h.PopActive(isActive)
	if !ok {
		return 0, false
	}
	h.queue.Put(int(v), -h.score[v])
	return v, true
}

// PopActive removes and returns the highest-activity variable for which
// isActive returns true, discarding anything already settled (assigned or
// eliminated) along the way. Reports false if no active variable remains.
func (h *ActivityHeap) PopActive(isActive func(Var) bool) (Var, bool) {
	for {
		next, ok := h.queue.Pop()
		if !ok {
			return 0, false
		}
		v := Var(next.Elem)
		if !isActive(v) {
			continue
		}
		return v, true
	}
}
