package sat

// Watches holds, for every literal, the search-time watch list: a growable
// vector mixing two word encodings, discriminated by the low bit:
//
//   - low bit 1: a single word encoding a literal -- the other end of a
//     binary clause with no backing pool entry at all;
//   - low bit 0: a (clause index, blocker literal) pair -- two words, the
//     first a shifted ClauseRef, the second the cached blocker.
//
// This is distinct from the flat occurrence lists used during
// preprocessing (see occurrence.go): once search starts, binary clauses
// are pure watch-list entries and never occupy pool space.
type Watches struct {
	lists [][]uint32
}

// NewWatches returns an empty Watches with room for nVars variables.
func NewWatches(nVars int) *Watches {
	return &Watches{lists: make([][]uint32, 2*nVars)}
}

// Grow adds the two literal slots for one freshly allocated variable.
func (w *Watches) Grow() {
	w.lists = append(w.lists, nil, nil)
}

func encodeBinary(other Literal) uint32 {
	return uint32(other)<<1 | 1
}

func isBinaryEntry(word uint32) bool {
	return word&1 == 1
}

func decodeBinary(word uint32) Literal {
	return Literal(word >> 1)
}

func encodeClauseRef(ref ClauseRef) uint32 {
	return uint32(ref) << 1
}

func decodeClauseRef(word uint32) ClauseRef {
	return ClauseRef(word >> 1)
}

// AddBinary registers a binary clause {l.Opposite(), other}: when l becomes
// true, other is implied (or, if already false, a binary conflict).
func (w *Watches) AddBinary(l Literal, other Literal) {
	w.lists[l] = append(w.lists[l], encodeBinary(other))
}

// AddClause registers a clause (length >= 3) to wake up when l becomes
// true, with blocker cached to short-circuit the common already-satisfied
// case without touching the pool.
func (w *Watches) AddClause(l Literal, ref ClauseRef, blocker Literal) {
	w.lists[l] = append(w.lists[l], encodeClauseRef(ref), uint32(blocker))
}

// RemoveClause deletes the (ref, *) entry for the given clause from l's
// watch list, used when a watched clause is removed from the pool.
func (w *Watches) RemoveClause(l Literal, ref ClauseRef) {
	list := w.lists[l]
	target := encodeClauseRef(ref)
	for i := 0; i < len(list); {
		if isBinaryEntry(list[i]) {
			i++
			continue
		}
		if list[i] == target {
			w.lists[l] = append(list[:i], list[i+2:]...)
			return
		}
		i += 2
	}
}

// RemoveBinary deletes one occurrence of a binary entry pointing at other.
func (w *Watches) RemoveBinary(l Literal, other Literal) {
	list := w.lists[l]
	target := encodeBinary(other)
	for i := 0; i < len(list); {
		if !isBinaryEntry(list[i]) {
			i += 2
			continue
		}
		if list[i] == target {
			w.lists[l] = append(list[:i], list[i+1:]...)
			return
		}
		i++
	}
}

// StripClauseEntries removes every (clause index, blocker) entry from l's
// watch list, leaving only binary entries -- used to rebuild clause
// watches wholesale from a pool scan after a structural rewrite (e.g.
// equivalence substitution) touches an unpredictable set of clauses.
func (w *Watches) StripClauseEntries(l Literal) {
	list := w.lists[l]
	write := 0
	for i := 0; i < len(list); {
		if isBinaryEntry(list[i]) {
			list[write] = list[i]
			write++
			i++
		} else {
			i += 2
		}
	}
	w.lists[l] = list[:write]
}

// RewriteClauseRef updates the single (ref, blocker) entry for old in l's
// watch list to point at new instead, used when pool compaction relocates
// a clause.
func (w *Watches) RewriteClauseRef(l Literal, old, new ClauseRef) {
	list := w.lists[l]
	target := encodeClauseRef(old)
	for i := 0; i < len(list); {
		if isBinaryEntry(list[i]) {
			i++
			continue
		}
		if list[i] == target {
			list[i] = encodeClauseRef(new)
			return
		}
		i += 2
	}
}

// List returns the raw watch words for l.
func (w *Watches) List(l Literal) []uint32 { return w.lists[l] }

// SetList replaces l's watch list wholesale, used when propagation
// rebuilds it in place.
func (w *Watches) SetList(l Literal, list []uint32) { w.lists[l] = list }

// ShrinkIfSparse reallocates l's watch list to a tighter backing array when
// utilization falls below ~25%, per the growth/shrink policy.
func (w *Watches) ShrinkIfSparse(l Literal) {
	list := w.lists[l]
	if cap(list) >= 8 && len(list)*4 < cap(list) {
		tight := make([]uint32, len(list))
		copy(tight, list)
		w.lists[l] = tight
	}
}
