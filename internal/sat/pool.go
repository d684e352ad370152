package sat

import "math"

// ClauseRef is an opaque handle into a ClausePool: a word offset of a
// clause's header. It is the only way other components (watch lists,
// antecedents, the saved-clause vector) may refer to a clause; no raw Go
// pointer into the pool's backing array is ever allowed to escape across an
// operation that might grow or compact the pool.
type ClauseRef uint32

// nullClauseRef never denotes a real clause: offsets [0,4) are permanently
// reserved as a sentinel padding block.
const nullClauseRef ClauseRef = 0

const (
	clauseMarkBit  uint32 = 1 << 31
	clauseLenMask  uint32 = clauseMarkBit - 1
	sentinelWords  uint32 = 4
	initialCap     uint32 = 256
	maxPoolWords   uint32 = 1 << 30 // overflow-saturating cap (2^30 words)
)

func roundUp4(n uint32) uint32 {
	return (n + 3) &^ 3
}

// ClausePool is an append-only arena of packed clauses: a header word
// (literal count, with the high bit used as a transient mark) and an
// auxiliary word (a learned clause's activity or a problem clause's
// subsumption signature), followed by the literal words. Deletion writes a
// padding header in place; a new padding block eagerly absorbs any padding
// that immediately follows it (padding before it is left as a separate
// block), and Compact slides everything else down to reclaim the rest.
type ClausePool struct {
	words   []uint32
	padding uint32

	// learnedAt is the boundary between problem and learned clauses: every
	// ref below it is a problem clause, every ref at or above it is
	// learned. It tracks the append pointer until FreezeBoundary is called
	// (once, right before search begins).
	learnedAt ClauseRef
	frozen    bool

	resetCap uint32

	nProblemClauses  int
	nProblemLiterals int
	nLearnedClauses  int
	nLearnedLiterals int
}

// NewClausePool returns an empty pool ready to accept problem clauses.
func NewClausePool() *ClausePool {
	p := &ClausePool{
		words:    make([]uint32, sentinelWords, initialCap),
		padding:  sentinelWords,
		resetCap: initialCap,
	}
	p.words[0] = 0
	p.words[1] = sentinelWords
	p.learnedAt = ClauseRef(len(p.words))
	return p
}

func (p *ClausePool) ensure(extra uint32) {
	need := uint32(len(p.words)) + extra
	if uint32(cap(p.words)) >= need {
		return
	}
	newCap := uint32(cap(p.words))
	if newCap == 0 {
		newCap = initialCap
	}
	for newCap < need {
		grown := newCap + newCap/2
		if grown <= newCap || grown > maxPoolWords {
			grown = maxPoolWords
		}
		newCap = grown
	}
	words := make([]uint32, len(p.words), newCap)
	copy(words, p.words)
	p.words = words
}

// FreezeBoundary fixes the problem/learned clause boundary at the current
// append pointer. Must be called exactly once, right before the first
// learned clause is added.
func (p *ClausePool) FreezeBoundary() {
	p.frozen = true
	p.learnedAt = ClauseRef(len(p.words))
}

// Add appends a new clause (at least two literals) and returns its handle.
// aux is the initial auxiliary word: 0 for a fresh learned clause's
// activity, or a precomputed subsumption signature for a problem clause.
func (p *ClausePool) Add(lits []Literal, learned bool, aux uint32) ClauseRef {
	length := uint32(len(lits))
	dataWords := 2 + length
	block := roundUp4(dataWords)
	p.ensure(block)

	ref := ClauseRef(len(p.words))
	p.words = p.words[:uint32(len(p.words))+block]
	p.words[ref] = length
	p.words[ref+1] = aux
	for i, l := range lits {
		p.words[uint32(ref)+2+uint32(i)] = uint32(l)
	}
	for i := dataWords; i < block; i++ {
		p.words[uint32(ref)+i] = 0
	}

	if learned {
		p.nLearnedClauses++
		p.nLearnedLiterals += int(length)
	} else {
		p.nProblemClauses++
		p.nProblemLiterals += int(length)
		if !p.frozen {
			p.learnedAt = ClauseRef(len(p.words))
		}
	}
	return ref
}

// IsLearned reports whether ref denotes a learned clause.
func (p *ClausePool) IsLearned(ref ClauseRef) bool {
	return ref >= p.learnedAt
}

// IsLive reports whether ref still denotes a live clause rather than a
// padding block or a stale handle left over in a work queue after the
// clause it once named was deleted. Every live clause has length >= 2 (see
// ClausePool.Add), so a zero header word is unambiguously padding.
func (p *ClausePool) IsLive(ref ClauseRef) bool {
	return ref != nullClauseRef && uint32(ref) < uint32(len(p.words)) && p.words[ref] != 0
}

// Length returns the clause's literal count.
func (p *ClausePool) Length(ref ClauseRef) uint32 {
	return p.words[ref] & clauseLenMask
}

// Marked reports the transient GC/preprocess mark bit.
func (p *ClausePool) Marked(ref ClauseRef) bool {
	return p.words[ref]&clauseMarkBit != 0
}

func (p *ClausePool) SetMark(ref ClauseRef)   { p.words[ref] |= clauseMarkBit }
func (p *ClausePool) ClearMark(ref ClauseRef) { p.words[ref] &^= clauseMarkBit }

// Aux returns the clause's auxiliary word.
func (p *ClausePool) Aux(ref ClauseRef) uint32     { return p.words[ref+1] }
func (p *ClausePool) SetAux(ref ClauseRef, v uint32) { p.words[ref+1] = v }

// Activity/SetActivity interpret the aux word as a bit-reinterpreted
// float32, used for learned clauses.
func (p *ClausePool) Activity(ref ClauseRef) float32 {
	return math.Float32frombits(p.Aux(ref))
}
func (p *ClausePool) SetActivity(ref ClauseRef, act float32) {
	p.SetAux(ref, math.Float32bits(act))
}

// Lit returns the i'th literal of the clause.
func (p *ClausePool) Lit(ref ClauseRef, i uint32) Literal {
	return Literal(p.words[uint32(ref)+2+i])
}

// SetLit overwrites the i'th literal of the clause.
func (p *ClausePool) SetLit(ref ClauseRef, i uint32, l Literal) {
	p.words[uint32(ref)+2+i] = uint32(l)
}

// Swap exchanges literals i and j within the clause.
func (p *ClausePool) Swap(ref ClauseRef, i, j uint32) {
	a, b := uint32(ref)+2+i, uint32(ref)+2+j
	p.words[a], p.words[b] = p.words[b], p.words[a]
}

// Literals copies out the clause's literals.
func (p *ClausePool) Literals(ref ClauseRef) []Literal {
	n := p.Length(ref)
	out := make([]Literal, n)
	for i := uint32(0); i < n; i++ {
		out[i] = p.Lit(ref, i)
	}
	return out
}

// Delete marks the clause's words as a padding block, eagerly merging with
// any immediately-following padding.
func (p *ClausePool) Delete(ref ClauseRef) {
	length := p.Length(ref)
	block := roundUp4(2 + length)
	if p.IsLearned(ref) {
		p.nLearnedClauses--
		p.nLearnedLiterals -= int(length)
	} else {
		p.nProblemClauses--
		p.nProblemLiterals -= int(length)
	}
	p.words[ref] = 0
	p.words[ref+1] = block
	p.padding += block
	p.mergeForward(ref)
}

func (p *ClausePool) mergeForward(ref ClauseRef) {
	for {
		next := ref + ClauseRef(p.words[ref+1])
		if uint32(next) >= uint32(len(p.words)) || p.words[next] != 0 {
			return
		}
		p.words[ref+1] += p.words[next+1]
	}
}

// Shrink reduces the clause's literal count in place, turning the freed
// tail into a new padding block.
func (p *ClausePool) Shrink(ref ClauseRef, newLen uint32) {
	oldLen := p.Length(ref)
	oldBlock := roundUp4(2 + oldLen)
	newBlock := roundUp4(2 + newLen)

	if p.IsLearned(ref) {
		p.nLearnedLiterals -= int(oldLen) - int(newLen)
	} else {
		p.nProblemLiterals -= int(oldLen) - int(newLen)
	}
	p.words[ref] = newLen

	if newBlock < oldBlock {
		tail := ref + ClauseRef(newBlock)
		p.words[tail] = 0
		p.words[tail+1] = oldBlock - newBlock
		p.padding += oldBlock - newBlock
		p.mergeForward(tail)
	}
}

// next scans forward from ref (inclusive), skipping padding blocks, and
// returns the first live clause found, or nullClauseRef at end of pool.
func (p *ClausePool) next(ref ClauseRef) ClauseRef {
	for uint32(ref) < uint32(len(p.words)) {
		if p.words[ref] == 0 {
			ref += ClauseRef(p.words[ref+1])
			continue
		}
		return ref
	}
	return nullClauseRef
}

// First returns the first live clause in the pool.
func (p *ClausePool) First() ClauseRef {
	return p.next(ClauseRef(sentinelWords))
}

// Next returns the next live clause after ref.
func (p *ClausePool) Next(ref ClauseRef) ClauseRef {
	block := roundUp4(2 + p.Length(ref))
	return p.next(ref + ClauseRef(block))
}

// FirstLearned returns the first live learned clause.
func (p *ClausePool) FirstLearned() ClauseRef {
	return p.next(p.learnedAt)
}

// Compact slides every live clause down toward low addresses to remove
// padding, calling onMove(oldRef, newRef) for every clause whose address
// changes (so the caller can rewrite watch lists and antecedents). The
// sentinel block at offset 0 never moves, so nullClauseRef stays invalid;
// the problem/learned boundary is relocated along with the clauses it
// separates.
func (p *ClausePool) Compact(onMove func(old, new ClauseRef)) {
	read, write := ClauseRef(sentinelWords), ClauseRef(sentinelWords)
	boundary := ClauseRef(0)
	boundarySet := false
	for uint32(read) < uint32(len(p.words)) {
		if !boundarySet && read >= p.learnedAt {
			boundary, boundarySet = write, true
		}
		if p.words[read] == 0 {
			read += ClauseRef(p.words[read+1])
			continue
		}
		block := roundUp4(2 + p.Length(read))
		if read != write {
			copy(p.words[write:uint32(write)+block], p.words[read:uint32(read)+block])
			onMove(read, write)
		}
		write += ClauseRef(block)
		read += ClauseRef(block)
	}
	if !boundarySet {
		boundary = write
	}
	p.words = p.words[:write]
	p.learnedAt = boundary
	p.rescan()
}

// rescan recomputes every pool-wide counter and the padding total from a
// full scan, keeping the invariant that counters agree exactly with pool
// contents after a structural change.
func (p *ClausePool) rescan() {
	p.padding = 0
	p.nProblemClauses, p.nProblemLiterals = 0, 0
	p.nLearnedClauses, p.nLearnedLiterals = 0, 0

	ref := ClauseRef(0)
	for uint32(ref) < uint32(len(p.words)) {
		if p.words[ref] == 0 {
			block := p.words[ref+1]
			p.padding += block
			ref += ClauseRef(block)
			continue
		}
		length := p.Length(ref)
		if p.IsLearned(ref) {
			p.nLearnedClauses++
			p.nLearnedLiterals += int(length)
		} else {
			p.nProblemClauses++
			p.nProblemLiterals += int(length)
		}
		ref += ClauseRef(roundUp4(2 + length))
	}
}

// ShouldGC reports whether accumulated padding warrants a compaction pass,
// per the preprocessor's GC trigger (10,000 words and 12.5% of pool size).
func (p *ClausePool) ShouldGC() bool {
	return p.padding > 10000 && uint32(p.padding)*8 > uint32(len(p.words))
}

func (p *ClausePool) NumProblemClauses() int  { return p.nProblemClauses }
func (p *ClausePool) NumProblemLiterals() int { return p.nProblemLiterals }
func (p *ClausePool) NumLearnedClauses() int  { return p.nLearnedClauses }
func (p *ClausePool) NumLearnedLiterals() int { return p.nLearnedLiterals }
func (p *ClausePool) Padding() uint32         { return p.padding }
func (p *ClausePool) Size() uint32            { return uint32(len(p.words)) }

// Reset discards every clause and replaces the backing array with a fresh
// one of the reset capacity, so a pool that grew large gives that memory
// back.
func (p *ClausePool) Reset() {
	capWords := p.resetCap
	if capWords < initialCap {
		capWords = initialCap
	}
	p.words = make([]uint32, sentinelWords, capWords)
	p.words[0] = 0
	p.words[1] = sentinelWords
	p.padding = sentinelWords
	p.learnedAt = ClauseRef(len(p.words))
	p.frozen = false
	p.nProblemClauses, p.nProblemLiterals = 0, 0
	p.nLearnedClauses, p.nLearnedLiterals = 0, 0
}
