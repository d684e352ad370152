package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func poolScanRefs(p *ClausePool) []ClauseRef {
	var refs []ClauseRef
	for ref := p.First(); ref != nullClauseRef; ref = p.Next(ref) {
		refs = append(refs, ref)
	}
	return refs
}

func TestClausePool_AddAndIterate(t *testing.T) {
	p := NewClausePool()
	c1 := p.Add([]Literal{2, 4, 6}, false, 0)
	c2 := p.Add([]Literal{3, 5}, false, 0)

	if got := poolScanRefs(p); !cmp.Equal(got, []ClauseRef{c1, c2}) {
		t.Errorf("pool scan = %v, want [%d %d]", got, c1, c2)
	}
	if got := p.Literals(c1); !cmp.Equal(got, []Literal{2, 4, 6}) {
		t.Errorf("Literals(c1) = %v, want [2 4 6]", got)
	}
	if p.NumProblemClauses() != 2 || p.NumProblemLiterals() != 5 {
		t.Errorf("counters = (%d clauses, %d literals), want (2, 5)",
			p.NumProblemClauses(), p.NumProblemLiterals())
	}
	if p.Size()%4 != 0 {
		t.Errorf("Size() = %d, want a multiple of four", p.Size())
	}
}

func TestClausePool_DeleteBecomesPadding(t *testing.T) {
	p := NewClausePool()
	c1 := p.Add([]Literal{2, 4, 6}, false, 0)
	c2 := p.Add([]Literal{3, 5, 7}, false, 0)
	c3 := p.Add([]Literal{8, 9, 10}, false, 0)

	p.Delete(c2)

	if p.IsLive(c2) {
		t.Error("IsLive(c2) = true after Delete")
	}
	if got := poolScanRefs(p); !cmp.Equal(got, []ClauseRef{c1, c3}) {
		t.Errorf("pool scan = %v, want [%d %d]", got, c1, c3)
	}
	if p.NumProblemClauses() != 2 {
		t.Errorf("NumProblemClauses() = %d, want 2", p.NumProblemClauses())
	}
}

func TestClausePool_DeleteMergesAdjacentPadding(t *testing.T) {
	p := NewClausePool()
	p.Add([]Literal{2, 4, 6}, false, 0)
	c2 := p.Add([]Literal{3, 5, 7}, false, 0)
	c3 := p.Add([]Literal{8, 9, 10}, false, 0)
	c4 := p.Add([]Literal{11, 12, 13}, false, 0)

	// Delete c3 first, then c2: c2's padding header must absorb c3's.
	p.Delete(c3)
	p.Delete(c2)

	if got := p.Next(poolScanRefs(p)[0]); got != c4 {
		t.Errorf("Next over merged padding = %d, want %d", got, c4)
	}
}

func TestClausePool_ShrinkInPlace(t *testing.T) {
	p := NewClausePool()
	ref := p.Add([]Literal{2, 4, 6, 8, 10, 12, 14}, false, 0)

	before := p.Padding()
	p.Shrink(ref, 3)

	if got := p.Length(ref); got != 3 {
		t.Errorf("Length = %d, want 3", got)
	}
	if p.Padding() <= before {
		t.Error("Shrink freed no padding")
	}
	if got := p.NumProblemLiterals(); got != 3 {
		t.Errorf("NumProblemLiterals() = %d, want 3", got)
	}
}

func TestClausePool_CompactSlidesClausesDown(t *testing.T) {
	p := NewClausePool()
	c1 := p.Add([]Literal{2, 4, 6}, false, 0)
	c2 := p.Add([]Literal{3, 5, 7}, false, 0)
	c3 := p.Add([]Literal{8, 9, 10}, false, 0)

	p.Delete(c2)
	sizeBefore := p.Size()

	moves := map[ClauseRef]ClauseRef{}
	p.Compact(func(old, new ClauseRef) { moves[old] = new })

	if p.Size() >= sizeBefore {
		t.Errorf("Size() = %d after Compact, want < %d", p.Size(), sizeBefore)
	}
	// c1 sits before the hole and must not move; c3 slides into c2's slot.
	if _, moved := moves[c1]; moved {
		t.Error("Compact moved a clause below the first padding block")
	}
	newC3, moved := moves[c3]
	if !moved || newC3 != c2 {
		t.Errorf("c3 moved to %d, want %d", newC3, c2)
	}
	if got := p.Literals(newC3); !cmp.Equal(got, []Literal{8, 9, 10}) {
		t.Errorf("relocated clause = %v, want [8 9 10]", got)
	}
	// The sentinel block must survive so nullClauseRef stays invalid.
	if p.IsLive(nullClauseRef) {
		t.Error("Compact clobbered the sentinel block at offset 0")
	}
}

func TestClausePool_CountersAgreeWithScan(t *testing.T) {
	p := NewClausePool()
	refs := []ClauseRef{
		p.Add([]Literal{2, 4, 6}, false, 0),
		p.Add([]Literal{3, 5}, false, 0),
		p.Add([]Literal{8, 9, 10, 11}, false, 0),
	}
	p.FreezeBoundary()
	p.Add([]Literal{12, 13, 14}, true, 0)
	p.Delete(refs[1])

	clauses, lits := 0, 0
	learned, learnedLits := 0, 0
	for ref := p.First(); ref != nullClauseRef; ref = p.Next(ref) {
		if p.IsLearned(ref) {
			learned++
			learnedLits += int(p.Length(ref))
		} else {
			clauses++
			lits += int(p.Length(ref))
		}
	}
	if clauses != p.NumProblemClauses() || lits != p.NumProblemLiterals() {
		t.Errorf("problem counters = (%d, %d), scan says (%d, %d)",
			p.NumProblemClauses(), p.NumProblemLiterals(), clauses, lits)
	}
	if learned != p.NumLearnedClauses() || learnedLits != p.NumLearnedLiterals() {
		t.Errorf("learned counters = (%d, %d), scan says (%d, %d)",
			p.NumLearnedClauses(), p.NumLearnedLiterals(), learned, learnedLits)
	}
}

func TestClausePool_ActivityRoundTrip(t *testing.T) {
	p := NewClausePool()
	p.FreezeBoundary()
	ref := p.Add([]Literal{2, 4, 6}, true, 0)

	p.SetActivity(ref, 1.5)
	if got := p.Activity(ref); got != 1.5 {
		t.Errorf("Activity = %v, want 1.5", got)
	}
}

func TestClausePool_MarksAreTransient(t *testing.T) {
	p := NewClausePool()
	ref := p.Add([]Literal{2, 4, 6}, false, 0)

	p.SetMark(ref)
	if !p.Marked(ref) {
		t.Fatal("Marked = false after SetMark")
	}
	if got := p.Length(ref); got != 3 {
		t.Errorf("Length = %d while marked, want 3 (mark must not leak into length)", got)
	}
	p.ClearMark(ref)
	if p.Marked(ref) {
		t.Error("Marked = true after ClearMark")
	}
}
