package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// decodeList expands l's raw watch words into (binary other) literals and
// (ref, blocker) pairs for assertion purposes.
func decodeList(w *Watches, l Literal) (binaries []Literal, clauses [][2]uint32) {
	list := w.List(l)
	for i := 0; i < len(list); {
		if isBinaryEntry(list[i]) {
			binaries = append(binaries, decodeBinary(list[i]))
			i++
		} else {
			clauses = append(clauses, [2]uint32{uint32(decodeClauseRef(list[i])), list[i+1]})
			i += 2
		}
	}
	return binaries, clauses
}

func TestWatches_MixedEncodings(t *testing.T) {
	w := NewWatches(4)
	l := PositiveLiteral(1)

	w.AddBinary(l, NegativeLiteral(2))
	w.AddClause(l, 12, PositiveLiteral(3))
	w.AddBinary(l, PositiveLiteral(3))

	binaries, clauses := decodeList(w, l)
	if want := []Literal{NegativeLiteral(2), PositiveLiteral(3)}; !cmp.Equal(binaries, want) {
		t.Errorf("binary entries = %v, want %v", binaries, want)
	}
	if want := [][2]uint32{{12, uint32(PositiveLiteral(3))}}; !cmp.Equal(clauses, want) {
		t.Errorf("clause entries = %v, want %v", clauses, want)
	}
}

func TestWatches_RemoveClauseKeepsBinaries(t *testing.T) {
	w := NewWatches(4)
	l := PositiveLiteral(1)
	w.AddBinary(l, PositiveLiteral(2))
	w.AddClause(l, 12, PositiveLiteral(3))
	w.AddClause(l, 20, PositiveLiteral(2))

	w.RemoveClause(l, 12)

	binaries, clauses := decodeList(w, l)
	if len(binaries) != 1 || len(clauses) != 1 || clauses[0][0] != 20 {
		t.Errorf("after RemoveClause: binaries=%v clauses=%v, want 1 binary and clause 20",
			binaries, clauses)
	}
}

func TestWatches_RewriteClauseRef(t *testing.T) {
	w := NewWatches(4)
	l := PositiveLiteral(1)
	w.AddClause(l, 12, PositiveLiteral(3))

	w.RewriteClauseRef(l, 12, 8)

	_, clauses := decodeList(w, l)
	if len(clauses) != 1 || clauses[0][0] != 8 {
		t.Errorf("clause entries = %v, want ref 8", clauses)
	}
}

func TestWatches_StripClauseEntries(t *testing.T) {
	w := NewWatches(4)
	l := PositiveLiteral(1)
	w.AddClause(l, 12, PositiveLiteral(3))
	w.AddBinary(l, PositiveLiteral(2))
	w.AddClause(l, 20, PositiveLiteral(2))

	w.StripClauseEntries(l)

	binaries, clauses := decodeList(w, l)
	if want := []Literal{PositiveLiteral(2)}; !cmp.Equal(binaries, want) || len(clauses) != 0 {
		t.Errorf("after strip: binaries=%v clauses=%v, want only the binary entry", binaries, clauses)
	}
}

func TestWatches_RewriteClauseRefSkipsBinaryEntries(t *testing.T) {
	w := NewWatches(4)
	l := PositiveLiteral(1)
	w.AddBinary(l, PositiveLiteral(2))
	w.AddClause(l, 12, PositiveLiteral(3))

	// The clause entry sits at an odd index behind the one-word binary
	// entry; the rewrite must still find it.
	w.RewriteClauseRef(l, 12, 8)

	binaries, clauses := decodeList(w, l)
	if len(binaries) != 1 || len(clauses) != 1 || clauses[0][0] != 8 {
		t.Errorf("after rewrite: binaries=%v clauses=%v, want 1 binary and clause 8",
			binaries, clauses)
	}
}
