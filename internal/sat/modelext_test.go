package sat

import "testing"

// TestExtendModel_RecoverEliminatedVar replays a saved block by hand: with
// x eliminated from {a,x},{b,x}, x must come out true exactly when one of
// the saved clauses would otherwise be unsatisfied.
func TestExtendModel_RecoverEliminatedVar(t *testing.T) {
	const a, b, x = 1, 2, 3

	tests := []struct {
		name  string
		aVal  LBool
		bVal  LBool
		wantX LBool
	}{
		{"both support literals true", True, True, False},
		{"one saved clause forces x", False, True, True},
		{"all saved clauses force x", False, False, True},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSolver(3, false, DefaultOptions)
			s.values[a] = tt.aVal
			s.values[b] = tt.bVal
			s.reasons[x] = Antecedent{Kind: AntElim}
			s.logEliminatedVar([]savedClause{
				{pos(a), pos(x)},
				{pos(b), pos(x)},
			})

			s.extendModel()

			if got := s.Value(Var(x)); got != tt.wantX {
				t.Errorf("Value(x) = %s, want %s", got, tt.wantX)
			}
		})
	}
}

// TestExtendModel_SubstitutionTriple checks the (replacement, ¬l) block a
// substitution logs: l must copy its replacement's value.
func TestExtendModel_SubstitutionTriple(t *testing.T) {
	const rep, l = 1, 2
	for _, repVal := range []LBool{True, False} {
		s := NewSolver(2, false, DefaultOptions)
		s.values[rep] = repVal
		s.reasons[l] = substAntecedent(pos(rep))
		s.savedBlocks = append(s.savedBlocks, savedBlock{{pos(rep), neg(l)}})

		s.extendModel()

		if got := s.Value(Var(l)); got != repVal {
			t.Errorf("Value(l) = %s with replacement %s, want them equal", got, repVal)
		}
	}
}

// TestExtendModel_ReverseOrderResolvesChains: a block logged later may
// define a variable an earlier block depends on; replaying from the end
// must resolve the chain.
func TestExtendModel_ReverseOrderResolvesChains(t *testing.T) {
	const a, x, y = 1, 2, 3
	s := NewSolver(3, false, DefaultOptions)
	s.values[a] = False
	s.reasons[x] = Antecedent{Kind: AntElim}
	s.reasons[y] = Antecedent{Kind: AntElim}
	// y was eliminated first, its block referencing x; x's own block was
	// logged afterward and depends only on a.
	s.logEliminatedVar([]savedClause{{pos(x), pos(y)}})
	s.logEliminatedVar([]savedClause{{pos(a), pos(x)}})

	s.extendModel()

	// a=false forces x=true, so {x, y}'s support is satisfied and y stays false.
	if got := s.Value(Var(x)); got != True {
		t.Errorf("Value(x) = %s, want true", got)
	}
	if got := s.Value(Var(y)); got != False {
		t.Errorf("Value(y) = %s, want false", got)
	}
}
