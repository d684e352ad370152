package sat

// savedBlock is one unit of the model-extension log: a sequence of clauses
// that mentioned a variable removed from the problem before search (by
// bounded variable elimination or equivalence substitution), each with the
// eliminated literal stored last. A substitution triple (replacement, ¬l)
// is stored as a one-clause block: with the
// distinguished literal defaulted false and flipped true only when every
// other literal in some clause of the block is false, a two-literal block
// (replacement, ¬l) exactly reproduces "l takes replacement's value".
type savedBlock []savedClause

type savedClause []Literal

// logEliminatedVar records the clauses that mentioned x's eliminated
// polarity, so extendModel can reconstruct x's value once every other
// variable has a final assignment. Each clause is expected to already carry
// the eliminated literal last.
func (s *Solver) logEliminatedVar(clauses []savedClause) {
	s.savedBlocks = append(s.savedBlocks, savedBlock(clauses))
}

// extendModel recovers the value of every variable removed from the problem
// before or during search (variable elimination, equivalence substitution)
// by walking the saved-clause vector from the end. Pure literals are not
// logged here: the preprocessor assigns them directly. Walking in reverse
// guarantees that any variable a block's satisfaction test depends on was
// itself resolved by an earlier iteration: a variable can only appear as
// "other literal" support for a block logged before its own elimination.
func (s *Solver) extendModel() {
	for i := len(s.savedBlocks) - 1; i >= 0; i-- {
		block := s.savedBlocks[i]
		if len(block) == 0 {
			continue
		}
		distinguished := block[0][len(block[0])-1]

		value := false
		for _, clause := range block {
			allOthersFalse := true
			for _, lit := range clause[:len(clause)-1] {
				if s.LitValue(lit) != False {
					allOthersFalse = false
					break
				}
			}
			if allOthersFalse {
				value = true
				break
			}
		}
		s.setDerivedValue(distinguished, value)
	}
}

// setDerivedValue assigns l's variable so that l evaluates to val, used only
// for variables model extension is reconstructing post-search (never during
// propagation: it bypasses the trail and antecedent bookkeeping entirely).
func (s *Solver) setDerivedValue(l Literal, val bool) {
	v := l.VarID()
	wantPositive := l.IsPositive() == val
	if wantPositive {
		s.values[v] = True
	} else {
		s.values[v] = False
	}
}
