package sat

// preprocess runs the preprocessing phases to a fixed point: unit
// propagation over the flat occurrence-list representation, pure
// literal elimination, equivalence substitution (scc.go), bounded variable
// elimination (varelim.go), and subsumption (subsume.go). Nothing here
// touches Watches: that switch happens once, in materialize, after
// preprocessing is done.
func (s *Solver) preprocess() {
	if !s.ppPropagateUnits() {
		return
	}

	s.seedElimHeap()

	for {
		progress := false

		if s.ppPureLiterals() {
			progress = true
		}
		if s.unsat || !s.ppPropagateUnits() {
			return
		}

		nBinary := 0
		for ref := s.pool.First(); ref != nullClauseRef; ref = s.pool.Next(ref) {
			if s.pool.Length(ref) == 2 {
				nBinary++
			}
		}
		if nBinary > 0 {
			before := len(s.savedBlocks)
			s.runEquivalenceSubstitution()
			if s.unsat {
				return
			}
			if !s.ppPropagateUnits() {
				return
			}
			if len(s.savedBlocks) != before {
				progress = true
			}
		}

		s.subsume()
		if s.unsat || !s.ppPropagateUnits() {
			return
		}

		before := s.Stats.PPVarElims
		s.runVarElim()
		if s.unsat || !s.ppPropagateUnits() {
			return
		}
		if s.Stats.PPVarElims != before {
			progress = true
		}

		if s.pool.ShouldGC() {
			s.compactProblem()
		}

		if !progress {
			return
		}
	}
}

// ppPropagateUnits drains the trail's pending literals against the flat
// occurrence-list representation: every clause containing a newly true
// literal is deleted (satisfied), and the newly false literal is scrubbed
// out of every clause containing it, cascading into further units.
func (s *Solver) ppPropagateUnits() bool {
	for s.trail.PropagationPending() {
		l := s.trail.NextToPropagate()
		s.Stats.PPUnits++

		for _, ref := range append([]ClauseRef(nil), s.occ.List(l)...) {
			s.ppDeleteClause(ref)
		}
		for _, ref := range append([]ClauseRef(nil), s.occ.List(l.Opposite())...) {
			s.ppShrinkClause(ref, l.Opposite())
			if s.unsat {
				return false
			}
		}
	}
	return true
}

// ppDeleteClause removes ref from every literal's occurrence list and frees
// its pool slot.
func (s *Solver) ppDeleteClause(ref ClauseRef) {
	n := s.pool.Length(ref)
	for i := uint32(0); i < n; i++ {
		s.occ.Remove(s.pool.Lit(ref, i), ref)
	}
	s.pool.Delete(ref)
}

// ppShrinkClause removes drop from ref, demoting it to a fresh, shorter
// clause; a clause shrunk to one literal becomes a new unit, and one
// shrunk to none reports UNSAT. Returns the new clause's ref, or
// nullClauseRef if it collapsed to a unit/empty clause instead of a
// pool-resident one.
func (s *Solver) ppShrinkClause(ref ClauseRef, drop Literal) ClauseRef {
	n := s.pool.Length(ref)
	kept := make([]Literal, 0, n-1)
	for i := uint32(0); i < n; i++ {
		if l := s.pool.Lit(ref, i); l != drop {
			kept = append(kept, l)
		}
	}
	s.ppDeleteClause(ref)
	return s.ppAddClause(kept)
}

// ppPureLiterals assigns, and deletes the clauses of, every currently
// unassigned variable occurring with only one polarity. Returns whether
// any variable was resolved this pass.
func (s *Solver) ppPureLiterals() bool {
	changed := false
	for v := Var(1); v < s.nVars; v++ {
		if s.values[v].IsAssigned() {
			continue
		}
		pos, neg := PositiveLiteral(v), NegativeLiteral(v)
		nPos, nNeg := s.occ.Count(pos), s.occ.Count(neg)
		if nPos > 0 && nNeg > 0 {
			continue
		}
		// Unconstrained variables (both counts zero) are forced to their
		// preferred polarity; true pure literals take the occurring side.
		l := s.preferredLiteral(v)
		if nPos > 0 {
			l = pos
		} else if nNeg > 0 {
			l = neg
		}
		if !s.enqueue(l, Antecedent{Kind: AntPure}) {
			s.unsat = true
			return changed
		}
		for _, ref := range append([]ClauseRef(nil), s.occ.List(l)...) {
			s.ppDeleteClause(ref)
		}
		s.Stats.PPPureLiterals++
		changed = true
	}
	return changed
}

// compactProblem runs a compacting GC over the whole pool while still in
// preprocessing mode (no Watches to rewrite yet), rebuilding the flat
// occurrence lists afterward rather than patching them per moved clause.
func (s *Solver) compactProblem() {
	s.pool.Compact(func(old, new ClauseRef) {})
	s.rebuildOccurrences()
}

// materialize switches the solver from preprocessing's flat occurrence
// lists to search's two-watched-literal Watches: every remaining binary
// clause becomes a pure watch entry (leaving the pool), every clause of length
// >= 3 gets a fresh pair of watches, and the problem/learned boundary is
// frozen.
func (s *Solver) materialize() {
	s.watches = NewWatches(int(s.nVars))

	var binaries [][2]Literal
	for ref := s.pool.First(); ref != nullClauseRef; {
		next := s.pool.Next(ref)
		if s.pool.Length(ref) == 2 {
			a, b := s.pool.Lit(ref, 0), s.pool.Lit(ref, 1)
			binaries = append(binaries, [2]Literal{a, b})
			s.pool.Delete(ref)
		}
		ref = next
	}
	for _, pair := range binaries {
		s.watches.AddBinary(pair[0].Opposite(), pair[1])
		s.watches.AddBinary(pair[1].Opposite(), pair[0])
		s.nBinaryClauses++
		s.nProblemBinary++
	}

	for ref := s.pool.First(); ref != nullClauseRef; ref = s.pool.Next(ref) {
		a, b := s.pool.Lit(ref, 0), s.pool.Lit(ref, 1)
		s.watches.AddClause(a.Opposite(), ref, b)
		s.watches.AddClause(b.Opposite(), ref, a)
	}

	s.occ.Clear()
	s.pool.FreezeBoundary()
}
