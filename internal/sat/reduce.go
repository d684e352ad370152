package sat

import "sort"

// isLocked reports whether ref is currently serving as the antecedent of
// its own first literal, making it un-deletable until backtracking frees it.
func (s *Solver) isLocked(ref ClauseRef) bool {
	v := s.pool.Lit(ref, 0).VarID()
	ant := s.reasons[v]
	return s.values[v].IsAssigned() && ant.Kind == AntClause && ant.Ref == ref
}

// clauseLBD recomputes a clause's LBD from its literals' current (or, for
// since-backtracked literals, last-held) decision levels -- see solver.go's
// undoOne for why levels survive backtracking.
func (s *Solver) clauseLBD(ref ClauseRef) int {
	n := s.pool.Length(ref)
	lits := make([]Literal, n)
	for i := uint32(0); i < n; i++ {
		lits[i] = s.pool.Lit(ref, i)
	}
	return s.computeLBD(lits)
}

// isPrecious reports whether a learned clause should survive reduction
// regardless of activity: short clauses, or clauses whose LBD is already
// within Options.KeepLBD.
func (s *Solver) isPrecious(ref ClauseRef) bool {
	k := s.opts.KeepLBD
	if int(s.pool.Length(ref)) <= k {
		return true
	}
	return s.clauseLBD(ref) <= k
}

// needsReduce reports whether the growing-cadence reduce trigger has fired.
func (s *Solver) needsReduce() bool {
	return s.Stats.Conflicts >= int64(s.reduceNext)
}

// reduceDB deletes the least-active reduce_fraction/32 prefix of
// non-locked, non-precious learned clauses, then compacts the learned
// portion of the pool.
func (s *Solver) reduceDB() {
	s.reduceNext += s.reduceInc
	s.reduceInc += s.reduceInc2
	if s.reduceInc2 > 0 {
		s.reduceInc2--
	}

	type candidate struct {
		ref ClauseRef
		act float32
	}
	var candidates []candidate
	for ref := s.pool.FirstLearned(); ref != nullClauseRef; ref = s.pool.Next(ref) {
		if s.isLocked(ref) || s.isPrecious(ref) {
			continue
		}
		candidates = append(candidates, candidate{ref, s.pool.Activity(ref)})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].act != candidates[j].act {
			return candidates[i].act < candidates[j].act
		}
		return candidates[i].ref < candidates[j].ref
	})

	reduceFraction := s.opts.ReduceFraction
	if reduceFraction <= 0 {
		reduceFraction = defaultReduceFraction
	}
	nDelete := len(candidates) * reduceFraction / 32
	for i := 0; i < nDelete; i++ {
		s.deleteLearned(candidates[i].ref)
	}

	s.compactLearned()

	for li := 0; li < int(s.nVars)*2; li++ {
		s.watches.ShrinkIfSparse(Literal(li))
	}
}

// deleteLearned removes a learned clause from the pool and its watch
// lists. The clause must not be locked. Learned binary clauses never reach
// the pool (installLearned adds them as pure watch entries), so nothing
// iterated here is ever length 2.
func (s *Solver) deleteLearned(ref ClauseRef) {
	a, b := s.pool.Lit(ref, 0), s.pool.Lit(ref, 1)
	s.watches.RemoveClause(a.Opposite(), ref)
	s.watches.RemoveClause(b.Opposite(), ref)
	s.pool.Delete(ref)
}

// compactLearned runs a compacting GC over the pool, rewriting watch-list
// and antecedent references for every clause that moves. Problem clauses
// sit below the learned boundary and rarely move; the bulk of the sliding
// happens in the learned region the reduce pass just punched holes in.
func (s *Solver) compactLearned() {
	if s.pool.Padding() <= sentinelWords {
		return
	}
	s.pool.Compact(func(old, new ClauseRef) {
		s.rewriteClauseRef(old, new)
	})
}

// rewriteClauseRef updates every watch-list entry and antecedent pointing
// at old to point at new, called once per clause the pool's Compact moves.
func (s *Solver) rewriteClauseRef(old, new ClauseRef) {
	n := s.pool.Length(new)
	a, b := s.pool.Lit(new, 0), s.pool.Lit(new, 1)
	s.watches.RewriteClauseRef(a.Opposite(), old, new)
	if n >= 2 {
		s.watches.RewriteClauseRef(b.Opposite(), old, new)
	}
	av := a.VarID()
	if s.reasons[av].Kind == AntClause && s.reasons[av].Ref == old {
		s.reasons[av].Ref = new
	}
}
