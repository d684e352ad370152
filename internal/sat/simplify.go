package sat

import "sort"

// needsSimplify reports whether new level-0 units or new binary clauses
// have accumulated since the last simplify() call. Only meaningful at
// decision level 0, where the whole trail is the root level. The cadence
// option spaces passes out by a minimum number of conflicts.
func (s *Solver) needsSimplify() bool {
	if s.Stats.Conflicts < s.simplifyNext {
		return false
	}
	return s.trail.Size() > s.lastSimplifyUnits || s.nBinaryClauses > s.lastSimplifyBinary
}

// simplify runs at decision level 0 between conflicts: an equivalence
// substitution round if the binary implication graph has grown since the
// last pass, then a scrub of every clause in the database for literals
// fixed true or false at level 0.
func (s *Solver) simplify() {
	if s.nBinaryClauses > s.lastSimplifyBinary {
		s.runEquivalenceSubstitution()
		if s.unsat {
			return
		}
	}

	s.scrubClauseDB()
	s.Stats.SimplifyCalls++
	s.lastSimplifyUnits = s.trail.Size()
	s.lastSimplifyBinary = s.nBinaryClauses
	s.simplifyNext = s.Stats.Conflicts + s.opts.SimplifyCadence

	if s.pool.ShouldGC() {
		s.compactLearned()
	}
}

// scrubClauseDB removes level-0-false literals from, and drops level-0-true,
// every non-locked clause in the pool. Binary clauses living purely in the
// watch lists need no such pass: BCP itself keeps them consistent, since a
// false literal there would already have forced (or conflicted with) the
// other watched literal.
func (s *Solver) scrubClauseDB() {
	for ref, next := s.pool.First(), ClauseRef(0); ref != nullClauseRef; ref = next {
		next = s.pool.Next(ref)
		if !s.isLocked(ref) {
			s.scrubClause(ref)
		}
	}
}

func (s *Solver) scrubClause(ref ClauseRef) {
	n := s.pool.Length(ref)
	lits := make([]Literal, 0, n)
	satisfied := false
	for i := uint32(0); i < n && !satisfied; i++ {
		l := s.pool.Lit(ref, i)
		switch s.LitValue(l) {
		case True:
			satisfied = true
		case False:
			// drop
		default:
			lits = append(lits, l)
		}
	}
	if satisfied {
		s.unwatch(ref)
		s.pool.Delete(ref)
		return
	}
	if uint32(len(lits)) == n {
		return // nothing changed
	}

	s.unwatch(ref)
	switch len(lits) {
	case 0:
		s.pool.Delete(ref)
		s.unsat = true
	case 1:
		s.pool.Delete(ref)
		if !s.enqueue(lits[0], unitAntecedent) {
			s.unsat = true
		}
	case 2:
		s.pool.Delete(ref)
		s.watches.AddBinary(lits[0].Opposite(), lits[1])
		s.watches.AddBinary(lits[1].Opposite(), lits[0])
		s.nBinaryClauses++
	default:
		for i, l := range lits {
			s.pool.SetLit(ref, uint32(i), l)
		}
		s.pool.Shrink(ref, uint32(len(lits)))
		s.watches.AddClause(lits[0].Opposite(), ref, lits[1])
		s.watches.AddClause(lits[1].Opposite(), ref, lits[0])
	}
}

// unwatch removes ref's current two watched-literal registrations before
// the clause's contents change underneath it.
func (s *Solver) unwatch(ref ClauseRef) {
	a, b := s.pool.Lit(ref, 0), s.pool.Lit(ref, 1)
	s.watches.RemoveClause(a.Opposite(), ref)
	s.watches.RemoveClause(b.Opposite(), ref)
}

// normalizeLiterals sorts, dedups, and checks lits (already mapped through a
// substitution or scrub) for a complementary pair. Shared by simplify's
// clause scrub and scc.go's equivalence substitution.
func normalizeLiterals(lits []Literal) (result []Literal, tautology bool) {
	sort.Slice(lits, func(i, j int) bool { return lits[i] < lits[j] })
	write := 0
	for i := 0; i < len(lits); i++ {
		if write > 0 && lits[write-1] == lits[i] {
			continue
		}
		if write > 0 && lits[write-1].Opposite() == lits[i] {
			return nil, true
		}
		lits[write] = lits[i]
		write++
	}
	return lits[:write], false
}
