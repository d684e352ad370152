package sat

// runVarElim drains the elimination heap, attempting bounded variable
// elimination on each candidate in ascending (tier, occurrence product,
// id) order. Variables are seeded into the heap once, at
// preprocess() startup; eliminating one variable can change another's
// occurrence counts, so refreshElimCandidate re-keys every variable touched
// by a successful elimination.
func (s *Solver) runVarElim() {
	for {
		v, ok := s.elimHeap.Pop()
		if !ok || s.unsat {
			return
		}
		if !s.isActive(v) {
			continue
		}
		s.eliminateVar(v)
	}
}

// seedElimHeap inserts every currently active variable with both polarities
// occurring at least once and fewer than Options.VarElimSkip occurrences
// on its rarer side.
func (s *Solver) seedElimHeap() {
	for v := Var(1); v < s.nVars; v++ {
		if !s.isActive(v) {
			continue
		}
		s.refreshElimCandidate(v)
	}
}

func (s *Solver) refreshElimCandidate(v Var) {
	if !s.isActive(v) {
		return
	}
	pos, neg := s.occ.Count(PositiveLiteral(v)), s.occ.Count(NegativeLiteral(v))
	if pos == 0 || neg == 0 {
		return // pure, handled by ppPureLiterals
	}
	if min(pos, neg) >= s.opts.VarElimSkip {
		return // too widely used to be worth resolving away
	}
	s.elimHeap.Put(v, pos, neg)
}

// eliminateVar attempts to resolve away every clause containing v, adding
// the resolvents back in v's place. It declines (leaving v untouched) when
// any resolvent would exceed Options.ResClauseLimit literals, or when the
// number of non-trivial resolvents exceeds the number of clauses currently
// containing v -- the bounded-elimination growth rule.
func (s *Solver) eliminateVar(v Var) bool {
	pos, neg := PositiveLiteral(v), NegativeLiteral(v)
	posClauses := append([]ClauseRef(nil), s.occ.List(pos)...)
	negClauses := append([]ClauseRef(nil), s.occ.List(neg)...)
	if len(posClauses) == 0 || len(negClauses) == 0 {
		return false
	}

	resLimit := s.opts.ResClauseLimit
	if resLimit <= 0 {
		resLimit = defaultResClauseLimit
	}

	var resolvents [][]Literal
	for _, pr := range posClauses {
		for _, nr := range negClauses {
			lits, tautology := s.resolve(pr, pos, nr, neg)
			if tautology {
				continue
			}
			if len(lits) > resLimit {
				return false
			}
			resolvents = append(resolvents, lits)
		}
	}
	if len(resolvents) > len(posClauses)+len(negClauses) {
		return false
	}

	// Only the clauses on v's smaller side are logged: model extension
	// defaults the distinguished literal to false and flips it true exactly
	// when some logged clause would otherwise go unsatisfied, which is only
	// sound when every logged clause carries the same polarity of v.
	savedLit, savedRefs := pos, posClauses
	if len(negClauses) < len(posClauses) {
		savedLit, savedRefs = neg, negClauses
	}
	saved := make([]savedClause, 0, len(savedRefs))
	for _, ref := range savedRefs {
		saved = append(saved, s.orientedClause(ref, savedLit))
	}
	s.logEliminatedVar(saved)

	touched := map[Var]bool{}
	for _, ref := range posClauses {
		s.markTouched(ref, touched)
		s.ppDeleteClause(ref)
	}
	for _, ref := range negClauses {
		s.markTouched(ref, touched)
		s.ppDeleteClause(ref)
	}

	s.reasons[v] = Antecedent{Kind: AntElim}
	s.Stats.PPVarElims++

	for _, lits := range resolvents {
		for _, l := range lits {
			touched[l.VarID()] = true
		}
		s.ppAddClause(lits)
		if s.unsat {
			return true
		}
	}

	for tv := range touched {
		s.refreshElimCandidate(tv)
	}
	return true
}

func (s *Solver) markTouched(ref ClauseRef, touched map[Var]bool) {
	n := s.pool.Length(ref)
	for i := uint32(0); i < n; i++ {
		touched[s.pool.Lit(ref, i).VarID()] = true
	}
}

// resolve computes the resolvent of pr (containing pos) and nr (containing
// neg, the opposite polarity of the same variable), already sorted,
// deduplicated, and tautology-checked.
func (s *Solver) resolve(pr ClauseRef, pos Literal, nr ClauseRef, neg Literal) ([]Literal, bool) {
	np := s.pool.Length(pr)
	lits := make([]Literal, 0, np+s.pool.Length(nr))
	for i := uint32(0); i < np; i++ {
		if l := s.pool.Lit(pr, i); l != pos {
			lits = append(lits, l)
		}
	}
	nn := s.pool.Length(nr)
	for i := uint32(0); i < nn; i++ {
		if l := s.pool.Lit(nr, i); l != neg {
			lits = append(lits, l)
		}
	}
	return normalizeLiterals(lits)
}

// orientedClause copies ref's literals with lit moved to the end, the
// saved-clause-vector convention modelext.go's extendModel relies on.
func (s *Solver) orientedClause(ref ClauseRef, lit Literal) savedClause {
	n := s.pool.Length(ref)
	out := make(savedClause, 0, n)
	for i := uint32(0); i < n; i++ {
		if l := s.pool.Lit(ref, i); l != lit {
			out = append(out, l)
		}
	}
	return append(out, lit)
}

// ppAddClause installs a resolvent into the preprocessing-time
// pool+occurrence representation, handling the degenerate empty/unit/binary
// shapes a resolution step can produce. Returns the new clause's ref, or
// nullClauseRef if lits collapsed to a unit/empty clause instead.
func (s *Solver) ppAddClause(lits []Literal) ClauseRef {
	switch len(lits) {
	case 0:
		s.unsat = true
		return nullClauseRef
	case 1:
		if !s.enqueue(lits[0], unitAntecedent) {
			s.unsat = true
		}
		return nullClauseRef
	default:
		ref := s.pool.Add(lits, false, 0)
		for _, l := range lits {
			s.occ.Add(l, ref)
		}
		return ref
	}
}
