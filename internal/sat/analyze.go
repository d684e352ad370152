package sat

// conflictLiterals returns, as a freshly-negated slice, the set of true
// literals that jointly explain why c's underlying clause is false --
// i.e. the negation of every literal of that (all-false) clause.
func (s *Solver) conflictLiterals(c conflict) []Literal {
	buf := s.reasonBuf[:0]
	if c.isBinary {
		buf = append(buf, c.litA.Opposite(), c.litB.Opposite())
	} else {
		n := s.pool.Length(c.ref)
		for i := uint32(0); i < n; i++ {
			buf = append(buf, s.pool.Lit(c.ref, i).Opposite())
		}
		if s.pool.IsLearned(c.ref) {
			s.bumpClauseActivity(c.ref)
		}
	}
	s.reasonBuf = buf
	return buf
}

// assignExplanation returns the negation of every literal but the first in
// v's antecedent clause (position 0 holds v's own literal, excluded).
// v must have a resolvable antecedent
// (AntBinary, AntClause, or AntStacked).
func (s *Solver) assignExplanation(v Var) []Literal {
	buf := s.reasonBuf[:0]
	ant := s.reasons[v]
	switch ant.Kind {
	case AntBinary:
		buf = append(buf, ant.Lit.Opposite())
	case AntClause:
		n := s.pool.Length(ant.Ref)
		for i := uint32(1); i < n; i++ {
			buf = append(buf, s.pool.Lit(ant.Ref, i).Opposite())
		}
		if s.pool.IsLearned(ant.Ref) {
			s.bumpClauseActivity(ant.Ref)
		}
	case AntStacked:
		lits := s.stash[ant.Stash]
		for _, l := range lits[1:] {
			buf = append(buf, l.Opposite())
		}
	}
	s.reasonBuf = buf
	return buf
}

// analyze computes the 1-UIP learned clause for conflict c: resolve
// backward along the trail until exactly one literal at the
// current decision level remains, minimize the result, compute its LBD,
// and place the second-highest-level literal at position 1 so the
// clause's watches are valid immediately after backjumping. The learned
// literals are left in s.learntBuf (UIP at position 0); the caller installs
// them before learntBuf is reused.
func (s *Solver) analyze(c conflict) (backtrackLevel int, lbd int) {
	s.seen.clear()
	s.learntBuf = s.learntBuf[:0]
	s.learntBuf = append(s.learntBuf, 0) // placeholder for the UIP literal

	level := s.decisionLevel()
	pending := 0
	idx := s.trail.Size() - 1

	resolve := func(lits []Literal) {
		for _, q := range lits {
			v := q.VarID()
			if s.seen.marked(int(v)) || s.levels[v] == 0 {
				continue // already resolved, or globally false at the root
			}
			s.seen.mark(int(v))
			s.heap.Bump(v)
			if s.levels[v] == level {
				pending++
				continue
			}
			s.learntBuf = append(s.learntBuf, q.Opposite())
		}
	}

	resolve(s.conflictLiterals(c))

	var uip Literal
	for {
		for {
			uip = s.trail.Literal(idx)
			idx--
			if s.seen.marked(int(uip.VarID())) {
				break
			}
		}
		pending--
		if pending <= 0 {
			break
		}
		resolve(s.assignExplanation(uip.VarID()))
	}
	s.learntBuf[0] = uip.Opposite()

	s.minimize()
	lbd = s.computeLBD(s.learntBuf)
	backtrackLevel = s.placeSecondWatch(s.learntBuf)
	return backtrackLevel, lbd
}

// isImplied reports whether v's assignment is redundant for minimization
// purposes: reachable, through antecedents, using only literals already
// marked seen in the learned clause or fixed at decision level 0.
// Decision antecedents are never implied. Results are cached in the
// minimizeTag ("implied")/notImplied ("definitely not") sets.
func (s *Solver) isImplied(v Var) bool {
	if s.levels[v] == 0 {
		return true
	}
	if s.seen.marked(int(v)) || s.minimizeTag.marked(int(v)) {
		return true
	}
	if s.notImplied.marked(int(v)) {
		return false
	}

	var preds []Literal
	switch s.reasons[v].Kind {
	case AntBinary:
		preds = []Literal{s.reasons[v].Lit}
	case AntClause:
		ref := s.reasons[v].Ref
		n := s.pool.Length(ref)
		preds = make([]Literal, 0, n-1)
		for i := uint32(1); i < n; i++ {
			preds = append(preds, s.pool.Lit(ref, i))
		}
	case AntStacked:
		preds = s.stash[s.reasons[v].Stash][1:]
	default:
		s.notImplied.mark(int(v))
		return false
	}

	for _, p := range preds {
		if !s.isImplied(p.VarID()) {
			s.notImplied.mark(int(v))
			return false
		}
	}
	s.minimizeTag.mark(int(v))
	return true
}

// minimize drops every non-UIP literal of learntBuf whose antecedent is
// wholly implied by other marked literals. The two ternary caches are
// cleared once per analysis rather than per dropped literal.
func (s *Solver) minimize() {
	s.minimizeTag.clear()
	s.notImplied.clear()

	write := 1
	for i := 1; i < len(s.learntBuf); i++ {
		lit := s.learntBuf[i]
		redundant := false
		switch s.reasons[lit.VarID()].Kind {
		case AntBinary, AntClause, AntStacked:
			redundant = true
			for _, p := range s.antecedentPreds(lit.VarID()) {
				if !s.isImplied(p.VarID()) {
					redundant = false
					break
				}
			}
		}
		if !redundant {
			s.learntBuf[write] = lit
			write++
		}
	}
	s.learntBuf = s.learntBuf[:write]
}

// antecedentPreds returns the predecessor literals of v's antecedent
// (everything but v's own literal), used by minimize to look one step past
// the literal being tested.
func (s *Solver) antecedentPreds(v Var) []Literal {
	switch s.reasons[v].Kind {
	case AntBinary:
		return []Literal{s.reasons[v].Lit}
	case AntClause:
		ref := s.reasons[v].Ref
		return s.pool.Literals(ref)[1:]
	case AntStacked:
		return s.stash[s.reasons[v].Stash][1:]
	}
	return nil
}

// computeLBD counts the distinct decision levels among lits using the
// transient levelSeen set.
func (s *Solver) computeLBD(lits []Literal) int {
	s.levelSeen.clear()
	count := 0
	for _, l := range lits {
		lv := s.levels[l.VarID()]
		if !s.levelSeen.marked(lv) {
			s.levelSeen.mark(lv)
			count++
		}
	}
	return count
}

// placeSecondWatch finds the second-highest decision level among lits[1:]
// (0 if the clause is unit), swaps that literal into position 1, and
// returns the level -- the backtrack level the caller should jump to so
// the clause's first two literals are valid watches immediately after.
func (s *Solver) placeSecondWatch(lits []Literal) int {
	if len(lits) <= 1 {
		return 0
	}
	maxIdx, maxLevel := 1, -1
	for i := 1; i < len(lits); i++ {
		if lv := s.levels[lits[i].VarID()]; lv > maxLevel {
			maxLevel, maxIdx = lv, i
		}
	}
	lits[1], lits[maxIdx] = lits[maxIdx], lits[1]
	return maxLevel
}

// bumpClauseActivity increases a learned clause's activity by the current
// clause increment, rescaling every learned clause's activity (and the
// increment itself) by 1e-20 once the bumped activity exceeds 1e20, well
// inside float32 range.
func (s *Solver) bumpClauseActivity(ref ClauseRef) {
	act := s.pool.Activity(ref) + s.clauseInc
	s.pool.SetActivity(ref, act)
	if act > 1e20 {
		s.rescaleClauseActivities()
	}
}

func (s *Solver) rescaleClauseActivities() {
	const shrink = 1e-20
	for ref := s.pool.FirstLearned(); ref != nullClauseRef; ref = s.pool.Next(ref) {
		s.pool.SetActivity(ref, s.pool.Activity(ref)*shrink)
	}
	s.clauseInc *= shrink
}

// decayClauseActivity shrinks future bumps' relative weight, called once
// per conflict.
func (s *Solver) decayClauseActivity() {
	s.clauseInc /= float32(s.opts.ClauseDecay)
}
