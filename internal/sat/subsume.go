package sat

// subsume runs forward subsumption and self-subsuming resolution over the
// pool's problem clauses: every clause starts on a
// work queue, and strengthening a clause (self-subsuming resolution) pushes
// it back onto that same queue for another look. A clause signature (a
// 32-bit literal-id hash, cheap to OR together) is cached in each clause's
// aux word as a fast, sound-to-false-negative pretest before the exact
// literal-membership scan.
func (s *Solver) subsume() {
	for ref := s.pool.First(); ref != nullClauseRef; ref = s.pool.Next(ref) {
		s.pool.SetAux(ref, s.clauseSignature(ref))
	}

	queue := newClauseQueue(s.pool.NumProblemClauses())
	for ref := s.pool.First(); ref != nullClauseRef; ref = s.pool.Next(ref) {
		queue.push(ref)
	}

	for !queue.isEmpty() {
		ref := queue.pop()
		if !s.pool.IsLive(ref) {
			continue // deleted (subsumed away) since it was queued
		}
		if s.trySubsumeWith(ref, queue.push) {
			queue.push(ref) // ref may still have more to subsume
		}
	}
}

func (s *Solver) clauseSignature(ref ClauseRef) uint32 {
	var sig uint32
	n := s.pool.Length(ref)
	for i := uint32(0); i < n; i++ {
		sig |= 1 << (uint32(s.pool.Lit(ref, i)) & 31)
	}
	return sig
}

// trySubsumeWith looks for another clause that ref subsumes outright, or
// that ref subsumes after flipping exactly one literal (self-subsuming
// resolution, which shrinks the other clause by that literal rather than
// deleting it, then reschedules it via push). It searches from ref's
// rarest literal's occurrence list, skipping clauses whose occurrence list
// is already larger than Options.SubsumeSkip -- too expensive to be worth
// the saving.
func (s *Solver) trySubsumeWith(ref ClauseRef, push func(ClauseRef)) bool {
	n := s.pool.Length(ref)
	if n == 0 {
		return false
	}
	rarest := s.pool.Lit(ref, 0)
	rarestCount := s.occ.Count(rarest)
	for i := uint32(1); i < n; i++ {
		l := s.pool.Lit(ref, i)
		if c := s.occ.Count(l); c < rarestCount {
			rarest, rarestCount = l, c
		}
	}
	skip := s.opts.SubsumeSkip
	if skip > 0 && rarestCount > skip {
		return false
	}
	sig := s.pool.Aux(ref)

	for _, other := range append([]ClauseRef(nil), s.occ.List(rarest)...) {
		if other == ref || s.pool.Length(other) < n {
			continue
		}
		if sig&^s.pool.Aux(other) != 0 {
			continue // ref has a literal other lacks: cannot subsume
		}
		if s.subsumes(ref, other, n) {
			s.ppDeleteClause(other)
			s.Stats.PPSubsumptions++
			return true
		}
	}

	for i := uint32(0); i < n; i++ {
		l := s.pool.Lit(ref, i)
		for _, other := range append([]ClauseRef(nil), s.occ.List(l.Opposite())...) {
			if other == ref {
				continue
			}
			if s.almostSubsumes(ref, other, l) {
				if shrunk := s.ppShrinkClause(other, l.Opposite()); shrunk != nullClauseRef {
					s.pool.SetAux(shrunk, s.clauseSignature(shrunk))
					push(shrunk)
				}
				s.Stats.PPSubsumptions++
				return true
			}
		}
	}
	return false
}

func (s *Solver) subsumes(ref, other ClauseRef, n uint32) bool {
	for i := uint32(0); i < n; i++ {
		if !s.clauseContains(other, s.pool.Lit(ref, i)) {
			return false
		}
	}
	return true
}

// almostSubsumes reports whether ref, with flipped replaced by its
// negation, subsumes other -- the self-subsuming-resolution test.
func (s *Solver) almostSubsumes(ref, other ClauseRef, flipped Literal) bool {
	n := s.pool.Length(ref)
	for i := uint32(0); i < n; i++ {
		l := s.pool.Lit(ref, i)
		if l == flipped {
			continue
		}
		if !s.clauseContains(other, l) {
			return false
		}
	}
	return true
}

func (s *Solver) clauseContains(ref ClauseRef, target Literal) bool {
	n := s.pool.Length(ref)
	for i := uint32(0); i < n; i++ {
		if s.pool.Lit(ref, i) == target {
			return true
		}
	}
	return false
}
