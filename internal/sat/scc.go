package sat

// runEquivalenceSubstitution finds strongly connected components of the
// binary implication graph (literal l has an edge to literal m whenever the
// clause {¬l, m} -- equivalently the binary watch entry "l implies m" --
// is present) using an explicit-stack Tarjan. Every component collapses
// to a single representative literal; every other
// member is logged for model extension (modelext.go) and rewritten out of
// the clause database by applySubstitution.
func (s *Solver) runEquivalenceSubstitution() {
	n := int(s.nVars) * 2
	if n == 0 {
		return
	}

	index := make([]int32, n)
	low := make([]int32, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}
	var vstack []Literal
	var work []sccFrame
	var next int32

	subst := make([]Literal, n)
	for i := range subst {
		subst[i] = Literal(i)
	}
	conflict := false

	live := func(l Literal) bool { return s.isActive(l.VarID()) }

	successors := func(l Literal) []Literal {
		out := s.binarySuccessors(l)
		if !live(l) {
			return nil
		}
		filtered := out[:0]
		for _, w := range out {
			if live(w) {
				filtered = append(filtered, w)
			}
		}
		return filtered
	}

	for start := Literal(0); int(start) < n && !conflict; start++ {
		if index[start] != -1 || !live(start) {
			continue
		}

		index[start] = next
		low[start] = next
		next++
		vstack = append(vstack, start)
		onStack[start] = true
		work = append(work, sccFrame{lit: start})

		for len(work) > 0 && !conflict {
			top := &work[len(work)-1]
			l := top.lit
			succ := successors(l)

			advanced := false
			for top.it < len(succ) {
				w := succ[top.it]
				top.it++
				if index[w] == -1 {
					index[w] = next
					low[w] = next
					next++
					vstack = append(vstack, w)
					onStack[w] = true
					work = append(work, sccFrame{lit: w})
					advanced = true
					break
				}
				if onStack[w] && index[w] < low[l] {
					low[l] = index[w]
				}
			}
			if advanced {
				continue
			}

			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := &work[len(work)-1]
				if low[l] < low[parent.lit] {
					low[parent.lit] = low[l]
				}
			}

			if low[l] != index[l] {
				continue
			}

			var comp []Literal
			for {
				top := vstack[len(vstack)-1]
				vstack = vstack[:len(vstack)-1]
				onStack[top] = false
				comp = append(comp, top)
				if top == l {
					break
				}
			}
			if len(comp) == 1 {
				continue
			}
			if subst[comp[0]] != comp[0] {
				continue // already resolved via its dual component
			}

			rep := s.pickRepresentative(comp)
			for _, lit := range comp {
				if lit == rep.Opposite() {
					conflict = true
				}
				subst[lit] = rep
				subst[lit.Opposite()] = rep.Opposite()
			}
		}
	}

	if conflict {
		s.unsat = true
		return
	}
	s.applySubstitution(subst)
}

// binarySuccessors returns every literal l directly implies through a
// binary clause, reading from whichever representation is currently live:
// Watches once materialized, or the pool (via occ) during preprocessing.
func (s *Solver) binarySuccessors(l Literal) []Literal {
	if s.watchesReady() {
		list := s.watches.List(l)
		var out []Literal
		for i := 0; i < len(list); {
			if isBinaryEntry(list[i]) {
				out = append(out, decodeBinary(list[i]))
				i++
			} else {
				i += 2
			}
		}
		return out
	}

	var out []Literal
	for _, ref := range s.occ.List(l.Opposite()) {
		if s.pool.Length(ref) != 2 {
			continue
		}
		a, b := s.pool.Lit(ref, 0), s.pool.Lit(ref, 1)
		if a == l.Opposite() {
			out = append(out, b)
		} else {
			out = append(out, a)
		}
	}
	return out
}

type sccFrame struct {
	lit Literal
	it  int
}

// pickRepresentative chooses comp's surviving literal: the highest-activity
// variable once search has begun (so branching heuristics keep tracking a
// live variable), or the smallest literal id during preprocessing (a stable,
// reproducible choice with no activity data yet).
func (s *Solver) pickRepresentative(comp []Literal) Literal {
	rep := comp[0]
	if s.searchStarted {
		best := s.heap.Score(rep.VarID())
		for _, lit := range comp[1:] {
			if sc := s.heap.Score(lit.VarID()); sc > best {
				best, rep = sc, lit
			}
		}
		return rep
	}
	for _, lit := range comp[1:] {
		if lit < rep {
			rep = lit
		}
	}
	return rep
}

// applySubstitution rewrites every clause and binary watch entry through
// subst (the identity for literals outside any collapsed component), drops
// clauses that become tautologies, and shrinks clauses that lose literals,
// demoting to binary or unit as needed. Locked clauses are never touched:
// every literal of a locked clause is, by construction, already assigned
// (the watched literal true, every other false), and substitution only ever
// targets literals of currently-unassigned variables.
func (s *Solver) applySubstitution(subst []Literal) {
	for v := Var(1); v < s.nVars; v++ {
		pos := PositiveLiteral(v)
		rep := subst[pos]
		if rep == pos {
			continue
		}
		s.reasons[v] = substAntecedent(rep)
		s.savedBlocks = append(s.savedBlocks, savedBlock{{rep, NegativeLiteral(v)}})
	}

	s.rewritePoolClauses(subst)
	if s.unsat {
		return
	}
	if s.watchesReady() {
		s.rewriteBinaryWatches(subst)
		s.rebuildClauseWatchesFromPool()
	} else {
		s.rebuildOccurrences()
	}
}

// rewritePoolClauses maps every literal of every pool-resident clause
// through subst, leaving the pool's occurrence/watch registrations stale;
// the caller (applySubstitution) rebuilds whichever index structure is live.
func (s *Solver) rewritePoolClauses(subst []Literal) {
	type pending struct {
		ref  ClauseRef
		lits []Literal
	}
	var toDelete []ClauseRef
	var toRewrite []pending

	for ref := s.pool.First(); ref != nullClauseRef; ref = s.pool.Next(ref) {
		n := s.pool.Length(ref)
		lits := make([]Literal, n)
		changed := false
		for i := uint32(0); i < n; i++ {
			l := s.pool.Lit(ref, i)
			nl := subst[l]
			if nl != l {
				changed = true
			}
			lits[i] = nl
		}
		if !changed {
			continue
		}
		norm, taut := normalizeLiterals(lits)
		if taut {
			toDelete = append(toDelete, ref)
			continue
		}
		toRewrite = append(toRewrite, pending{ref, norm})
	}

	for _, ref := range toDelete {
		s.pool.Delete(ref)
	}
	for _, p := range toRewrite {
		switch len(p.lits) {
		case 0:
			s.pool.Delete(p.ref)
			s.unsat = true
		case 1:
			s.pool.Delete(p.ref)
			if !s.enqueue(p.lits[0], unitAntecedent) {
				s.unsat = true
			}
		case 2:
			if s.watchesReady() {
				s.pool.Delete(p.ref)
				s.watches.AddBinary(p.lits[0].Opposite(), p.lits[1])
				s.watches.AddBinary(p.lits[1].Opposite(), p.lits[0])
				s.nBinaryClauses++
				continue
			}
			for i, l := range p.lits {
				s.pool.SetLit(p.ref, uint32(i), l)
			}
			s.pool.Shrink(p.ref, uint32(len(p.lits)))
		default:
			for i, l := range p.lits {
				s.pool.SetLit(p.ref, uint32(i), l)
			}
			s.pool.Shrink(p.ref, uint32(len(p.lits)))
		}
	}
}

// rewriteBinaryWatches rewrites every binary clause currently living purely
// in the watch lists (search mode only: once materialized, binary clauses
// never reside in the pool).
func (s *Solver) rewriteBinaryWatches(subst []Literal) {
	type pair struct{ a, b Literal }
	type key struct{ a, b Literal }
	seen := map[key]bool{}
	var pairs []pair

	n := int(s.nVars) * 2
	for li := 0; li < n; li++ {
		lit := Literal(li)
		list := s.watches.List(lit)
		for i := 0; i < len(list); {
			if isBinaryEntry(list[i]) {
				other := decodeBinary(list[i])
				a, b := lit.Opposite(), other
				k := key{a, b}
				if a > b {
					k = key{b, a}
				}
				if !seen[k] {
					seen[k] = true
					pairs = append(pairs, pair{a, b})
				}
				i++
			} else {
				i += 2
			}
		}
	}

	for _, p := range pairs {
		na, nb := subst[p.a], subst[p.b]
		if na == p.a && nb == p.b {
			continue
		}
		s.watches.RemoveBinary(p.a.Opposite(), p.b)
		s.watches.RemoveBinary(p.b.Opposite(), p.a)
		s.nBinaryClauses--

		if na == nb.Opposite() {
			continue // now a tautology
		}
		if na == nb {
			if !s.enqueue(na, unitAntecedent) {
				s.unsat = true
			}
			continue
		}
		s.watches.AddBinary(na.Opposite(), nb)
		s.watches.AddBinary(nb.Opposite(), na)
		s.nBinaryClauses++
	}
}

// rebuildClauseWatchesFromPool discards every (clause, blocker) watch entry
// and re-adds one pair per pool-resident clause of length >= 3, leaving
// binary entries untouched. Used after a rewrite pass touches an
// unpredictable subset of clauses: cheaper to rebuild than to track exactly
// which watch slots moved.
func (s *Solver) rebuildClauseWatchesFromPool() {
	n := int(s.nVars) * 2
	for li := 0; li < n; li++ {
		s.watches.StripClauseEntries(Literal(li))
	}
	for ref := s.pool.First(); ref != nullClauseRef; ref = s.pool.Next(ref) {
		if s.pool.Length(ref) < 3 {
			continue
		}
		a, b := s.pool.Lit(ref, 0), s.pool.Lit(ref, 1)
		s.watches.AddClause(a.Opposite(), ref, b)
		s.watches.AddClause(b.Opposite(), ref, a)
	}
}

// rebuildOccurrences recomputes the flat preprocessing occurrence lists
// from scratch, used after a substitution pass run before materialization.
func (s *Solver) rebuildOccurrences() {
	s.occ = NewOccurrences(int(s.nVars))
	for ref := s.pool.First(); ref != nullClauseRef; ref = s.pool.Next(ref) {
		n := s.pool.Length(ref)
		for i := uint32(0); i < n; i++ {
			s.occ.Add(s.pool.Lit(ref, i), ref)
		}
	}
}
