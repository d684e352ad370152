package sat

import (
	"sort"
	"time"
)

// AssertClause normalizes lits (sort, drop duplicates, recognize
// tautologies, drop already-false literals) and adds the result to the
// clause database as empty/unit/binary/large. It is only valid at
// decision level 0.
func (s *Solver) AssertClause(lits []Literal) error {
	if s.unsat {
		return nil // terminal UNSAT: a no-op
	}
	if s.decisionLevel() != 0 {
		return newError(ErrNonRootLevel, s.decisionLevel())
	}
	if len(lits) >= MaxVariables {
		return newError(ErrTooManyArguments, len(lits))
	}
	for _, l := range lits {
		if l.VarID() < 0 || l.VarID() >= s.nVars {
			return newError(ErrVarOutOfRange, l)
		}
	}

	buf := append([]Literal(nil), lits...)
	sort.Slice(buf, func(i, j int) bool { return buf[i] < buf[j] })

	write := 0
	for i := 0; i < len(buf); i++ {
		if write > 0 && buf[write-1] == buf[i] {
			continue // duplicate literal
		}
		if write > 0 && buf[write-1].Opposite() == buf[i] {
			return nil // l and ¬l both present: tautology, whole clause is a no-op
		}
		if s.decisionLevel() == 0 {
			switch s.LitValue(buf[i]) {
			case True:
				return nil // already satisfied at level 0
			case False:
				continue // drop: false at level 0
			}
		}
		buf[write] = buf[i]
		write++
	}
	buf = buf[:write]

	s.addClause(buf, false)
	return nil
}

// addClause installs lits as a clause of the appropriate shape. Before the
// solver has materialized its watch lists (preprocessing still pending),
// clauses of every length are stored in the pool with flat occurrence
// lists, the simpler flat-index form preprocessing works on. Learned
// clauses are always added after materialization.
func (s *Solver) addClause(lits []Literal, learned bool) {
	switch len(lits) {
	case 0:
		s.unsat = true
	case 1:
		if !s.enqueue(lits[0], unitAntecedent) {
			s.unsat = true
		}
	case 2:
		if learned || s.watchesReady() {
			s.watches.AddBinary(lits[0].Opposite(), lits[1])
			s.watches.AddBinary(lits[1].Opposite(), lits[0])
			s.nBinaryClauses++
			if !learned {
				s.nProblemBinary++
			}
		} else {
			ref := s.pool.Add(lits, false, 0)
			s.occ.Add(lits[0], ref)
			s.occ.Add(lits[1], ref)
		}
	default:
		ref := s.pool.Add(lits, learned, 0)
		if learned || s.watchesReady() {
			s.watches.AddClause(lits[0].Opposite(), ref, lits[1])
			s.watches.AddClause(lits[1].Opposite(), ref, lits[0])
		} else {
			for _, l := range lits {
				s.occ.Add(l, ref)
			}
		}
	}
}

// watchesReady reports whether the solver has already switched from
// preprocessing's flat occurrence lists to search's two-watched-literal
// lists.
func (s *Solver) watchesReady() bool { return s.preprocessed }

// installLearned adds the freshly analyzed clause in s.learntBuf to the
// database and asserts its UIP.
func (s *Solver) installLearned(lbd int) {
	lits := s.learntBuf
	uip := lits[0]
	switch len(lits) {
	case 1:
		if !s.enqueue(uip, unitAntecedent) {
			s.unsat = true
		}
	case 2:
		s.watches.AddBinary(lits[0].Opposite(), lits[1])
		s.watches.AddBinary(lits[1].Opposite(), lits[0])
		s.nBinaryClauses++
		s.enqueue(uip, binaryAntecedent(lits[1]))
	default:
		cp := append([]Literal(nil), lits...)
		ref := s.pool.Add(cp, true, 0)
		s.pool.SetActivity(ref, s.clauseInc)
		s.watches.AddClause(cp[0].Opposite(), ref, cp[1])
		s.watches.AddClause(cp[1].Opposite(), ref, cp[0])
		s.enqueue(uip, clauseAntecedent(ref))
	}
	s.restart.recordConflict(lbd)
}

// decide picks the next branching literal: the highest-activity active
// variable, biased toward a uniformly random active variable with
// probability Options.Randomness, using phase saving (the preferred
// polarity embedded in the variable's four-valued value) to pick the sign.
func (s *Solver) decide() (Literal, bool) {
	if s.opts.Randomness > 0 && s.rng.Float64() < s.opts.Randomness {
		if v, ok := s.randomActiveVar(); ok {
			return s.preferredLiteral(v), true
		}
	}
	v, ok := s.heap.PopActive(s.isActive)
	if !ok {
		return 0, false
	}
	return s.preferredLiteral(v), true
}

func (s *Solver) preferredLiteral(v Var) Literal {
	if s.values[v].Polarity() {
		return PositiveLiteral(v)
	}
	return NegativeLiteral(v)
}

func (s *Solver) randomActiveVar() (Var, bool) {
	active := make([]Var, 0, s.nVars)
	for v := Var(1); v < s.nVars; v++ {
		if s.isActive(v) {
			active = append(active, v)
		}
	}
	if len(active) == 0 {
		return 0, false
	}
	return active[s.rng.Intn(len(active))], true
}

// Solve runs the preprocessor (once, if enabled) followed by search,
// enforcing the conflict budget in Options.MaxConflicts.
func (s *Solver) Solve() Status {
	if s.unsat {
		return StatusUnsat
	}
	s.startedAt = time.Now()

	if !s.preprocessed {
		if s.opts.Preprocess {
			s.preprocess()
			s.tracePreprocessed()
		}
		s.materialize()
		s.preprocessed = true
	}
	if s.unsat {
		return StatusUnsat
	}

	s.searchStarted = true
	return s.search()
}

// search runs the decide/propagate/analyze loop with restart, reduce, and
// simplify triggers.
func (s *Solver) search() Status {
	for {
		c := s.propagate()
		if !c.hasConflict() {
			if s.budgetExceeded() {
				return StatusInterrupted
			}
			if s.decisionLevel() == 0 && s.needsSimplify() {
				s.simplify()
				if s.unsat {
					return StatusUnsat
				}
			}
			if s.restart.shouldRestart(s.decisionLevel()) {
				s.doRestart()
			}
			if s.needsReduce() {
				s.reduceDB()
			}
			l, ok := s.decide()
			if !ok {
				s.extendModel()
				return StatusSat // every active variable is assigned
			}
			s.assume(l)
			s.traceDecision(l)
			continue
		}

		s.Stats.Conflicts++
		if s.decisionLevel() == 0 {
			s.unsat = true
			return StatusUnsat
		}

		backtrackLevel, lbd := s.analyze(c)
		s.traceConflict(lbd, backtrackLevel)
		s.backtrackTo(backtrackLevel)
		s.installLearned(lbd)
		if s.unsat {
			return StatusUnsat
		}

		s.decayClauseActivity()
		s.heap.Decay()
	}
}

func (s *Solver) budgetExceeded() bool {
	if s.opts.MaxConflicts >= 0 && s.Stats.Conflicts >= s.opts.MaxConflicts {
		return true
	}
	if s.opts.Timeout >= 0 && s.opts.Timeout <= time.Since(s.startedAt) {
		return true
	}
	return false
}
