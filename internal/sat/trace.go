package sat

import (
	"fmt"

	"github.com/kr/pretty"
)

// traceConflict dumps the learned clause (UIP first) right after analysis
// when Options.Trace is set.
func (s *Solver) traceConflict(lbd int, backtrackLevel int) {
	if !s.opts.Trace {
		return
	}
	fmt.Printf("c conflict %d: level %d -> %d, lbd %d\n",
		s.Stats.Conflicts, s.decisionLevel(), backtrackLevel, lbd)
	pretty.Println(s.learntBuf)
}

// traceDecision reports each branching decision when Options.Trace is set.
func (s *Solver) traceDecision(l Literal) {
	if !s.opts.Trace {
		return
	}
	fmt.Printf("c decide %s at level %d\n", l, s.decisionLevel())
}

// tracePreprocessed dumps the preprocessing counters once the preprocessor
// hands off to search.
func (s *Solver) tracePreprocessed() {
	if !s.opts.Trace {
		return
	}
	fmt.Printf("c preprocessed: %d clauses remain\n", s.pool.NumProblemClauses())
	pretty.Println(s.Stats)
}
