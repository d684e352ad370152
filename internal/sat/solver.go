package sat

import (
	"math/rand"
	"time"
)

// Status is the outcome of a solve attempt.
type Status int

const (
	StatusUnknown Status = iota
	StatusSat
	StatusUnsat
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusSat:
		return "sat"
	case StatusUnsat:
		return "unsat"
	case StatusInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Options configures a Solver. Zero-valued decay fields fall back to
// their DefaultOptions values, and a ReduceFraction or ResClauseLimit of
// zero or less falls back to its built-in default; everything else is
// taken as given.
type Options struct {
	ClauseDecay     float64
	VariableDecay   float64
	Randomness      float64
	Seed            int64
	KeepLBD         int
	ReduceInitial   int
	ReduceIncrement int
	ReduceFraction  int   // delete ReduceFraction/32 of eligible learned clauses per reduceDB pass
	RestartInterval int64 // minimum conflicts between two restarts
	SimplifyCadence int64 // minimum conflicts between two simplify passes
	StackThreshold  int   // accepted, currently inert -- see DESIGN.md
	SubsumeSkip     int
	VarElimSkip     int
	ResClauseLimit  int
	Preprocess      bool
	PhaseSaving     bool
	Trace           bool
	MaxConflicts    int64
	Timeout         time.Duration
}

// defaultReduceFraction: delete this many 32nds of the eligible learned
// clauses on every reduceDB pass.
const defaultReduceFraction = 16

// defaultResClauseLimit: a resolvent longer than this refuses the
// elimination that would have produced it.
const defaultResClauseLimit = 20

var DefaultOptions = Options{
	ClauseDecay:     0.999,
	VariableDecay:   0.95,
	Randomness:      0.02,
	Seed:            1,
	KeepLBD:         5,
	ReduceInitial:   2000,
	ReduceIncrement: 300,
	ReduceFraction:  defaultReduceFraction,
	RestartInterval: 100,
	StackThreshold:  0,
	SubsumeSkip:     3000,
	VarElimSkip:     10,
	Preprocess:      true,
	PhaseSaving:     true,
	MaxConflicts:    -1,
	Timeout:         -1,
}

// Stats collects search and preprocessing counters. SimplifyCalls and
// SuccessfulDives are diagnostic-only, as in the original: nothing reads
// them back into a heuristic.
type Stats struct {
	Conflicts       int64
	Restarts        int64
	Decisions       int64
	Propagations    int64
	SimplifyCalls   int64
	SuccessfulDives int64
	PPSubsumptions  int64
	PPVarElims      int64
	PPUnits         int64
	PPPureLiterals  int64
}

// Solver is a single-threaded, non-suspending CDCL SAT solver instance. All
// state -- clause pool, watch lists, trail, both heaps -- is owned by this
// value; nothing escapes across instances.
type Solver struct {
	opts Options
	rng  *rand.Rand

	nVars Var // number of allocated variables, including the reserved 0

	values  []LBool
	levels  []int
	reasons []Antecedent

	heap     *ActivityHeap
	elimHeap *EliminationHeap
	occ      *Occurrences // preprocessing-only flat occurrence lists
	watches  *Watches     // search-time two-watched-literal lists
	pool     *ClausePool

	trail Trail

	unsat bool // terminal empty-clause state

	clauseInc float32

	stash [][]Literal // stacked-antecedent store; see DESIGN.md (inert)

	savedBlocks []savedBlock // model-extension log for eliminated variables

	preprocessed  bool // preprocess() has run (or was skipped) once
	searchStarted bool

	nProblemBinary int // live binary problem clauses, tracked once watches are materialized
	nBinaryClauses int // live binary clauses of any provenance, once watches are materialized

	lastSimplifyUnits  int
	lastSimplifyBinary int
	simplifyNext       int64

	reduceNext int
	reduceInc  int
	reduceInc2 int

	restart restartTracker

	startedAt time.Time

	Stats Stats

	// Reusable scratch buffers, reset (not reallocated) at operation
	// boundaries.
	seen        *markSet // conflict-analysis seen flags
	learntBuf   []Literal
	reasonBuf   []Literal
	minimizeTag *markSet // "implied" cache for clause minimization
	notImplied  *markSet // "definitely not implied" cache
	levelSeen   *markSet // distinct-level tracker for LBD
}

// NewDefaultSolver returns a preprocessing-enabled solver with no
// preallocated variables, using DefaultOptions throughout.
func NewDefaultSolver() *Solver {
	return NewSolver(0, DefaultOptions.Preprocess, DefaultOptions)
}

// NewSolver returns a solver with initialVars freely-usable variables
// (variable 0 is reserved and permanently true). If preprocess is true,
// Solve runs the preprocessor once before search.
func NewSolver(initialVars int, preprocess bool, opts Options) *Solver {
	o := opts
	if o.ClauseDecay == 0 {
		o.ClauseDecay = DefaultOptions.ClauseDecay
	}
	if o.VariableDecay == 0 {
		o.VariableDecay = DefaultOptions.VariableDecay
	}
	o.Preprocess = preprocess

	s := &Solver{
		opts:        o,
		rng:         rand.New(rand.NewSource(o.Seed)),
		heap:        NewActivityHeap(o.VariableDecay),
		elimHeap:    NewEliminationHeap(),
		occ:         NewOccurrences(0),
		watches:     NewWatches(0),
		pool:        NewClausePool(),
		clauseInc:   1,
		seen:        &markSet{current: 1},
		minimizeTag: &markSet{current: 1},
		notImplied:  &markSet{current: 1},
		levelSeen:   &markSet{current: 1},
		restart:     newRestartTracker(o.RestartInterval),
		reduceNext:  o.ReduceInitial,
		reduceInc:   o.ReduceIncrement,
		reduceInc2:  o.ReduceIncrement,
	}

	// Variable 0: reserved, permanently true.
	s.growVar()
	s.values[0] = True
	s.levels[0] = 0
	s.reasons[0] = unitAntecedent

	for i := 0; i < initialVars; i++ {
		s.NewVar()
	}
	return s
}

func (s *Solver) growVar() Var {
	v := s.nVars
	s.nVars++
	s.values = append(s.values, UndefTrue)
	s.levels = append(s.levels, -1)
	s.reasons = append(s.reasons, Antecedent{})
	s.heap.AddVar(0)
	s.elimHeap.Grow()
	s.occ.Grow()
	s.watches.Grow()
	s.seen.grow()
	s.minimizeTag.grow()
	s.notImplied.grow()
	s.levelSeen.grow()
	return v
}

// MaxVariables bounds the number of variables a solver can hold: literals
// must fit a watch-list word with a bit to spare for the encoding tag.
const MaxVariables = 1 << 29

// NewVar allocates a fresh variable. Exceeding MaxVariables is a fatal
// condition, like allocation failure.
func (s *Solver) NewVar() Var {
	if int(s.nVars) >= MaxVariables {
		panic(newError(ErrTooManyVariables, s.nVars))
	}
	return s.growVar()
}

// AddVars bulk-allocates n fresh variables, returning the first one.
func (s *Solver) AddVars(n int) Var {
	first := s.nVars
	for i := 0; i < n; i++ {
		s.growVar()
	}
	return first
}

// NumVars returns the number of allocated variables, including variable 0.
func (s *Solver) NumVars() int { return int(s.nVars) }

// NumClauses returns the number of problem clauses currently in the
// database (units asserted at level 0 are not pool-resident and so are not
// counted).
func (s *Solver) NumClauses() int { return s.pool.NumProblemClauses() }

func (s *Solver) decisionLevel() int { return s.trail.Level() }

// LitValue returns the current value of literal l.
func (s *Solver) LitValue(l Literal) LBool {
	v := s.values[l.VarID()]
	if l.IsPositive() {
		return v
	}
	return v.Opposite()
}

// Value returns the current value of variable v (post-SAT query).
func (s *Solver) Value(v Var) LBool { return s.values[v] }

func (s *Solver) isActive(v Var) bool {
	return !s.values[v].IsAssigned() && !s.reasons[v].Kind.eliminated()
}

// enqueue assigns l to true at the current decision level with the given
// antecedent. Returns false if l was already false (a conflicting
// assignment); true if it was already true or was freshly assigned.
func (s *Solver) enqueue(l Literal, ant Antecedent) bool {
	cur := s.LitValue(l)
	if cur.IsAssigned() {
		return cur == True
	}
	v := l.VarID()
	if l.IsPositive() {
		s.values[v] = True
	} else {
		s.values[v] = False
	}
	s.levels[v] = s.decisionLevel()
	s.reasons[v] = ant
	s.trail.Push(l)
	return true
}

// assume opens a new decision level and enqueues l as a decision.
func (s *Solver) assume(l Literal) bool {
	s.trail.NewDecisionLevel()
	s.Stats.Decisions++
	return s.enqueue(l, decisionAntecedent)
}

// undoOne unassigns the top trail literal, restoring its preferred polarity
// and reinserting its variable into the activity heap. It deliberately
// leaves levels[v] at the level it held while assigned rather than resetting
// it: later LBD recomputation (reduce.go) reads the decision level a
// currently-unassigned learned-clause literal was *last* assigned at.
func (s *Solver) undoOne() {
	l := s.trail.Top()
	v := l.VarID()
	s.values[v] = s.values[v].Undef()
	s.reasons[v] = Antecedent{}
	if s.heap != nil {
		s.heap.Reinsert(v)
	}
}

// backtrackTo undoes every assignment with level > d.
func (s *Solver) backtrackTo(d int) {
	for s.decisionLevel() > d {
		start := s.trail.PopLevel()
		for s.trail.Size() > start {
			s.undoOne()
			s.trail.TruncateTo(s.trail.Size() - 1)
		}
	}
}

// Reset restarts the solver clean: all clauses, assignments, and learned
// state are discarded. The ClausePool value is kept, with its backing
// array replaced by a fresh one of the pool's reset capacity (see
// ClausePool.Reset).
func (s *Solver) Reset() {
	pool := s.pool
	pool.Reset()
	nVars := int(s.nVars) - 1
	opts := s.opts
	*s = *NewSolver(nVars, opts.Preprocess, opts)
	s.pool = pool
}

// GetModel copies the truth value of every variable (including the
// reserved variable 0) into a freshly allocated slice.
func (s *Solver) GetModel() []LBool {
	model := make([]LBool, s.nVars)
	copy(model, s.values)
	return model
}

// GetTrueLiterals appends every currently-true literal to buf and returns
// the extended slice.
func (s *Solver) GetTrueLiterals(buf []Literal) []Literal {
	for v := Var(1); v < s.nVars; v++ {
		switch s.values[v] {
		case True:
			buf = append(buf, PositiveLiteral(v))
		case False:
			buf = append(buf, NegativeLiteral(v))
		}
	}
	return buf
}
