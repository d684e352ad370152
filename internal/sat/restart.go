package sat

// ema is an exponential moving average, used to track fast/slow windows of
// learned-clause LBD for Glucose-style restarts.
type ema struct {
	decay float64
	value float64
	init  bool
}

func newEMA(decay float64) ema {
	return ema{decay: decay}
}

func (e *ema) add(x float64) {
	if !e.init {
		e.init = true
		e.value = x
		return
	}
	e.value = e.decay*e.value + x*(1-e.decay)
}

func (e *ema) val() float64 { return e.value }

// restartTracker maintains the fast (~2^5) and slow (~2^16) LBD moving
// averages a Glucose-style restart policy compares against each conflict,
// plus the conflict threshold the next restart must wait for.
type restartTracker struct {
	fast      ema
	slow      ema
	conflicts int64
	next      int64
}

func newRestartTracker(interval int64) restartTracker {
	return restartTracker{
		fast: newEMA(1 - 1/float64(1<<5)),
		slow: newEMA(1 - 1/float64(1<<16)),
		next: interval,
	}
}

func (r *restartTracker) recordConflict(lbd int) {
	r.conflicts++
	r.fast.add(float64(lbd))
	r.slow.add(float64(lbd))
}

// shouldRestart reports whether the Glucose trigger fires: enough conflicts
// have accumulated since the last restart, the current decision level has
// caught up with the slow average's integer part, and the fast average has
// drifted far enough above the slow one.
func (r *restartTracker) shouldRestart(level int) bool {
	if !r.slow.init || r.conflicts < r.next {
		return false
	}
	return float64(level) >= float64(int(r.slow.val())) && 0.90625*r.fast.val() >= r.slow.val()
}

// doRestart performs a Glucose-style partial backjump:
// find the highest-activity active variable, then keep every decision
// level whose own decision variable has activity at least as high,
// backtracking only past the point where that stops holding.
func (s *Solver) doRestart() {
	s.Stats.Restarts++
	s.restart.next = s.restart.conflicts + s.opts.RestartInterval
	v, ok := s.heap.PeekActive(s.isActive)
	if !ok {
		s.backtrackTo(0)
		return
	}
	threshold := s.heap.Score(v)

	target := 0
	for d := 1; d <= s.decisionLevel(); d++ {
		decisionLit := s.trail.Literal(s.trail.LevelStart(d))
		if s.heap.Score(decisionLit.VarID()) < threshold {
			break
		}
		target = d
	}
	s.backtrackTo(target)
}
