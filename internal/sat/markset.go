package sat

// markSet tracks transiently marked variables (or decision levels) with
// constant-time clearing: each slot stores the stamp of the pass that last
// marked it, so discarding a whole pass is a single stamp bump. This is the
// clean replacement for stealing a mark bit out of the antecedent tag byte:
// conflict analysis's seen flags, the minimization caches, and the LBD
// level tags are each their own markSet.
type markSet struct {
	stamp   []uint32
	current uint32
}

// marked reports whether i was marked since the last clear.
func (m *markSet) marked(i int) bool {
	return m.stamp[i] == m.current
}

// mark adds i to the current pass.
func (m *markSet) mark(i int) {
	m.stamp[i] = m.current
}

// clear discards every mark in constant time.
func (m *markSet) clear() {
	m.current++
	if m.current == 0 { // stamp wrapped: all slots must be ruled stale
		m.current = 1
		for i := range m.stamp {
			m.stamp[i] = 0
		}
	}
}

// grow adds one slot.
func (m *markSet) grow() {
	m.stamp = append(m.stamp, 0)
}
