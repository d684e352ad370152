package sat

import "testing"

func TestMarkSet_MarkAndClear(t *testing.T) {
	m := &markSet{current: 1}
	for i := 0; i < 8; i++ {
		m.grow()
	}

	m.mark(3)
	m.mark(5)
	if !m.marked(3) || !m.marked(5) || m.marked(4) {
		t.Errorf("marks = {3:%v 4:%v 5:%v}, want {true false true}",
			m.marked(3), m.marked(4), m.marked(5))
	}

	m.clear()
	for i := 0; i < 8; i++ {
		if m.marked(i) {
			t.Errorf("marked(%d) = true after clear", i)
		}
	}
}

func TestMarkSet_StampWraparound(t *testing.T) {
	m := &markSet{current: 1}
	m.grow()
	m.mark(0)

	// Force the stamp all the way around; the slot's stale stamp must not
	// read as freshly marked once the counter wraps.
	m.current = ^uint32(0)
	m.clear()
	if m.marked(0) {
		t.Error("marked(0) = true after stamp wraparound")
	}
}
