package sat

import "testing"

func TestRestartTracker_NoRestartBeforeFirstConflict(t *testing.T) {
	r := newRestartTracker(0)
	if r.shouldRestart(10) {
		t.Error("shouldRestart = true with no recorded conflicts")
	}
}

func TestRestartTracker_StableLBDDoesNotTrigger(t *testing.T) {
	r := newRestartTracker(0)
	for i := 0; i < 200; i++ {
		r.recordConflict(5)
	}
	// fast == slow == 5: 0.90625*5 < 5, so the drift condition never holds.
	if r.shouldRestart(100) {
		t.Error("shouldRestart = true on a flat LBD stream")
	}
}

func TestRestartTracker_LBDBurstTriggers(t *testing.T) {
	r := newRestartTracker(0)
	for i := 0; i < 500; i++ {
		r.recordConflict(2)
	}
	for i := 0; i < 100; i++ {
		r.recordConflict(20)
	}
	// fast has chased the burst up toward 20 while slow barely moved off 2.
	if !r.shouldRestart(50) {
		t.Error("shouldRestart = false after a sustained LBD burst")
	}
	// A decision level below slow's integer part still blocks the restart.
	if r.shouldRestart(0) {
		t.Error("shouldRestart = true at decision level 0")
	}
}

func TestRestartTracker_IntervalGatesRestarts(t *testing.T) {
	r := newRestartTracker(1000)
	for i := 0; i < 500; i++ {
		r.recordConflict(2)
	}
	for i := 0; i < 100; i++ {
		r.recordConflict(20)
	}
	if r.shouldRestart(50) {
		t.Error("shouldRestart = true before the conflict interval elapsed")
	}
}
