package fade

import "testing"

func TestMonotoneProgress(t *testing.T) {
	r := NewRing(0)
	r.Schedule(100, 1.0, false)
	steps := []float64{0.1, 0.2, 0.3, 0.4}
	var total float64
	for _, dt := range steps {
		total += dt
		r.Update(dt)
		want := 100 * total / 1.0
		if diff := r.Value() - want; diff > 1e-2 || diff < -1e-2 {
			t.Errorf("after t=%.2f, value=%.4f, want ~%.4f", total, r.Value(), want)
		}
	}
}

func TestDedup(t *testing.T) {
	r := NewRing(0)
	r.Schedule(50, 1.0, false)
	r.Schedule(50, 1.0, false) // same target as tail: no-op
	r.Update(0.5)
	v := r.Value()
	r.Schedule(50, 1.0, false) // still a no-op
	if r.Value() != v {
		t.Errorf("expected dedup to leave value unchanged, got %v -> %v", v, r.Value())
	}
}

func TestCompletion(t *testing.T) {
	r := NewRing(0)
	r.Schedule(10, 0.5, false)
	if r.Done() {
		t.Errorf("expected ring not done before reaching duration")
	}
	r.Update(0.5)
	if !r.Done() {
		t.Errorf("expected ring done once elapsed reaches duration")
	}
	if r.Value() != 10 {
		t.Errorf("expected value snapped to target, got %v", r.Value())
	}
}

func TestInstantaneousZeroDuration(t *testing.T) {
	r := NewRing(0)
	r.Schedule(42, 0, false)
	if !r.Done() {
		t.Errorf("expected zero-duration schedule to be immediately done")
	}
	if r.Value() != 42 {
		t.Errorf("expected value to jump to target immediately, got %v", r.Value())
	}
}

func TestIgnoreConsumesOneTick(t *testing.T) {
	r := NewRing(0)
	r.Schedule(10, 1.0, true)
	r.Update(0.5) // consumed by ignore, no progress
	if r.Value() != 0 {
		t.Errorf("expected ignore tick to produce no progress, got %v", r.Value())
	}
	r.Update(0.5)
	if r.Value() == 0 {
		t.Errorf("expected progress after ignore tick consumed")
	}
}

func TestRingOverflowDropsOldest(t *testing.T) {
	r := NewRing(0)
	for i := 1; i <= ringSize+3; i++ {
		r.Schedule(float64(i), 1.0, false)
	}
	// Should not panic and should still be schedulable/updatable.
	r.Update(0.1)
	if r.Done() {
		t.Errorf("expected ring still animating after overflow")
	}
}
