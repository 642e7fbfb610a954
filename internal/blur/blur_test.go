package blur

import (
	"testing"

	"github.com/neocomp/neocomp/internal/ecs"
	"github.com/neocomp/neocomp/internal/geom"
)

func rect(x, y, w, h float64) geom.Rect {
	return geom.Rect{X: x, Y: y, Width: w, Height: h}
}

func TestComputeDamageFadingWindowDamagesOverlapBehind(t *testing.T) {
	order := []windowInfo{
		{ID: 1, Rect: rect(0, 0, 100, 100), FadeDone: true},
		{ID: 2, Rect: rect(50, 50, 100, 100), FadeDone: false},
	}
	damaged := ComputeDamage(order)
	if !damaged[1] {
		t.Errorf("expected window 1 (behind fading window 2) to be damaged")
	}
	if damaged[2] {
		t.Errorf("did not expect the fading window itself to be marked damaged by its own fade")
	}
}

func TestComputeDamageNoOverlapNoDamage(t *testing.T) {
	order := []windowInfo{
		{ID: 1, Rect: rect(0, 0, 10, 10), FadeDone: true},
		{ID: 2, Rect: rect(1000, 1000, 10, 10), FadeDone: false},
	}
	damaged := ComputeDamage(order)
	if damaged[1] {
		t.Errorf("expected no damage when windows don't overlap")
	}
}

func TestComputeDamageResizedMarksEverythingAbove(t *testing.T) {
	order := []windowInfo{
		{ID: 1, Rect: rect(0, 0, 10, 10), FadeDone: true, Resized: true},
		{ID: 2, Rect: rect(500, 500, 10, 10), FadeDone: true},
		{ID: 3, Rect: rect(900, 900, 10, 10), FadeDone: true},
	}
	damaged := ComputeDamage(order)
	if !damaged[2] || !damaged[3] {
		t.Errorf("expected every window above a resized window to be damaged, got %v", damaged)
	}
	if damaged[1] {
		t.Errorf("did not expect the resized window itself to be marked damaged")
	}
}

func TestEnsureReusesCacheForUnchangedSize(t *testing.T) {
	sys, err := NewSystem(2)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	c1 := sys.Ensure(ecs.ID(1), 64, 64)
	c2 := sys.Ensure(ecs.ID(1), 64, 64)
	if c1 != c2 {
		t.Errorf("expected Ensure to return the same cache for an unchanged size")
	}
	c3 := sys.Ensure(ecs.ID(1), 32, 32)
	if c3 == c1 {
		t.Errorf("expected Ensure to reallocate when the size changes")
	}
}
