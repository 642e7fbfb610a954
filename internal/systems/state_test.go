package systems

import (
	"testing"

	"github.com/neocomp/neocomp/internal/ecs"
)

func boolPtr(b bool) *bool { return &b }

func TestNextStateDestroyIsIrrevocable(t *testing.T) {
	got := NextState(ecs.StateActive, StateInput{DestroyIntent: true})
	if got != ecs.StateDestroying {
		t.Errorf("got %v, want Destroying", got)
	}
	got2 := NextState(ecs.StateDestroying, StateInput{UnmapIntent: true})
	if got2 != ecs.StateDestroying {
		t.Errorf("expected Destroying to absorb Unmap, got %v", got2)
	}
}

func TestNextStateDestroyingToDestroyed(t *testing.T) {
	got := NextState(ecs.StateDestroying, StateInput{TransitionComplete: true})
	if got != ecs.StateDestroyed {
		t.Errorf("got %v, want Destroyed", got)
	}
}

func TestNextStateMapFromInvisible(t *testing.T) {
	got := NextState(ecs.StateInvisible, StateInput{MapIntent: true})
	if got != ecs.StateWaiting {
		t.Errorf("got %v, want Waiting", got)
	}
}

func TestNextStateFocusTransitions(t *testing.T) {
	got := NextState(ecs.StateWaiting, StateInput{FocusChange: boolPtr(true)})
	if got != ecs.StateActivating {
		t.Errorf("got %v, want Activating", got)
	}
	got2 := NextState(ecs.StateActive, StateInput{FocusChange: boolPtr(false)})
	if got2 != ecs.StateDeactivating {
		t.Errorf("got %v, want Deactivating", got2)
	}
}

func TestNextStateTransitionComplete(t *testing.T) {
	cases := []struct {
		from, want ecs.State
	}{
		{ecs.StateActivating, ecs.StateActive},
		{ecs.StateDeactivating, ecs.StateInactive},
		{ecs.StateHiding, ecs.StateInvisible},
	}
	for _, c := range cases {
		got := NextState(c.from, StateInput{TransitionComplete: true})
		if got != c.want {
			t.Errorf("from %v: got %v, want %v", c.from, got, c.want)
		}
	}
}

func TestNextStateUnmapToHiding(t *testing.T) {
	got := NextState(ecs.StateActive, StateInput{UnmapIntent: true})
	if got != ecs.StateHiding {
		t.Errorf("got %v, want Hiding", got)
	}
}
