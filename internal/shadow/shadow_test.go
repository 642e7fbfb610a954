package shadow

import (
	"testing"

	"github.com/neocomp/neocomp/internal/ecs"
	"github.com/neocomp/neocomp/internal/match"
)

func TestEligibleForceOverridesWintype(t *testing.T) {
	mud := &ecs.MudComponent{ShadowForce: match.True}
	if !Eligible(mud, ecs.StateActive, false, false, true) {
		t.Errorf("expected _COMPTON_SHADOW force-true to override wintype/exclude denial")
	}
	mud2 := &ecs.MudComponent{ShadowForce: match.False}
	if Eligible(mud2, ecs.StateActive, false, true, false) {
		t.Errorf("expected _COMPTON_SHADOW force-false to override wintype/exclude permission")
	}
}

func TestEligibleBypassedAlwaysFalse(t *testing.T) {
	mud := &ecs.MudComponent{ShadowForce: match.True}
	if Eligible(mud, ecs.StateActive, true, true, false) {
		t.Errorf("expected bypassed windows to never be shadowed")
	}
}

func TestEligibleInvisibleAndDestroyedAlwaysFalse(t *testing.T) {
	mud := &ecs.MudComponent{ShadowForce: match.True}
	if Eligible(mud, ecs.StateInvisible, false, true, false) {
		t.Errorf("expected invisible windows to never be shadowed")
	}
	if Eligible(mud, ecs.StateDestroyed, false, true, false) {
		t.Errorf("expected destroyed windows to never be shadowed")
	}
}

func TestEligibleDefaultRule(t *testing.T) {
	mud := &ecs.MudComponent{}
	if Eligible(mud, ecs.StateActive, false, false, false) {
		t.Errorf("expected wintype disallow to block shadow when no override is set")
	}
	if !Eligible(mud, ecs.StateActive, false, true, false) {
		t.Errorf("expected wintype allow + no exclude match to permit a shadow")
	}
	if Eligible(mud, ecs.StateActive, false, true, true) {
		t.Errorf("expected a shadow-exclude match to block the shadow")
	}
}
