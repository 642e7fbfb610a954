package systems

import (
	"testing"

	"github.com/neocomp/neocomp/internal/ecs"
)

func TestResolveTargetWintypeOverrideWins(t *testing.T) {
	cfg := OpacityConfig{InactiveOpacity: 50}
	got := ResolveTarget(ecs.StateActive, 75, true, cfg)
	if got.Opacity != 75 || got.Dim != 100 {
		t.Errorf("got %+v, want opacity=75 dim=100", got)
	}
}

func TestResolveTargetInactiveState(t *testing.T) {
	cfg := OpacityConfig{InactiveOpacity: 60, InactiveDim: 30}
	got := ResolveTarget(ecs.StateInactive, -1, false, cfg)
	if got.Opacity != 60 || got.Dim != 30 {
		t.Errorf("got %+v, want opacity=60 dim=30", got)
	}
}

func TestResolveTargetActiveConfigured(t *testing.T) {
	cfg := OpacityConfig{ActiveOpacity: 90}
	got := ResolveTarget(ecs.StateActive, -1, true, cfg)
	if got.Opacity != 90 || got.Dim != 100 {
		t.Errorf("got %+v, want opacity=90 dim=100", got)
	}
}

func TestResolveTargetDefault(t *testing.T) {
	cfg := OpacityConfig{}
	got := ResolveTarget(ecs.StateActive, -1, true, cfg)
	if got.Opacity != 100 || got.Dim != 100 {
		t.Errorf("got %+v, want opacity=100 dim=100", got)
	}
}

func TestResolveTargetActiveButOverrideNotConfigured(t *testing.T) {
	cfg := OpacityConfig{ActiveOpacity: 0}
	got := ResolveTarget(ecs.StateActive, -1, true, cfg)
	if got.Opacity != 100 {
		t.Errorf("expected default 100 when active_opacity unconfigured, got %+v", got)
	}
}
