package session

import (
	"testing"

	"github.com/neocomp/neocomp/internal/ecs"
)

func TestResolveSoliditySetsFullscreenSolid(t *testing.T) {
	store := ecs.NewStore()
	id := store.Allocate()
	store.SetMud(id, ecs.MudComponent{Fullscreen: true})
	store.SetOpacity(id, 50)

	sess := &Session{store: store, order: []ecs.ID{id}}
	sess.resolveSolidity()

	mud, _ := store.Mud(id)
	if !mud.Solid {
		t.Errorf("expected fullscreen window solid regardless of opacity")
	}
}

func TestResolveSolidityOpaqueWithoutOpacityComponent(t *testing.T) {
	store := ecs.NewStore()
	id := store.Allocate()
	store.SetMud(id, ecs.MudComponent{})

	sess := &Session{store: store, order: []ecs.ID{id}}
	sess.resolveSolidity()

	mud, _ := store.Mud(id)
	if !mud.Solid {
		t.Errorf("expected window with no Opacity component (defaults to 100) to be solid")
	}
}

func TestResolveSolidityFadingWindowBecomesTransparent(t *testing.T) {
	store := ecs.NewStore()
	id := store.Allocate()
	store.SetMud(id, ecs.MudComponent{})

	sess := &Session{store: store, order: []ecs.ID{id}}
	sess.resolveSolidity()
	mud, _ := store.Mud(id)
	if !mud.Solid {
		t.Fatalf("expected window solid before fade")
	}

	store.SetOpacity(id, 80)
	sess.resolveSolidity()
	mud, _ = store.Mud(id)
	if mud.Solid {
		t.Errorf("expected window to flip to transparent once opacity drops below 100")
	}
}
