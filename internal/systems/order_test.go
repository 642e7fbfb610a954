package systems

import (
	"reflect"
	"testing"

	"github.com/neocomp/neocomp/internal/ecs"
)

func TestApplyRestackHighestLowest(t *testing.T) {
	order := []ecs.ID{1, 2, 3}
	order = ApplyRestack(order, []RestackOp{{ID: 1, Highest: true}})
	if !reflect.DeepEqual(order, []ecs.ID{2, 3, 1}) {
		t.Errorf("got %v", order)
	}
	order = ApplyRestack(order, []RestackOp{{ID: 3, Lowest: true}})
	if !reflect.DeepEqual(order, []ecs.ID{3, 2, 1}) {
		t.Errorf("got %v", order)
	}
}

func TestApplyRestackAbove(t *testing.T) {
	order := []ecs.ID{1, 2, 3}
	order = ApplyRestack(order, []RestackOp{{ID: 3, Above: 1}})
	if !reflect.DeepEqual(order, []ecs.ID{1, 3, 2}) {
		t.Errorf("got %v", order)
	}
}

func TestRemoveDestroyed(t *testing.T) {
	order := []ecs.ID{1, 2, 3, 4}
	order = RemoveDestroyed(order, []ecs.ID{2, 4})
	if !reflect.DeepEqual(order, []ecs.ID{1, 3}) {
		t.Errorf("got %v", order)
	}
}

func TestAssignZIncreasesWithOrderIndex(t *testing.T) {
	store := ecs.NewStore()
	ids := make([]ecs.ID, 3)
	for i := range ids {
		ids[i] = store.Allocate()
	}
	AssignZ(store, ids)
	var prev float32 = -1
	for _, id := range ids {
		z, ok := store.Z(id)
		if !ok {
			t.Fatalf("expected Z set for %v", id)
		}
		if z.Value <= prev {
			t.Errorf("expected increasing Z by order index, got %v after %v", z.Value, prev)
		}
		prev = z.Value
	}
}
