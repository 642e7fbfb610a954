package systems

import "github.com/neocomp/neocomp/internal/ecs"

// RestackOp is a single restack instruction produced by ingestion (§4.1's
// Restack event): move id directly above Above, or to the very top/bottom
// of the stack. Kept as a plain struct in this package (rather than an
// ecs component) since restacking is a one-shot reordering of the order
// vector, not per-entity state any system later queries back.
type RestackOp struct {
	ID      ecs.ID
	Above   ecs.ID
	Highest bool
	Lowest  bool
}

// ApplyRestack incorporates ops into order (back-to-front, index 0 =
// bottom-most / furthest back) and returns the updated vector, preserving
// relative order for everything not named by an op (§4.2's "keep the order
// vector consistent").
func ApplyRestack(order []ecs.ID, ops []RestackOp) []ecs.ID {
	for _, op := range ops {
		order = removeID(order, op.ID)
		switch {
		case op.Highest:
			order = append(order, op.ID)
		case op.Lowest:
			order = append([]ecs.ID{op.ID}, order...)
		default:
			idx := indexOf(order, op.Above)
			if idx < 0 {
				order = append(order, op.ID)
				break
			}
			out := make([]ecs.ID, 0, len(order)+1)
			out = append(out, order[:idx+1]...)
			out = append(out, op.ID)
			out = append(out, order[idx+1:]...)
			order = out
		}
	}
	return order
}

// RemoveDestroyed drops every id in destroyed from order, matching §4.6's
// "entity is removed from the store and from the order vector" rule.
func RemoveDestroyed(order []ecs.ID, destroyed []ecs.ID) []ecs.ID {
	for _, id := range destroyed {
		order = removeID(order, id)
	}
	return order
}

// AssignZ writes each entity's ZComponent as its 1-based index in order
// divided by len(order)+1, descending from nearly 1.0 at the front (top) of
// the stack to a small positive value at the back — §3's derived-Z
// invariant.
func AssignZ(store *ecs.Store, order []ecs.ID) {
	n := len(order)
	for i, id := range order {
		z := float32(i+1) / float32(n+1)
		store.SetZ(id, ecs.ZComponent{Value: z})
	}
}

func removeID(order []ecs.ID, id ecs.ID) []ecs.ID {
	for i, v := range order {
		if v == id {
			return append(append([]ecs.ID{}, order[:i]...), order[i+1:]...)
		}
	}
	return order
}

func indexOf(order []ecs.ID, id ecs.ID) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}
