// Package systems implements the tick-loop systems that run between X
// ingestion and paint (§4.6 state machine, §4.9 opacity/focus/dim, and the
// physical/order/texture/shape bookkeeping named in §4.10's per-frame
// sequence). Grounded throughout on willow's plain-function, store-mutating
// update style (no per-system struct state beyond what a GPU cache needs —
// see node.go's flat Update/Draw methods) generalized from a retained scene
// graph to the ecs.Store's columnar components.
package systems

import "github.com/neocomp/neocomp/internal/ecs"

// StateInput bundles the per-tick intent flags AdvanceState needs for one
// entity, decoupled from ecs.Store so the transition table itself
// (NextState) is a pure function and independently testable.
type StateInput struct {
	MapIntent           bool
	UnmapIntent          bool
	DestroyIntent        bool
	FocusChange          *bool // nil: no FocusChange component this tick; else Active value
	TransitionComplete   bool  // Transitioning present and time+dt >= duration
}

// NextState implements §4.6's transition table. Destroy is irrevocable and
// takes precedence over everything else; Destroying absorbs Unmap and only
// leaves via a completed transition, to Destroyed.
func NextState(current ecs.State, in StateInput) ecs.State {
	if in.DestroyIntent && current != ecs.StateDestroying {
		return ecs.StateDestroying
	}
	if current == ecs.StateDestroying {
		if in.TransitionComplete {
			return ecs.StateDestroyed
		}
		return current
	}
	if in.UnmapIntent {
		return ecs.StateHiding
	}
	if in.TransitionComplete {
		switch current {
		case ecs.StateActivating:
			return ecs.StateActive
		case ecs.StateDeactivating:
			return ecs.StateInactive
		case ecs.StateHiding:
			return ecs.StateInvisible
		}
	}
	if in.MapIntent && current == ecs.StateInvisible {
		return ecs.StateWaiting
	}
	if in.FocusChange != nil {
		if *in.FocusChange {
			if current == ecs.StateWaiting || current == ecs.StateInactive {
				return ecs.StateActivating
			}
		} else if current == ecs.StateActive {
			return ecs.StateDeactivating
		}
	}
	return current
}

// AdvanceState runs the state machine for every live entity in ids,
// reading transient intent/FocusChange components and the Transitioning
// component's elapsed-vs-duration to decide TransitionComplete, then
// writing the new StatefulComponent. Entities landing on StateDestroyed
// are returned so the caller can remove them from the store and the order
// vector; internal/session removes them in the same tick in which they
// reach StateDestroyed, not on a later tick.
func AdvanceState(store *ecs.Store, ids []ecs.ID, dt float64) []ecs.ID {
	var justDestroyed []ecs.ID
	for _, id := range ids {
		st, ok := store.Stateful(id)
		if !ok {
			continue
		}
		in := StateInput{
			MapIntent:     store.Has(id, ecs.MapIntent),
			UnmapIntent:   store.Has(id, ecs.UnmapIntent),
			DestroyIntent: store.Has(id, ecs.DestroyIntent),
		}
		if fc, ok := store.FocusChange(id); ok {
			active := fc.Active
			in.FocusChange = &active
		}
		if tr, ok := store.Transitioning(id); ok {
			in.TransitionComplete = tr.Time+dt >= tr.Duration
		}
		next := NextState(st.State, in)
		if next != st.State {
			store.SetStateful(id, ecs.StatefulComponent{State: next})
			if next == ecs.StateDestroyed {
				justDestroyed = append(justDestroyed, id)
			}
		}
	}
	return justDestroyed
}
