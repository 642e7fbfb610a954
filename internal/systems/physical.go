package systems

import "github.com/neocomp/neocomp/internal/ecs"

// ApplyPhysical implements §4.10 step 3: commit any MoveIntent/ResizeIntent
// produced by ingestion onto the entity's Physical geometry. Entities with
// neither intent are left untouched.
func ApplyPhysical(store *ecs.Store, ids []ecs.ID) {
	for _, id := range ids {
		phys, ok := store.Physical(id)
		if !ok {
			continue
		}
		changed := false
		if mv, ok := store.MoveIntent(id); ok {
			phys.Geometry.X = mv.X
			phys.Geometry.Y = mv.Y
			changed = true
		}
		if rs, ok := store.ResizeIntent(id); ok {
			phys.Geometry.Width = rs.Width
			phys.Geometry.Height = rs.Height
			changed = true
		}
		if changed {
			store.SetPhysical(id, *phys)
		}
	}
}

// Resized reports which ids had a ResizeIntent this tick, the input the
// blur damage-propagation rule needs (§4.7 "every window above a resized
// window is marked BlurDamaged").
func Resized(store *ecs.Store, ids []ecs.ID) map[ecs.ID]bool {
	out := make(map[ecs.ID]bool)
	for _, id := range ids {
		if store.Has(id, ecs.ResizeIntent) {
			out[id] = true
		}
	}
	return out
}
