package systems

import "github.com/neocomp/neocomp/internal/ecs"

// ShapeFetcher is the narrow boundary systems uses to refetch a window's
// bounding shape, implemented by internal/xevent (which owns the X
// connection and the Shape extension request) — kept as an interface here
// so internal/systems never imports jezek/xgb directly.
type ShapeFetcher interface {
	FetchShape(xid uint32) (ecs.ShapedComponent, error)
}

// ApplyShape implements §4.10 step 6: for every window whose bounding
// shape changed this tick (ShapeDamaged, set by ingestion on a ShapeNotify
// or a fresh Map), refetch and store its Shaped component.
func ApplyShape(store *ecs.Store, fetcher ShapeFetcher, ids []ecs.ID) {
	for _, id := range ids {
		if !store.Has(id, ecs.ShapeDamaged) {
			continue
		}
		mud, ok := store.Mud(id)
		if !ok {
			continue
		}
		shape, err := fetcher.FetchShape(mud.XID)
		if err != nil {
			continue
		}
		store.SetShaped(id, shape)
	}
}
