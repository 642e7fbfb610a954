package session

import "github.com/neocomp/neocomp/internal/ecs"

// registry maps X window ids to entities and back. Kept outside the ecs
// package (§5: "the entity store is exclusively owned by the tick driver")
// since it's bookkeeping the driver needs to route incoming events, not a
// component any system queries.
type registry struct {
	byXID    map[uint32]ecs.ID
	clientOf map[ecs.ID]uint32 // HasClient payload: client xid distinct from the frame
}

func newRegistry() *registry {
	return &registry{
		byXID:    make(map[uint32]ecs.ID),
		clientOf: make(map[ecs.ID]uint32),
	}
}

func (r *registry) bind(xid uint32, id ecs.ID) { r.byXID[xid] = id }

func (r *registry) unbind(xid uint32) {
	if id, ok := r.byXID[xid]; ok {
		delete(r.clientOf, id)
	}
	delete(r.byXID, xid)
}

func (r *registry) entity(xid uint32) (ecs.ID, bool) {
	id, ok := r.byXID[xid]
	return id, ok
}

func (r *registry) setClient(id ecs.ID, clientXID uint32) { r.clientOf[id] = clientXID }

func (r *registry) client(id ecs.ID) (uint32, bool) {
	xid, ok := r.clientOf[id]
	return xid, ok
}
