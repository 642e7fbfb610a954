package fade

// Registry owns every Ring in the session, indexed by a small integer
// handle. ecs.FadesComponent stores only the handle (a RingID), so the ecs
// package never imports fade or gween — components stay plain data and the
// animation behavior lives entirely here.
type Registry struct {
	rings []*Ring
	holes []uint32
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// New allocates a new ring starting at initial and returns its handle.
func (reg *Registry) New(initial float64) uint32 {
	if n := len(reg.holes); n > 0 {
		id := reg.holes[n-1]
		reg.holes = reg.holes[:n-1]
		reg.rings[id] = NewRing(initial)
		return id
	}
	id := uint32(len(reg.rings))
	reg.rings = append(reg.rings, NewRing(initial))
	return id
}

// Release returns a handle to the pool. The handle is invalid afterward.
func (reg *Registry) Release(id uint32) {
	if int(id) >= len(reg.rings) || reg.rings[id] == nil {
		return
	}
	reg.rings[id] = nil
	reg.holes = append(reg.holes, id)
}

// Ring returns the ring for handle id, or nil if it was released.
func (reg *Registry) Ring(id uint32) *Ring {
	if int(id) >= len(reg.rings) {
		return nil
	}
	return reg.rings[id]
}
