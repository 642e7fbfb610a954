package ecs

// ID identifies one entity (top-level window, in practice — §3). IDs are
// densely packed: destroying an entity frees its slot for reuse by a later
// allocate(), matching the spec's densification requirement (§8).
type ID uint32

// Store is the columnar entity-component store: one presence bitset per
// component kind, plus a parallel typed payload slice for kinds that carry
// data. There is no generic "any" payload map — each kind has its own
// slice, so adding a component is a single slice write with no boxing,
// matching the "fixed, ordered set of component kinds" requirement (§3).
type Store struct {
	presence [numKinds]bitset // presence[Meta] doubles as the liveness bitmap
	capacity int

	mud          []MudComponent
	physical     []PhysicalComponent
	z            []ZComponent
	moveIntent   []MoveIntentComponent
	resizeIntent []ResizeIntentComponent
	textured     []TexturedComponent
	shadow       []ShadowComponent
	blur         []BlurComponent
	shaped       []ShapedComponent
	fadesOpacity []FadesComponent
	fadesBg      []FadesComponent
	fadesDim     []FadesComponent
	focusChange  []FocusChangeComponent
	transition   []TransitioningComponent
	stateful     []StatefulComponent
	tint         []TintComponent

	opacity   []float64
	bgOpacity []float64
	dim       []float64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) growTo(n int) {
	if n <= s.capacity {
		return
	}
	for k := range s.presence {
		s.presence[k].grow(n)
	}
	for len(s.mud) < n {
		s.mud = append(s.mud, MudComponent{})
		s.physical = append(s.physical, PhysicalComponent{})
		s.z = append(s.z, ZComponent{})
		s.moveIntent = append(s.moveIntent, MoveIntentComponent{})
		s.resizeIntent = append(s.resizeIntent, ResizeIntentComponent{})
		s.textured = append(s.textured, TexturedComponent{})
		s.shadow = append(s.shadow, ShadowComponent{})
		s.blur = append(s.blur, BlurComponent{})
		s.shaped = append(s.shaped, ShapedComponent{})
		s.fadesOpacity = append(s.fadesOpacity, FadesComponent{})
		s.fadesBg = append(s.fadesBg, FadesComponent{})
		s.fadesDim = append(s.fadesDim, FadesComponent{})
		s.focusChange = append(s.focusChange, FocusChangeComponent{})
		s.transition = append(s.transition, TransitioningComponent{})
		s.stateful = append(s.stateful, StatefulComponent{})
		s.tint = append(s.tint, TintComponent{})
		s.opacity = append(s.opacity, 0)
		s.bgOpacity = append(s.bgOpacity, 0)
		s.dim = append(s.dim, 0)
	}
	s.capacity = n
}

// Allocate returns a fresh entity id: the lowest clear bit in the Meta
// bitmap if one exists below the current capacity (keeping the id space
// dense at the lowest free slot), otherwise the next never-used id, and
// marks it alive by setting Meta (§3 "lowest free slot", §4.2 "allocate()
// returns the lowest free id... allocating Meta", §9's lowest-clear-bit
// scan across the Meta bitmap).
func (s *Store) Allocate() ID {
	if idx, ok := s.presence[Meta].lowestClear(s.capacity); ok {
		s.presence[Meta].set(idx)
		return ID(idx)
	}
	id := ID(s.capacity)
	s.growTo(s.capacity + 1)
	s.presence[Meta].set(int(id))
	return id
}

// Remove clears every component on id and marks it dead; the slot becomes
// the lowest clear Meta bit below it and is picked up by the next Allocate.
func (s *Store) Remove(id ID) {
	if !s.presence[Meta].has(int(id)) {
		return
	}
	for k := range s.presence {
		s.presence[k].clear(int(id))
	}
}

// Alive reports whether id currently refers to a live entity.
func (s *Store) Alive(id ID) bool {
	return int(id) < s.capacity && s.presence[Meta].has(int(id))
}

// Has reports whether entity id carries component kind k.
func (s *Store) Has(id ID, k Kind) bool {
	return int(id) < s.capacity && s.presence[k].has(int(id))
}

// Set marks entity id as carrying kind k, without touching any payload
// slice (used for marker-only kinds: MapIntent, Redirected, Bypass, the
// *Damaged kinds, and friends).
func (s *Store) Set(id ID, k Kind) {
	s.presence[k].set(int(id))
}

// Clear removes kind k from entity id, leaving other components intact.
func (s *Store) Clear(id ID, k Kind) {
	s.presence[k].clear(int(id))
}

// CountKind returns the number of live entities carrying kind k directly,
// without building a Query.
func (s *Store) CountKind(k Kind) int {
	return s.presence[k].countSetBelow(s.capacity)
}

// SetWhere marks target on every entity matched by q, folding one bucket
// word at a time instead of visiting ids individually (§4.2's set-at-a-time
// operations).
func (s *Store) SetWhere(target Kind, q *Query) {
	numBucket := (s.capacity + bucketBits - 1) / bucketBits
	for bucket := 0; bucket < numBucket; bucket++ {
		word := q.foldBucket(bucket)
		if word == 0 {
			continue
		}
		s.presence[target].grow(s.capacity)
		s.presence[target].words[bucket] |= word
	}
}

// RemoveWhere clears target from every entity matched by q.
func (s *Store) RemoveWhere(target Kind, q *Query) {
	numBucket := (s.capacity + bucketBits - 1) / bucketBits
	for bucket := 0; bucket < numBucket; bucket++ {
		word := q.foldBucket(bucket)
		if word == 0 {
			continue
		}
		s.presence[target].words[bucket] &^= word
	}
}

// EnsureWhere is SetWhere restricted to entities not already carrying
// target, matching "ensure" semantics (idempotent add) at set granularity.
func (s *Store) EnsureWhere(target Kind, q *Query) {
	numBucket := (s.capacity + bucketBits - 1) / bucketBits
	for bucket := 0; bucket < numBucket; bucket++ {
		word := q.foldBucket(bucket) &^ s.presence[target].word(bucket)
		if word == 0 {
			continue
		}
		s.presence[target].grow(s.capacity)
		s.presence[target].words[bucket] |= word
	}
}

// CountWhere returns the number of entities matched by q, folding bucket
// words rather than materializing ids (§4.2's countWhere(query)).
func (s *Store) CountWhere(q *Query) int {
	n := 0
	numBucket := (s.capacity + bucketBits - 1) / bucketBits
	for bucket := 0; bucket < numBucket; bucket++ {
		n += popcount64(q.foldBucket(bucket))
	}
	return n
}

// CountHoles returns the number of unset Meta bits below the highest set
// bit, an observability-only fragmentation metric (§4.2).
func (s *Store) CountHoles() int {
	highest := -1
	for i := 0; i < s.capacity; i++ {
		if s.presence[Meta].has(i) {
			highest = i
		}
	}
	if highest < 0 {
		return 0
	}
	return (highest + 1) - s.presence[Meta].countSetBelow(highest+1)
}

func popcount64(x uint64) int {
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}

// --- typed payload accessors -------------------------------------------------
//
// Each pair follows the same shape: Set<Kind> marks presence and writes the
// payload; <Kind> reads the payload and reports whether it was present.
// Reading an absent component returns the zero value and ok=false, never a
// panic — callers in the systems package are expected to check ok.

func (s *Store) SetMud(id ID, v MudComponent) {
	s.presence[Mud].set(int(id))
	s.mud[id] = v
}
func (s *Store) Mud(id ID) (*MudComponent, bool) {
	if !s.Has(id, Mud) {
		return nil, false
	}
	return &s.mud[id], true
}

func (s *Store) SetPhysical(id ID, v PhysicalComponent) {
	s.presence[Physical].set(int(id))
	s.physical[id] = v
}
func (s *Store) Physical(id ID) (*PhysicalComponent, bool) {
	if !s.Has(id, Physical) {
		return nil, false
	}
	return &s.physical[id], true
}

func (s *Store) SetZ(id ID, v ZComponent) {
	s.presence[Z].set(int(id))
	s.z[id] = v
}
func (s *Store) Z(id ID) (*ZComponent, bool) {
	if !s.Has(id, Z) {
		return nil, false
	}
	return &s.z[id], true
}

func (s *Store) SetMoveIntent(id ID, v MoveIntentComponent) {
	s.presence[MoveIntent].set(int(id))
	s.moveIntent[id] = v
}
func (s *Store) MoveIntent(id ID) (*MoveIntentComponent, bool) {
	if !s.Has(id, MoveIntent) {
		return nil, false
	}
	return &s.moveIntent[id], true
}

func (s *Store) SetResizeIntent(id ID, v ResizeIntentComponent) {
	s.presence[ResizeIntent].set(int(id))
	s.resizeIntent[id] = v
}
func (s *Store) ResizeIntent(id ID) (*ResizeIntentComponent, bool) {
	if !s.Has(id, ResizeIntent) {
		return nil, false
	}
	return &s.resizeIntent[id], true
}

func (s *Store) SetTextured(id ID, v TexturedComponent) {
	s.presence[Textured].set(int(id))
	s.textured[id] = v
}
func (s *Store) Textured(id ID) (*TexturedComponent, bool) {
	if !s.Has(id, Textured) {
		return nil, false
	}
	return &s.textured[id], true
}

func (s *Store) SetShadow(id ID, v ShadowComponent) {
	s.presence[ShadowCache].set(int(id))
	s.shadow[id] = v
}
func (s *Store) Shadow(id ID) (*ShadowComponent, bool) {
	if !s.Has(id, ShadowCache) {
		return nil, false
	}
	return &s.shadow[id], true
}

func (s *Store) SetBlur(id ID, v BlurComponent) {
	s.presence[BlurCache].set(int(id))
	s.blur[id] = v
}
func (s *Store) Blur(id ID) (*BlurComponent, bool) {
	if !s.Has(id, BlurCache) {
		return nil, false
	}
	return &s.blur[id], true
}

func (s *Store) SetShaped(id ID, v ShapedComponent) {
	s.presence[Shaped].set(int(id))
	s.shaped[id] = v
}
func (s *Store) Shaped(id ID) (*ShapedComponent, bool) {
	if !s.Has(id, Shaped) {
		return nil, false
	}
	return &s.shaped[id], true
}

func (s *Store) SetOpacity(id ID, v float64) {
	s.presence[Opacity].set(int(id))
	s.opacity[id] = v
}
func (s *Store) Opacity(id ID) (float64, bool) {
	if !s.Has(id, Opacity) {
		return 0, false
	}
	return s.opacity[id], true
}

func (s *Store) SetBgOpacity(id ID, v float64) {
	s.presence[BgOpacity].set(int(id))
	s.bgOpacity[id] = v
}
func (s *Store) BgOpacity(id ID) (float64, bool) {
	if !s.Has(id, BgOpacity) {
		return 0, false
	}
	return s.bgOpacity[id], true
}

func (s *Store) SetDim(id ID, v float64) {
	s.presence[Dim].set(int(id))
	s.dim[id] = v
}
func (s *Store) Dim(id ID) (float64, bool) {
	if !s.Has(id, Dim) {
		return 0, false
	}
	return s.dim[id], true
}

func (s *Store) SetFadesOpacity(id ID, v FadesComponent) {
	s.presence[FadesOpacity].set(int(id))
	s.fadesOpacity[id] = v
}
func (s *Store) FadesOpacity(id ID) (*FadesComponent, bool) {
	if !s.Has(id, FadesOpacity) {
		return nil, false
	}
	return &s.fadesOpacity[id], true
}

func (s *Store) SetFadesBgOpacity(id ID, v FadesComponent) {
	s.presence[FadesBgOpacity].set(int(id))
	s.fadesBg[id] = v
}
func (s *Store) FadesBgOpacity(id ID) (*FadesComponent, bool) {
	if !s.Has(id, FadesBgOpacity) {
		return nil, false
	}
	return &s.fadesBg[id], true
}

func (s *Store) SetFadesDim(id ID, v FadesComponent) {
	s.presence[FadesDim].set(int(id))
	s.fadesDim[id] = v
}
func (s *Store) FadesDim(id ID) (*FadesComponent, bool) {
	if !s.Has(id, FadesDim) {
		return nil, false
	}
	return &s.fadesDim[id], true
}

func (s *Store) SetFocusChange(id ID, v FocusChangeComponent) {
	s.presence[FocusChange].set(int(id))
	s.focusChange[id] = v
}
func (s *Store) FocusChange(id ID) (*FocusChangeComponent, bool) {
	if !s.Has(id, FocusChange) {
		return nil, false
	}
	return &s.focusChange[id], true
}

func (s *Store) SetTransitioning(id ID, v TransitioningComponent) {
	s.presence[Transitioning].set(int(id))
	s.transition[id] = v
}
func (s *Store) Transitioning(id ID) (*TransitioningComponent, bool) {
	if !s.Has(id, Transitioning) {
		return nil, false
	}
	return &s.transition[id], true
}

func (s *Store) SetStateful(id ID, v StatefulComponent) {
	s.presence[Stateful].set(int(id))
	s.stateful[id] = v
}
func (s *Store) Stateful(id ID) (*StatefulComponent, bool) {
	if !s.Has(id, Stateful) {
		return nil, false
	}
	return &s.stateful[id], true
}

func (s *Store) SetTint(id ID, v TintComponent) {
	s.presence[Tint].set(int(id))
	s.tint[id] = v
}
func (s *Store) Tint(id ID) (*TintComponent, bool) {
	if !s.Has(id, Tint) {
		return nil, false
	}
	return &s.tint[id], true
}

// Capacity returns the highest id ever allocated, plus one. Queries use it
// as the upper bound on bucket scanning.
func (s *Store) Capacity() int {
	return s.capacity
}
