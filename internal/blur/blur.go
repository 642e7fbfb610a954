// Package blur implements the dual-Kawase behind-window blur system (§4.7):
// damage propagation (pure, over Z-order/geometry/fade state) and the
// ping-pong downsample/upsample update pass. Grounded on the teacher's
// filter.go BlurFilter (iterative downscale/upscale temp-image chain) and
// rendertarget.go's renderTexturePool, generalized from "blur one node's
// subtree" to "blur the background behind one window, clipped to its
// shape, at the configured dual-Kawase level."
package blur

import (
	"github.com/neocomp/neocomp/internal/ecs"
	"github.com/neocomp/neocomp/internal/fade"
	"github.com/neocomp/neocomp/internal/geom"
	"github.com/neocomp/neocomp/internal/render"
)

// Cache is the per-window blur resource set: two ping-pong textures and a
// depth-stencil renderbuffer, all sized to the window (§4.7 "Per-window
// cache").
type Cache struct {
	T0, T1  *render.Texture
	Stencil *render.RenderBuffer
	Width, Height int
}

// System owns every window's Cache plus the shared shader programs and
// texture pool used during the update pass.
type System struct {
	pool   *render.Pool
	down   *render.ShaderProgram
	up     *render.ShaderProgram
	clip   *render.ShaderProgram
	caches map[ecs.ID]*Cache
	Level  int // dual-Kawase pass count, config's blur-level
}

// NewSystem compiles the dual-Kawase shaders and returns an empty System.
func NewSystem(level int) (*System, error) {
	downShader, err := render.NewKawaseDownShader()
	if err != nil {
		return nil, err
	}
	upShader, err := render.NewKawaseUpShader()
	if err != nil {
		return nil, err
	}
	clipShader, err := render.NewClipShader()
	if err != nil {
		return nil, err
	}
	if level < 1 {
		level = 1
	}
	return &System{
		pool:   render.NewPool(),
		down:   render.NewProgram(downShader),
		up:     render.NewProgram(upShader),
		clip:   render.NewProgram(clipShader),
		caches: make(map[ecs.ID]*Cache),
		Level:  level,
	}, nil
}

// Ensure returns id's Cache, (re)allocating it if absent or sized wrong.
func (s *System) Ensure(id ecs.ID, w, h int) *Cache {
	c, ok := s.caches[id]
	if ok && c.Width == w && c.Height == h {
		return c
	}
	if ok {
		s.release(c)
	}
	c = &Cache{
		T0:      s.pool.Acquire(w, h, render.TargetColor),
		T1:      s.pool.Acquire(w, h, render.TargetColor),
		Stencil: render.NewRenderBuffer(w, h, true),
		Width:   w, Height: h,
	}
	s.caches[id] = c
	return c
}

// CacheFor returns id's blur Cache without allocating one.
func (s *System) CacheFor(id ecs.ID) (*Cache, bool) {
	c, ok := s.caches[id]
	return c, ok
}

// Release returns id's Cache resources to the pool and forgets it — called
// when a window is destroyed.
func (s *System) Release(id ecs.ID) {
	if c, ok := s.caches[id]; ok {
		s.release(c)
		delete(s.caches, id)
	}
}

func (s *System) release(c *Cache) {
	s.pool.Release(c.T0)
	s.pool.Release(c.T1)
}

// windowInfo is the minimal per-window state the damage/ordering logic
// needs, decoupled from the ecs.Store so ComputeDamage is pure and testable
// without constructing a full store.
type windowInfo struct {
	ID       ecs.ID
	Rect     geom.Rect
	Solid    bool
	Resized  bool
	FadeDone bool
}

// ComputeDamage implements §4.7's damage-propagation rule: every window
// whose fade (opacity/bg-opacity/dim) is not done marks BlurDamaged on
// every window below it in Z-order that it overlaps; every window above a
// resized window is also marked. order is back-to-front (index 0 is
// furthest back), matching the paint phase's iteration direction.
func ComputeDamage(order []windowInfo) map[ecs.ID]bool {
	damaged := make(map[ecs.ID]bool)
	for i, w := range order {
		if !w.FadeDone {
			for j := 0; j < i; j++ {
				below := order[j]
				if below.Rect.Intersects(w.Rect) {
					damaged[below.ID] = true
				}
			}
		}
		if w.Resized {
			for j := i + 1; j < len(order); j++ {
				damaged[order[j].ID] = true
			}
		}
	}
	return damaged
}

// FadeDoneFor reports whether all three of a window's fades (opacity,
// bg-opacity, dim) are done, the per-window input ComputeDamage needs.
func FadeDoneFor(store *ecs.Store, fades *fade.Registry, id ecs.ID) bool {
	check := func(get func(ecs.ID) (*ecs.FadesComponent, bool)) bool {
		comp, ok := get(id)
		if !ok {
			return true
		}
		r := fades.Ring(comp.RingID)
		return r == nil || r.Done()
	}
	return check(store.FadesOpacity) && check(store.FadesBgOpacity) && check(store.FadesDim)
}

// BuildOrder assembles the windowInfo slice ComputeDamage needs from the
// store, given a back-to-front id order (as maintained by the order
// system) and the set of ids resized this tick.
func BuildOrder(store *ecs.Store, fades *fade.Registry, backToFront []ecs.ID, resized map[ecs.ID]bool) []windowInfo {
	out := make([]windowInfo, 0, len(backToFront))
	for _, id := range backToFront {
		phys, ok := store.Physical(id)
		if !ok {
			continue
		}
		mud, _ := store.Mud(id)
		out = append(out, windowInfo{
			ID:       id,
			Rect:     phys.Geometry.Rect(),
			Solid:    mud != nil && mud.Solid,
			Resized:  resized[id],
			FadeDone: FadeDoneFor(store, fades, id),
		})
	}
	return out
}
