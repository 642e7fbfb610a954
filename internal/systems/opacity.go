package systems

import (
	"github.com/neocomp/neocomp/internal/ecs"
	"github.com/neocomp/neocomp/internal/fade"
	"github.com/neocomp/neocomp/internal/wintype"
)

// OpacityConfig is the subset of config.Options the opacity/focus system
// consumes, passed explicitly rather than importing internal/config to
// keep this package's dependency graph one-directional (config is the
// leaf, systems is a consumer, not the other way around).
type OpacityConfig struct {
	InactiveOpacity   float64
	ActiveOpacity     float64 // 0 means "not configured" (§4.9 "if configured")
	InactiveDim       float64
	OpacityFadeTime   float64
	BgOpacityFadeTime float64
	DimFadeTime       float64
}

// Target is the resolved (opacity, dim) pair for one window this tick.
type Target struct {
	Opacity float64
	Dim     float64
}

// ResolveTarget implements §4.9's per-window target resolution. wintypeOp
// is the window-type opacity override (-1 = unset, from
// wintype.Overrides.OpacityPercent); isActive reports whether id is the
// currently focused window.
func ResolveTarget(state ecs.State, wintypeOp float64, isActive bool, cfg OpacityConfig) Target {
	if wintypeOp >= 0 {
		return Target{Opacity: wintypeOp, Dim: 100}
	}
	if state == ecs.StateDeactivating || state == ecs.StateInactive {
		return Target{Opacity: cfg.InactiveOpacity, Dim: cfg.InactiveDim}
	}
	if isActive && cfg.ActiveOpacity > 0 {
		return Target{Opacity: cfg.ActiveOpacity, Dim: 100}
	}
	return Target{Opacity: 100, Dim: 100}
}

// ApplyOpacityFocus implements §4.10 step 7 for every window carrying a
// FocusChange component this tick: resolve its target via ResolveTarget,
// schedule keyframes on its three fading rings, and add a Transitioning
// component whose duration is the max of the three fade times.
func ApplyOpacityFocus(store *ecs.Store, fades *fade.Registry, overrides [wintype.Count]wintype.Overrides, activeID ecs.ID, cfg OpacityConfig, ids []ecs.ID) {
	for _, id := range ids {
		if !store.Has(id, ecs.FocusChange) {
			continue
		}
		st, ok := store.Stateful(id)
		if !ok {
			continue
		}
		mud, _ := store.Mud(id)
		wintypeOp := -1.0
		if mud != nil {
			wintypeOp = overrides[mud.WindowType].OpacityPercent
		}
		target := ResolveTarget(st.State, wintypeOp, id == activeID, cfg)

		scheduleRing(store, fades, id, target.Opacity, cfg.OpacityFadeTime, store.FadesOpacity, store.SetFadesOpacity)
		scheduleRing(store, fades, id, target.Opacity, cfg.BgOpacityFadeTime, store.FadesBgOpacity, store.SetFadesBgOpacity)
		scheduleRing(store, fades, id, target.Dim, cfg.DimFadeTime, store.FadesDim, store.SetFadesDim)

		maxDur := cfg.OpacityFadeTime
		if cfg.BgOpacityFadeTime > maxDur {
			maxDur = cfg.BgOpacityFadeTime
		}
		if cfg.DimFadeTime > maxDur {
			maxDur = cfg.DimFadeTime
		}
		store.SetTransitioning(id, ecs.TransitioningComponent{Time: 0, Duration: maxDur})
	}
}

// scheduleRing schedules target on id's ring for a given fade slot,
// allocating a ring on first use.
func scheduleRing(
	store *ecs.Store,
	fades *fade.Registry,
	id ecs.ID,
	target, duration float64,
	get func(ecs.ID) (*ecs.FadesComponent, bool),
	set func(ecs.ID, ecs.FadesComponent),
) {
	comp, ok := get(id)
	var ringID uint32
	if !ok {
		ringID = fades.New(target)
		set(id, ecs.FadesComponent{RingID: ringID})
		return
	}
	ringID = comp.RingID
	r := fades.Ring(ringID)
	if r == nil {
		return
	}
	r.Schedule(target, duration, false)
}

// AdvanceFades implements §4.10 step 8: advances every live fade ring by
// dt. Rings are owned by the fade.Registry; this just walks every entity
// with a Fades* component and calls Update on its ring.
func AdvanceFades(store *ecs.Store, fades *fade.Registry, ids []ecs.ID, dt float64) {
	for _, id := range ids {
		if c, ok := store.FadesOpacity(id); ok {
			if r := fades.Ring(c.RingID); r != nil {
				r.Update(dt)
			}
		}
		if c, ok := store.FadesBgOpacity(id); ok {
			if r := fades.Ring(c.RingID); r != nil {
				r.Update(dt)
			}
		}
		if c, ok := store.FadesDim(id); ok {
			if r := fades.Ring(c.RingID); r != nil {
				r.Update(dt)
			}
		}
	}
}

// CommitFades implements §4.10 step 9's fade-result half: for each
// window, write the Opacity/BgOpacity/Dim component from its ring's
// current value, removing Opacity/BgOpacity once they reach 100 so the
// renderer's "absent ⇒ fully opaque" fast path applies (§4.9 Commit).
// Also clears Transitioning once time+dt >= duration.
func CommitFades(store *ecs.Store, fades *fade.Registry, ids []ecs.ID, dt float64) {
	for _, id := range ids {
		commitOne(store, fades, id, store.FadesOpacity, ecs.Opacity, store.SetOpacity)
		commitOne(store, fades, id, store.FadesBgOpacity, ecs.BgOpacity, store.SetBgOpacity)
		if c, ok := store.FadesDim(id); ok {
			if r := fades.Ring(c.RingID); r != nil {
				store.SetDim(id, r.Value())
			}
		}
		if tr, ok := store.Transitioning(id); ok {
			tr.Time += dt
			if tr.Time >= tr.Duration {
				store.Clear(id, ecs.Transitioning)
			} else {
				store.SetTransitioning(id, *tr)
			}
		}
	}
}

func commitOne(
	store *ecs.Store,
	fades *fade.Registry,
	id ecs.ID,
	get func(ecs.ID) (*ecs.FadesComponent, bool),
	kind ecs.Kind,
	set func(ecs.ID, float64),
) {
	c, ok := get(id)
	if !ok {
		return
	}
	r := fades.Ring(c.RingID)
	if r == nil {
		return
	}
	v := r.Value()
	if v >= 100 {
		store.Clear(id, kind)
		return
	}
	set(id, v)
}
