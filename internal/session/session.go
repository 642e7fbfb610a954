// Package session drives the per-frame composite loop (§4.10): it owns the
// entity store, the X ingestion pipeline, and every render system, and runs
// them in the fixed order the spec prescribes. Grounded on willow's Scene
// as the single owner of update+draw for a frame (scene.go's Update/Draw
// pair), generalized from a retained node tree to the ecs.Store plus the
// render systems in internal/blur, internal/shadow, internal/systems.
package session

import (
	"os"
	"os/signal"
	"time"

	"github.com/neocomp/neocomp/internal/blur"
	"github.com/neocomp/neocomp/internal/config"
	"github.com/neocomp/neocomp/internal/ecs"
	"github.com/neocomp/neocomp/internal/fade"
	"github.com/neocomp/neocomp/internal/match"
	"github.com/neocomp/neocomp/internal/render"
	"github.com/neocomp/neocomp/internal/shadow"
	"github.com/neocomp/neocomp/internal/systems"
	"github.com/neocomp/neocomp/internal/wintype"
	"github.com/neocomp/neocomp/internal/xevent"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// Session is the tick driver (§5: "the entity store is exclusively owned
// by the tick driver; systems are given a borrow for the duration of their
// execution").
type Session struct {
	log zerolog.Logger
	cfg config.Options

	store *ecs.Store
	reg   *registry
	order []ecs.ID

	ing       *xevent.Ingestor
	fades     *fade.Registry
	textures  *systems.TextureCache
	blurSys   *blur.System
	shadowSys *shadow.System
	backend   render.Backend

	overrides [wintype.Count]wintype.Overrides
	shadowExclude, fadeExclude, focusExclude, blurBgExclude []*match.Expr

	activeID     ecs.ID // noActiveID until the first Focus event arrives
	activeSet    bool
	rootTex      *render.Texture
	canvasW      int
	canvasH      int
	restackOps   []systems.RestackOp
	resetRequest chan os.Signal
}

// noActiveID is an id no real entity ever holds (the store densifies ids
// starting at 0), used so ResolveTarget's isActive check is false before
// the first Focus event rather than spuriously matching entity 0.
const noActiveID = ecs.ID(^uint32(0))

// New builds a Session against an already-connected Ingestor and backend.
func New(cfg config.Options, ing *xevent.Ingestor, backend render.Backend, log zerolog.Logger) (*Session, error) {
	blurSys, err := blur.NewSystem(cfg.BlurLevel)
	if err != nil {
		return nil, err
	}
	shadowSys, err := shadow.NewSystem(cfg.ShadowOpacity)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		log:          log,
		cfg:          cfg,
		store:        ecs.NewStore(),
		reg:          newRegistry(),
		ing:          ing,
		fades:        fade.NewRegistry(),
		textures:     systems.NewTextureCache(),
		blurSys:      blurSys,
		shadowSys:    shadowSys,
		backend:      backend,
		overrides:    cfg.WintypeOverrides,
		activeID:     noActiveID,
		resetRequest: make(chan os.Signal, 1),
	}
	sess.shadowExclude = compileRules(cfg.ShadowExclude, log)
	sess.fadeExclude = compileRules(cfg.FadeExclude, log)
	sess.focusExclude = compileRules(cfg.FocusExclude, log)
	sess.blurBgExclude = compileRules(cfg.BlurBackgroundExclude, log)
	signal.Notify(sess.resetRequest, unix.SIGUSR1)
	return sess, nil
}

func compileRules(rules []string, log zerolog.Logger) []*match.Expr {
	var out []*match.Expr
	for _, r := range rules {
		expr, err := match.Parse(r)
		if err != nil {
			log.Warn().Str("rule", r).Err(err).Msg("discarding unparsable match rule")
			continue
		}
		out = append(out, expr)
	}
	return out
}

// Run drains the bootstrap tree, then loops Tick until stop is closed.
// A SIGUSR1 between frames tears the session
// down and rebuilds it in place (§5 "Cancellation").
func (sess *Session) Run(stop <-chan struct{}) error {
	bootstrap, err := sess.ing.Bootstrap()
	if err != nil {
		return err
	}
	sess.applyEvents(bootstrap)

	frame := time.Second / 60
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-stop:
			return nil
		case <-sess.resetRequest:
			sess.log.Info().Msg("SIGUSR1 received, resetting session state")
			sess.reset()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			sess.Tick(dt)
		}
	}
}

// reset tears down and rebuilds the per-window caches without dropping the
// X connection, matching §5's "tear-down + re-create of the session"
// (the connection and extensions stay put; only derived state resets).
func (sess *Session) reset() {
	for _, id := range sess.order {
		sess.blurSys.Release(id)
		sess.shadowSys.Release(id)
	}
	sess.store = ecs.NewStore()
	sess.reg = newRegistry()
	sess.order = nil
	sess.fades = fade.NewRegistry()
	sess.textures = systems.NewTextureCache()
	sess.activeSet = false
	sess.activeID = noActiveID
	bootstrap, err := sess.ing.Bootstrap()
	if err != nil {
		sess.log.Error().Err(err).Msg("bootstrap after reset failed")
		return
	}
	sess.applyEvents(bootstrap)
}

// Tick runs the thirteen composite-loop steps (§4.10) once.
func (sess *Session) Tick(dt float64) {
	sess.applyEvents(sess.ing.Drain()) // 1

	destroyed := systems.AdvanceState(sess.store, sess.liveIDs(), dt) // 2
	sess.removeDestroyed(destroyed)

	resized := systems.Resized(sess.store, sess.order) // 3
	systems.ApplyPhysical(sess.store, sess.order)

	sess.order = systems.ApplyRestack(sess.order, sess.restackOps) // 4
	sess.restackOps = nil
	systems.AssignZ(sess.store, sess.order)

	sess.textures.ApplyTexture(sess.store, sess.order) // 5

	systems.ApplyShape(sess.store, sess.ing, sess.order) // 6

	sess.applyOpacityFocus() // 7

	systems.AdvanceFades(sess.store, sess.fades, sess.order, dt) // 8

	systems.CommitFades(sess.store, sess.fades, sess.order, dt) // 9
	sess.resolveSolidity()

	sess.runBlur(resized) // 10
	sess.runShadow()      // 11

	sess.paint() // 12

	sess.clearTransient() // 13
}

func (sess *Session) liveIDs() []ecs.ID {
	ids := make([]ecs.ID, 0, len(sess.order))
	ids = append(ids, sess.order...)
	return ids
}

func (sess *Session) removeDestroyed(ids []ecs.ID) {
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		sess.blurSys.Release(id)
		sess.shadowSys.Release(id)
		sess.textures.Release(id)
		sess.store.Remove(id)
	}
	sess.order = systems.RemoveDestroyed(sess.order, ids)
}

// resolveSolidity keeps Mud.Solid in sync every tick with
// original_source/src/window.c's win_is_solid: solid if the window is
// fullscreen, or its current opacity is 100 (the ARGB-visual term isn't
// modeled — this repo has no per-window visual-depth field). Recomputed
// unconditionally rather than gated on ShapeDamaged, since opacity changes
// every tick a fade is running and must immediately flip the opaque/
// transparent paint partition (paint.go) and blur-background eligibility
// (paint.go's blurEligible).
func (sess *Session) resolveSolidity() {
	for _, id := range sess.order {
		mud, ok := sess.store.Mud(id)
		if !ok {
			continue
		}
		opacity := 100.0
		if v, ok := sess.store.Opacity(id); ok {
			opacity = v
		}
		mud.Solid = mud.Fullscreen || opacity == 100
		sess.store.SetMud(id, *mud)
	}
}

func (sess *Session) clearTransient() {
	for _, id := range sess.order {
		sess.store.Clear(id, ecs.MapIntent)
		sess.store.Clear(id, ecs.UnmapIntent)
		sess.store.Clear(id, ecs.DestroyIntent)
		sess.store.Clear(id, ecs.MoveIntent)
		sess.store.Clear(id, ecs.ResizeIntent)
		sess.store.Clear(id, ecs.BlurDamaged)
		sess.store.Clear(id, ecs.ShadowDamaged)
		sess.store.Clear(id, ecs.ContentsDamaged)
		sess.store.Clear(id, ecs.ShapeDamaged)
		sess.store.Clear(id, ecs.FocusChange)
		sess.store.Clear(id, ecs.FocusChanged)
		sess.store.Clear(id, ecs.WintypeChanged)
	}
}
