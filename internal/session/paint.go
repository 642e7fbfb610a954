package session

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/neocomp/neocomp/internal/blur"
	"github.com/neocomp/neocomp/internal/ecs"
	"github.com/neocomp/neocomp/internal/geom"
	"github.com/neocomp/neocomp/internal/match"
	"github.com/neocomp/neocomp/internal/shadow"
	"github.com/neocomp/neocomp/internal/systems"
)

func (sess *Session) windowRect(id ecs.ID) (geom.Rect, bool) {
	phys, ok := sess.store.Physical(id)
	if !ok {
		return geom.Rect{}, false
	}
	return phys.Geometry.Rect(), true
}

func (sess *Session) overlaps(id ecs.ID, rect geom.Rect) bool {
	r, ok := sess.windowRect(id)
	return ok && r.Intersects(rect)
}

func (sess *Session) isSolid(id ecs.ID) bool {
	mud, ok := sess.store.Mud(id)
	return ok && mud.Solid
}

func (sess *Session) drawWindow(target *ebiten.Image, id ecs.ID, opacityOverride float64) {
	tex := sess.textures.Texture(id)
	if tex == nil {
		return
	}
	rect, ok := sess.windowRect(id)
	if !ok {
		return
	}
	opacity := opacityOverride
	if v, ok := sess.store.Opacity(id); ok {
		opacity = v
	}
	dim := 100.0
	if v, ok := sess.store.Dim(id); ok {
		dim = v
	}
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(rect.X, rect.Y)
	opts.ColorScale.ScaleAlpha(float32(opacity / 100.0))
	shade := float32(dim / 100.0)
	opts.ColorScale.Scale(shade, shade, shade, 1.0)
	target.DrawImage(tex.Img, opts)
}

func (sess *Session) shadowOrigin(id ecs.ID) (float64, float64) {
	rect, _ := sess.windowRect(id)
	return rect.X - 64, rect.Y - 64
}

// applyOpacityFocus implements §4.10 step 7.
func (sess *Session) applyOpacityFocus() {
	cfg := systems.OpacityConfig{
		InactiveOpacity:   float64(sess.cfg.InactiveOpacity),
		ActiveOpacity:     float64(sess.cfg.ActiveOpacity),
		InactiveDim:       float64(sess.cfg.InactiveDim),
		OpacityFadeTime:   sess.cfg.OpacityFadeTime,
		BgOpacityFadeTime: sess.cfg.BgOpacityFadeTime,
		DimFadeTime:       sess.cfg.DimFadeTime,
	}
	systems.ApplyOpacityFocus(sess.store, sess.fades, sess.overrides, sess.activeID, cfg, sess.order)
}

// runBlur implements §4.10 step 10: build the damage set and run the update
// pass for every window eligible for a blurred background.
func (sess *Session) runBlur(resized map[ecs.ID]bool) {
	if !sess.cfg.BlurBackground {
		return
	}
	order := blur.BuildOrder(sess.store, sess.fades, sess.order, resized)
	damageSet := blur.ComputeDamage(order)

	var damaged []ecs.ID
	sizes := make(map[ecs.ID][2]int, len(sess.order))
	for _, id := range sess.order {
		if !sess.blurEligible(id) {
			continue
		}
		phys, ok := sess.store.Physical(id)
		if !ok {
			continue
		}
		sizes[id] = [2]int{phys.Geometry.Width, phys.Geometry.Height}
		if damageSet[id] || sess.store.Has(id, ecs.BlurDamaged) {
			damaged = append(damaged, id)
		}
	}
	if len(damaged) == 0 {
		return
	}
	sess.blurSys.UpdatePass(&sceneView{sess: sess}, damaged, sizes)
}

func (sess *Session) blurEligible(id ecs.ID) bool {
	mud, ok := sess.store.Mud(id)
	if !ok || !mud.Solid {
		return false
	}
	w := sess.buildMatchWindow(id, mud)
	return !anyMatch(sess.blurBgExclude, w)
}

// runShadow implements §4.10 step 11.
func (sess *Session) runShadow() {
	for _, id := range sess.order {
		mud, ok := sess.store.Mud(id)
		if !ok {
			continue
		}
		st, ok := sess.store.Stateful(id)
		if !ok {
			continue
		}
		bypassed := sess.store.Has(id, ecs.Bypass)
		wintypeAllows := sess.overrides[mud.WindowType].Shadow
		w := sess.buildMatchWindow(id, mud)
		excluded := anyMatch(sess.shadowExclude, w)
		if !shadow.Eligible(mud, st.State, bypassed, wintypeAllows, excluded) {
			sess.shadowSys.Release(id)
			continue
		}
		if !sess.store.Has(id, ecs.ShadowDamaged) {
			if _, ok := sess.shadowSys.CacheFor(id); ok {
				continue
			}
		}
		tex := sess.textures.Texture(id)
		if tex == nil {
			continue
		}
		phys, ok := sess.store.Physical(id)
		if !ok {
			continue
		}
		c := sess.shadowSys.Ensure(id, phys.Geometry.Width, phys.Geometry.Height, int64(mud.XID))
		sess.shadowSys.Render(c, tex.Img)
		sess.store.SetShadow(id, ecs.ShadowComponent{Border: 64})
	}
}

// paint implements §4.10 step 12: opaque windows back-to-front, then
// shadows, then transparent windows, into the Composite overlay.
func (sess *Session) paint() {
	overlay := sess.backend.OverlayTexture()
	if overlay == nil {
		return
	}
	overlay.Img.Clear()
	if sess.rootTex != nil {
		drawFullscreen(overlay.Img, sess.rootTex.Img)
	}
	for _, id := range sess.order {
		if !sess.visible(id) {
			continue
		}
		if sess.isSolid(id) {
			sess.drawWindow(overlay.Img, id, 100)
		}
	}
	for _, id := range sess.order {
		if !sess.visible(id) {
			continue
		}
		if c, ok := sess.shadowSys.CacheFor(id); ok {
			x, y := sess.shadowOrigin(id)
			drawAt(overlay.Img, c.Effect.Img, x, y)
		}
	}
	for _, id := range sess.order {
		if !sess.visible(id) {
			continue
		}
		if !sess.isSolid(id) {
			sess.drawWindow(overlay.Img, id, 100)
		}
	}
	if err := sess.backend.Present(); err != nil {
		sess.log.Error().Err(err).Msg("present failed")
	}
}

func (sess *Session) visible(id ecs.ID) bool {
	st, ok := sess.store.Stateful(id)
	if !ok {
		return false
	}
	switch st.State {
	case ecs.StateInvisible, ecs.StateDestroying, ecs.StateDestroyed:
		return false
	}
	return !sess.store.Has(id, ecs.Bypass)
}

func (sess *Session) buildMatchWindow(id ecs.ID, mud *ecs.MudComponent) *match.Window {
	var g geom.Geometry
	if phys, ok := sess.store.Physical(id); ok {
		g = phys.Geometry
	}
	client, _ := sess.reg.client(id)
	return &match.Window{
		ID: mud.XID, X: g.X, Y: g.Y,
		Width: g.Width, Height: g.Height,
		WidthB: g.WidthB(), HeightB: g.HeightB(),
		BorderWidth:      g.Border,
		OverrideRedirect: mud.OverrideRedirect,
		Focused:          sess.activeSet && sess.activeID == id,
		WMWin:            mud.WMWin,
		Client:           client,
		WindowType:       mud.WindowType.Atom(),
		Name:             mud.Name,
		ClassGeneral:     mud.ClassGeneral,
		ClassInstance:    mud.ClassInstance,
		Role:             mud.Role,
		Atom:             func(string, bool, int) (any, bool) { return nil, false },
	}
}

func anyMatch(exprs []*match.Expr, w *match.Window) bool {
	for _, e := range exprs {
		if match.Evaluate(e, w) {
			return true
		}
	}
	return false
}

