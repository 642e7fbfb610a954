package session

import (
	"github.com/neocomp/neocomp/internal/ecs"
	"github.com/neocomp/neocomp/internal/geom"
	"github.com/neocomp/neocomp/internal/systems"
	"github.com/neocomp/neocomp/internal/xevent"
)

// applyEvents implements §4.10 step 1's back half: translate each
// normalized xevent.Event into entity-store mutations (transient intent
// components, or immediate bookkeeping for events with no corresponding
// intent kind).
func (sess *Session) applyEvents(events []xevent.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case xevent.KAdd:
			sess.onAdd(ev)
		case xevent.KDestroy:
			sess.onDestroy(ev)
		case xevent.KClient:
			sess.onClient(ev)
		case xevent.KMap:
			sess.onMap(ev, false)
		case xevent.KBypass:
			sess.onMap(ev, true)
		case xevent.KUnmap:
			sess.onUnmap(ev)
		case xevent.KMandr:
			sess.onMandr(ev)
		case xevent.KRestack:
			sess.onRestack(ev)
		case xevent.KFocus:
			sess.onFocus(ev)
		case xevent.KNewRoot:
			sess.onNewRoot(ev)
		case xevent.KCanvasChange:
			sess.canvasW, sess.canvasH = ev.CanvasWidth, ev.CanvasHeight
		case xevent.KDamage:
			sess.onDamage(ev)
		case xevent.KShape:
			sess.onShape(ev)
		case xevent.KWintype:
			sess.onWintype(ev)
		case xevent.KWinClass:
			sess.onWinClass(ev)
		}
	}
}

func (sess *Session) onAdd(ev xevent.Event) {
	if _, ok := sess.reg.entity(ev.XID); ok {
		return
	}
	id := sess.store.Allocate()
	sess.reg.bind(ev.XID, id)
	sess.order = append(sess.order, id)
	sess.store.Set(id, ecs.TracksWindow)
	name, classGeneral, classInstance, role := sess.ing.WindowNames(ev.XID)
	wt := sess.ing.WindowType(ev.XID)
	sess.store.SetMud(id, ecs.MudComponent{
		XID:              ev.XID,
		WindowType:       wt,
		Name:             name,
		ClassGeneral:     classGeneral,
		ClassInstance:    classInstance,
		Role:             role,
		OverrideRedirect: ev.OverrideRedirect,
		CacheOpacityRule: intPtr(-1),
	})
	sess.store.SetPhysical(id, ecs.PhysicalComponent{Geometry: geom.Geometry{
		X: ev.X, Y: ev.Y, Width: ev.Width, Height: ev.Height, Border: ev.Border,
	}})
	sess.store.SetStateful(id, ecs.StatefulComponent{State: ecs.StateInvisible})
	sess.store.Set(id, ecs.ShapeDamaged)
}

func (sess *Session) onDestroy(ev xevent.Event) {
	id, ok := sess.reg.entity(ev.XID)
	if !ok {
		return
	}
	sess.store.Set(id, ecs.DestroyIntent)
}

func (sess *Session) onClient(ev xevent.Event) {
	id, ok := sess.reg.entity(ev.XID)
	if !ok {
		return
	}
	sess.reg.setClient(id, ev.Client)
	sess.store.Set(id, ecs.HasClient)
}

func (sess *Session) onMap(ev xevent.Event, bypass bool) {
	id, ok := sess.reg.entity(ev.XID)
	if !ok {
		return
	}
	sess.store.Set(id, ecs.MapIntent)
	sess.store.Set(id, ecs.ShapeDamaged)
	sess.store.Set(id, ecs.ContentsDamaged)
	if bypass {
		sess.store.Set(id, ecs.Bypass)
	} else {
		sess.store.Clear(id, ecs.Bypass)
	}
}

func (sess *Session) onUnmap(ev xevent.Event) {
	id, ok := sess.reg.entity(ev.XID)
	if !ok {
		return
	}
	sess.store.Set(id, ecs.UnmapIntent)
}

func (sess *Session) onMandr(ev xevent.Event) {
	id, ok := sess.reg.entity(ev.XID)
	if !ok {
		return
	}
	sess.store.SetMoveIntent(id, ecs.MoveIntentComponent{X: ev.X, Y: ev.Y})
	sess.store.SetResizeIntent(id, ecs.ResizeIntentComponent{Width: ev.Width, Height: ev.Height})
}

func (sess *Session) onRestack(ev xevent.Event) {
	id, ok := sess.reg.entity(ev.XID)
	if !ok {
		return
	}
	op := systems.RestackOp{ID: id}
	switch ev.RestackLoc {
	case xevent.RestackHighest:
		op.Highest = true
	case xevent.RestackLowest:
		op.Lowest = true
	default:
		if above, ok := sess.reg.entity(ev.Above); ok {
			op.Above = above
		}
	}
	sess.restackOps = append(sess.restackOps, op)
}

func (sess *Session) onFocus(ev xevent.Event) {
	id, ok := sess.entityForXIDOrClient(ev.XID)
	if !ok {
		return
	}
	if sess.activeSet && sess.activeID != id {
		if sess.store.Alive(sess.activeID) {
			sess.store.SetFocusChange(sess.activeID, ecs.FocusChangeComponent{Active: false})
			sess.store.Set(sess.activeID, ecs.FocusChanged)
		}
	}
	sess.activeID = id
	sess.activeSet = true
	sess.store.SetFocusChange(id, ecs.FocusChangeComponent{Active: true})
	sess.store.Set(id, ecs.FocusChanged)
}

func (sess *Session) onNewRoot(ev xevent.Event) {
	tex, err := sess.backend.ImportPixmap(ev.Pixmap, sess.canvasW, sess.canvasH)
	if err != nil {
		sess.log.Warn().Err(err).Msg("failed to import root pixmap")
		return
	}
	sess.rootTex = tex
}

func (sess *Session) onDamage(ev xevent.Event) {
	id, ok := sess.reg.entity(ev.XID)
	if !ok {
		return
	}
	sess.store.Set(id, ecs.ContentsDamaged)
	sess.store.Set(id, ecs.ShadowDamaged)
}

func (sess *Session) onShape(ev xevent.Event) {
	id, ok := sess.reg.entity(ev.XID)
	if !ok {
		return
	}
	sess.store.Set(id, ecs.ShapeDamaged)
}

func (sess *Session) onWintype(ev xevent.Event) {
	id, ok := sess.reg.entity(ev.XID)
	if !ok {
		return
	}
	mud, ok := sess.store.Mud(id)
	if !ok {
		return
	}
	mud.WindowType = sess.ing.WindowType(ev.XID)
	sess.store.SetMud(id, *mud)
	sess.store.Set(id, ecs.WintypeChanged)
}

func (sess *Session) onWinClass(ev xevent.Event) {
	id, ok := sess.reg.entity(ev.XID)
	if !ok {
		return
	}
	mud, ok := sess.store.Mud(id)
	if !ok {
		return
	}
	name, classGeneral, classInstance, role := sess.ing.WindowNames(ev.XID)
	mud.Name, mud.ClassGeneral, mud.ClassInstance, mud.Role = name, classGeneral, classInstance, role
	sess.store.SetMud(id, *mud)
}

// entityForXIDOrClient resolves a _NET_ACTIVE_WINDOW value, which may name
// either a frame the ingestor tracks directly or a client window nested
// under one (§4.1's closest-client relationship runs the other direction,
// so focus resolution has to check both).
func (sess *Session) entityForXIDOrClient(xid uint32) (ecs.ID, bool) {
	if id, ok := sess.reg.entity(xid); ok {
		return id, true
	}
	for id, clientXID := range sess.reg.clientOf {
		if clientXID == xid {
			return id, true
		}
	}
	return 0, false
}

func intPtr(v int) *int { return &v }
