package session

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/neocomp/neocomp/internal/ecs"
)

// sceneView implements blur.Scene: it renders, back-to-front, everything
// sitting behind a window that the blur update pass needs to sample (§4.7
// step 2 — the root texture, then opaque windows, their shadows, then
// transparent windows, the windows limited to those overlapping the
// requested window).
type sceneView struct {
	sess *Session
}

func (v *sceneView) Draw(id ecs.ID, target *ebiten.Image) {
	sess := v.sess
	idx := indexOf(sess.order, id)
	if idx < 0 {
		return
	}
	rect, ok := sess.windowRect(id)
	if !ok {
		return
	}

	if sess.rootTex != nil {
		drawFullscreen(target, sess.rootTex.Img)
	}

	for i := 0; i < idx; i++ {
		other := sess.order[i]
		if !sess.overlaps(other, rect) {
			continue
		}
		if sess.isSolid(other) {
			sess.drawWindow(target, other, 100)
		}
	}
	for i := 0; i < idx; i++ {
		other := sess.order[i]
		if !sess.overlaps(other, rect) {
			continue
		}
		if c, ok := sess.shadowSys.CacheFor(other); ok {
			drawAt(target, c.Effect.Img, sess.shadowOrigin(other))
		}
	}
	for i := 0; i < idx; i++ {
		other := sess.order[i]
		if !sess.overlaps(other, rect) {
			continue
		}
		if !sess.isSolid(other) {
			sess.drawWindow(target, other, 100)
		}
	}
}

func drawFullscreen(target, src *ebiten.Image) {
	opts := &ebiten.DrawImageOptions{}
	target.DrawImage(src, opts)
}

func drawAt(target, src *ebiten.Image, x, y float64) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(x, y)
	target.DrawImage(src, opts)
}

func indexOf(order []ecs.ID, id ecs.ID) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}
