package blur

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/neocomp/neocomp/internal/ecs"
)

// Scene supplies the drawable content the update pass composites before
// blurring: everything the spec's §4.7 step 2 background pass needs,
// without blur importing render/systems' window-texture bookkeeping
// directly (kept here as a narrow interface so blur stays independently
// testable).
type Scene interface {
	// Draw renders the root texture, then, in back-to-front Z-order, every
	// opaque window behind id that overlaps it, then their shadows, then
	// every transparent window behind id that overlaps it — into target.
	Draw(id ecs.ID, target *ebiten.Image)
}

// UpdatePass runs §4.7's per-frame update pass for every window in
// damaged, back-to-front. For each window it composites the background
// into t1 via scene.Draw, applies Level downsample + Level upsample
// dual-Kawase passes, then flips the result into t0, stencil-clipped to
// the window's shape.
func (s *System) UpdatePass(scene Scene, damaged []ecs.ID, sizes map[ecs.ID][2]int) {
	for _, id := range damaged {
		wh, ok := sizes[id]
		if !ok {
			continue
		}
		c := s.Ensure(id, wh[0], wh[1])
		c.T1.Img.Clear()
		scene.Draw(id, c.T1.Img)
		s.applyDualKawase(c)
		s.clipToStencil(c)
	}
}

// applyDualKawase runs Level downsample passes (halving size each step)
// followed by Level upsample passes through a chain of temporary half-size
// images, leaving the final blurred result in c.T1 — mirroring the teacher's
// BlurFilter downscale/upscale temp-image chain, but using the Kage
// dual-Kawase shaders instead of a plain bilinear scale.
func (s *System) applyDualKawase(c *Cache) {
	current := c.T1.Img
	w, h := c.Width, c.Height
	chain := make([]*ebiten.Image, 0, s.Level)
	for i := 0; i < s.Level; i++ {
		w, h = max1(w/2), max1(h/2)
		down := ebiten.NewImage(w, h)
		s.down.SetFutureVec2("Offset", 1.0/float32(w), 1.0/float32(h))
		opts := s.down.Use()
		opts.GeoM.Reset()
		opts.GeoM.Scale(float64(w)/float64(current.Bounds().Dx()), float64(h)/float64(current.Bounds().Dy()))
		down.DrawRectShader(w, h, s.down.Compiled(), opts)
		chain = append(chain, down)
		current = down
	}
	for i := len(chain) - 2; i >= 0; i-- {
		target := chain[i]
		target.Clear()
		tw, th := target.Bounds().Dx(), target.Bounds().Dy()
		s.up.SetFutureVec2("Offset", 1.0/float32(tw), 1.0/float32(th))
		opts := s.up.Use()
		opts.GeoM.Reset()
		opts.GeoM.Scale(float64(tw)/float64(current.Bounds().Dx()), float64(th)/float64(current.Bounds().Dy()))
		target.DrawRectShader(tw, th, s.up.Compiled(), opts)
		current = target
	}
	c.T1.Img.Clear()
	s.up.SetFutureVec2("Offset", 1.0/float32(c.Width), 1.0/float32(c.Height))
	opts := s.up.Use()
	opts.GeoM.Reset()
	opts.GeoM.Scale(float64(c.Width)/float64(current.Bounds().Dx()), float64(c.Height)/float64(current.Bounds().Dy()))
	c.T1.Img.DrawRectShader(c.Width, c.Height, s.up.Compiled(), opts)
}

// clipToStencil flips the blurred t1 into t0, masked by the stencil
// renderbuffer so only pixels where the window's shape stencil is set are
// written (§4.7 step 4).
func (s *System) clipToStencil(c *Cache) {
	c.T0.Img.Clear()
	opts := s.clip.Use()
	opts.Images[0] = c.T1.Img
	opts.Images[1] = c.Stencil.Mask.Img
	c.T0.Img.DrawRectShader(c.Width, c.Height, s.clip.Compiled(), opts)
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
