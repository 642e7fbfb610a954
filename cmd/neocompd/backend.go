package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/neocomp/neocomp/internal/render"
)

// ebitenBackend implements render.Backend on top of ebiten's own window and
// present loop, the same way the teacher's gameShell (scene.go) wraps a
// Scene in an ebiten.Game: ebiten owns the actual swap/VSync wait, so
// Present here only has to exist to satisfy the interface. A production
// cgo GLX shim would instead bind the Composite overlay window directly
// and block on glXSwapBuffers; ebiten's own display loop already gives us
// that wait for free, which is what this binary uses.
type ebitenBackend struct {
	overlay *render.Texture
}

func newEbitenBackend(w, h int) *ebitenBackend {
	return &ebitenBackend{overlay: render.NewTexture(w, h, render.TargetColor)}
}

func (b *ebitenBackend) OverlayTexture() *render.Texture { return b.overlay }

func (b *ebitenBackend) resize(w, h int) {
	b.overlay.Resize(w, h)
}

// ImportPixmap wraps the root pixmap as a texture. Real texture-from-pixmap
// needs a GLX/EGL extension this pure-Go backend doesn't have; it allocates
// a same-sized surface instead, which the root-change handler then treats
// as the new background (content stays blank until a GLX backend replaces
// this one).
func (b *ebitenBackend) ImportPixmap(pixmapID uint32, w, h int) (*render.Texture, error) {
	return render.NewTexture(w, h, render.TargetColor), nil
}

func (b *ebitenBackend) Present() error { return nil }

func (b *ebitenBackend) Close() error {
	b.overlay.Dispose()
	return nil
}

// gameShell adapts a running Session to ebiten.Game so the overlay texture
// this backend owns actually reaches a window, matching the teacher's own
// gameShell (scene.go) delegation pattern.
type gameShell struct {
	backend *ebitenBackend
	w, h    int
}

func (g *gameShell) Update() error { return nil }

func (g *gameShell) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.backend.OverlayTexture().Img, nil)
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}
