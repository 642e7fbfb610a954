// Package render implements the GPU primitives named in §4.5 — Texture,
// RenderBuffer, Framebuffer, BufferObject, Face, Shader/ShaderProgram — as
// thin wrappers over *ebiten.Image and *ebiten.Shader. Grounded on
// filter.go's lazy-compile-once Kage shader pattern and rendertarget.go's
// renderTexturePool (Acquire/Release keyed by exact size and Target), both from
// the teacher.
package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Target distinguishes the two offscreen roles a Texture can serve; unlike
// a real GL texture object, an *ebiten.Image is already both "sampleable
// texture" and "drawable surface", so Target here only documents intent,
// matching the spec's "allocation is separate from storage assignment" —
// the storage (image bytes) exists from construction, the Target is what a
// Framebuffer later binds it as.
type Target int

const (
	TargetColor Target = iota
	TargetDepthStencil
)

// Texture owns one offscreen image, its Target, and its size. Framebuffer
// attaches Textures; Face/BufferObject sample them.
type Texture struct {
	Img    *ebiten.Image
	Target Target
	Width  int
	Height int
}

// NewTexture allocates an unmanaged offscreen image of the given size. Unmanaged
// avoids ebiten's automatic atlas packing, matching the teacher's
// renderTexturePool's explicit pooling (we want full control over lifetime,
// since windows are created/destroyed far more often than willow's cached
// node subtrees).
func NewTexture(w, h int, target Target) *Texture {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), &ebiten.NewImageOptions{Unmanaged: true})
	return &Texture{Img: img, Target: target, Width: w, Height: h}
}

// Resize replaces the backing image if the requested size differs from the
// current one, discarding prior contents — callers that need the old
// contents preserved must blit before calling Resize (the §4.7/§4.8 caches
// do this via ContentsDamaged/BlurDamaged marking a fresh draw anyway).
func (t *Texture) Resize(w, h int) {
	if w == t.Width && h == t.Height {
		return
	}
	t.Img = ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), &ebiten.NewImageOptions{Unmanaged: true})
	t.Width, t.Height = w, h
}

// Dispose releases the underlying GPU image. Safe to call on a nil-backed
// Texture.
func (t *Texture) Dispose() {
	if t.Img != nil {
		t.Img.Deallocate()
	}
}

// Pool recycles Textures keyed by (width, height, Target) so the common
// case — a window resized back to a previous size, or a new window that
// happens to match another's dimensions — doesn't force a fresh GPU
// allocation. Grounded directly on the teacher's renderTexturePool.
type Pool struct {
	buckets map[poolKey][]*Texture
}

type poolKey struct {
	w, h int
	t    Target
}

// NewPool returns an empty texture pool.
func NewPool() *Pool { return &Pool{buckets: make(map[poolKey][]*Texture)} }

// Acquire returns a cleared texture of exactly (w, h), reusing a pooled one
// if available.
func (p *Pool) Acquire(w, h int, target Target) *Texture {
	key := poolKey{w, h, target}
	if stack := p.buckets[key]; len(stack) > 0 {
		tex := stack[len(stack)-1]
		p.buckets[key] = stack[:len(stack)-1]
		tex.Img.Clear()
		return tex
	}
	return NewTexture(w, h, target)
}

// Release returns tex to the pool for reuse. Contents are cleared lazily on
// the next Acquire, not here.
func (p *Pool) Release(tex *Texture) {
	if tex == nil {
		return
	}
	key := poolKey{tex.Width, tex.Height, tex.Target}
	p.buckets[key] = append(p.buckets[key], tex)
}
