package systems

import (
	"github.com/neocomp/neocomp/internal/ecs"
	"github.com/neocomp/neocomp/internal/render"
)

// TextureCache owns the GPU texture backing each mapped window's content,
// keyed by entity id — kept in internal/systems rather than ecs so the ecs
// package never imports render (§ecs DESIGN entry).
type TextureCache struct {
	pool   *render.Pool
	images map[ecs.ID]*render.Texture
}

// NewTextureCache returns an empty cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{pool: render.NewPool(), images: make(map[ecs.ID]*render.Texture)}
}

// ApplyTexture implements §4.10 step 5: create or resize each live window's
// Textured component/texture to match its current Physical geometry,
// marking ContentsDamaged when the texture is freshly (re)allocated. The
// paint phase does not read ContentsDamaged; the session clears it at the
// end of the tick.
func (c *TextureCache) ApplyTexture(store *ecs.Store, ids []ecs.ID) {
	for _, id := range ids {
		phys, ok := store.Physical(id)
		if !ok {
			continue
		}
		w, h := phys.Geometry.Width, phys.Geometry.Height
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		cur, ok := store.Textured(id)
		if ok && cur.Width == w && cur.Height == h {
			continue
		}
		if tex, had := c.images[id]; had {
			c.pool.Release(tex)
		}
		c.images[id] = c.pool.Acquire(w, h, render.TargetColor)
		store.SetTextured(id, ecs.TexturedComponent{Width: w, Height: h})
		store.Set(id, ecs.ContentsDamaged)
	}
}

// Texture returns the live GPU texture for id, or nil if it has none.
func (c *TextureCache) Texture(id ecs.ID) *render.Texture {
	return c.images[id]
}

// Release frees id's texture back to the pool — called when a window is
// destroyed.
func (c *TextureCache) Release(id ecs.ID) {
	if tex, ok := c.images[id]; ok {
		c.pool.Release(tex)
		delete(c.images, id)
	}
}
