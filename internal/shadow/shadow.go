// Package shadow implements the per-window shadow rendering pipeline
// (§4.8): a shadow texture rendered offset-by-border into the interior, a
// dual-Kawase blur at a fixed level, and a final noise-modulated,
// self-clipped composite. Grounded on the same filter.go/rendertarget.go
// patterns as internal/blur, compiling its own programs from the same
// dual-Kawase shader sources in internal/render (§4.8 step 3 "dual-Kawase
// blur ... at a fixed level").
package shadow

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/neocomp/neocomp/internal/ecs"
	"github.com/neocomp/neocomp/internal/match"
	"github.com/neocomp/neocomp/internal/render"
	"github.com/neocomp/neocomp/internal/wintype"
)

// borderRadius is the fixed shadow border described in §4.8 ("window_size +
// 2*border (border is a fixed 64-pixel radius)").
const borderRadius = 64

// blurLevel is the fixed dual-Kawase level used for shadow blurring, as
// opposed to blur's configurable level (§4.8 "at a fixed level (4)").
const blurLevel = 4

// Cache is the per-window shadow resource set: a shadow texture, an
// effect/swap texture, a tiled noise texture, and a depth-stencil
// renderbuffer, all sized to window_size + 2*borderRadius.
type Cache struct {
	Shadow  *render.Texture
	Effect  *render.Texture
	Noise   *render.Texture
	Stencil *render.RenderBuffer
	Width, Height int
}

// System owns every shadowed window's Cache plus the shared shaders.
type System struct {
	pool       *render.Pool
	shadowProg *render.ShaderProgram
	postProg   *render.ShaderProgram
	down       *render.ShaderProgram
	up         *render.ShaderProgram
	caches     map[ecs.ID]*Cache
	ShadowOpacity float64
}

// NewSystem compiles the shadow pipeline's shaders.
func NewSystem(shadowOpacity float64) (*System, error) {
	shadowShader, err := render.NewShadowShader()
	if err != nil {
		return nil, err
	}
	postShader, err := render.NewPostShadowShader()
	if err != nil {
		return nil, err
	}
	downShader, err := render.NewKawaseDownShader()
	if err != nil {
		return nil, err
	}
	upShader, err := render.NewKawaseUpShader()
	if err != nil {
		return nil, err
	}
	s := &System{
		pool:          render.NewPool(),
		shadowProg:    render.NewProgram(shadowShader),
		postProg:      render.NewProgram(postShader),
		down:          render.NewProgram(downShader),
		up:            render.NewProgram(upShader),
		caches:        make(map[ecs.ID]*Cache),
		ShadowOpacity: shadowOpacity,
	}
	s.postProg.SetFutureFloat("ShadowOpacity", float32(shadowOpacity))
	return s, nil
}

// Ensure returns id's shadow Cache sized to winW x winH + 2*borderRadius,
// (re)allocating it if absent or sized wrong.
func (s *System) Ensure(id ecs.ID, winW, winH int, noiseSeed int64) *Cache {
	w := winW + 2*borderRadius
	h := winH + 2*borderRadius
	c, ok := s.caches[id]
	if ok && c.Width == w && c.Height == h {
		return c
	}
	if ok {
		s.release(c)
	}
	c = &Cache{
		Shadow:  s.pool.Acquire(w, h, render.TargetColor),
		Effect:  s.pool.Acquire(w, h, render.TargetColor),
		Noise:   render.NewNoiseTexture(w, h, 32, noiseSeed),
		Stencil: render.NewRenderBuffer(w, h, true),
		Width:   w, Height: h,
	}
	s.caches[id] = c
	return c
}

// CacheFor returns id's shadow Cache without allocating one.
func (s *System) CacheFor(id ecs.ID) (*Cache, bool) {
	c, ok := s.caches[id]
	return c, ok
}

// Release returns id's shadow resources to the pool.
func (s *System) Release(id ecs.ID) {
	if c, ok := s.caches[id]; ok {
		s.release(c)
		delete(s.caches, id)
	}
}

func (s *System) release(c *Cache) {
	s.pool.Release(c.Shadow)
	s.pool.Release(c.Effect)
}

// Render implements §4.8 steps 1-4 for one window: windowTex is the
// window's own content texture, sampled only for alpha.
func (s *System) Render(c *Cache, windowTex *ebiten.Image) {
	c.Shadow.Img.Clear()
	opts := s.shadowProg.Use()
	opts.Images[0] = windowTex
	opts.GeoM.Translate(float64(borderRadius), float64(borderRadius))
	c.Shadow.Img.DrawRectShader(c.Width, c.Height, s.shadowProg.Compiled(), opts)

	s.blurInto(c)

	c.Effect.Img.Clear()
	post := s.postProg.Use()
	post.Images[0] = c.Shadow.Img
	post.Images[1] = c.Noise.Img
	post.Images[2] = windowTex
	c.Effect.Img.DrawRectShader(c.Width, c.Height, s.postProg.Compiled(), post)
}

// blurInto runs blurLevel dual-Kawase down/up passes on c.Shadow, leaving
// the blurred result back in c.Shadow via the ping-pong Effect texture.
func (s *System) blurInto(c *Cache) {
	current := c.Shadow.Img
	for i := 0; i < blurLevel; i++ {
		s.down.SetFutureVec2("Offset", 1.0/float32(c.Width), 1.0/float32(c.Height))
		opts := s.down.Use()
		c.Effect.Img.Clear()
		c.Effect.Img.DrawRectShader(c.Width, c.Height, s.down.Compiled(), opts)
		current = c.Effect.Img
	}
	for i := 0; i < blurLevel; i++ {
		s.up.SetFutureVec2("Offset", 1.0/float32(c.Width), 1.0/float32(c.Height))
		opts := s.up.Use()
		c.Shadow.Img.Clear()
		c.Shadow.Img.DrawRectShader(c.Width, c.Height, s.up.Compiled(), opts)
		current = c.Shadow.Img
	}
	_ = current
}

// Eligible implements §4.8's shadow-eligibility rule: a bypassed window or
// one in state Invisible/Destroyed never gets a shadow. Otherwise the
// _COMPTON_SHADOW per-window override from original_source/src/atoms.c
// (§D), held in Mud.ShadowForce, decides when it is True or False; when it
// is Unset, the window gets a shadow only if its window type permits
// shadows and no shadow-exclude rule matches.
func Eligible(mud *ecs.MudComponent, state ecs.State, bypassed bool, wintypeAllows bool, excludeMatch bool) bool {
	if bypassed {
		return false
	}
	if state == ecs.StateInvisible || state == ecs.StateDestroyed {
		return false
	}
	if mud.ShadowForce == match.True {
		return true
	}
	if mud.ShadowForce == match.False {
		return false
	}
	if !wintypeAllows {
		return false
	}
	if excludeMatch {
		return false
	}
	return true
}

// wintypeAllowsShadow reports the per-type Shadow toggle from overrides
// (wintype.Overrides.Shadow); there is no separate built-in table here.
func wintypeAllowsShadow(t wintype.Type, overrides [wintype.Count]wintype.Overrides) bool {
	return overrides[t].Shadow
}
