package render

// Kage shader sources for the dual-Kawase blur passes (§4.7 step 3) and the
// shadow pipeline (§4.8 steps 2-4). Grounded on the teacher's filter.go
// pattern (raw Kage string constants, compiled once via ebiten.NewShader)
// and the standard dual-Kawase sampling pattern: each pass taps four
// diagonal neighbors at a half-pixel offset scaled by a per-pass radius,
// rather than a plain bilinear box blur like the teacher's own BlurFilter —
// dual-Kawase is what the spec names explicitly (§4.7: "±half-pixel tap
// pattern").

const kawaseDownSrc = `//kage:unit pixels
package main

var Offset vec2

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	half := Offset * 0.5
	sum := imageSrc0At(src) * 4.0
	sum += imageSrc0At(src - half)
	sum += imageSrc0At(src + vec2(half.x, -half.y))
	sum += imageSrc0At(src + vec2(-half.x, half.y))
	sum += imageSrc0At(src + half)
	return sum / 8.0
}
`

const kawaseUpSrc = `//kage:unit pixels
package main

var Offset vec2

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	sum := imageSrc0At(src + vec2(-Offset.x*2.0, 0))
	sum += imageSrc0At(src + vec2(-Offset.x, Offset.y)) * 2.0
	sum += imageSrc0At(src + vec2(0, Offset.y*2.0))
	sum += imageSrc0At(src + vec2(Offset.x, Offset.y)) * 2.0
	sum += imageSrc0At(src + vec2(Offset.x*2.0, 0))
	sum += imageSrc0At(src + vec2(Offset.x, -Offset.y)) * 2.0
	sum += imageSrc0At(src + vec2(0, -Offset.y*2.0))
	sum += imageSrc0At(src + vec2(-Offset.x, -Offset.y)) * 2.0
	return sum / 12.0
}
`

// ShadowSrc renders a window's bounding shape, offset inward by a fixed
// border, into the shadow texture, using the window texture only as an
// alpha source (§4.8 step 2).
const shadowSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	a := imageSrc0At(src).a
	return vec4(0, 0, 0, a)
}
`

// PostShadowSrc modulates the blurred shadow (imageSrc0) with a tiled noise
// texture sampled from imageSrc1 and clips out the window's own footprint
// using the alpha of the window texture sampled from imageSrc2 (§4.8 step 4).
const postShadowSrc = `//kage:unit pixels
package main

var ShadowOpacity float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	shadow := imageSrc0At(src)
	noise := imageSrc1At(src)
	footprint := imageSrc2At(src).a
	a := shadow.a * (0.9 + 0.2*noise.r) * ShadowOpacity * (1.0 - footprint)
	return vec4(0, 0, 0, clamp(a, 0, 1))
}
`

// ClipSrc multiplies a blurred color source by a stencil mask's alpha,
// writing zero alpha everywhere the mask is unset — the blur system's
// "stencil-clipped to the window's shape" step (§4.7 step 4).
const clipSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	mask := imageSrc1At(src).a
	return c * mask
}
`

// NewClipShader compiles the stencil-clip shader.
func NewClipShader() (*Shader, error) {
	return NewShader([]byte(clipSrc), nil)
}

// NewKawaseDownShader compiles the downsample pass shader.
func NewKawaseDownShader() (*Shader, error) {
	return NewShader([]byte(kawaseDownSrc), []UniformDecl{{Name: "Offset", Kind: UniformVec2}})
}

// NewKawaseUpShader compiles the upsample pass shader.
func NewKawaseUpShader() (*Shader, error) {
	return NewShader([]byte(kawaseUpSrc), []UniformDecl{{Name: "Offset", Kind: UniformVec2}})
}

// NewShadowShader compiles the shadow-shape shader.
func NewShadowShader() (*Shader, error) {
	return NewShader([]byte(shadowSrc), nil)
}

// NewPostShadowShader compiles the noise-modulation/clip shader.
func NewPostShadowShader() (*Shader, error) {
	return NewShader([]byte(postShadowSrc), []UniformDecl{{Name: "ShadowOpacity", Kind: UniformFloat, Default: float32(0.75)}})
}
