package render

import "github.com/hajimehoshi/ebiten/v2"

// UniformKind is the typed-uniform enumeration from §4.5's shader descriptor
// format (`bool, float, sampler, vec2, vec3, ignored`, each with an optional
// default).
type UniformKind int

const (
	UniformBool UniformKind = iota
	UniformFloat
	UniformSampler
	UniformVec2
	UniformVec3
	UniformIgnored
)

// UniformDecl is one declared uniform slot: its name, kind, and default
// value (nil if none).
type UniformDecl struct {
	Name    string
	Kind    UniformKind
	Default any
}

// Shader wraps a compiled Kage shader plus its declared uniform layout. The
// spec's "reflection struct" binding-by-offset is modeled in idiomatic Go as
// binding into a map[string]any (ebiten.DrawRectShaderOptions.Uniforms)
// rather than an unsafe offset walk — there is no equivalent of C struct
// layout reflection in Go, and a map keyed by uniform name is exactly what
// ebiten's own shader API expects, so no translation layer is needed. The
// declared names are recorded but not checked against the compiled shader.
type Shader struct {
	compiled *ebiten.Shader
	decls    []UniformDecl
}

// NewShader compiles src and records decls, the declared uniform table. It
// returns only compile errors: decls are not compared with the uniforms of
// the compiled shader, so a declared uniform missing from src is not
// reported. decls with UniformIgnored are kept in the descriptor but never
// staged by NewProgram.
func NewShader(src []byte, decls []UniformDecl) (*Shader, error) {
	compiled, err := ebiten.NewShader(src)
	if err != nil {
		return nil, err
	}
	return &Shader{compiled: compiled, decls: decls}, nil
}

// ShaderProgram is one live instance of a Shader plus its staged uniform
// values. "Future" setters stash a value without touching the GPU; Use
// flushes every staged value into the DrawRectShaderOptions and clears the
// staging bit, matching §4.5's shader_set_future_uniform_*/shader_use
// contract.
type ShaderProgram struct {
	shader  *Shader
	staged  map[string]any
	pending bool
	opts    ebiten.DrawRectShaderOptions
}

// NewProgram returns a program bound to shader, with every declared default
// pre-staged.
func NewProgram(shader *Shader) *ShaderProgram {
	p := &ShaderProgram{shader: shader, staged: make(map[string]any)}
	for _, d := range shader.decls {
		if d.Kind != UniformIgnored && d.Default != nil {
			p.staged[d.Name] = d.Default
		}
	}
	p.pending = true
	return p
}

// SetFutureBool stages a bool uniform without issuing any GPU call.
func (p *ShaderProgram) SetFutureBool(name string, v bool) { p.setFuture(name, v) }

// SetFutureFloat stages a float uniform.
func (p *ShaderProgram) SetFutureFloat(name string, v float32) { p.setFuture(name, v) }

// SetFutureVec2 stages a 2-vector uniform.
func (p *ShaderProgram) SetFutureVec2(name string, x, y float32) { p.setFuture(name, [2]float32{x, y}) }

// SetFutureVec3 stages a 3-vector uniform.
func (p *ShaderProgram) SetFutureVec3(name string, x, y, z float32) {
	p.setFuture(name, [3]float32{x, y, z})
}

// SetFutureSampler stages which image binding (0, 1, ...) imageSrcNAt reads;
// ebiten resolves sampler images positionally via DrawRectShaderOptions.Images,
// not by uniform name, so this records into opts.Images directly rather than
// the staged map.
func (p *ShaderProgram) SetFutureSampler(slot int, img *ebiten.Image) {
	p.opts.Images[slot] = img
	p.pending = true
}

func (p *ShaderProgram) setFuture(name string, v any) {
	p.staged[name] = v
	p.pending = true
}

// Use activates the program, flushing every staged uniform into the draw
// options and clearing the staging flag. Returns the options ready for
// DrawRectShader.
func (p *ShaderProgram) Use() *ebiten.DrawRectShaderOptions {
	if p.pending {
		p.opts.Uniforms = p.staged
		p.pending = false
	}
	return &p.opts
}

// Compiled returns the underlying compiled shader for DrawRectShader calls.
func (p *ShaderProgram) Compiled() *ebiten.Shader { return p.shader.compiled }
