package render

import "github.com/hajimehoshi/ebiten/v2"

// BufferObject models a streaming vertex/index buffer. ebiten has no public
// raw-GL-buffer binding — Image.DrawTriangles takes a []ebiten.Vertex/[]uint16
// slice directly each call, which is exactly GL_STREAM_DRAW usage (re-upload
// every frame). BufferObject wraps that slice with the high-water-mark
// growth strategy from the teacher's ensureTransformedVerts, so Update never
// reallocates once warmed up.
type BufferObject struct {
	data []byte
}

// NewBufferObject allocates a buffer of the given byte size.
func NewBufferObject(size int) *BufferObject {
	return &BufferObject{data: make([]byte, size)}
}

// Update writes data at offset, growing the backing slice (high-water-mark,
// never shrinking) if offset+len(data) exceeds the current size.
func (b *BufferObject) Update(offset int, data []byte) {
	need := offset + len(data)
	if need > len(b.data) {
		grown := make([]byte, need)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[offset:], data)
}

// Bytes returns the buffer's current contents.
func (b *BufferObject) Bytes() []byte { return b.data }

// Face is a positions+UVs vertex/index pair, either procedurally built (a
// list of rectangles, the common case for window/shadow quads) or supplied
// directly from a loaded mesh.
type Face struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// NewRectFace builds a Face containing a single rectangle spanning
// [0,w]x[0,h] in local space, sampling source pixels [0,w]x[0,h] — the
// common case for a window's paint quad, a blur target, or a shadow quad.
func NewRectFace(w, h float32) *Face {
	return &Face{
		Vertices: []ebiten.Vertex{
			{DstX: 0, DstY: 0, SrcX: 0, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			{DstX: w, DstY: 0, SrcX: w, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			{DstX: w, DstY: h, SrcX: w, SrcY: h, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			{DstX: 0, DstY: h, SrcX: 0, SrcY: h, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

// AppendRect appends a second rectangle (e.g. batching multiple windows'
// quads into one draw) to an existing Face, offsetting indices accordingly.
func (f *Face) AppendRect(x, y, w, h float32) {
	base := uint16(len(f.Vertices))
	f.Vertices = append(f.Vertices,
		ebiten.Vertex{DstX: x, DstY: y, SrcX: 0, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: x + w, DstY: y, SrcX: w, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: x + w, DstY: y + h, SrcX: w, SrcY: h, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: x, DstY: y + h, SrcX: 0, SrcY: h, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	)
	f.Indices = append(f.Indices, base, base+1, base+2, base, base+2, base+3)
}

// Reset empties the face for reuse without reallocating its backing arrays.
func (f *Face) Reset() {
	f.Vertices = f.Vertices[:0]
	f.Indices = f.Indices[:0]
}
