package render

import "testing"

func TestPoolReusesBySize(t *testing.T) {
	p := NewPool()
	a := p.Acquire(64, 64, TargetColor)
	p.Release(a)
	b := p.Acquire(64, 64, TargetColor)
	if a != b {
		t.Errorf("expected pool to reuse a released texture of matching size")
	}
}

func TestPoolDistinguishesTarget(t *testing.T) {
	p := NewPool()
	a := p.Acquire(32, 32, TargetColor)
	p.Release(a)
	b := p.Acquire(32, 32, TargetDepthStencil)
	if a == b {
		t.Errorf("expected distinct target kinds not to share a pool bucket")
	}
}

func TestTextureResizeNoopSameSize(t *testing.T) {
	tex := NewTexture(16, 16, TargetColor)
	img := tex.Img
	tex.Resize(16, 16)
	if tex.Img != img {
		t.Errorf("expected Resize to a no-op when dimensions are unchanged")
	}
}

func TestFramebufferRequiresColor(t *testing.T) {
	fb := NewFramebuffer()
	if err := fb.Attach(nil, nil); err == nil {
		t.Errorf("expected error attaching a nil color target")
	}
	tex := NewTexture(8, 8, TargetColor)
	if err := fb.Attach(tex, nil); err != nil {
		t.Errorf("unexpected error attaching a valid color target: %v", err)
	}
	if fb.Attached&AttachTexture == 0 {
		t.Errorf("expected AttachTexture to be set")
	}
}

func TestRectFaceVertexAndIndexCounts(t *testing.T) {
	f := NewRectFace(10, 20)
	if len(f.Vertices) != 4 || len(f.Indices) != 6 {
		t.Fatalf("unexpected face shape: %d verts, %d indices", len(f.Vertices), len(f.Indices))
	}
	f.AppendRect(5, 5, 10, 10)
	if len(f.Vertices) != 8 || len(f.Indices) != 12 {
		t.Errorf("expected AppendRect to add 4 verts/6 indices, got %d/%d", len(f.Vertices), len(f.Indices))
	}
}

func TestNoiseTextureSize(t *testing.T) {
	tex := NewNoiseTexture(33, 17, 8, 1)
	if tex.Width != 33 || tex.Height != 17 {
		t.Errorf("expected noise texture sized 33x17, got %dx%d", tex.Width, tex.Height)
	}
}
