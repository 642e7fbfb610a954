// Package geom holds the small set of 2D primitives shared by the entity
// store's Physical component, the render passes, and the blur/shadow
// systems. Grounded on willow's Rect/Vec2 (willow.go) — trimmed to what a
// window compositor needs: axis-aligned rectangles and integer screen
// geometry, not the full affine/skew/pivot transform willow's generic scene
// graph nodes carry (no compositor window is rotated or skewed).
package geom

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with the origin at the top-left and Y
// increasing downward, matching X11 screen coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap. Adjacent rectangles
// (sharing only an edge) are considered intersecting, matching the
// overlap test the blur damage-propagation pass (§4.7) needs: two windows
// that merely touch still force a re-blur of the pixels at the seam.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest Rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Inset shrinks (positive n) or grows (negative n) the rectangle by n on
// every side. Used by the shadow system to expand a window's footprint by
// the fixed border radius (§4.8).
func (r Rect) Inset(n float64) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, Width: r.Width - 2*n, Height: r.Height - 2*n}
}

// Geometry is the position+size+border tuple carried by X11 Add/Mandr
// events (§4.1).
type Geometry struct {
	X, Y          int
	Width, Height int
	Border        int
}

// Rect converts a Geometry (excluding border) to a Rect.
func (g Geometry) Rect() Rect {
	return Rect{X: float64(g.X), Y: float64(g.Y), Width: float64(g.Width), Height: float64(g.Height)}
}

// WidthB and HeightB return the width/height including the border on both
// sides, matching the widthb/heightb predefined match-engine targets (§4.3).
func (g Geometry) WidthB() int  { return g.Width + 2*g.Border }
func (g Geometry) HeightB() int { return g.Height + 2*g.Border }
