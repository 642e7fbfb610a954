package ecs

import (
	"github.com/neocomp/neocomp/internal/geom"
	"github.com/neocomp/neocomp/internal/match"
	"github.com/neocomp/neocomp/internal/wintype"
)

// Kind identifies one of the fixed, ordered component kinds declared for
// this store (§3). The order here has no semantic meaning beyond indexing
// the per-kind bitset/payload tables; it is fixed at program start as the
// spec requires ("a fixed, ordered set of component kinds").
type Kind int

const (
	Meta Kind = iota
	Mud
	TracksWindow
	HasClient
	Physical
	Z

	MapIntent
	UnmapIntent
	DestroyIntent
	MoveIntent
	ResizeIntent

	Textured
	ShadowCache
	BlurCache
	Shaped

	Opacity
	BgOpacity
	Dim

	FadesOpacity
	FadesBgOpacity
	FadesDim

	FocusChange
	Transitioning
	Stateful

	BlurDamaged
	ShadowDamaged
	ContentsDamaged
	ShapeDamaged
	FocusChanged
	WintypeChanged

	Tint
	Redirected
	Bypass
	Debugged

	numKinds
)

// State is the window state machine value (§4.6).
type State int

const (
	StateHiding State = iota
	StateInvisible
	StateWaiting
	StateActivating
	StateActive
	StateDeactivating
	StateInactive
	StateDestroying
	StateDestroyed
)

var stateNames = [...]string{
	StateHiding: "hiding", StateInvisible: "invisible", StateWaiting: "waiting",
	StateActivating: "activating", StateActive: "active", StateDeactivating: "deactivating",
	StateInactive: "inactive", StateDestroying: "destroying", StateDestroyed: "destroyed",
}

func (s State) String() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Margin is a margin_t equivalent: the four _NET_FRAME_EXTENTS values. Read
// but not consumed by any system, per the spec's open-question resolution.
type Margin struct {
	Top, Left, Bottom, Right int
}

// MudComponent is the heavyweight per-window record: the fields that
// haven't been decomposed into fine-grained components (§3's "Mud
// component").
type MudComponent struct {
	XID          uint32
	Visual       uint32
	WindowType   wintype.Type
	Name         string
	ClassGeneral string
	ClassInstance string
	Role         string
	Leader       uint32
	CacheLeader  uint32

	WMWin            bool
	Fullscreen       bool
	Solid            bool
	OverrideRedirect bool
	BoundingShaped   bool

	FrameExtents Margin
	XineramaScr  int

	ShadowForce match.TriState // _COMPTON_SHADOW override

	// Cached rule-match results (nil = not yet evaluated this generation).
	CacheShadowRule *bool
	CacheFadeRule   *bool
	CacheFocusRule  *bool
	CacheInvertRule *bool
	CacheBlurRule   *bool
	CacheOpacityRule *int // -1 = no opacity-rule match

	Destroyed bool
}

// PhysicalComponent is the current screen position/size (§3), updated only
// by the physical system at tick.
type PhysicalComponent struct {
	Geometry geom.Geometry
}

// ZComponent is the derived render depth: the entity's 1-based index in the
// order vector divided by len(order)+1 (see systems.AssignZ). The divisor
// depends on the current window count; it is not a fixed constant.
type ZComponent struct {
	Value float32
}

// MoveIntentComponent / ResizeIntentComponent carry one-shot new geometry
// produced by ingestion, consumed by the physical system (§3).
type MoveIntentComponent struct{ X, Y int }
type ResizeIntentComponent struct{ Width, Height int }

// TexturedComponent marks that a GL texture mirrors the window's pixmap.
// The concrete texture handle lives in internal/systems' TextureCache keyed
// by entity id, not inlined here, so the ecs package has no GPU dependency.
type TexturedComponent struct {
	Width, Height int
}

// ShadowComponent records that a window owns shadow-system GPU resources;
// see internal/shadow for the resource cache keyed by entity id.
type ShadowComponent struct {
	Border int // fixed per spec, kept here so invariants can be asserted locally
}

// BlurComponent records that a window owns blur-system GPU resources; see
// internal/blur for the resource cache keyed by entity id.
type BlurComponent struct{}

// ShapedComponent is the last-known bounding shape: normalized sub-rectangles
// in window-local coordinates (§3, §4.8's "shaped windows").
type ShapedComponent struct {
	Rects []geom.Rect
}

// FadesComponent is the keyframe-ring animation state for one scalar value
// (opacity, bg-opacity, or dim). The concrete ring lives in internal/fade;
// this component only marks presence and holds the ring handle so the ecs package stays
// free of the fade package's gween dependency. See internal/fade.Registry.
type FadesComponent struct {
	RingID uint32
}

// FocusChangeComponent is the transient target produced by the opacity
// system when focus changes (§4.9).
type FocusChangeComponent struct {
	Active bool
}

// TransitioningComponent carries the max fade duration/time used to decide
// when a state-machine transition completes (§4.6).
type TransitioningComponent struct {
	Time, Duration float64
}

// StatefulComponent holds the state machine value.
type StatefulComponent struct {
	State State
}

// TintComponent marks color-inversion for a window (invert-color-include).
type TintComponent struct {
	Invert bool
}
