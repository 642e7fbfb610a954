// Package xevent converts the X11 event stream into normalized ingestion
// events and maintains the window-tree/set bookkeeping described in §4.1:
// the parent-pointer map, and the mapped/client/bypassed indexed sets (the
// Ingestor's active set is allocated but never filled or read). Grounded on willow's plain event-callback dispatch style (input.go's
// typed callback table) generalized from mouse/keyboard input to the X11
// wire protocol via jezek/xgb.
package xevent

// Kind identifies a normalized event's shape (§4.1's "normalized event
// kinds" list).
type Kind int

const (
	KAdd Kind = iota
	KDestroy
	KClient
	KMap
	KUnmap
	KBypass
	KMandr
	KRestack
	KFocus
	KNewRoot
	KCanvasChange
	KDamage
	KShape
	KWintype
	KWinClass
)

// RestackLocation names where a Restack event places a window.
type RestackLocation int

const (
	RestackBelow RestackLocation = iota
	RestackHighest
	RestackLowest
)

// Event is one normalized ingestion event. Only the fields relevant to Kind
// are meaningful; this mirrors willow's flat tagged-struct event style
// rather than one Go interface per kind, since every kind here is a plain
// data record with no behavior.
type Event struct {
	Kind Kind

	XID    uint32
	Client uint32 // KClient: the client window found for XID

	X, Y, Width, Height, Border int
	Mapped                      bool
	OverrideRedirect            bool

	RestackLoc RestackLocation
	Above      uint32

	Pixmap uint32 // KNewRoot

	CanvasWidth, CanvasHeight int // KCanvasChange
}
