package xevent

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/composite"
	"github.com/jezek/xgb/damage"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/shape"
	"github.com/jezek/xgb/xfixes"
	"github.com/jezek/xgb/xproto"
	"github.com/neocomp/neocomp/internal/ecs"
	"github.com/neocomp/neocomp/internal/geom"
	"github.com/neocomp/neocomp/internal/wintype"
	"github.com/neocomp/neocomp/internal/xatom"
	"github.com/rs/zerolog"
)

// requiredExtensions names the extensions the system refuses to start
// without (Composite, XFixes, Damage, RandR). Shape is optional and only
// probed; Sync, Render, Xinerama, GLX and X-Resource are not queried.
type requiredExtensions struct {
	composite bool
	xfixes    bool
	damage    bool
	randr     bool
	shape     bool
}

// Ingestor owns the X connection and the window-tree/set bookkeeping it
// drives. Its Bootstrap/Drain methods are the only entry points the
// composite loop (internal/session) calls.
type Ingestor struct {
	conn *xgb.Conn
	root xproto.Window
	log  zerolog.Logger

	atoms *xatom.Cache
	tree  *Tree
	ign   *IgnoreList
	exts  requiredExtensions

	active   map[uint32]bool
	mapped   map[uint32]bool
	clients  map[uint32]bool
	bypassed map[uint32]bool

	damageExt uint8
	shapeExt  uint8

	screenW int
	screenH int
}

// New connects to the X display named by displayName (empty uses $DISPLAY),
// requires the extensions §4.1 names as mandatory, and redirects the root
// window for compositing via Composite.
func New(displayName string, log zerolog.Logger) (*Ingestor, error) {
	conn, err := xgb.NewConnDisplay(displayName)
	if err != nil {
		return nil, err
	}
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	root := screen.Root

	ing := &Ingestor{
		conn:     conn,
		root:     root,
		log:      log,
		atoms:    xatom.NewCache(conn),
		tree:     NewTree(),
		ign:      NewIgnoreList(),
		active:   make(map[uint32]bool),
		mapped:   make(map[uint32]bool),
		clients:  make(map[uint32]bool),
		bypassed: make(map[uint32]bool),
		screenW:  int(screen.WidthInPixels),
		screenH:  int(screen.HeightInPixels),
	}

	if err := composite.Init(conn); err != nil {
		return nil, err
	}
	ing.exts.composite = true
	if err := xfixes.Init(conn); err != nil {
		return nil, err
	}
	ing.exts.xfixes = true
	dmgReply, err := damage.QueryVersion(conn, 1, 1).Reply()
	if err != nil {
		return nil, err
	}
	_ = dmgReply
	ing.exts.damage = true
	if _, err := randr.QueryVersion(conn, 1, 4).Reply(); err != nil {
		return nil, err
	}
	ing.exts.randr = true
	if _, err := shape.QueryVersion(conn).Reply(); err == nil {
		ing.exts.shape = true
	}

	xproto.ChangeWindowAttributes(conn, root, xproto.CwEventMask, []uint32{
		uint32(xproto.EventMaskSubstructureNotify | xproto.EventMaskPropertyChange),
	})
	if err := composite.RedirectSubwindowsChecked(conn, root, composite.RedirectManual).Check(); err != nil {
		return nil, err
	}

	return ing, nil
}

// OverlayWindow returns the Composite overlay window the paint phase
// presents into.
func (ing *Ingestor) OverlayWindow() (xproto.Window, error) {
	reply, err := composite.GetOverlayWindow(ing.conn, ing.root).Reply()
	if err != nil {
		return 0, err
	}
	return reply.OverlayWin, nil
}

// ScreenSize returns the default screen's pixel dimensions, used to size
// the overlay surface before the first KCanvasChange event arrives.
func (ing *Ingestor) ScreenSize() (int, int) { return ing.screenW, ing.screenH }

// Close releases the X connection.
func (ing *Ingestor) Close() { ing.conn.Close() }

func (ing *Ingestor) isClient(xid uint32) bool { return ing.clients[xid] }

// Bootstrap implements §4.1's bootstrap walk: query the existing tree and
// synthesize Add/Client/Map/Bypass events in the same order a live stream
// would, then Focus and NewRoot.
func (ing *Ingestor) Bootstrap() ([]Event, error) {
	var events []Event
	tree, err := xproto.QueryTree(ing.conn, ing.root).Reply()
	if err != nil {
		return nil, err
	}
	for _, child := range tree.Children {
		attr, err := xproto.GetWindowAttributes(ing.conn, child).Reply()
		if err != nil {
			continue
		}
		geom, err := xproto.GetGeometry(ing.conn, xproto.Drawable(child)).Reply()
		if err != nil {
			continue
		}
		ing.tree.Attach(uint32(child), uint32(ing.root))
		mapped := attr.MapState == xproto.MapStateViewable
		events = append(events, Event{
			Kind: KAdd, XID: uint32(child),
			X: int(geom.X), Y: int(geom.Y), Width: int(geom.Width), Height: int(geom.Height),
			Border: int(geom.BorderWidth), Mapped: mapped, OverrideRedirect: attr.OverrideRedirect,
		})
		ing.refreshWMState(uint32(child))
		if client, ok := ing.tree.ClosestClient(uint32(child), ing.isClient); ok {
			events = append(events, Event{Kind: KClient, XID: uint32(child), Client: client})
		}
		if mapped {
			ing.mapped[uint32(child)] = true
			if ing.isBypassed(uint32(child)) {
				events = append(events, Event{Kind: KBypass, XID: uint32(child)})
			} else {
				events = append(events, Event{Kind: KMap, XID: uint32(child)})
			}
		}
	}
	if focus, ok := ing.netActiveWindow(); ok {
		events = append(events, Event{Kind: KFocus, XID: focus})
	}
	if pm, ok := ing.rootPixmap(); ok {
		events = append(events, Event{Kind: KNewRoot, Pixmap: pm})
	}
	return events, nil
}

// Drain pulls every currently-queued X event (non-blocking) and returns the
// normalized events they produce (§4.10 step 1).
func (ing *Ingestor) Drain() []Event {
	var out []Event
	for {
		raw, xerr := ing.conn.PollForEvent()
		if xerr != nil {
			ing.handleError(xerr)
			continue
		}
		if raw == nil {
			break
		}
		out = append(out, ing.handle(raw)...)
	}
	return out
}

func (ing *Ingestor) handleError(err xgb.Error) {
	seq := uint16(0)
	if xe, ok := err.(interface{ SequenceId() uint16 }); ok {
		seq = xe.SequenceId()
	}
	if ing.ign.ShouldIgnore(seq) {
		return
	}
	ing.log.Error().Str("x_error", err.Error()).Msg("X protocol error")
}

func (ing *Ingestor) handle(raw xgb.Event) []Event {
	switch e := raw.(type) {
	case xproto.CreateNotifyEvent:
		return ing.onCreate(e)
	case xproto.ReparentNotifyEvent:
		return ing.onReparent(e)
	case xproto.MapNotifyEvent:
		return ing.onMap(e)
	case xproto.UnmapNotifyEvent:
		return ing.onUnmap(e)
	case xproto.DestroyNotifyEvent:
		return ing.onDestroy(e)
	case xproto.PropertyNotifyEvent:
		return ing.onProperty(e)
	case xproto.CirculateNotifyEvent:
		return ing.onCirculate(e)
	case xproto.ConfigureNotifyEvent:
		return ing.onConfigure(e)
	case damage.NotifyEvent:
		return ing.onDamage(e)
	case shape.NotifyEvent:
		return ing.onShape(e)
	default:
		return nil
	}
}

func (ing *Ingestor) onCreate(e xproto.CreateNotifyEvent) []Event {
	if e.Parent != ing.root {
		ing.tree.Attach(uint32(e.Window), uint32(e.Parent))
		xproto.ChangeWindowAttributes(ing.conn, e.Window, xproto.CwEventMask,
			[]uint32{uint32(xproto.EventMaskPropertyChange)})
		return nil
	}
	ing.tree.Attach(uint32(e.Window), uint32(e.Parent))
	return []Event{{
		Kind: KAdd, XID: uint32(e.Window),
		X: int(e.X), Y: int(e.Y), Width: int(e.Width), Height: int(e.Height),
		Border: int(e.BorderWidth), Mapped: false, OverrideRedirect: e.OverrideRedirect,
	}}
}

func (ing *Ingestor) onReparent(e xproto.ReparentNotifyEvent) []Event {
	var out []Event
	if e.Parent == ing.root {
		ing.tree.Attach(uint32(e.Window), uint32(e.Parent))
		geom, err := xproto.GetGeometry(ing.conn, xproto.Drawable(e.Window)).Reply()
		if err != nil {
			return out
		}
		out = append(out, Event{
			Kind: KAdd, XID: uint32(e.Window),
			X: int(geom.X), Y: int(geom.Y), Width: int(geom.Width), Height: int(geom.Height),
			Border: int(geom.BorderWidth), OverrideRedirect: e.OverrideRedirect,
		})
		if ing.mapped[uint32(e.Window)] {
			out = append(out, Event{Kind: KMap, XID: uint32(e.Window)})
		}
		return out
	}
	out = append(out, Event{Kind: KDestroy, XID: uint32(e.Window)})
	oldClient, hadClient := ing.tree.ClosestClient(uint32(e.Window), ing.isClient)
	ing.tree.Attach(uint32(e.Window), uint32(e.Parent))
	newClient, has := ing.tree.ClosestClient(uint32(e.Parent), ing.isClient)
	if has && (!hadClient || newClient != oldClient) {
		out = append(out, Event{Kind: KClient, XID: uint32(e.Parent), Client: newClient})
	}
	return out
}

func (ing *Ingestor) onMap(e xproto.MapNotifyEvent) []Event {
	ing.mapped[uint32(e.Window)] = true
	if ing.isBypassed(uint32(e.Window)) {
		return []Event{{Kind: KBypass, XID: uint32(e.Window)}}
	}
	return []Event{{Kind: KMap, XID: uint32(e.Window)}}
}

// onUnmap does not filter out synthetic (client-sent) UnmapNotify events:
// jezek/xgb's generated xproto.UnmapNotifyEvent carries only the protocol
// payload fields (Event, Window, FromConfigure), not the wire event
// header's send_event bit, so there is no field here to test. A window
// manager that sends itself a synthetic UnmapNotify (the Firefox-style
// case the original project special-cases) will be treated the same as a
// real unmap. See DESIGN.md's internal/xevent entry for the tradeoff.
func (ing *Ingestor) onUnmap(e xproto.UnmapNotifyEvent) []Event {
	ing.mapped[uint32(e.Window)] = false
	return []Event{{Kind: KUnmap, XID: uint32(e.Window)}}
}

func (ing *Ingestor) onDestroy(e xproto.DestroyNotifyEvent) []Event {
	ing.tree.Detach(uint32(e.Window))
	delete(ing.mapped, uint32(e.Window))
	delete(ing.clients, uint32(e.Window))
	delete(ing.bypassed, uint32(e.Window))
	return []Event{{Kind: KDestroy, XID: uint32(e.Window)}}
}

func (ing *Ingestor) onCirculate(e xproto.CirculateNotifyEvent) []Event {
	loc := RestackHighest
	if e.Place == xproto.PlaceOnBottom {
		loc = RestackLowest
	}
	return []Event{{Kind: KRestack, XID: uint32(e.Window), RestackLoc: loc}}
}

func (ing *Ingestor) onConfigure(e xproto.ConfigureNotifyEvent) []Event {
	if e.Window == ing.root {
		return []Event{{Kind: KCanvasChange, CanvasWidth: int(e.Width), CanvasHeight: int(e.Height)}}
	}
	return []Event{
		{
			Kind: KMandr, XID: uint32(e.Window),
			X: int(e.X), Y: int(e.Y), Width: int(e.Width), Height: int(e.Height),
			Border: int(e.BorderWidth), OverrideRedirect: e.OverrideRedirect,
		},
		{Kind: KRestack, XID: uint32(e.Window), RestackLoc: RestackBelow, Above: uint32(e.AboveSibling)},
	}
}

func (ing *Ingestor) onDamage(e damage.NotifyEvent) []Event {
	damage.Subtract(ing.conn, e.Damage, xfixes.RegionNone, xfixes.RegionNone)
	xid := uint32(e.Drawable)
	if !ing.mapped[xid] || ing.bypassed[xid] {
		return nil
	}
	return []Event{{Kind: KDamage, XID: xid}}
}

func (ing *Ingestor) onShape(e shape.NotifyEvent) []Event {
	return []Event{{Kind: KShape, XID: uint32(e.AffectedWindow)}}
}

func (ing *Ingestor) onProperty(e xproto.PropertyNotifyEvent) []Event {
	name := ing.atoms.Name(e.Atom)
	if e.Window == ing.root {
		return ing.onRootProperty(name)
	}
	var out []Event
	switch name {
	case xatom.WMState:
		hadClient := ing.clients[uint32(e.Window)]
		ing.refreshWMState(uint32(e.Window))
		if parent, ok := ing.tree.Parent(uint32(e.Window)); ok {
			ing.tree.InvalidateCache(parent)
			if client, ok := ing.tree.ClosestClient(parent, ing.isClient); ok && (!hadClient || client != uint32(e.Window)) {
				out = append(out, Event{Kind: KClient, XID: parent, Client: client})
			}
		}
	case xatom.NetWMName, xatom.WMName, xatom.WMWindowRole:
		out = append(out, Event{Kind: KWintype, XID: uint32(e.Window)})
	case xatom.WMClass:
		out = append(out, Event{Kind: KWinClass, XID: uint32(e.Window)})
	case xatom.NetWMWindowType:
		out = append(out, Event{Kind: KWintype, XID: uint32(e.Window)})
	case xatom.NetWMBypassCompositor:
		wasBypassed := ing.bypassed[uint32(e.Window)]
		nowBypassed := ing.isBypassed(uint32(e.Window))
		if wasBypassed != nowBypassed && ing.mapped[uint32(e.Window)] {
			if nowBypassed {
				out = append(out, Event{Kind: KBypass, XID: uint32(e.Window)})
			} else {
				out = append(out, Event{Kind: KMap, XID: uint32(e.Window)})
			}
		}
	}
	return out
}

func (ing *Ingestor) onRootProperty(name string) []Event {
	switch name {
	case xatom.NetActiveWindow:
		if xid, ok := ing.netActiveWindow(); ok {
			return []Event{{Kind: KFocus, XID: xid}}
		}
	case xatom.XRootPMapID, xatom.XSetRootID:
		if pm, ok := ing.rootPixmap(); ok {
			return []Event{{Kind: KNewRoot, Pixmap: pm}}
		}
	}
	return nil
}

func (ing *Ingestor) refreshWMState(xid uint32) {
	atom, err := ing.atoms.Intern(xatom.WMState)
	if err != nil {
		return
	}
	reply, err := xproto.GetProperty(ing.conn, false, xproto.Window(xid), atom, xproto.AtomAny, 0, 0).Reply()
	ing.clients[xid] = err == nil && reply != nil && reply.Type != 0
}

func (ing *Ingestor) isBypassed(xid uint32) bool {
	atom, err := ing.atoms.Intern(xatom.NetWMBypassCompositor)
	if err != nil {
		return false
	}
	reply, err := xproto.GetProperty(ing.conn, false, xproto.Window(xid), atom, xproto.AtomCardinal, 0, 1).Reply()
	bypassed := err == nil && reply != nil && len(reply.Value) >= 4 && reply.Value[0] == 1
	ing.bypassed[xid] = bypassed
	return bypassed
}

func (ing *Ingestor) netActiveWindow() (uint32, bool) {
	atom, err := ing.atoms.Intern(xatom.NetActiveWindow)
	if err != nil {
		return 0, false
	}
	reply, err := xproto.GetProperty(ing.conn, false, ing.root, atom, xproto.AtomWindow, 0, 1).Reply()
	if err != nil || reply == nil || len(reply.Value) < 4 {
		return 0, false
	}
	return leUint32(reply.Value), true
}

func (ing *Ingestor) rootPixmap() (uint32, bool) {
	atom, err := ing.atoms.Intern(xatom.XRootPMapID)
	if err != nil {
		return 0, false
	}
	reply, err := xproto.GetProperty(ing.conn, false, ing.root, atom, xproto.AtomPixmap, 0, 1).Reply()
	if err != nil || reply == nil || len(reply.Value) < 4 {
		return 0, false
	}
	return leUint32(reply.Value), true
}

// WindowType resolves xid's _NET_WM_WINDOW_TYPE, defaulting to
// wintype.Unknown when absent or unrecognized.
func (ing *Ingestor) WindowType(xid uint32) wintype.Type {
	atom, err := ing.atoms.Intern(xatom.NetWMWindowType)
	if err != nil {
		return wintype.Unknown
	}
	reply, err := xproto.GetProperty(ing.conn, false, xproto.Window(xid), atom, xproto.AtomAtom, 0, 1).Reply()
	if err != nil || reply == nil || len(reply.Value) < 4 {
		return wintype.Unknown
	}
	typeAtom := xproto.Atom(leUint32(reply.Value))
	name := ing.atoms.Name(typeAtom)
	if name == "" {
		if reply, err := xproto.GetAtomName(ing.conn, typeAtom).Reply(); err == nil {
			name = reply.Name
		}
	}
	return wintype.FromAtom(name)
}

// WindowNames resolves xid's _NET_WM_NAME (falling back to WM_NAME),
// WM_CLASS's instance/general pair, and WM_WINDOW_ROLE.
func (ing *Ingestor) WindowNames(xid uint32) (name, classGeneral, classInstance, role string) {
	name = ing.textProperty(xid, xatom.NetWMName)
	if name == "" {
		name = ing.textProperty(xid, xatom.WMName)
	}
	if cls := ing.textProperty(xid, xatom.WMClass); cls != "" {
		parts := splitNUL(cls)
		if len(parts) > 0 {
			classInstance = parts[0]
		}
		if len(parts) > 1 {
			classGeneral = parts[1]
		}
	}
	role = ing.textProperty(xid, xatom.WMWindowRole)
	return
}

func (ing *Ingestor) textProperty(xid uint32, propName string) string {
	atom, err := ing.atoms.Intern(propName)
	if err != nil {
		return ""
	}
	reply, err := xproto.GetProperty(ing.conn, false, xproto.Window(xid), atom, xproto.AtomAny, 0, 256).Reply()
	if err != nil || reply == nil {
		return ""
	}
	return string(reply.Value)
}

func splitNUL(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// FetchShape implements systems.ShapeFetcher: it queries the window's
// bounding-shape rectangles via the Shape extension, in window-local
// coordinates, for §4.8's "shaped windows" handling.
func (ing *Ingestor) FetchShape(xid uint32) (ecs.ShapedComponent, error) {
	if !ing.exts.shape {
		return ecs.ShapedComponent{}, nil
	}
	reply, err := shape.GetRectangles(ing.conn, xproto.Window(xid), shape.KindBounding).Reply()
	if err != nil {
		return ecs.ShapedComponent{}, err
	}
	rects := make([]geom.Rect, 0, len(reply.Rectangles))
	for _, r := range reply.Rectangles {
		rects = append(rects, geom.Rect{
			X: float64(r.X), Y: float64(r.Y),
			Width: float64(r.Width), Height: float64(r.Height),
		})
	}
	return ecs.ShapedComponent{Rects: rects}, nil
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
