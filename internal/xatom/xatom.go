// Package xatom names the X properties the core reads (§6) and caches
// their interned atom values, keyed by name so repeated lookups for the
// same property across many windows cost one round trip total.
package xatom

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Names used anywhere in the core (§6's "X window properties used" list),
// exported as constants so callers never typo a property name.
const (
	WMState               = "WM_STATE"
	WMName                = "WM_NAME"
	NetWMName             = "_NET_WM_NAME"
	WMClass               = "WM_CLASS"
	WMWindowRole          = "WM_WINDOW_ROLE"
	WMTransientFor        = "WM_TRANSIENT_FOR"
	WMClientLeader        = "WM_CLIENT_LEADER"
	NetActiveWindow       = "_NET_ACTIVE_WINDOW"
	ComptonShadow         = "_COMPTON_SHADOW"
	NetWMBypassCompositor = "_NET_WM_BYPASS_COMPOSITOR"
	NetWMWindowType       = "_NET_WM_WINDOW_TYPE"
	NetFrameExtents       = "_NET_FRAME_EXTENTS"
	XRootPMapID           = "_XROOTPMAP_ID"
	XSetRootID            = "_XSETROOT_ID"
)

// Cache interns atom names on first use and remembers both directions:
// name -> atom and atom -> name, the latter needed when decoding
// PropertyNotify events, which carry only the atom.
type Cache struct {
	conn     *xgb.Conn
	byName   map[string]xproto.Atom
	byAtom   map[xproto.Atom]string
}

// NewCache returns a cache bound to conn. Nothing is interned yet.
func NewCache(conn *xgb.Conn) *Cache {
	return &Cache{
		conn:   conn,
		byName: make(map[string]xproto.Atom),
		byAtom: make(map[xproto.Atom]string),
	}
}

// Intern returns the atom for name, interning it on first use.
func (c *Cache) Intern(name string) (xproto.Atom, error) {
	if a, ok := c.byName[name]; ok {
		return a, nil
	}
	reply, err := xproto.InternAtom(c.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	c.byName[name] = reply.Atom
	c.byAtom[reply.Atom] = name
	return reply.Atom, nil
}

// Name returns the interned name for atom, or "" if never interned by this
// cache (PropertyNotify events for atoms neocomp never requested by name
// are simply not tracked — see match's "per-session tracking list", §4.3).
func (c *Cache) Name(atom xproto.Atom) string {
	return c.byAtom[atom]
}

// Tracked reports whether name has ever been interned through this cache.
// Atoms referenced by loaded match rules are not interned through it, so a
// rule-list reference does not make a name tracked.
func (c *Cache) Tracked(name string) bool {
	_, ok := c.byName[name]
	return ok
}
