// Package wintype declares the fixed window-type enumeration used to tag
// top-level windows and to index per-type configuration (shadow/fade/focus/
// opacity overrides, §6 of the specification).
package wintype

// Type is a window type tag. Order is significant: it is the numeric value
// stored on a window's Mud component and used to index the wintype.<TYPE>
// option tables, so it must match the _NET_WM_WINDOW_TYPE_* atom order the
// original window manager protocol expects.
type Type int

const (
	Unknown Type = iota
	Desktop
	Dock
	Toolbar
	Menu
	Utility
	Splash
	Dialog
	Normal
	DropdownMenu
	PopupMenu
	Tooltip
	Notify
	Combo
	Dnd

	Count // sentinel: number of declared window types
)

// atomNames gives the _NET_WM_WINDOW_TYPE_* atom name fragment for each
// type, in enumeration order.
var atomNames = [Count]string{
	Unknown:      "",
	Desktop:      "_NET_WM_WINDOW_TYPE_DESKTOP",
	Dock:         "_NET_WM_WINDOW_TYPE_DOCK",
	Toolbar:      "_NET_WM_WINDOW_TYPE_TOOLBAR",
	Menu:         "_NET_WM_WINDOW_TYPE_MENU",
	Utility:      "_NET_WM_WINDOW_TYPE_UTILITY",
	Splash:       "_NET_WM_WINDOW_TYPE_SPLASH",
	Dialog:       "_NET_WM_WINDOW_TYPE_DIALOG",
	Normal:       "_NET_WM_WINDOW_TYPE_NORMAL",
	DropdownMenu: "_NET_WM_WINDOW_TYPE_DROPDOWN_MENU",
	PopupMenu:    "_NET_WM_WINDOW_TYPE_POPUP_MENU",
	Tooltip:      "_NET_WM_WINDOW_TYPE_TOOLTIP",
	Notify:       "_NET_WM_WINDOW_TYPE_NOTIFY",
	Combo:        "_NET_WM_WINDOW_TYPE_COMBO",
	Dnd:          "_NET_WM_WINDOW_TYPE_DND",
}

// Atom returns the EWMH atom name identifying this window type, or "" for
// Unknown (which has no corresponding atom and is the fallback value).
func (t Type) Atom() string {
	if t < 0 || t >= Count {
		return ""
	}
	return atomNames[t]
}

// FromAtom resolves an atom name fragment back to a Type, defaulting to
// Unknown when the name isn't recognized.
func FromAtom(name string) Type {
	for i, n := range atomNames {
		if n != "" && n == name {
			return Type(i)
		}
	}
	return Unknown
}

// Overrides holds the per-type configuration described by §6's
// `wintypes.<TYPE>` config subtable: shadow/fade/focus toggles and an
// opacity override (-1 means "no override, use the resolved default").
type Overrides struct {
	Shadow         bool
	Fade           bool
	Focus          bool
	OpacityPercent float64 // -1 = unset
}

// DefaultOverrides returns the built-in default table, matching
// original_source/src/config.c's WINTYPE_DEFAULTS: every type fades and
// casts a shadow except desktops, which do neither; dropdown and popup
// menus, tooltips, notifications, combo boxes and DnD windows are "always
// focused", all other types (plain menus included) are not.
func DefaultOverrides() [Count]Overrides {
	var out [Count]Overrides
	for i := range out {
		out[i] = Overrides{Shadow: true, Fade: true, Focus: false, OpacityPercent: -1}
	}
	out[Desktop] = Overrides{Shadow: false, Fade: false, Focus: false, OpacityPercent: -1}
	out[Dock] = Overrides{Shadow: true, Fade: true, Focus: false, OpacityPercent: -1}
	out[DropdownMenu] = Overrides{Shadow: true, Fade: true, Focus: true, OpacityPercent: -1}
	out[PopupMenu] = Overrides{Shadow: true, Fade: true, Focus: true, OpacityPercent: -1}
	out[Tooltip] = Overrides{Shadow: true, Fade: true, Focus: true, OpacityPercent: -1}
	out[Notify] = Overrides{Shadow: true, Fade: true, Focus: true, OpacityPercent: -1}
	out[Combo] = Overrides{Shadow: true, Fade: true, Focus: true, OpacityPercent: -1}
	out[Dnd] = Overrides{Shadow: true, Fade: true, Focus: true, OpacityPercent: -1}
	return out
}
