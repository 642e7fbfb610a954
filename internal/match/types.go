// Package match implements the predicate DSL used by rule lists
// (shadow-exclude, fade-exclude, focus-exclude, invert-color-include,
// blur-exclude, opacity-rule) — §4.3 of the specification. It is a
// recursive-descent parser plus an evaluator that runs the parsed tree
// against a Window snapshot.
package match

import "regexp"

// TriState models a tri-valued override: Unset means "no override, fall
// back to the resolved default", as used by _COMPTON_SHADOW and the D-Bus
// force-switches in the original implementation.
type TriState int

const (
	Unset TriState = iota
	True
	False
)

// Op is a leaf comparison operator. OpExists means "no operator was given";
// the leaf only tests for the property's existence.
type Op int

const (
	OpExists Op = iota
	OpEq
	OpGt
	OpGe
	OpLt
	OpLe
)

// Qualifier narrows how a string Op is applied.
type Qualifier int

const (
	QualNone       Qualifier = iota
	QualContains             // *
	QualStartsWith           // ^
	QualWildcard             // %
	QualRegex                // ~
)

// ValueType is the declared type of a leaf's target value.
type ValueType int

const (
	TUndefined ValueType = iota
	TWindow
	TDrawable
	TCardinal
	TString
	TAtom
)

// Predef enumerates the predefined, case-sensitive target names (§4.3).
type Predef int

const (
	NotPredef Predef = iota
	PID
	PX
	PY
	PX2
	PY2
	PWidth
	PHeight
	PWidthB
	PHeightB
	PBorderWidth
	PFullscreen
	POverrideRedirect
	PFocused
	PWMWin
	PClient
	PWindowType
	PName
	PClassG
	PClassI
	PRole
)

var predefInfo = map[string]struct {
	p Predef
	t ValueType
}{
	"id":                {PID, TCardinal},
	"x":                 {PX, TCardinal},
	"y":                 {PY, TCardinal},
	"x2":                {PX2, TCardinal},
	"y2":                {PY2, TCardinal},
	"width":             {PWidth, TCardinal},
	"height":            {PHeight, TCardinal},
	"widthb":            {PWidthB, TCardinal},
	"heightb":           {PHeightB, TCardinal},
	"border_width":      {PBorderWidth, TCardinal},
	"fullscreen":        {PFullscreen, TCardinal},
	"override_redirect": {POverrideRedirect, TCardinal},
	"focused":           {PFocused, TCardinal},
	"wmwin":             {PWMWin, TCardinal},
	"client":            {PClient, TWindow},
	"window_type":       {PWindowType, TString},
	"name":              {PName, TString},
	"class_g":           {PClassG, TString},
	"class_i":           {PClassI, TString},
	"role":               {PRole, TString},
}

// lookupPredef resolves a target name to its predefined slot, if any.
func lookupPredef(name string) (Predef, ValueType, bool) {
	info, ok := predefInfo[name]
	if !ok {
		return NotPredef, TUndefined, false
	}
	return info.p, info.t, true
}

// Leaf is a single comparison against a window attribute.
type Leaf struct {
	Target   string // raw target name, as written ("name", or an atom like "_COMPTON_SHADOW")
	Predef   Predef
	OnFrame  bool // '@' suffix: force evaluation on the frame window, not the client
	Index    int  // -1 if absent; non-predefined targets only
	Type     ValueType
	Format   int // property format (8/16/32), 0 if unspecified

	Negate    bool
	Op        Op
	Qualifier Qualifier
	IgnoreCase bool

	HasIntPattern bool
	IntPattern    int64
	StrPattern    string

	compiled *regexp.Regexp
}

// NodeKind tags which variant an Expr node is.
type NodeKind int

const (
	NodeLeaf NodeKind = iota
	NodeAnd
	NodeOr
	NodeXor
	NodeNot
)

// Expr is a node in a parsed match tree: either a Leaf or a Branch
// combining two (or, for NodeNot, one) sub-expressions.
type Expr struct {
	Kind NodeKind
	Leaf *Leaf
	L, R *Expr
}

// maxDepth is the maximum group-nesting depth the parser accepts (§4.3).
const maxDepth = 10
