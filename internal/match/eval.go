package match

import (
	"fmt"
	"regexp"
	"strings"
)

// postprocessLeaf performs the fixups that must happen once a Leaf is fully
// parsed: compiling regex patterns and rejecting QualRegex/QualWildcard
// qualifiers on non-string types, matching c2_l_postprocess in the original.
func postprocessLeaf(leaf *Leaf) error {
	if leaf.Qualifier == QualRegex {
		if leaf.Type != TString {
			return fmt.Errorf("match: regex qualifier only valid on string targets")
		}
		flags := ""
		if leaf.IgnoreCase {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + leaf.StrPattern)
		if err != nil {
			return fmt.Errorf("match: invalid regex %q: %w", leaf.StrPattern, err)
		}
		leaf.compiled = re
	}
	if leaf.Qualifier != QualNone && leaf.Type != TString {
		return fmt.Errorf("match: qualifier valid only on string targets")
	}
	return nil
}

// Window is a read-only snapshot of one entity's matchable attributes (§4.3).
// Evaluate never mutates it and never touches the entity store directly, so
// the systems package builds one per rule-list evaluation from ecs component
// data.
type Window struct {
	ID               uint32
	X, Y             int
	X2, Y2           int
	Width, Height    int
	WidthB, HeightB  int
	BorderWidth      int
	Fullscreen       bool
	OverrideRedirect bool
	Focused          bool
	WMWin            bool
	Client           uint32
	WindowType       string
	Name             string
	ClassGeneral     string
	ClassInstance    string
	Role             string

	// Atom looks up a non-predefined target (an arbitrary X property atom
	// name) and reports whether it exists on the window (or, if OnFrame was
	// requested and a frame exists, on the frame). ok=false means the
	// property does not exist, which makes any comparison false (EXISTS is
	// the only operator that needs just `ok`).
	Atom func(name string, onFrame bool, index int) (value any, ok bool)
}

// Evaluate runs a parsed expression against a window snapshot (§4.3, §8).
func Evaluate(e *Expr, w *Window) bool {
	if e == nil {
		return true
	}
	switch e.Kind {
	case NodeAnd:
		return Evaluate(e.L, w) && Evaluate(e.R, w)
	case NodeOr:
		return Evaluate(e.L, w) || Evaluate(e.R, w)
	case NodeXor:
		return Evaluate(e.L, w) != Evaluate(e.R, w)
	case NodeNot:
		return !Evaluate(e.L, w)
	case NodeLeaf:
		r := evalLeaf(e.Leaf, w)
		if e.Leaf.Negate {
			return !r
		}
		return r
	}
	return false
}

func evalLeaf(l *Leaf, w *Window) bool {
	if l.Predef != NotPredef {
		return evalPredef(l, w)
	}
	v, ok := w.Atom(l.Target, l.OnFrame, l.Index)
	if !ok {
		return false
	}
	return compareAny(l, v)
}

func evalPredef(l *Leaf, w *Window) bool {
	switch l.Predef {
	case PID:
		return compareInt(l, int64(w.ID))
	case PX:
		return compareInt(l, int64(w.X))
	case PY:
		return compareInt(l, int64(w.Y))
	case PX2:
		return compareInt(l, int64(w.X2))
	case PY2:
		return compareInt(l, int64(w.Y2))
	case PWidth:
		return compareInt(l, int64(w.Width))
	case PHeight:
		return compareInt(l, int64(w.Height))
	case PWidthB:
		return compareInt(l, int64(w.WidthB))
	case PHeightB:
		return compareInt(l, int64(w.HeightB))
	case PBorderWidth:
		return compareInt(l, int64(w.BorderWidth))
	case PFullscreen:
		return compareBool(l, w.Fullscreen)
	case POverrideRedirect:
		return compareBool(l, w.OverrideRedirect)
	case PFocused:
		return compareBool(l, w.Focused)
	case PWMWin:
		return compareBool(l, w.WMWin)
	case PClient:
		if l.Op == OpExists {
			return w.Client != 0
		}
		return compareInt(l, int64(w.Client))
	case PWindowType:
		return compareString(l, w.WindowType)
	case PName:
		return compareString(l, w.Name)
	case PClassG:
		return compareString(l, w.ClassGeneral)
	case PClassI:
		return compareString(l, w.ClassInstance)
	case PRole:
		return compareString(l, w.Role)
	}
	return false
}

func compareAny(l *Leaf, v any) bool {
	switch val := v.(type) {
	case string:
		return compareString(l, val)
	case int64:
		return compareInt(l, val)
	case int:
		return compareInt(l, int64(val))
	case uint32:
		return compareInt(l, int64(val))
	case bool:
		return compareBool(l, val)
	default:
		return l.Op == OpExists
	}
}

func compareBool(l *Leaf, v bool) bool {
	if l.Op == OpExists {
		return true
	}
	var n int64
	if v {
		n = 1
	}
	return compareInt(l, n)
}

func compareInt(l *Leaf, v int64) bool {
	if l.Op == OpExists {
		return true
	}
	if !l.HasIntPattern {
		return false
	}
	switch l.Op {
	case OpEq:
		return v == l.IntPattern
	case OpGt:
		return v > l.IntPattern
	case OpGe:
		return v >= l.IntPattern
	case OpLt:
		return v < l.IntPattern
	case OpLe:
		return v <= l.IntPattern
	}
	return false
}

func compareString(l *Leaf, v string) bool {
	if l.Op == OpExists {
		return true
	}
	a, b := v, l.StrPattern
	if l.IgnoreCase {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}
	switch l.Qualifier {
	case QualRegex:
		if l.compiled == nil {
			return false
		}
		return l.compiled.MatchString(v)
	case QualContains:
		return strings.Contains(a, b)
	case QualStartsWith:
		return strings.HasPrefix(a, b)
	case QualWildcard:
		return wildcardMatch(a, b)
	}
	switch l.Op {
	case OpEq:
		return a == b
	case OpGt:
		return a > b
	case OpGe:
		return a >= b
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	}
	return false
}

// wildcardMatch implements shell-style '*'/'?' glob matching (the legacy
// 'w' qualifier / modern '%' qualifier), per c2.c's wildcard matcher.
func wildcardMatch(s, pattern string) bool {
	return wildcardMatchRec(s, pattern)
}

func wildcardMatchRec(s, pattern string) bool {
	if pattern == "" {
		return s == ""
	}
	switch pattern[0] {
	case '*':
		if wildcardMatchRec(s, pattern[1:]) {
			return true
		}
		for i := 0; i < len(s); i++ {
			if wildcardMatchRec(s[i+1:], pattern[1:]) {
				return true
			}
		}
		return false
	case '?':
		if len(s) == 0 {
			return false
		}
		return wildcardMatchRec(s[1:], pattern[1:])
	default:
		if len(s) == 0 || s[0] != pattern[0] {
			return false
		}
		return wildcardMatchRec(s[1:], pattern[1:])
	}
}
