package match

import "testing"

func testWindow() *Window {
	return &Window{
		ID: 42, X: 10, Y: 20, Width: 100, Height: 50,
		Fullscreen: false, Focused: true, WMWin: true,
		Name: "Firefox", ClassGeneral: "Firefox", ClassInstance: "Navigator",
		Atom: func(name string, onFrame bool, index int) (any, bool) {
			if name == "_COMPTON_SHADOW" {
				return int64(0), true
			}
			return nil, false
		},
	}
}

func TestEvaluatePredefined(t *testing.T) {
	w := testWindow()
	cases := []struct {
		pattern string
		want    bool
	}{
		{`name = "Firefox"`, true},
		{`name = "Chrome"`, false},
		{`name*="fox"`, true},
		{`name^="Fire"`, true},
		{`name%="Fire*"`, true},
		{`focused = true`, true},
		{`focused = false`, false},
		{`width > 50`, true},
		{`width < 50`, false},
		{`width >= 100`, true},
		{`width <= 99`, false},
		{`!(width > 50)`, false},
		{`width > 50 && height > 10`, true},
		{`width > 500 || height > 10`, true},
		{`width > 500 xor height > 10`, true},
		{`width > 50 xor height > 10`, false},
		{`class_g = "Firefox" && class_i = "Navigator"`, true},
		{`id = 42`, true},
	}
	for _, c := range cases {
		e, err := Parse(c.pattern)
		if err != nil {
			t.Fatalf("parse(%q): %v", c.pattern, err)
		}
		if got := Evaluate(e, w); got != c.want {
			t.Errorf("evaluate(%q) = %v, want %v", c.pattern, got, c.want)
		}
	}
}

func TestLegacyGrammar(t *testing.T) {
	w := testWindow()
	e, err := Parse(`n:e:Firefox`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !Evaluate(e, w) {
		t.Errorf("legacy exact-match name failed")
	}
	e2, err := Parse(`n:w:Fire*`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !Evaluate(e2, w) {
		t.Errorf("legacy wildcard-match name failed")
	}
}

func TestAtomLookupExists(t *testing.T) {
	w := testWindow()
	e, err := Parse(`_COMPTON_SHADOW`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !Evaluate(e, w) {
		t.Errorf("expected _COMPTON_SHADOW to exist")
	}
	e2, err := Parse(`_MISSING_ATOM`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if Evaluate(e2, w) {
		t.Errorf("expected _MISSING_ATOM to not exist")
	}
}

func TestDeMorgan(t *testing.T) {
	w := testWindow()
	left, err := Parse(`!(width > 50 && height > 10)`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	right, err := Parse(`!(width > 50) || !(height > 10)`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if Evaluate(left, w) != Evaluate(right, w) {
		t.Errorf("De Morgan's law violated")
	}
}

func TestRoundTrip(t *testing.T) {
	patterns := []string{
		`name = "Firefox"`,
		`width > 50 && height > 10`,
		`width > 500 || height > 10`,
		`!(width > 50)`,
		`class_g*="Fire" && !(focused = true)`,
	}
	for _, p := range patterns {
		e1, err := Parse(p)
		if err != nil {
			t.Fatalf("parse(%q): %v", p, err)
		}
		printed := Print(e1)
		e2, err := Parse(printed)
		if err != nil {
			t.Fatalf("reparse(%q) from %q: %v", printed, p, err)
		}
		w := testWindow()
		if Evaluate(e1, w) != Evaluate(e2, w) {
			t.Errorf("round-trip %q -> %q changed evaluation", p, printed)
		}
	}
}

func TestMaxDepth(t *testing.T) {
	pattern := ""
	for i := 0; i < 12; i++ {
		pattern += "("
	}
	pattern += "width > 1"
	for i := 0; i < 12; i++ {
		pattern += ")"
	}
	if _, err := Parse(pattern); err == nil {
		t.Errorf("expected max-depth error for deeply nested expression")
	}
}
