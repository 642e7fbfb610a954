// Package config defines the shape every system consumes (§6). Discovering
// and parsing a config file is explicitly out of scope (§1 non-goal) — this
// package only defines the struct and its defaults, generalizing willow's
// flat struct-of-fields style (EmitterConfig, Color) rather than adopting a
// config-framework dependency no example in the pack uses.
package config

import "github.com/neocomp/neocomp/internal/wintype"

// Options is the full set of tunables named in spec §6. A production binary
// populates this from flags/file and hands it to internal/session; neocomp
// itself never reads environment variables or files.
type Options struct {
	// Fade timing, in seconds.
	OpacityFadeTime   float64
	BgOpacityFadeTime float64
	DimFadeTime       float64

	// Opacity percentages, 0-100. 100 means fully opaque.
	InactiveOpacity int
	ActiveOpacity   int // 0 disables the override (§4.9 "if configured")
	InactiveDim     int

	// Blur tuning.
	BlurLevel    int // dual-Kawase downsample/upsample pass count (§4.7)
	BlurBackground bool

	// Shadow tuning.
	ShadowRadius int // fixed border width added around a window's shadow texture (§4.8)
	ShadowOpacity float64

	// Rule lists, in the match-engine grammar (§4.3). Evaluated in order;
	// first match wins. internal/session evaluates only ShadowExclude and
	// BlurBackgroundExclude; FadeExclude and FocusExclude are compiled but
	// not applied, and InvertColorIncl and OpacityRule are not read.
	ShadowExclude  []string
	FadeExclude    []string
	FocusExclude   []string
	InvertColorIncl []string
	OpacityRule    []string // "PERCENT:CONDITION" pairs
	BlurBackgroundExclude []string

	// Per-window-type overrides (§6 wintypes.<TYPE>), indexed by wintype.Type.
	WintypeOverrides [wintype.Count]wintype.Overrides

	// VSync / presentation is owned by the injected render.Backend; nothing
	// here configures it directly (§C).
	UseEWMH bool
}

// Default returns an Options populated with the teacher-neutral defaults
// used throughout original_source/src/config.c's fallback values, with
// per-wintype overrides seeded from wintype.DefaultOverrides().
func Default() Options {
	return Options{
		OpacityFadeTime:   0.2,
		BgOpacityFadeTime: 0.2,
		DimFadeTime:       0.2,
		InactiveOpacity:   100,
		ActiveOpacity:     0,
		InactiveDim:       0,
		BlurLevel:         2,
		BlurBackground:    false,
		ShadowRadius:      64,
		ShadowOpacity:     0.75,
		WintypeOverrides:  wintype.DefaultOverrides(),
		UseEWMH:           true,
	}
}
