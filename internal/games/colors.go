package games

import (
	"fmt"
	"time"
)

const (
	ColorMixPoints  = 15
	ColorResetDelay = 2 * time.Second
)

// Color is one of the three base paints
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Yellow Color = "yellow"
)

// Swatch describes a base paint on the palette
type Swatch struct {
	Color Color
	Name  string
	Hex   string
}

// Palette is the fixed set of base colours
var Palette = []Swatch{
	{Color: Red, Name: "Red", Hex: "#FF6B9D"},
	{Color: Blue, Name: "Blue", Hex: "#4ECDC4"},
	{Color: Yellow, Name: "Yellow", Hex: "#FFE66D"},
}

// MixResult is the colour produced by mixing two paints
type MixResult struct {
	Name string
	Hex  string
}

// EmptyMix is shown before anything has been mixed
var EmptyMix = MixResult{Name: "Mix colors!", Hex: "#f0f0f0"}

var mixTable = map[[2]Color]MixResult{
	pairKey(Red, Yellow):  {Name: "Orange!", Hex: "#FFA500"},
	pairKey(Blue, Yellow): {Name: "Green!", Hex: "#32CD32"},
	pairKey(Red, Blue):    {Name: "Purple!", Hex: "#9370DB"},
}

// pairKey orders a pair so lookups ignore selection order
func pairKey(a, b Color) [2]Color {
	if b < a {
		a, b = b, a
	}
	return [2]Color{a, b}
}

// Mix looks up the colour made by two distinct paints
func Mix(a, b Color) (MixResult, bool) {
	r, ok := mixTable[pairKey(a, b)]
	return r, ok
}

func validColor(c Color) bool {
	for _, s := range Palette {
		if s.Color == c {
			return true
		}
	}
	return false
}

// ColorMixer collects up to two distinct paints and mixes them
type ColorMixer struct {
	Selected []Color
	Result   MixResult

	resetAt time.Time
}

// NewColorMixer returns an empty mixer
func NewColorMixer() *ColorMixer {
	return &ColorMixer{Result: EmptyMix}
}

// Select adds a paint. Repeats and a third paint are ignored.
func (m *ColorMixer) Select(c Color, now time.Time) (int, error) {
	if !validColor(c) {
		return 0, fmt.Errorf("%w: color %q", ErrInvalidAction, c)
	}
	if len(m.Selected) >= 2 || m.IsSelected(c) {
		return 0, nil
	}

	m.Selected = append(m.Selected, c)
	if len(m.Selected) < 2 {
		return 0, nil
	}

	if result, ok := Mix(m.Selected[0], m.Selected[1]); ok {
		m.Result = result
	}
	m.resetAt = now.Add(ColorResetDelay)
	return ColorMixPoints, nil
}

// IsSelected reports whether the paint is part of the current selection
func (m *ColorMixer) IsSelected(c Color) bool {
	for _, s := range m.Selected {
		if s == c {
			return true
		}
	}
	return false
}

// Tick clears a completed selection once its delay has passed.
// The mixed result stays on display.
func (m *ColorMixer) Tick(now time.Time) {
	if len(m.Selected) == 2 && !now.Before(m.resetAt) {
		m.Selected = nil
	}
}

// Deadline returns when the selection resets
func (m *ColorMixer) Deadline() (time.Time, bool) {
	if len(m.Selected) < 2 {
		return time.Time{}, false
	}
	return m.resetAt, true
}
