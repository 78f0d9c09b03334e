// Package display decides whether output is coloured and styles it.
package display

import "fmt"

// ColorMode is the user's colour preference
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode accepts auto, always or never; empty means auto
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// Enabled reports whether output should be coloured in env
func (m ColorMode) Enabled(env Env) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return env.HasColor
	}
}
