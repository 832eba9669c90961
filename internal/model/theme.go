package model

import "strings"

// ThemeColor is one entry of the fixed display palette
type ThemeColor string

const (
	ThemeIndigo  ThemeColor = "indigo"
	ThemeBlue    ThemeColor = "blue"
	ThemeRed     ThemeColor = "red"
	ThemeGreen   ThemeColor = "green"
	ThemeEmerald ThemeColor = "emerald"
	ThemePurple  ThemeColor = "purple"
	ThemePink    ThemeColor = "pink"
	ThemeOrange  ThemeColor = "orange"
	ThemeYellow  ThemeColor = "yellow"
	ThemeTeal    ThemeColor = "teal"
	ThemeCyan    ThemeColor = "cyan"
	ThemeGray    ThemeColor = "gray"
)

// DefaultTheme is used when no suggestion picked a color
const DefaultTheme = ThemeIndigo

// Palette returns every supported theme color.
func Palette() []ThemeColor {
	return []ThemeColor{
		ThemeIndigo, ThemeBlue, ThemeRed, ThemeGreen, ThemeEmerald, ThemePurple,
		ThemePink, ThemeOrange, ThemeYellow, ThemeTeal, ThemeCyan, ThemeGray,
	}
}

// ParseTheme lower-cases s and maps it onto the palette. Anything outside
// the palette becomes DefaultTheme.
func ParseTheme(s string) ThemeColor {
	c := ThemeColor(strings.ToLower(strings.TrimSpace(s)))
	if c == "grey" {
		return ThemeGray
	}

	for _, p := range Palette() {
		if p == c {
			return c
		}
	}

	return DefaultTheme
}

// ANSI returns the 256-color terminal code closest to the theme.
func (c ThemeColor) ANSI() string {
	switch c {
	case ThemeBlue:
		return "33"
	case ThemeRed:
		return "196"
	case ThemeGreen:
		return "34"
	case ThemeEmerald:
		return "42"
	case ThemePurple:
		return "135"
	case ThemePink:
		return "205"
	case ThemeOrange:
		return "208"
	case ThemeYellow:
		return "220"
	case ThemeTeal:
		return "30"
	case ThemeCyan:
		return "51"
	case ThemeGray:
		return "245"
	default:
		return "63"
	}
}
