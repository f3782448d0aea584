package charts

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an RGBA color with 8-bit components.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	ColorBlack       = RGB(0, 0, 0)
	ColorWhite       = RGB(255, 255, 255)
	ColorTransparent = Color{}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Std converts to the standard color.Color interface.
func (c Color) Std() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// WithAlpha scales the alpha channel by the given opacity in [0, 1].
func (c Color) WithAlpha(opacity float64) Color {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}

// CSS renders the color as a CSS color string: "#rrggbb" when fully
// opaque, "rgba(r,g,b,a)" otherwise.
func (c Color) CSS() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, float64(c.A)/255)
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(other Color, t float64) Color {
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return Color{
		R: lerp(c.R, other.R),
		G: lerp(c.G, other.G),
		B: lerp(c.B, other.B),
		A: lerp(c.A, other.A),
	}
}

// ParseColor parses a CSS color string.
//
// Supported forms: "#RGB", "#RRGGBB", "#RRGGBBAA", "rgb(r, g, b)",
// "rgba(r, g, b, a)" and the keyword "transparent". Anything else parses
// to opaque white: a malformed color must never crash rendering, and
// white is loud enough to notice.
func ParseColor(s string) Color {
	if s == "transparent" {
		return ColorTransparent
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		switch len(hex) {
		case 3:
			var r, g, b uint32
			if parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b) {
				// Expand each nibble: F -> FF.
				return RGB(uint8(r*17), uint8(g*17), uint8(b*17))
			}
		case 6:
			var r, g, b uint32
			if parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b) {
				return RGB(uint8(r), uint8(g), uint8(b))
			}
		case 8:
			var r, g, b, a uint32
			if parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b) && parseHex(hex[6:8], &a) {
				return RGBA(uint8(r), uint8(g), uint8(b), uint8(a))
			}
		}
		return ColorWhite
	}

	if inner, ok := cutFunc(s, "rgba"); ok {
		parts := splitArgs(inner)
		if len(parts) == 4 {
			r, okR := parseByte(parts[0])
			g, okG := parseByte(parts[1])
			b, okB := parseByte(parts[2])
			alpha, err := strconv.ParseFloat(parts[3], 64)
			if okR && okG && okB && err == nil {
				// Out-of-range alpha would hit undefined float-to-uint8
				// conversion; clamp like WithAlpha does.
				if alpha < 0 {
					alpha = 0
				} else if alpha > 1 {
					alpha = 1
				}
				return RGBA(r, g, b, uint8(alpha*255))
			}
		}
		return ColorWhite
	}

	if inner, ok := cutFunc(s, "rgb"); ok {
		parts := splitArgs(inner)
		if len(parts) == 3 {
			r, okR := parseByte(parts[0])
			g, okG := parseByte(parts[1])
			b, okB := parseByte(parts[2])
			if okR && okG && okB {
				return RGB(r, g, b)
			}
		}
		return ColorWhite
	}

	return ColorWhite
}

// cutFunc strips a "name(...)" wrapper, returning the inner argument list.
func cutFunc(s, name string) (string, bool) {
	if strings.HasPrefix(s, name+"(") && strings.HasSuffix(s, ")") {
		return s[len(name)+1 : len(s)-1], true
	}
	return "", false
}

func splitArgs(inner string) []string {
	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseByte(s string) (uint8, bool) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(v), true
}

// parseHex is a helper for hex parsing.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}
