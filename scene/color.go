package scene

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errInvalidColor = errors.New("invalid color")

// PlainColor is a solid paint.
type PlainColor color.NRGBA

// NewPlainColor returns a solid paint from its components.
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{R: r, G: g, B: b, A: a}
}

// RGBA implements color.Color.
func (p PlainColor) RGBA() (r, g, b, a uint32) { return color.NRGBA(p).RGBA() }

func (p PlainColor) String() string {
	if p.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", p.R, p.G, p.B, float64(p.A)/255)
}

var black = NewPlainColor(0, 0, 0, 0xff)

// parsedColor is the result of reading a color value.
type parsedColor struct {
	c       PlainColor
	none    bool // "none"
	current bool // "currentColor"
}

// stripICC removes an optional icc-color(...) specification,
// which always comes with a sRGB fallback.
func stripICC(v string) (string, string) {
	idx := strings.Index(strings.ToLower(v), "icc-color(")
	if idx < 0 {
		return v, ""
	}
	icc := v[idx+len("icc-color("):]
	if end := strings.IndexByte(icc, ')'); end >= 0 {
		icc = icc[:end]
	}
	profile := strings.TrimSpace(strings.Split(icc, ",")[0])
	return strings.TrimSpace(v[:idx]), profile
}

// parseColor reads a color value: "none", "currentColor",
// a color name, #rgb, #rrggbb, rgb() or rgba().
func parseColor(v string) (parsedColor, error) {
	v, _ = stripICC(v)
	v = strings.TrimSpace(v)
	lower := strings.ToLower(v)
	switch lower {
	case "none":
		return parsedColor{none: true}, nil
	case "currentcolor":
		return parsedColor{current: true}, nil
	case "transparent":
		return parsedColor{}, nil
	case "":
		return parsedColor{}, fmt.Errorf("%w: empty value", errInvalidColor)
	}
	if strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba(") {
		c, err := parseRGBFunction(lower)
		return parsedColor{c: c}, err
	}
	if lower[0] == '#' {
		c, err := parseHexColor(lower[1:])
		return parsedColor{c: c}, err
	}
	if named, ok := colornames.Map[lower]; ok {
		return parsedColor{c: NewPlainColor(named.R, named.G, named.B, named.A)}, nil
	}
	return parsedColor{}, fmt.Errorf("%w: %q", errInvalidColor, v)
}

func parseHexColor(hex string) (PlainColor, error) {
	if len(hex) == 3 { // expand #rgb into #rrggbb
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return PlainColor{}, fmt.Errorf("%w: #%s", errInvalidColor, hex)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return PlainColor{}, fmt.Errorf("%w: #%s", errInvalidColor, hex)
	}
	return NewPlainColor(uint8(n>>16), uint8(n>>8), uint8(n), 0xff), nil
}

// parseColorValue reads one component of a rgb() color,
// either an integer in [0, 255] or a percentage.
func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := parseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return 0, err
		}
		return uint8(clamp(f, 0, 100)*255/100 + 0.5), nil
	}
	f, err := parseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return uint8(clamp(f, 0, 255) + 0.5), nil
}

func parseRGBFunction(lower string) (PlainColor, error) {
	start, end := strings.IndexByte(lower, '('), strings.LastIndexByte(lower, ')')
	if end < start {
		return PlainColor{}, fmt.Errorf("%w: %q", errInvalidColor, lower)
	}
	values := splitOnCommaOrSpace(lower[start+1 : end])
	if len(values) != 3 && len(values) != 4 {
		return PlainColor{}, fmt.Errorf("%w: %q", errInvalidColor, lower)
	}
	var comps [3]uint8
	for i := range comps {
		c, err := parseColorValue(values[i])
		if err != nil {
			return PlainColor{}, fmt.Errorf("%w: %q", errInvalidColor, lower)
		}
		comps[i] = c
	}
	alpha := uint8(0xff)
	if len(values) == 4 {
		a, err := readFraction(values[3])
		if err != nil {
			return PlainColor{}, fmt.Errorf("%w: %q", errInvalidColor, lower)
		}
		alpha = uint8(clamp(a, 0, 1)*255 + 0.5)
	}
	return NewPlainColor(comps[0], comps[1], comps[2], alpha), nil
}

// withOpacity returns the color with its alpha multiplied by `opacity`.
func (p PlainColor) withOpacity(opacity float64) PlainColor {
	p.A = uint8(float64(p.A)*clamp(opacity, 0, 1) + 0.5)
	return p
}
