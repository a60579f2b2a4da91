package scene

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/constraints"
)

// Unit is the unit of a Length.
type Unit uint8

const (
	UnitNone Unit = iota // user units
	UnitPx
	UnitPt
	UnitIn
	UnitCm
	UnitMm
	UnitPercent
)

func (u Unit) String() string {
	switch u {
	case UnitNone:
		return ""
	case UnitPx:
		return "px"
	case UnitPt:
		return "pt"
	case UnitIn:
		return "in"
	case UnitCm:
		return "cm"
	case UnitMm:
		return "mm"
	case UnitPercent:
		return "%"
	default:
		return "<unknown Unit>"
	}
}

// Length is a number with an optional unit, as found
// in geometry attributes.
type Length struct {
	Magnitude float64
	Unit      Unit
}

func (l Length) String() string { return fmt.Sprintf("%g%s", l.Magnitude, l.Unit) }

// IsAbsolute is true for physical units.
func (l Length) IsAbsolute() bool {
	switch l.Unit {
	case UnitPt, UnitIn, UnitCm, UnitMm:
		return true
	}
	return false
}

// ParseLength reads a length such as "12", "3.5mm" or "50%".
// An unknown unit suffix is ignored: the returned Length uses UnitNone
// and is still usable, but an error wrapping ErrUnknownUnit is returned.
// When no number is found, the zero Length and ErrInvalidLength are returned.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	f, rest, ok := scanNumber(s)
	if !ok {
		return Length{}, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	l := Length{Magnitude: f}
	switch suffix := strings.TrimSpace(rest); strings.ToLower(suffix) {
	case "":
	case "px":
		l.Unit = UnitPx
	case "pt":
		l.Unit = UnitPt
	case "in":
		l.Unit = UnitIn
	case "cm":
		l.Unit = UnitCm
	case "mm":
		l.Unit = UnitMm
	case "%":
		l.Unit = UnitPercent
	default:
		return l, fmt.Errorf("%w %q in %q", ErrUnknownUnit, suffix, s)
	}
	return l, nil
}

// Resolve converts the length to user units at the resolution `ppi`
// (user units per inch). `reference` is only used by percentages.
func (l Length) Resolve(reference, ppi float64) float64 {
	switch l.Unit {
	case UnitPt:
		return l.Magnitude * ppi / 72
	case UnitIn:
		return l.Magnitude * ppi
	case UnitCm:
		return l.Magnitude * ppi / 2.54
	case UnitMm:
		return l.Magnitude * ppi / 25.4
	case UnitPercent:
		return l.Magnitude / 100 * reference
	default: // UnitNone, UnitPx
		return l.Magnitude
	}
}

// Viewport is the rectangle and resolution used to resolve
// lengths at some depth of the document.
type Viewport struct {
	Rect Bounds
	PPI  float64
}

// ResolveX resolves a length along the horizontal axis.
func (vp Viewport) ResolveX(l Length) float64 { return l.Resolve(vp.Rect.W, vp.PPI) }

// ResolveY resolves a length along the vertical axis.
func (vp Viewport) ResolveY(l Length) float64 { return l.Resolve(vp.Rect.H, vp.PPI) }

// ResolveDiagonal resolves lengths which are not oriented,
// like stroke widths: percentages refer to sqrt(w²+h²)/sqrt(2).
func (vp Viewport) ResolveDiagonal(l Length) float64 {
	return l.Resolve(vp.diagonal(), vp.PPI)
}

func (vp Viewport) diagonal() float64 {
	return math.Hypot(vp.Rect.W, vp.Rect.H) / math.Sqrt2
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
