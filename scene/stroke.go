package scene

import "strings"

// JoinMode type to specify how segments join.
type JoinMode uint8

// JoinMode constants determine how stroke segments bridge the gap at a join
// ArcClip mode is like MiterClip applied to arcs, and is not part of the SVG2.0
// standard.
const (
	Miter JoinMode = iota
	Round
	Bevel
	Arc       // New in SVG2
	MiterClip // New in SVG2
	ArcClip   // Like MiterClip applied to arcs, and is not part of the SVG2.0 standard.
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	case MiterClip:
		return "MiterClip"
	case Arc:
		return "Arc"
	case ArcClip:
		return "ArcClip"
	default:
		return "<unknown JoinMode>"
	}
}

func parseJoinMode(v string) (JoinMode, bool) {
	switch v {
	case "miter":
		return Miter, true
	case "miter-clip":
		return MiterClip, true
	case "arc-clip":
		return ArcClip, true
	case "round":
		return Round, true
	case "arc":
		return Arc, true
	case "bevel":
		return Bevel, true
	}
	return 0, false
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
	CubicCap     // Not part of the SVG2.0 standard.
	QuadraticCap // Not part of the SVG2.0 standard.
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	case CubicCap:
		return "CubicCap"
	case QuadraticCap:
		return "QuadraticCap"
	default:
		return "<unknown CapMode>"
	}
}

func parseCapMode(v string) (CapMode, bool) {
	switch v {
	case "butt":
		return ButtCap, true
	case "round":
		return RoundCap, true
	case "square":
		return SquareCap, true
	case "cubic":
		return CubicCap, true
	case "quadratic":
		return QuadraticCap, true
	}
	return 0, false
}

// FillRule selects the winding rule used to fill a path.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (f FillRule) String() string {
	if f == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// StrokeStyle is the resolved stroking parameters of a shape,
// in the user space of the shape.
type StrokeStyle struct {
	Width      float64
	Join       JoinMode
	Cap        CapMode
	MiterLimit float64
	Dash       []float64 // nil for solid lines
	DashOffset float64
}

// parseDashArray reads a stroke-dasharray value. "none"
// returns a nil slice.
func parseDashArray(v string) ([]Length, error) {
	if strings.TrimSpace(v) == "none" {
		return nil, nil
	}
	var out []Length
	for _, chunk := range splitOnCommaOrSpace(v) {
		l, err := ParseLength(chunk)
		if err != nil {
			return nil, err
		}
		if l.Magnitude < 0 {
			return nil, errParamMismatch
		}
		out = append(out, l)
	}
	return out, nil
}
