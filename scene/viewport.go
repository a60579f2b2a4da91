package scene

import (
	"fmt"
	"strings"
)

// FitMode is the meet-or-slice part of preserveAspectRatio.
type FitMode uint8

const (
	Meet   FitMode = iota // scale uniformly, content fully visible
	Slice                 // scale uniformly, viewport fully covered
	Ignore                // scale each axis independently ("none")
)

func (m FitMode) String() string {
	switch m {
	case Meet:
		return "meet"
	case Slice:
		return "slice"
	case Ignore:
		return "none"
	default:
		return "<unknown FitMode>"
	}
}

// Align is the alignment of the content along one axis.
type Align uint8

const (
	AlignMin Align = iota
	AlignMid
	AlignMax
)

func (a Align) String() string {
	switch a {
	case AlignMin:
		return "Min"
	case AlignMid:
		return "Mid"
	case AlignMax:
		return "Max"
	default:
		return "<unknown Align>"
	}
}

// offset returns the part of the leftover space placed before the content.
func (a Align) offset(leftover float64) float64 {
	switch a {
	case AlignMid:
		return leftover / 2
	case AlignMax:
		return leftover
	default:
		return 0
	}
}

// FitSpec is a parsed preserveAspectRatio attribute.
type FitSpec struct {
	Defer          bool
	Mode           FitMode
	AlignX, AlignY Align
}

// DefaultFitSpec is used when preserveAspectRatio is absent.
var DefaultFitSpec = FitSpec{Mode: Meet, AlignX: AlignMid, AlignY: AlignMid}

func (fs FitSpec) String() string {
	var s string
	if fs.Defer {
		s = "defer "
	}
	if fs.Mode == Ignore {
		return s + "none"
	}
	return s + "x" + fs.AlignX.String() + "Y" + fs.AlignY.String() + " " + fs.Mode.String()
}

func parseAlign(s string) (Align, bool) {
	switch s {
	case "min":
		return AlignMin, true
	case "mid":
		return AlignMid, true
	case "max":
		return AlignMax, true
	}
	return 0, false
}

// ParseFitSpec parses a preserveAspectRatio attribute, case insensitively.
// A value which can't be parsed yields a non deferred Ignore mode,
// with Min alignments, as does "none".
func ParseFitSpec(s string) FitSpec {
	var (
		out    FitSpec
		fields = strings.Fields(strings.ToLower(s))
		ignore = FitSpec{Mode: Ignore}
	)
	if len(fields) > 0 && fields[0] == "defer" {
		out.Defer = true
		fields = fields[1:]
	}
	if len(fields) == 0 || len(fields) > 2 {
		return ignore
	}
	align := fields[0]
	if align == "none" {
		out.Mode = Ignore
		return out
	}
	// xMinYMin
	if len(align) != 8 || align[0] != 'x' || align[4] != 'y' {
		return ignore
	}
	var okX, okY bool
	out.AlignX, okX = parseAlign(align[1:4])
	out.AlignY, okY = parseAlign(align[5:8])
	if !okX || !okY {
		return ignore
	}
	out.Mode = Meet
	if len(fields) == 2 {
		switch fields[1] {
		case "meet":
		case "slice":
			out.Mode = Slice
		default:
			return ignore
		}
	}
	return out
}

// Fit returns the transform mapping `content` (a viewBox) into `viewport`,
// according to `spec`.
func Fit(content, viewport Bounds, spec FitSpec) (Matrix2D, error) {
	if content.W <= 0 || content.H <= 0 {
		return Identity, fmt.Errorf("%w: %v", ErrDegenerateViewBox, content)
	}
	sx, sy := viewport.W/content.W, viewport.H/content.H
	var tx, ty float64
	switch spec.Mode {
	case Meet, Slice:
		s := sx
		if (spec.Mode == Meet) == (sy < sx) {
			s = sy
		}
		sx, sy = s, s
		tx = spec.AlignX.offset(viewport.W - content.W*s)
		ty = spec.AlignY.offset(viewport.H - content.H*s)
	}
	return Identity.
		Translate(viewport.X+tx, viewport.Y+ty).
		Scale(sx, sy).
		Translate(-content.X, -content.Y), nil
}
