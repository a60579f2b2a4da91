package scene

import (
	"fmt"
	"strings"
)

// Visibility is the value of the visibility property.
type Visibility uint8

const (
	Visible Visibility = iota
	Hidden
	Collapse
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	case Collapse:
		return "collapse"
	default:
		return "<unknown Visibility>"
	}
}

// paintSpec is an unresolved fill or stroke value,
// like "url(#grad) red".
type paintSpec struct {
	ref         string // referenced IRI, empty if none
	fallback    parsedColor
	hasFallback bool
}

func (ps paintSpec) String() string {
	var chunks []string
	if ps.ref != "" {
		chunks = append(chunks, "url("+ps.ref+")")
	}
	if ps.ref == "" || ps.hasFallback {
		switch {
		case ps.fallback.none:
			chunks = append(chunks, "none")
		case ps.fallback.current:
			chunks = append(chunks, "currentColor")
		default:
			chunks = append(chunks, ps.fallback.c.String())
		}
	}
	return strings.Join(chunks, " ")
}

var (
	noPaint    = paintSpec{fallback: parsedColor{none: true}}
	blackPaint = paintSpec{fallback: parsedColor{c: black}}
)

// parsePaint reads a fill or stroke value.
func parsePaint(v string) (paintSpec, error) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "url(") {
		end := strings.IndexByte(v, ')')
		if end < 0 {
			return paintSpec{}, fmt.Errorf("unterminated url in %q", v)
		}
		ref := strings.Trim(strings.TrimSpace(v[len("url("):end]), `'"`)
		out := paintSpec{ref: ref}
		if rest := strings.TrimSpace(v[end+1:]); rest != "" {
			fb, err := parseColor(rest)
			if err != nil {
				return out, err
			}
			out.fallback, out.hasFallback = fb, true
		}
		return out, nil
	}
	c, err := parseColor(v)
	if err != nil {
		return paintSpec{}, err
	}
	return paintSpec{fallback: c}, nil
}

// Properties is the record of the inherited presentation properties,
// threaded through the scope stack.
type Properties struct {
	Visibility    Visibility
	Color         PlainColor // used by currentColor
	Fill, Stroke  paintSpec
	FillOpacity   float64
	StrokeOpacity float64
	FillRule      FillRule
	StrokeWidth   Length
	Join          JoinMode
	Cap           CapMode
	MiterLimit    float64
	Dash          []Length
	DashOffset    Length
}

// DefaultProperties are the initial values of the inherited properties.
var DefaultProperties = Properties{
	Color:         black,
	Fill:          blackPaint,
	Stroke:        noPaint,
	FillOpacity:   1,
	StrokeOpacity: 1,
	StrokeWidth:   Length{Magnitude: 1},
	Join:          Miter,
	Cap:           ButtCap,
	MiterLimit:    4,
}

// optional is a declared property value; a zero value
// means the property is inherited.
type optional[T any] struct {
	value T
	set   bool
}

func some[T any](v T) optional[T] { return optional[T]{value: v, set: true} }

func (o optional[T]) or(parent T) T {
	if o.set {
		return o.value
	}
	return parent
}

// declaration stores the inherited properties
// explicitly set on one element.
type declaration struct {
	visibility    optional[Visibility]
	color         optional[parsedColor]
	fill, stroke  optional[paintSpec]
	fillOpacity   optional[float64]
	strokeOpacity optional[float64]
	fillRule      optional[FillRule]
	strokeWidth   optional[Length]
	join          optional[JoinMode]
	cap           optional[CapMode]
	miterLimit    optional[float64]
	dash          optional[[]Length]
	dashOffset    optional[Length]
}

func readOpacity(v string) (float64, error) {
	f, err := readFraction(v)
	return clamp(f, 0, 1), err
}

// readDeclaration reads the inherited properties of an element. Invalid values
// are reported through `report` and are treated as not set.
func readDeclaration(a attrs, report func(error)) declaration {
	var d declaration
	get := func(name string) (string, bool) {
		v, ok := a.prop(name)
		if !ok || v == "inherit" {
			return "", false
		}
		return v, true
	}
	fail := func(name, v string, err error) {
		report(fmt.Errorf("invalid %s %q: %s", name, v, err))
	}
	if v, ok := get("visibility"); ok {
		switch v {
		case "visible":
			d.visibility = some(Visible)
		case "hidden":
			d.visibility = some(Hidden)
		case "collapse":
			d.visibility = some(Collapse)
		default:
			fail("visibility", v, errParamMismatch)
		}
	}
	if v, ok := get("color"); ok {
		if c, err := parseColor(v); err != nil {
			fail("color", v, err)
		} else if !c.none {
			d.color = some(c)
		}
	}
	for _, name := range [2]string{"fill", "stroke"} {
		v, ok := get(name)
		if !ok {
			continue
		}
		ps, err := parsePaint(v)
		if err != nil {
			fail(name, v, err)
			continue
		}
		if name == "fill" {
			d.fill = some(ps)
		} else {
			d.stroke = some(ps)
		}
	}
	if v, ok := get("fill-opacity"); ok {
		if f, err := readOpacity(v); err != nil {
			fail("fill-opacity", v, err)
		} else {
			d.fillOpacity = some(f)
		}
	}
	if v, ok := get("stroke-opacity"); ok {
		if f, err := readOpacity(v); err != nil {
			fail("stroke-opacity", v, err)
		} else {
			d.strokeOpacity = some(f)
		}
	}
	if v, ok := get("fill-rule"); ok {
		switch v {
		case "nonzero":
			d.fillRule = some(NonZero)
		case "evenodd":
			d.fillRule = some(EvenOdd)
		default:
			fail("fill-rule", v, errParamMismatch)
		}
	}
	if v, ok := get("stroke-width"); ok {
		l, err := ParseLength(v)
		if err == nil && l.Magnitude < 0 {
			err = errParamMismatch
		}
		if err != nil {
			fail("stroke-width", v, err)
		} else {
			d.strokeWidth = some(l)
		}
	}
	if v, ok := get("stroke-linejoin"); ok {
		if j, ok := parseJoinMode(v); ok {
			d.join = some(j)
		} else {
			fail("stroke-linejoin", v, errParamMismatch)
		}
	}
	if v, ok := get("stroke-linecap"); ok {
		if c, ok := parseCapMode(v); ok {
			d.cap = some(c)
		} else {
			fail("stroke-linecap", v, errParamMismatch)
		}
	}
	if v, ok := get("stroke-miterlimit"); ok {
		if f, err := parseFloat(v, 64); err != nil || f < 1 {
			fail("stroke-miterlimit", v, errParamMismatch)
		} else {
			d.miterLimit = some(f)
		}
	}
	if v, ok := get("stroke-dasharray"); ok {
		if ls, err := parseDashArray(v); err != nil {
			fail("stroke-dasharray", v, err)
		} else {
			d.dash = some(ls)
		}
	}
	if v, ok := get("stroke-dashoffset"); ok {
		if l, err := ParseLength(v); err != nil {
			fail("stroke-dashoffset", v, err)
		} else {
			d.dashOffset = some(l)
		}
	}
	return d
}

// inherit merges the declaration on top of the parent properties.
func (p Properties) inherit(d declaration) Properties {
	out := p
	out.Visibility = d.visibility.or(p.Visibility)
	if d.color.set {
		if !d.color.value.current { // color: currentColor is the parent color
			out.Color = d.color.value.c
		}
	}
	out.Fill = d.fill.or(p.Fill)
	out.Stroke = d.stroke.or(p.Stroke)
	out.FillOpacity = d.fillOpacity.or(p.FillOpacity)
	out.StrokeOpacity = d.strokeOpacity.or(p.StrokeOpacity)
	out.FillRule = d.fillRule.or(p.FillRule)
	out.StrokeWidth = d.strokeWidth.or(p.StrokeWidth)
	out.Join = d.join.or(p.Join)
	out.Cap = d.cap.or(p.Cap)
	out.MiterLimit = d.miterLimit.or(p.MiterLimit)
	out.Dash = d.dash.or(p.Dash)
	out.DashOffset = d.dashOffset.or(p.DashOffset)
	return out
}

// resolveStroke converts the stroke lengths to user units.
func (p Properties) resolveStroke(vp Viewport) StrokeStyle {
	out := StrokeStyle{
		Width:      vp.ResolveDiagonal(p.StrokeWidth),
		Join:       p.Join,
		Cap:        p.Cap,
		MiterLimit: p.MiterLimit,
		DashOffset: vp.ResolveDiagonal(p.DashOffset),
	}
	var total float64
	for _, l := range p.Dash {
		d := vp.ResolveDiagonal(l)
		total += d
		out.Dash = append(out.Dash, d)
	}
	if total == 0 { // all zeros renders as solid
		out.Dash = nil
	} else if len(out.Dash)%2 == 1 {
		out.Dash = append(out.Dash, out.Dash...)
	}
	return out
}
