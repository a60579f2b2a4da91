package scene

import (
	"fmt"
	"image"
)

// Paint is the resolved value of a fill or stroke property:
// either PlainColor, *Gradient or *PatternPaint.
// A nil Paint means nothing is painted.
type Paint interface {
	isPaint()
}

func (PlainColor) isPaint()    {}
func (*Gradient) isPaint()     {}
func (*PatternPaint) isPaint() {}

// PatternPaint is a pattern resolved for one shape: a pre-rendered tile,
// repeated by a brush.
type PatternPaint struct {
	ID string
	// Tile is the rendered content of one pattern cell.
	Tile *image.RGBA
	// Brush maps the tile pixel space to the output space. The tile
	// repeats with a period of its size in pixel space.
	Brush Matrix2D
	// Rect is the reference rectangle, in the user space of the shape
	// (before patternTransform).
	Rect Bounds
}

func paintString(p Paint) string {
	switch p := p.(type) {
	case nil:
		return "none"
	case PlainColor:
		return p.String()
	case *Gradient:
		kind := "linear"
		if _, ok := p.Direction.(Radial); ok {
			kind = "radial"
		}
		return fmt.Sprintf("%s-gradient(#%s)", kind, p.ID)
	case *PatternPaint:
		b := p.Tile.Bounds()
		return fmt.Sprintf("pattern(#%s %dx%d)", p.ID, b.Dx(), b.Dy())
	default:
		return "<unknown Paint>"
	}
}

// shapeContext is what the paint servers need to know
// about the shape they are applied to.
type shapeContext struct {
	path      string
	bbox      Bounds // in the shape user space
	transform Matrix2D
	viewport  Viewport
	props     Properties
	base      string
}

type paintChannel uint8

const (
	fillChannel paintChannel = iota
	strokeChannel
)

func (c paintChannel) String() string {
	if c == strokeChannel {
		return "stroke"
	}
	return "fill"
}

// colorPaint resolves a color value in the context of the shape.
func colorPaint(c parsedColor, props Properties) Paint {
	switch {
	case c.none:
		return nil
	case c.current:
		return props.Color
	default:
		return c.c
	}
}

// defaultPaint is used for unresolved references without fallback.
func defaultPaint(channel paintChannel) Paint {
	if channel == fillChannel {
		return black
	}
	return nil
}

// resolvePaint resolves a fill or stroke value for the given shape.
func (b *builder) resolvePaint(spec paintSpec, channel paintChannel, sh shapeContext) Paint {
	if spec.ref == "" {
		return colorPaint(spec.fallback, sh.props)
	}
	fallback := func() Paint {
		if spec.hasFallback {
			return colorPaint(spec.fallback, sh.props)
		}
		return defaultPaint(channel)
	}
	def, ok := b.reg.lookup(spec.ref, sh.base)
	if !ok {
		b.report(sh.path, "unresolved %s reference %q", channel, spec.ref)
		return fallback()
	}
	switch def.el.Tag() {
	case "linearGradient", "radialGradient":
		return b.resolveGradient(def, sh)
	case "pattern":
		return b.resolvePattern(def, sh)
	default:
		b.report(sh.path, "%s reference %q is a %s element, not a paint server", channel, spec.ref, def.el.Tag())
		return fallback()
	}
}
