package scene

import "math"

// GradientUnits is the coordinate system of a paint server.
type GradientUnits uint8

const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

func (u GradientUnits) String() string {
	if u == UserSpaceOnUse {
		return "userSpaceOnUse"
	}
	return "objectBoundingBox"
}

func parseUnits(v string, def GradientUnits) (GradientUnits, bool) {
	switch v {
	case "userSpaceOnUse":
		return UserSpaceOnUse, true
	case "objectBoundingBox":
		return ObjectBoundingBox, true
	}
	return def, false
}

// SpreadMethod is the way a gradient fills the area outside its vector.
type SpreadMethod uint8

const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop is a color stop of a gradient. Offsets
// are in [0, 1] and non decreasing.
type GradStop struct {
	StopColor PlainColor
	Offset    float64
	Opacity   float64
}

type gradientDirecter interface {
	isRadial() bool
}

// Linear stores x1, y1, x2, y2, in gradient space
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// Radial stores cx, cy, fx, fy, r, fr, in gradient space
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// Gradient is a gradient resolved for one shape.
type Gradient struct {
	ID        string
	Direction gradientDirecter // Linear or Radial
	Stops     []GradStop
	Spread    SpreadMethod
	Units     GradientUnits
	// Transform is the gradientTransform attribute.
	Transform Matrix2D
	// Matrix maps the gradient space to the user space of the shape:
	// it is the bounding box placement (for ObjectBoundingBox) times Transform.
	Matrix Matrix2D
}

// serverChain follows the href links between paint servers, starting at def.
// Only elements with one of the given tags are accepted.
func (b *builder) serverChain(def *definition, path string, tags ...string) []*definition {
	accept := func(tag string) bool {
		for _, t := range tags {
			if t == tag {
				return true
			}
		}
		return false
	}
	chain := []*definition{def}
	seen := map[Element]bool{def.el: true}
	for current := def; ; {
		href := newAttrs(current.el).href()
		if href == "" {
			return chain
		}
		next, ok := current.reg.lookup(href, current.base)
		if !ok {
			b.report(path, "unresolved href %q of %s", href, current.el.Tag())
			return chain
		}
		if seen[next.el] {
			b.report(path, "circular href %q of %s", href, current.el.Tag())
			return chain
		}
		if !accept(next.el.Tag()) {
			return chain
		}
		seen[next.el] = true
		chain = append(chain, next)
		current = next
	}
}

// chainAttr returns the first value of the attribute along the chain.
func chainAttr(chain []*definition, name string) (string, bool) {
	for _, def := range chain {
		if v, ok := newAttrs(def.el).get(name); ok {
			return v, true
		}
	}
	return "", false
}

// chainChildren returns the definition whose children
// (with the given tag, if not empty) are used by the chain.
func chainChildren(chain []*definition, tag string) *definition {
	for _, def := range chain {
		for _, child := range def.el.Children() {
			if tag == "" || child.Tag() == tag {
				return def
			}
		}
	}
	return nil
}

// gradientCoord resolves one coordinate of a gradient vector.
type gradientCoord struct {
	name string
	def  string
	axis byte // 'x', 'y' or 'd' for diagonal
}

var (
	linearCoords = [4]gradientCoord{{"x1", "0%", 'x'}, {"y1", "0%", 'y'}, {"x2", "100%", 'x'}, {"y2", "0%", 'y'}}
	radialCoords = [6]gradientCoord{{"cx", "50%", 'x'}, {"cy", "50%", 'y'}, {"fx", "", 'x'}, {"fy", "", 'y'}, {"r", "50%", 'd'}, {"fr", "0%", 'd'}}
)

func (b *builder) readGradientCoord(chain []*definition, c gradientCoord, units GradientUnits, sh shapeContext) (float64, bool) {
	v, ok := chainAttr(chain, c.name)
	if !ok {
		if c.def == "" {
			return 0, false
		}
		v = c.def
	}
	l, err := ParseLength(v)
	if err != nil {
		b.report(sh.path, "attribute %s: %s", c.name, err)
	}
	if units == ObjectBoundingBox {
		if l.Unit == UnitPercent {
			return l.Magnitude / 100, true
		}
		return l.Magnitude, true
	}
	switch c.axis {
	case 'x':
		return sh.viewport.ResolveX(l), true
	case 'y':
		return sh.viewport.ResolveY(l), true
	default:
		return sh.viewport.ResolveDiagonal(l), true
	}
}

// resolveGradient builds the gradient for the given shape.
// It returns nil when the gradient paints nothing.
func (b *builder) resolveGradient(def *definition, sh shapeContext) Paint {
	chain := b.serverChain(def, sh.path, "linearGradient", "radialGradient")
	g := &Gradient{ID: elementID(def.el), Transform: Identity}

	if v, ok := chainAttr(chain, "gradientUnits"); ok {
		var valid bool
		if g.Units, valid = parseUnits(v, ObjectBoundingBox); !valid {
			b.report(sh.path, "invalid gradientUnits %q", v)
		}
	}
	if v, ok := chainAttr(chain, "spreadMethod"); ok {
		switch v {
		case "pad":
			g.Spread = PadSpread
		case "reflect":
			g.Spread = ReflectSpread
		case "repeat":
			g.Spread = RepeatSpread
		default:
			b.report(sh.path, "invalid spreadMethod %q", v)
		}
	}
	if v, ok := chainAttr(chain, "gradientTransform"); ok {
		list, err := ParseTransform(v)
		if err != nil {
			b.report(sh.path, "gradientTransform: %s", err)
		} else {
			g.Transform = list.Matrix()
		}
	}

	if def.el.Tag() == "linearGradient" {
		var dir Linear
		for i, c := range linearCoords {
			dir[i], _ = b.readGradientCoord(chain, c, g.Units, sh)
		}
		g.Direction = dir
	} else {
		var dir Radial
		for i, c := range radialCoords {
			var ok bool
			dir[i], ok = b.readGradientCoord(chain, c, g.Units, sh)
			if !ok { // fx, fy default to cx, cy
				dir[i] = dir[i-2]
			}
		}
		g.Direction = dir
	}

	g.Stops = b.readStops(chain, sh.path)
	switch len(g.Stops) {
	case 0:
		return nil
	case 1:
		s := g.Stops[0]
		return s.StopColor.withOpacity(s.Opacity)
	}

	placement := Identity
	if g.Units == ObjectBoundingBox {
		if sh.bbox.W == 0 || sh.bbox.H == 0 {
			// the gradient is not rendered for an empty bounding box
			return nil
		}
		placement = Identity.Translate(sh.bbox.X, sh.bbox.Y).Scale(sh.bbox.W, sh.bbox.H)
	}
	g.Matrix = placement.Mult(g.Transform)
	return g
}

// readStops reads the stops of the gradient chain: offsets are clamped
// to [0, 1] and made non decreasing.
func (b *builder) readStops(chain []*definition, path string) []GradStop {
	holder := chainChildren(chain, "stop")
	if holder == nil {
		return nil
	}
	var (
		stops []GradStop
		prev  float64
	)
	gradProps := holder.properties()
	for _, child := range holder.el.Children() {
		if child.Tag() != "stop" {
			continue
		}
		a := newAttrs(child)
		stop := GradStop{StopColor: black, Opacity: 1}
		if v, ok := a.get("offset"); ok {
			off, err := readFraction(v)
			if err != nil {
				b.report(path, "invalid stop offset %q", v)
			}
			stop.Offset = off
		}
		stop.Offset = math.Max(clamp(stop.Offset, 0, 1), prev)
		prev = stop.Offset
		if v, ok := a.prop("stop-color"); ok {
			c, err := parseColor(v)
			switch {
			case err != nil:
				b.report(path, "invalid stop-color %q: %s", v, err)
			case c.current:
				props := gradProps.inherit(readDeclaration(a, func(error) {}))
				stop.StopColor = props.Color
			case c.none:
				stop.StopColor = PlainColor{}
			default:
				stop.StopColor = c.c
			}
		}
		if v, ok := a.prop("stop-opacity"); ok {
			op, err := readOpacity(v)
			if err != nil {
				b.report(path, "invalid stop-opacity %q", v)
			} else {
				stop.Opacity = op
			}
		}
		stops = append(stops, stop)
	}
	return stops
}

// applySpread maps t to [0, 1] according to the spread method.
func applySpread(t float64, spread SpreadMethod) float64 {
	switch spread {
	case RepeatSpread:
		t -= math.Floor(t)
	case ReflectSpread:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = clamp(t, 0, 1)
	}
	return t
}

// parameter returns the position along the gradient of the point (x, y),
// given in gradient space.
func (g *Gradient) parameter(x, y float64) float64 {
	switch dir := g.Direction.(type) {
	case Linear:
		dx, dy := dir[2]-dir[0], dir[3]-dir[1]
		lengthSq := dx*dx + dy*dy
		if lengthSq == 0 {
			return 1
		}
		return ((x-dir[0])*dx + (y-dir[1])*dy) / lengthSq
	case Radial:
		return radialParameter(dir, x, y)
	}
	return 0
}

// radialParameter solves for the circle interpolated between the
// focal circle (fx, fy, fr) and the end circle (cx, cy, r) going through (x, y).
func radialParameter(dir Radial, x, y float64) float64 {
	cx, cy, fx, fy, r, fr := dir[0], dir[1], dir[2], dir[3], dir[4], dir[5]
	if r == fr {
		return 1
	}
	if cx == fx && cy == fy {
		return (math.Hypot(x-cx, y-cy) - fr) / (r - fr)
	}
	// circle(t) : center f + t*(c-f), radius fr + t*(r-fr)
	cdx, cdy, dr := cx-fx, cy-fy, r-fr
	px, py := x-fx, y-fy
	a := cdx*cdx + cdy*cdy - dr*dr
	bb := px*cdx + py*cdy + fr*dr
	c := px*px + py*py - fr*fr
	if a == 0 {
		if bb == 0 {
			return 0
		}
		return c / (2 * bb)
	}
	disc := bb*bb - a*c
	if disc < 0 {
		return 0
	}
	sq := math.Sqrt(disc)
	t1, t2 := (bb+sq)/a, (bb-sq)/a
	tMax, tMin := math.Max(t1, t2), math.Min(t1, t2)
	if fr+tMax*dr >= 0 {
		return tMax
	}
	return tMin
}

// colorAt returns the (non premultiplied) color at parameter t.
func (g *Gradient) colorAt(t float64) PlainColor {
	t = applySpread(t, g.Spread)
	stops := g.Stops
	if t <= stops[0].Offset {
		return stops[0].StopColor.withOpacity(stops[0].Opacity)
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.StopColor.withOpacity(last.Opacity)
	}
	for i := 1; i < len(stops); i++ {
		s0, s1 := stops[i-1], stops[i]
		if t > s1.Offset {
			continue
		}
		u := 0.
		if span := s1.Offset - s0.Offset; span > 0 {
			u = (t - s0.Offset) / span
		}
		lerp := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*u + 0.5) }
		a0, a1 := float64(s0.StopColor.A)*s0.Opacity, float64(s1.StopColor.A)*s1.Opacity
		return PlainColor{
			R: lerp(s0.StopColor.R, s1.StopColor.R),
			G: lerp(s0.StopColor.G, s1.StopColor.G),
			B: lerp(s0.StopColor.B, s1.StopColor.B),
			A: uint8(a0 + (a1-a0)*u + 0.5),
		}
	}
	return last.StopColor.withOpacity(last.Opacity)
}
