package scene

import (
	"fmt"
	"strings"
)

// This file defines the basic path structure

// Operation groups the different SVG commands
type Operation interface {
	// transform returns the operation with all its points mapped by `m`
	transform(m Matrix2D) Operation
}

// MoveTo starts a new subpath.
type MoveTo Point

// LineTo draws a straight segment.
type LineTo Point

// QuadTo draws a quadratic bezier curve: control point, end point.
type QuadTo [2]Point

// CubicTo draws a cubic bezier curve: two control points, end point.
type CubicTo [3]Point

// Close joins the current point to the start of the subpath.
type Close struct{}

func (op MoveTo) transform(m Matrix2D) Operation { return MoveTo(m.TransformPoint(Point(op))) }
func (op LineTo) transform(m Matrix2D) Operation { return LineTo(m.TransformPoint(Point(op))) }
func (op QuadTo) transform(m Matrix2D) Operation {
	return QuadTo{m.TransformPoint(op[0]), m.TransformPoint(op[1])}
}

func (op CubicTo) transform(m Matrix2D) Operation {
	return CubicTo{m.TransformPoint(op[0]), m.TransformPoint(op[1]), m.TransformPoint(op[2])}
}
func (op Close) transform(Matrix2D) Operation { return op }

// Path describes a sequence of basic SVG operations.
// Higher-level shapes are reduced to a path.
type Path []Operation

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", op[0].X, op[0].Y, op[1].X, op[1].Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", op[0].X, op[0].Y,
				op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Start starts a new curve at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c Point) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Transform returns a new path, with all its points mapped by `m`.
func (p Path) Transform(m Matrix2D) Path {
	out := make(Path, len(p))
	for i, op := range p {
		out[i] = op.transform(m)
	}
	return out
}

// Bounds returns the exact bounding box of the path, taking
// the curves extrema into account.
func (p Path) Bounds() Bounds {
	var (
		bb           boundsBuilder
		current, beg Point
	)
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			current, beg = Point(op), Point(op)
			bb.add(current)
		case LineTo:
			bb.add(Point(op))
			current = Point(op)
		case QuadTo:
			curveBounds(&bb, quadBezier{current, op[0], op[1]})
			current = op[1]
		case CubicTo:
			curveBounds(&bb, cubicBezier{current, op[0], op[1], op[2]})
			current = op[2]
		case Close:
			current = beg
		}
	}
	return bb.bounds()
}
