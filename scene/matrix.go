package scene

import (
	"fmt"
	"math"
)

// Matrix2D represents the affine transform
// (x,y) -> (A*x + C*y + E, B*x + D*y + F).
// Its memory layout matches rasterx.Matrix2D.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral element of Mult.
var Identity = Matrix2D{A: 1, D: 1}

// Point is a location in some user space.
type Point struct{ X, Y float64 }

// Mult returns a*b, that is the transform applying b first, then a.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate returns a*translate(x, y)
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, D: 1, E: x, F: y})
}

// Scale returns a*scale(x, y)
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: x, D: y})
}

// Rotate returns a*rotate(theta), with theta in radians.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	s, c := math.Sincos(theta)
	return a.Mult(Matrix2D{A: c, B: s, C: -s, D: c})
}

// SkewX returns a*skewX(theta), with theta in radians.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, C: math.Tan(theta), D: 1})
}

// SkewY returns a*skewY(theta), with theta in radians.
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, B: math.Tan(theta), D: 1})
}

// Transform applies the matrix to the point (x, y).
func (a Matrix2D) Transform(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// TransformPoint is the Point version of Transform.
func (a Matrix2D) TransformPoint(p Point) Point {
	x, y := a.Transform(p.X, p.Y)
	return Point{x, y}
}

// TransformVector applies only the linear part of the matrix.
func (a Matrix2D) TransformVector(x, y float64) (float64, float64) {
	return a.A*x + a.C*y, a.B*x + a.D*y
}

// Determinant returns the determinant of the linear part.
func (a Matrix2D) Determinant() float64 { return a.A*a.D - a.B*a.C }

// Invert returns the inverse matrix.
// A singular matrix is returned unchanged, with ok set to false.
func (a Matrix2D) Invert() (Matrix2D, bool) {
	det := a.Determinant()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return a, false
	}
	return Matrix2D{
		A: a.D / det,
		B: -a.B / det,
		C: -a.C / det,
		D: a.A / det,
		E: (a.C*a.F - a.D*a.E) / det,
		F: (a.B*a.E - a.A*a.F) / det,
	}, true
}

// ScaleFactors returns the length of the images of the unit vectors.
func (a Matrix2D) ScaleFactors() (sx, sy float64) {
	return math.Hypot(a.A, a.B), math.Hypot(a.C, a.D)
}

// IsIdentity is true for the exact identity.
func (a Matrix2D) IsIdentity() bool { return a == Identity }

// TransformRect returns the bounding box of the image of r.
func (a Matrix2D) TransformRect(r Bounds) Bounds {
	var out boundsBuilder
	for _, p := range r.corners() {
		out.add(a.TransformPoint(p))
	}
	return out.bounds()
}

func (a Matrix2D) String() string {
	return fmt.Sprintf("matrix(%g %g %g %g %g %g)", a.A, a.B, a.C, a.D, a.E, a.F)
}

// Bounds defines a rectangle, such as a viewport,
// a viewBox or a path extent.
type Bounds struct{ X, Y, W, H float64 }

func (b Bounds) corners() [4]Point {
	return [4]Point{{b.X, b.Y}, {b.X + b.W, b.Y}, {b.X + b.W, b.Y + b.H}, {b.X, b.Y + b.H}}
}

// IsEmpty returns true when the area is zero.
func (b Bounds) IsEmpty() bool { return b.W <= 0 || b.H <= 0 }

// Union returns the smallest rectangle containing b and o.
func (b Bounds) Union(o Bounds) Bounds {
	var out boundsBuilder
	for _, p := range b.corners() {
		out.add(p)
	}
	for _, p := range o.corners() {
		out.add(p)
	}
	return out.bounds()
}

// boundsBuilder accumulates points into a bounding box.
type boundsBuilder struct {
	minX, minY, maxX, maxY float64
	started                bool
}

func (bb *boundsBuilder) add(p Point) {
	if !bb.started {
		bb.minX, bb.maxX, bb.minY, bb.maxY = p.X, p.X, p.Y, p.Y
		bb.started = true
		return
	}
	bb.minX = math.Min(bb.minX, p.X)
	bb.maxX = math.Max(bb.maxX, p.X)
	bb.minY = math.Min(bb.minY, p.Y)
	bb.maxY = math.Max(bb.maxY, p.Y)
}

func (bb *boundsBuilder) bounds() Bounds {
	return Bounds{X: bb.minX, Y: bb.minY, W: bb.maxX - bb.minX, H: bb.maxY - bb.minY}
}
