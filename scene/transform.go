package scene

import (
	"fmt"
	"math"
	"strings"
)

// TransformKind identifies a transform primitive.
type TransformKind uint8

const (
	Translate TransformKind = iota
	Scale
	Rotate
	SkewX
	SkewY
	MatrixOp
)

var transformNames = [...]string{
	Translate: "translate",
	Scale:     "scale",
	Rotate:    "rotate",
	SkewX:     "skewX",
	SkewY:     "skewY",
	MatrixOp:  "matrix",
}

func (k TransformKind) String() string {
	if int(k) < len(transformNames) {
		return transformNames[k]
	}
	return "<unknown TransformKind>"
}

// TransformOp is one primitive of a transform list.
// Args have already been completed with their default values,
// so that Translate, Scale and SkewX/SkewY have 2, 2 and 1 arguments,
// Rotate has 3 (angle in degrees, cx, cy) and MatrixOp 6.
type TransformOp struct {
	Kind TransformKind
	Args []float64
}

// Matrix returns the matrix of the primitive.
func (op TransformOp) Matrix() Matrix2D {
	a := op.Args
	switch op.Kind {
	case Translate:
		return Identity.Translate(a[0], a[1])
	case Scale:
		return Identity.Scale(a[0], a[1])
	case Rotate:
		return Identity.Translate(a[1], a[2]).
			Rotate(a[0]*math.Pi/180).
			Translate(-a[1], -a[2])
	case SkewX:
		return Identity.SkewX(a[0] * math.Pi / 180)
	case SkewY:
		return Identity.SkewY(a[0] * math.Pi / 180)
	case MatrixOp:
		return Matrix2D{A: a[0], B: a[1], C: a[2], D: a[3], E: a[4], F: a[5]}
	}
	return Identity
}

func (op TransformOp) String() string {
	args := make([]string, len(op.Args))
	for i, a := range op.Args {
		args[i] = fmt.Sprintf("%g", a)
	}
	return op.Kind.String() + "(" + strings.Join(args, " ") + ")"
}

// TransformList is a parsed transform attribute.
type TransformList []TransformOp

// Matrix composes the primitives in reading order: each
// primitive applies in the local frame of the previous ones.
func (l TransformList) Matrix() Matrix2D {
	m := Identity
	for _, op := range l {
		m = m.Mult(op.Matrix())
	}
	return m
}

func (l TransformList) String() string {
	chunks := make([]string, len(l))
	for i, op := range l {
		chunks[i] = op.String()
	}
	return strings.Join(chunks, " ")
}

func readTransformOp(name string, points []float64) (TransformOp, error) {
	ln := len(points)
	switch name {
	case "rotate":
		if ln == 1 {
			return TransformOp{Rotate, []float64{points[0], 0, 0}}, nil
		} else if ln == 3 {
			return TransformOp{Rotate, points}, nil
		}
	case "translate":
		if ln == 1 {
			return TransformOp{Translate, []float64{points[0], 0}}, nil
		} else if ln == 2 {
			return TransformOp{Translate, points}, nil
		}
	case "skewx":
		if ln == 1 {
			return TransformOp{SkewX, points}, nil
		}
	case "skewy":
		if ln == 1 {
			return TransformOp{SkewY, points}, nil
		}
	case "scale":
		if ln == 1 {
			return TransformOp{Scale, []float64{points[0], points[0]}}, nil
		} else if ln == 2 {
			return TransformOp{Scale, points}, nil
		}
	case "matrix":
		if ln == 6 {
			return TransformOp{MatrixOp, points}, nil
		}
	}
	return TransformOp{}, errParamMismatch
}

func isKnownTransform(name string) bool {
	switch name {
	case "rotate", "translate", "skewx", "skewy", "scale", "matrix":
		return true
	}
	return false
}

// ParseTransform parses a transform attribute like
// "translate(10, 20) rotate(45)".
// Unknown primitives are skipped. Any syntax error, including a missing
// closing parenthesis, invalidates the whole list: an error wrapping
// ErrInvalidTransform is then returned with a nil list.
func ParseTransform(v string) (TransformList, error) {
	ts := strings.Split(v, ")")
	// the chunk after the last ')' must be empty
	if tail := strings.Trim(ts[len(ts)-1], " \t\n\r,"); tail != "" {
		return nil, fmt.Errorf("%w: unterminated %q", ErrInvalidTransform, tail)
	}
	ts = ts[:len(ts)-1]
	var out TransformList
	for _, t := range ts {
		t = strings.Trim(t, " \t\n\r,")
		d := strings.Split(t, "(")
		if len(d) != 2 {
			return nil, fmt.Errorf("%w: badly formed %q", ErrInvalidTransform, t)
		}
		name := strings.ToLower(strings.TrimSpace(d[0]))
		if name == "" {
			return nil, fmt.Errorf("%w: missing name in %q", ErrInvalidTransform, t)
		}
		points, err := parseNumberList(d[1])
		if err != nil {
			return nil, fmt.Errorf("%w: arguments of %s: %s", ErrInvalidTransform, name, err)
		}
		if !isKnownTransform(name) {
			continue
		}
		op, err := readTransformOp(name, points)
		if err != nil {
			return nil, fmt.Errorf("%w: %d arguments for %s", ErrInvalidTransform, len(points), name)
		}
		out = append(out, op)
	}
	return out, nil
}
