package scene

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestMultOrder(t *testing.T) {
	m := Identity.Translate(10, 0).Scale(2, 2)
	if got := m.TransformPoint(Point{1, 1}); got != (Point{12, 2}) {
		t.Fatalf("scale should apply first, got %v", got)
	}
}

func TestInvert(t *testing.T) {
	m := Identity.Translate(3, 4).Rotate(0.3).Scale(2, 5).SkewX(0.1)
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("expected invertible matrix")
	}
	if diff := cmp.Diff(Identity, m.Mult(inv), approx); diff != "" {
		t.Fatal(diff)
	}
	if _, ok := Identity.Scale(0, 1).Invert(); ok {
		t.Fatal("expected singular matrix")
	}
}

func TestTransformRect(t *testing.T) {
	got := Identity.Rotate(math.Pi/2).TransformRect(Bounds{0, 0, 2, 1})
	if diff := cmp.Diff(Bounds{-1, 0, 1, 2}, got, approx); diff != "" {
		t.Fatal(diff)
	}
}

func TestScaleFactors(t *testing.T) {
	sx, sy := Identity.Rotate(1).Scale(3, 4).ScaleFactors()
	if math.Abs(sx-3) > 1e-9 || math.Abs(sy-4) > 1e-9 {
		t.Fatalf("unexpected scale factors %g %g", sx, sy)
	}
}

func TestBoundsUnion(t *testing.T) {
	u := Bounds{0, 0, 1, 1}.Union(Bounds{2, -1, 1, 1})
	if u != (Bounds{0, -1, 3, 2}) {
		t.Fatalf("unexpected union %v", u)
	}
}
