package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParsePathData(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected Path
	}{
		{"M10 20 L30 40 H50 V60 Z", Path{MoveTo{10, 20}, LineTo{30, 40}, LineTo{50, 40}, LineTo{50, 60}, Close{}}},
		{"M0,0,10,10,20,0", Path{MoveTo{0, 0}, LineTo{10, 10}, LineTo{20, 0}}},
		{"m10 20 l5 5 z m1 1 h2", Path{MoveTo{10, 20}, LineTo{15, 25}, Close{}, MoveTo{11, 21}, LineTo{13, 21}}},
		{"M0 0 Q10 0 10 10 T20 20", Path{MoveTo{0, 0}, QuadTo{{10, 0}, {10, 10}}, QuadTo{{10, 20}, {20, 20}}}},
		{"M0 0 C0 10 10 10 10 0 S20 -10 20 0", Path{
			MoveTo{0, 0},
			CubicTo{{0, 10}, {10, 10}, {10, 0}},
			CubicTo{{10, -10}, {20, -10}, {20, 0}},
		}},
		{"M0 0 L10 10 Z L5 0", Path{MoveTo{0, 0}, LineTo{10, 10}, Close{}, MoveTo{0, 0}, LineTo{5, 0}}},
		{"M1-2", Path{MoveTo{1, -2}}},
		{"M0 0 A10 10 0 0 0 0 0", Path{MoveTo{0, 0}}},
		{"M0 0 A0 10 0 0 0 5 5", Path{MoveTo{0, 0}, LineTo{5, 5}}},
	} {
		got, err := parsePathData(test.in)
		if err != nil {
			t.Fatalf("%q: %s", test.in, err)
		}
		if diff := cmp.Diff(test.expected, got); diff != "" {
			t.Errorf("%q: %s", test.in, diff)
		}
	}
}

func TestParsePathDataError(t *testing.T) {
	for _, test := range []struct {
		in      string
		partial Path
	}{
		{"10 10", nil},
		{"M0 0 L10", Path{MoveTo{0, 0}}},
		{"M0 0 L10 10 L20 x", Path{MoveTo{0, 0}, LineTo{10, 10}}},
		{"M0 0 Z 5", Path{MoveTo{0, 0}, Close{}}},
	} {
		got, err := parsePathData(test.in)
		if err == nil {
			t.Fatalf("%q: expected error", test.in)
		}
		if diff := cmp.Diff(test.partial, got); diff != "" {
			t.Errorf("%q: %s", test.in, diff)
		}
	}
}

func TestArcEndPoint(t *testing.T) {
	p, err := parsePathData("M0 0 A5 5 0 0 1 10 0")
	if err != nil {
		t.Fatal(err)
	}
	last, ok := p[len(p)-1].(CubicTo)
	if !ok {
		t.Fatalf("expected cubic segments, got %v", p)
	}
	if diff := cmp.Diff(Point{10, 0}, last[2], approx); diff != "" {
		t.Fatal(diff)
	}
	b := p.Bounds()
	// half circle on one side of the chord
	curveApprox := cmpopts.EquateApprox(0, 0.01)
	if diff := cmp.Diff(10., b.W, curveApprox); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(5., b.H, curveApprox); diff != "" {
		t.Error(diff)
	}
}
