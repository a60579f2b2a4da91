package scene

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFitSpec(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected FitSpec
	}{
		{"xMidYMid", FitSpec{Mode: Meet, AlignX: AlignMid, AlignY: AlignMid}},
		{"xMinYMax slice", FitSpec{Mode: Slice, AlignX: AlignMin, AlignY: AlignMax}},
		{"defer xMaxYMin meet", FitSpec{Defer: true, Mode: Meet, AlignX: AlignMax, AlignY: AlignMin}},
		{"XMIDYMID SLICE", FitSpec{Mode: Slice, AlignX: AlignMid, AlignY: AlignMid}},
		{"none", FitSpec{Mode: Ignore}},
		{"NONE", FitSpec{Mode: Ignore}},
		{"defer none", FitSpec{Defer: true, Mode: Ignore}},
		{"", FitSpec{Mode: Ignore}},
		{"garbage", FitSpec{Mode: Ignore}},
		{"xMidYMid foo", FitSpec{Mode: Ignore}},
		{"xMidYFoo", FitSpec{Mode: Ignore}},
		{"defer garbage", FitSpec{Mode: Ignore}},
	} {
		if got := ParseFitSpec(test.in); got != test.expected {
			t.Errorf("%q: expected %s, got %s", test.in, test.expected, got)
		}
	}
}

func TestFit(t *testing.T) {
	content := Bounds{0, 0, 10, 20}
	viewport := Bounds{0, 0, 100, 100}
	for _, test := range []struct {
		spec          FitSpec
		origin, other Point // images of the content corners
	}{
		{FitSpec{Mode: Ignore}, Point{0, 0}, Point{100, 100}},
		{DefaultFitSpec, Point{25, 0}, Point{75, 100}},
		{FitSpec{Mode: Meet, AlignX: AlignMin, AlignY: AlignMin}, Point{0, 0}, Point{50, 100}},
		{FitSpec{Mode: Meet, AlignX: AlignMax, AlignY: AlignMin}, Point{50, 0}, Point{100, 100}},
		{FitSpec{Mode: Slice, AlignX: AlignMid, AlignY: AlignMid}, Point{0, -50}, Point{100, 150}},
		{FitSpec{Mode: Slice, AlignX: AlignMin, AlignY: AlignMax}, Point{0, -100}, Point{100, 100}},
	} {
		m, err := Fit(content, viewport, test.spec)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(test.origin, m.TransformPoint(Point{0, 0}), approx); diff != "" {
			t.Errorf("%s: %s", test.spec, diff)
		}
		if diff := cmp.Diff(test.other, m.TransformPoint(Point{10, 20}), approx); diff != "" {
			t.Errorf("%s: %s", test.spec, diff)
		}
	}
}

func TestFitOffsetContent(t *testing.T) {
	m, err := Fit(Bounds{60, 70, 20, 40}, Bounds{2, 2, 6, 16}, FitSpec{Mode: Ignore})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Point{2, 2}, m.TransformPoint(Point{60, 70}), approx); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(Point{8, 18}, m.TransformPoint(Point{80, 110}), approx); diff != "" {
		t.Error(diff)
	}
}

func TestFitDegenerate(t *testing.T) {
	m, err := Fit(Bounds{0, 0, 0, 10}, Bounds{0, 0, 100, 100}, DefaultFitSpec)
	if !errors.Is(err, ErrDegenerateViewBox) {
		t.Fatalf("expected degenerate viewBox error, got %v", err)
	}
	if m != Identity {
		t.Fatalf("expected identity, got %s", m)
	}
}
