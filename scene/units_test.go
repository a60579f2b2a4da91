package scene

import (
	"errors"
	"math"
	"testing"
)

func TestParseLength(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected Length
		err      error
	}{
		{"12", Length{12, UnitNone}, nil},
		{"3.5mm", Length{3.5, UnitMm}, nil},
		{"50%", Length{50, UnitPercent}, nil},
		{"1e2px", Length{100, UnitPx}, nil},
		{" 2in ", Length{2, UnitIn}, nil},
		{"-4PT", Length{-4, UnitPt}, nil},
		{"1.5cm", Length{1.5, UnitCm}, nil},
		{"10em", Length{10, UnitNone}, ErrUnknownUnit},
		{"abc", Length{}, ErrInvalidLength},
		{"", Length{}, ErrInvalidLength},
	} {
		got, err := ParseLength(test.in)
		if !errors.Is(err, test.err) {
			t.Errorf("%q: expected error %v, got %v", test.in, test.err, err)
		}
		if got != test.expected {
			t.Errorf("%q: expected %v, got %v", test.in, test.expected, got)
		}
	}
}

func TestResolveAbsolute(t *testing.T) {
	for _, s := range []string{"1in", "72pt", "2.54cm", "25.4mm", "96px", "96"} {
		l, err := ParseLength(s)
		if err != nil {
			t.Fatal(err)
		}
		if got := l.Resolve(0, 96); math.Abs(got-96) > 1e-9 {
			t.Errorf("%s: expected 96, got %g", s, got)
		}
	}
}

// absolute units scale with the resolution, user units don't
func TestResolveRatio(t *testing.T) {
	for _, unit := range []Unit{UnitPt, UnitIn, UnitCm, UnitMm} {
		l := Length{Magnitude: 7, Unit: unit}
		if !l.IsAbsolute() {
			t.Errorf("%s should be absolute", unit)
		}
		if r := l.Resolve(0, 144) / l.Resolve(0, 72); math.Abs(r-2) > 1e-12 {
			t.Errorf("%s: expected ratio 2, got %g", unit, r)
		}
	}
	for _, unit := range []Unit{UnitNone, UnitPx} {
		l := Length{Magnitude: 7, Unit: unit}
		if l.Resolve(0, 144) != l.Resolve(0, 72) {
			t.Errorf("%s should not depend on the resolution", unit)
		}
	}
}

func TestViewportPercentages(t *testing.T) {
	vp := Viewport{Rect: Bounds{W: 300, H: 400}, PPI: 72}
	half := Length{50, UnitPercent}
	if got := vp.ResolveX(half); got != 150 {
		t.Errorf("expected 150, got %g", got)
	}
	if got := vp.ResolveY(half); got != 200 {
		t.Errorf("expected 200, got %g", got)
	}
	if got := vp.ResolveDiagonal(Length{100, UnitPercent}); math.Abs(got-500/math.Sqrt2) > 1e-9 {
		t.Errorf("expected %g, got %g", 500/math.Sqrt2, got)
	}
}
