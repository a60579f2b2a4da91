package scene

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTransformValid(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected TransformList
	}{
		{"", nil},
		{"translate(100)", TransformList{{Translate, []float64{100, 0}}}},
		{"scale(100)", TransformList{{Scale, []float64{100, 100}}}},
		{"rotate(45)", TransformList{{Rotate, []float64{45, 0, 0}}}},
		{"TRANSLATE(1 2)", TransformList{{Translate, []float64{1, 2}}}},
		{"unknown(1 2) translate(5)", TransformList{{Translate, []float64{5, 0}}}},
		{
			"translate(10,20), scale(2 3)\n skewX(10)skewY(-5) matrix(1,0,0,1,0,0) rotate(10 1 2)",
			TransformList{
				{Translate, []float64{10, 20}},
				{Scale, []float64{2, 3}},
				{SkewX, []float64{10}},
				{SkewY, []float64{-5}},
				{MatrixOp, []float64{1, 0, 0, 1, 0, 0}},
				{Rotate, []float64{10, 1, 2}},
			},
		},
	} {
		got, err := ParseTransform(test.in)
		if err != nil {
			t.Fatalf("%q: %s", test.in, err)
		}
		if diff := cmp.Diff(test.expected, got); diff != "" {
			t.Errorf("%q: %s", test.in, diff)
		}
	}
}

func TestParseTransformInvalid(t *testing.T) {
	for _, in := range []string{
		"rotate(45",
		"translate(10,20) rotate(45",
		"translate(10,20) foo",
		"translate(1,2,3)",
		"scale()",
		"matrix(1 2 3)",
		"rotate(1 2)",
		"translate(a)",
		"(1 2)",
		"translate((1 2)",
	} {
		list, err := ParseTransform(in)
		if !errors.Is(err, ErrInvalidTransform) {
			t.Errorf("%q: expected invalid transform, got %v", in, err)
		}
		if list != nil {
			t.Errorf("%q: expected nil list, got %v", in, list)
		}
	}
}

func TestTransformMatrix(t *testing.T) {
	list, err := ParseTransform("translate(10,20) scale(2) rotate(90)")
	if err != nil {
		t.Fatal(err)
	}
	got := list.Matrix().TransformPoint(Point{1, 0})
	if diff := cmp.Diff(Point{10, 22}, got, approx); diff != "" {
		t.Fatal(diff)
	}
}

func TestRotatePivot(t *testing.T) {
	list, err := ParseTransform("rotate(90 10 10)")
	if err != nil {
		t.Fatal(err)
	}
	m := list.Matrix()
	if diff := cmp.Diff(Point{10, 10}, m.TransformPoint(Point{10, 10}), approx); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(Point{10, 20}, m.TransformPoint(Point{20, 10}), approx); diff != "" {
		t.Error(diff)
	}
}

func TestTransformString(t *testing.T) {
	list, err := ParseTransform("translate(10 20) rotate(30) skewX(5) matrix(1 2 3 4 5 6)")
	if err != nil {
		t.Fatal(err)
	}
	back, err := ParseTransform(list.String())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(list, back); diff != "" {
		t.Fatal(diff)
	}
}
