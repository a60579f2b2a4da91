package scene

import "testing"

func TestParseColor(t *testing.T) {
	red := NewPlainColor(255, 0, 0, 255)
	for _, test := range []struct {
		in       string
		expected parsedColor
	}{
		{"red", parsedColor{c: red}},
		{"Red", parsedColor{c: red}},
		{"#f00", parsedColor{c: red}},
		{"#FF0000", parsedColor{c: red}},
		{"rgb(255,0,0)", parsedColor{c: red}},
		{"rgb(100%, 0%, 0%)", parsedColor{c: red}},
		{"rgba(255 0 0 0.5)", parsedColor{c: NewPlainColor(255, 0, 0, 128)}},
		{"#ff0000 icc-color(profile, 0.1, 0.2)", parsedColor{c: red}},
		{"none", parsedColor{none: true}},
		{"currentColor", parsedColor{current: true}},
		{"transparent", parsedColor{}},
	} {
		got, err := parseColor(test.in)
		if err != nil {
			t.Fatalf("%q: %s", test.in, err)
		}
		if got != test.expected {
			t.Errorf("%q: expected %v, got %v", test.in, test.expected, got)
		}
	}

	for _, in := range []string{"", "#12", "#gggggg", "blah", "rgb(1,2)", "rgb(a,b,c)"} {
		if _, err := parseColor(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestParsePaint(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected string
	}{
		{"url(#grad)", "url(#grad)"},
		{"url('#grad') blue", "url(#grad) #0000ff"},
		{"url(#grad) none", "url(#grad) none"},
		{"currentColor", "currentColor"},
		{"none", "none"},
		{"#123456", "#123456"},
	} {
		got, err := parsePaint(test.in)
		if err != nil {
			t.Fatalf("%q: %s", test.in, err)
		}
		if got.String() != test.expected {
			t.Errorf("%q: expected %s, got %s", test.in, test.expected, got)
		}
	}
	if _, err := parsePaint("url(#grad"); err == nil {
		t.Error("expected error for unterminated url")
	}
}

func TestWithOpacity(t *testing.T) {
	if got := NewPlainColor(10, 20, 30, 200).withOpacity(0.5); got.A != 100 {
		t.Errorf("expected alpha 100, got %d", got.A)
	}
}
