package scene_test

import (
	"image"
	"strings"
	"testing"

	"github.com/benoitkugler/svgscene/scene"
	"github.com/google/go-cmp/cmp"
)

func patternFill(t *testing.T, doc *scene.Document, id string) *scene.PatternPaint {
	t.Helper()
	p, ok := find(t, doc, id).Fill.(*scene.PatternPaint)
	if !ok {
		t.Fatalf("%s: expected pattern fill, got %v", id, find(t, doc, id).Fill)
	}
	return p
}

func TestPatternUserSpace(t *testing.T) {
	doc := build(t, `<svg>
		<defs>
			<pattern id="p" width="10" height="10" patternUnits="userSpaceOnUse">
				<rect width="5" height="10" fill="red"/>
			</pattern>
		</defs>
		<rect id="a" width="20" height="20" fill="url(#p)"/>
		<rect id="b" x="30" width="20" height="20" fill="url(#p)"/>
	</svg>`)
	p := patternFill(t, doc, "a")
	if b := p.Tile.Bounds(); b != image.Rect(0, 0, 10, 10) {
		t.Fatalf("unexpected tile size %v", b)
	}
	if diff := cmp.Diff(scene.Identity, p.Brush, approx); diff != "" {
		t.Error(diff)
	}
	if c := p.Tile.RGBAAt(2, 5); c.R < 250 || c.A < 250 || c.G != 0 {
		t.Errorf("expected red pixel, got %v", c)
	}
	if c := p.Tile.RGBAAt(7, 5); c.A != 0 {
		t.Errorf("expected transparent pixel, got %v", c)
	}
	// same pattern, same geometry
	if patternFill(t, doc, "b") != p {
		t.Error("expected the tile to be reused")
	}
}

func TestPatternBoundingBox(t *testing.T) {
	doc := build(t, `<svg>
		<pattern id="p" width="0.5" height="50%">
			<rect width="100%" height="100%" fill="blue"/>
		</pattern>
		<pattern id="q" href="#p" patternTransform="scale(2)"/>
		<rect id="a" x="10" y="10" width="40" height="20" fill="url(#p)"/>
		<rect id="b" x="10" y="10" width="40" height="20" fill="url(#q)"/>
	</svg>`)
	p := patternFill(t, doc, "a")
	if diff := cmp.Diff(scene.Bounds{X: 10, Y: 10, W: 20, H: 10}, p.Rect, approx); diff != "" {
		t.Error(diff)
	}
	if b := p.Tile.Bounds(); b != image.Rect(0, 0, 20, 10) {
		t.Errorf("unexpected tile size %v", b)
	}
	if diff := cmp.Diff(scene.Point{X: 10, Y: 10}, p.Brush.TransformPoint(scene.Point{}), approx); diff != "" {
		t.Error(diff)
	}

	// attributes and content are inherited through href
	q := patternFill(t, doc, "b")
	if b := q.Tile.Bounds(); b != image.Rect(0, 0, 40, 20) {
		t.Errorf("unexpected tile size %v", b)
	}
	if diff := cmp.Diff(scene.Point{X: 20, Y: 20}, q.Brush.TransformPoint(scene.Point{}), approx); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(scene.Point{X: 60, Y: 40}, q.Brush.TransformPoint(scene.Point{X: 40, Y: 20}), approx); diff != "" {
		t.Error(diff)
	}
}

func TestPatternViewBox(t *testing.T) {
	doc := build(t, `<svg>
		<pattern id="p" width="20" height="20" patternUnits="userSpaceOnUse" viewBox="0 0 2 2">
			<rect width="1" height="1" fill="red"/>
		</pattern>
		<rect id="a" width="40" height="40" fill="url(#p)"/>
	</svg>`)
	p := patternFill(t, doc, "a")
	if c := p.Tile.RGBAAt(5, 5); c.R < 250 || c.A < 250 {
		t.Errorf("expected red pixel, got %v", c)
	}
	if c := p.Tile.RGBAAt(15, 15); c.A != 0 {
		t.Errorf("expected transparent pixel, got %v", c)
	}
}

func TestPatternEmpty(t *testing.T) {
	doc := build(t, `<svg>
		<pattern id="zero" width="0" height="10" patternUnits="userSpaceOnUse"><rect width="1" height="1"/></pattern>
		<pattern id="empty" width="10" height="10" patternUnits="userSpaceOnUse"/>
		<rect id="a" width="10" height="10" fill="url(#zero)"/>
		<rect id="b" width="10" height="10" fill="url(#empty)"/>
		<line id="c" x2="10" stroke="url(#empty)"/>
	</svg>`)
	for _, id := range []string{"a", "b"} {
		if got := find(t, doc, id).Fill; got != nil {
			t.Errorf("%s: unexpected fill %v", id, got)
		}
	}
	if len(doc.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics %s", doc.Diagnostics)
	}
}

func TestPatternDepth(t *testing.T) {
	const src = `<svg>
		<pattern id="outer" width="10" height="10" patternUnits="userSpaceOnUse">
			<rect width="10" height="10" fill="url(#inner)"/>
		</pattern>
		<pattern id="inner" width="5" height="5" patternUnits="userSpaceOnUse">
			<rect width="5" height="5" fill="red"/>
		</pattern>
		<rect id="r" width="10" height="10" fill="url(#outer)"/>
	</svg>`
	doc := build(t, src, scene.WithMaxPatternDepth(1))
	patternFill(t, doc, "r")
	if len(doc.Diagnostics) != 1 || !strings.Contains(doc.Diagnostics[0].Message, scene.ErrPatternDepth.Error()) {
		t.Errorf("unexpected diagnostics %s", doc.Diagnostics)
	}

	doc = build(t, src)
	if len(doc.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics %s", doc.Diagnostics)
	}
	p := patternFill(t, doc, "r")
	if c := p.Tile.RGBAAt(2, 2); c.R < 250 || c.A < 250 {
		t.Errorf("expected red pixel, got %v", c)
	}
}

func TestPatternSelfReference(t *testing.T) {
	doc := build(t, `<svg>
		<pattern id="p" width="10" height="10" patternUnits="userSpaceOnUse">
			<rect width="5" height="5" fill="url(#p)"/>
		</pattern>
		<rect id="r" width="10" height="10" fill="url(#p)"/>
	</svg>`)
	patternFill(t, doc, "r")
	if len(doc.Diagnostics) == 0 {
		t.Error("expected a diagnostic for the nested patterns")
	}
}

func TestPatternContentBoundingBox(t *testing.T) {
	doc := build(t, `<svg>
		<pattern id="p" width="1" height="1" patternContentUnits="objectBoundingBox">
			<rect width="0.5" height="1" fill="red"/>
		</pattern>
		<pattern id="v" width="1" height="1" patternContentUnits="objectBoundingBox" viewBox="0 0 4 4">
			<rect width="2" height="4" fill="red"/>
		</pattern>
		<rect id="a" width="20" height="10" fill="url(#p)"/>
		<rect id="b" width="20" height="10" fill="url(#v)"/>
	</svg>`)
	p := patternFill(t, doc, "a")
	if b := p.Tile.Bounds(); b != image.Rect(0, 0, 20, 10) {
		t.Fatalf("unexpected tile size %v", b)
	}
	if c := p.Tile.RGBAAt(5, 5); c.R < 250 || c.A < 250 {
		t.Errorf("expected red pixel, got %v", c)
	}
	if c := p.Tile.RGBAAt(15, 5); c.A != 0 {
		t.Errorf("expected transparent pixel, got %v", c)
	}

	// the viewBox takes precedence over patternContentUnits
	v := patternFill(t, doc, "b")
	for _, test := range []struct {
		x   int
		red bool
	}{{2, false}, {7, true}, {12, false}} {
		c := v.Tile.RGBAAt(test.x, 5)
		if test.red && (c.R < 250 || c.A < 250) || !test.red && c.A != 0 {
			t.Errorf("unexpected pixel at %d: %v", test.x, c)
		}
	}
}

func TestPatternIndependentTiles(t *testing.T) {
	doc := build(t, `<svg>
		<pattern id="p" width="0.5" height="0.5">
			<rect width="100%" height="100%" fill="blue"/>
		</pattern>
		<rect id="a" width="20" height="20" fill="url(#p)"/>
		<rect id="b" x="100" width="40" height="10" fill="url(#p)"/>
	</svg>`)
	p, q := patternFill(t, doc, "a"), patternFill(t, doc, "b")
	if p == q {
		t.Fatal("expected one tile per bounding box")
	}
	for _, test := range []struct {
		pattern *scene.PatternPaint
		rect    scene.Bounds
		tile    image.Rectangle
		origin  scene.Point
	}{
		{p, scene.Bounds{W: 10, H: 10}, image.Rect(0, 0, 10, 10), scene.Point{}},
		{q, scene.Bounds{X: 100, W: 20, H: 5}, image.Rect(0, 0, 20, 5), scene.Point{X: 100}},
	} {
		if diff := cmp.Diff(test.rect, test.pattern.Rect, approx); diff != "" {
			t.Error(diff)
		}
		if b := test.pattern.Tile.Bounds(); b != test.tile {
			t.Errorf("unexpected tile size %v", b)
		}
		if diff := cmp.Diff(test.origin, test.pattern.Brush.TransformPoint(scene.Point{}), approx); diff != "" {
			t.Error(diff)
		}
	}
}

func TestPatternTransformedShape(t *testing.T) {
	doc := build(t, `<svg width="30" height="30">
		<pattern id="p" width="10" height="10" patternUnits="userSpaceOnUse">
			<rect width="5" height="10" fill="red"/>
		</pattern>
		<rect id="rotated" transform="translate(20, 0) rotate(90)" width="10" height="10" fill="url(#p)"/>
		<rect id="skewed" transform="skewX(45)" width="10" height="10" fill="url(#p)"/>
	</svg>`, scene.WithResolution(scene.Bounds{W: 30, H: 30}, 72))

	p := patternFill(t, doc, "rotated")
	if b := p.Tile.Bounds(); b != image.Rect(0, 0, 10, 10) {
		t.Errorf("unexpected tile size %v", b)
	}
	if diff := cmp.Diff(scene.Point{X: 20, Y: 10}, p.Brush.TransformPoint(scene.Point{X: 10}), approx); diff != "" {
		t.Error(diff)
	}

	// the sheared axis is stretched
	q := patternFill(t, doc, "skewed")
	if b := q.Tile.Bounds(); b != image.Rect(0, 0, 10, 15) {
		t.Errorf("unexpected tile size %v", b)
	}
	if diff := cmp.Diff(scene.Point{X: 10, Y: 10}, q.Brush.TransformPoint(scene.Point{Y: 15}), approx); diff != "" {
		t.Error(diff)
	}

	doc = build(t, `<svg>
		<pattern id="p" width="10" height="10" patternUnits="userSpaceOnUse">
			<rect width="5" height="10" fill="red"/>
		</pattern>
		<rect transform="translate(20, 0) rotate(90)" width="10" height="10" fill="url(#p)"/>
	</svg>`, scene.WithResolution(scene.Bounds{W: 30, H: 30}, 72))
	img := scene.Rasterize(doc, 30, 30)
	if c := img.RGBAAt(15, 2); c.R < 250 || c.A < 250 {
		t.Errorf("expected red pixel, got %v", c)
	}
	if c := img.RGBAAt(15, 7); c.A != 0 {
		t.Errorf("expected transparent pixel, got %v", c)
	}
}

func TestPatternScaledShape(t *testing.T) {
	doc := build(t, `<svg width="30px" height="30px">
		<defs>
			<pattern id="p" patternUnits="userSpaceOnUse" patternContentUnits="userSpaceOnUse"
				x="1" y="1" width="5" height="5">
				<rect x="4" y="3" width="5" height="5" fill="red" stroke="none"/>
			</pattern>
		</defs>
		<g>
			<rect id="r" x="5" y="5" width="10" height="20" transform="translate(7, 0) scale(2)"
				fill="url(#p)blue" stroke="none"/>
		</g>
	</svg>`, scene.WithResolution(scene.Bounds{W: 30, H: 30}, 72))
	if len(doc.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %s", doc.Diagnostics)
	}
	p := patternFill(t, doc, "r")
	if b := p.Tile.Bounds(); b != image.Rect(0, 0, 10, 10) {
		t.Fatalf("unexpected tile size %v", b)
	}
	// the content is clipped to the cell
	if c := p.Tile.RGBAAt(9, 8); c.R < 250 || c.A < 250 {
		t.Errorf("expected red pixel, got %v", c)
	}
	if c := p.Tile.RGBAAt(2, 2); c.A != 0 {
		t.Errorf("expected transparent pixel, got %v", c)
	}
	if diff := cmp.Diff(scene.Point{X: 9, Y: 2}, p.Brush.TransformPoint(scene.Point{}), approx); diff != "" {
		t.Error(diff)
	}

	img := scene.Rasterize(doc, 30, 30)
	for _, test := range []struct {
		x, y int
		red  bool
	}{
		{17, 18, true},
		{27, 28, true},
		{17, 10, true},
		{22, 18, false},
		{17, 15, false},
		{5, 5, false},
	} {
		c := img.RGBAAt(test.x, test.y)
		if test.red && (c.R < 250 || c.A < 250) || !test.red && c.A != 0 {
			t.Errorf("unexpected pixel at (%d, %d): %v", test.x, test.y, c)
		}
	}
}
