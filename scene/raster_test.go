package scene_test

import (
	"testing"

	"github.com/benoitkugler/svgscene/scene"
)

func TestRasterize(t *testing.T) {
	doc := build(t, `<svg>
		<linearGradient id="grad"><stop offset="0" stop-color="red"/><stop offset="1" stop-color="blue"/></linearGradient>
		<pattern id="stripes" width="10" height="10" patternUnits="userSpaceOnUse">
			<rect width="5" height="10" fill="lime"/>
		</pattern>
		<rect width="600" height="100" fill="url(#grad)"/>
		<rect y="100" width="600" height="100" fill="url(#stripes)"/>
		<rect y="200" width="600" height="100" fill="black" visibility="hidden"/>
		<g opacity="0.5"><rect y="300" width="600" height="100" fill="black" stroke="red" stroke-width="20"/></g>
	</svg>`)
	img := scene.Rasterize(doc, 600, 400)

	if c := img.RGBAAt(2, 50); c.R < 240 || c.B > 15 {
		t.Errorf("expected red pixel, got %v", c)
	}
	if c := img.RGBAAt(597, 50); c.B < 240 || c.R > 15 {
		t.Errorf("expected blue pixel, got %v", c)
	}
	for _, x := range []int{2, 12, 302} {
		if c := img.RGBAAt(x, 150); c.G < 250 || c.A < 250 {
			t.Errorf("expected green pixel at %d, got %v", x, c)
		}
	}
	for _, x := range []int{7, 17, 307} {
		if c := img.RGBAAt(x, 150); c.A != 0 {
			t.Errorf("expected transparent pixel at %d, got %v", x, c)
		}
	}
	if c := img.RGBAAt(300, 250); c.A != 0 {
		t.Errorf("hidden shapes should not be drawn, got %v", c)
	}
	if c := img.RGBAAt(300, 350); c.A < 120 || c.A > 135 {
		t.Errorf("expected half transparent pixel, got %v", c)
	}
	// the stroke is centered on the outline
	if c := img.RGBAAt(300, 295); c.R < 120 || c.A < 120 || c.A > 135 {
		t.Errorf("expected half transparent red pixel, got %v", c)
	}
}

func TestRasterizeScale(t *testing.T) {
	doc := build(t, `<svg><rect width="300" height="200" fill="black"/></svg>`)
	img := scene.Rasterize(doc, 60, 40)
	if c := img.RGBAAt(10, 10); c.A != 255 {
		t.Errorf("expected opaque pixel, got %v", c)
	}
	if c := img.RGBAAt(50, 30); c.A != 0 {
		t.Errorf("expected transparent pixel, got %v", c)
	}
}
