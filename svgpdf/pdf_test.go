package svgpdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benoitkugler/svgscene/scene"
	"github.com/benoitkugler/svgscene/svgxml"
	"github.com/jung-kurt/gofpdf"
)

const landscape = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100">
	<defs>
		<linearGradient id="sky"><stop offset="0" stop-color="lightblue"/><stop offset="1" stop-color="white"/></linearGradient>
		<pattern id="grass" width="4" height="4" patternUnits="userSpaceOnUse"><rect width="2" height="4" fill="green"/></pattern>
	</defs>
	<rect width="200" height="60" fill="url(#sky)"/>
	<rect y="60" width="200" height="40" fill="url(#grass)"/>
	<circle cx="150" cy="30" r="15" fill="yellow" stroke="orange" stroke-width="2" stroke-dasharray="3 1"/>
	<path d="M0 60 Q 50 20 100 60 T 200 60" fill="none" stroke="gray" stroke-linejoin="round"/>
</svg>`

func TestRender(t *testing.T) {
	doc, err := svgxml.ReadDocument(strings.NewReader(landscape), scene.WithErrorMode(scene.StrictErrorMode))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Render(doc, &buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("unexpected output %q", buf.Bytes()[:10])
	}
}

func TestPageSize(t *testing.T) {
	doc, err := svgxml.ReadDocument(strings.NewReader(`<svg/>`),
		scene.WithResolution(scene.Bounds{W: 96, H: 192}, 96))
	if err != nil {
		t.Fatal(err)
	}
	pdf := NewPDF(doc)
	w, h := pdf.GetPageSize()
	if w != 72 || h != 144 {
		t.Fatalf("expected 72x144 page, got %gx%g", w, h)
	}
}

func TestApproximate(t *testing.T) {
	red := scene.NewPlainColor(255, 0, 0, 255)
	if c, ok := approximate(red); !ok || c != red {
		t.Fatalf("unexpected %v", c)
	}
	if _, ok := approximate(nil); ok {
		t.Fatal("none paint should not be drawn")
	}
	grad := &scene.Gradient{Stops: []scene.GradStop{
		{StopColor: red, Opacity: 0.5},
		{StopColor: scene.NewPlainColor(0, 0, 255, 255), Offset: 1, Opacity: 1},
	}}
	if c, _ := approximate(grad); c.R != 255 || c.A != 128 {
		t.Fatalf("unexpected %v", c)
	}
}

func TestDrawOnExistingPDF(t *testing.T) {
	doc, err := svgxml.ReadDocument(strings.NewReader(landscape))
	if err != nil {
		t.Fatal(err)
	}
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	NewRenderer(pdf).Draw(doc)
	if err := pdf.Error(); err != nil {
		t.Fatal(err)
	}
}
