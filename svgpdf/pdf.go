// Implements a PDF backend to render resolved SVG documents,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"io"
	"math"

	"github.com/benoitkugler/svgscene/scene"
	"github.com/jung-kurt/gofpdf"
)

// Renderer draws documents on a PDF. Since the output
// space of a document is in points, the PDF must use
// "pt" as unit.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// NewPDF returns a one page PDF, with the size of the document.
func NewPDF(doc *scene.Document) *gofpdf.Fpdf {
	w, h := doc.Size()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf
}

// Render writes the document as a one page PDF.
func Render(doc *scene.Document, w io.Writer) error {
	pdf := NewPDF(doc)
	NewRenderer(pdf).Draw(doc)
	return pdf.Output(w)
}

// RenderToFile writes the document as a one page PDF file.
func RenderToFile(doc *scene.Document, filename string) error {
	pdf := NewPDF(doc)
	NewRenderer(pdf).Draw(doc)
	return pdf.OutputFileAndClose(filename)
}

// Draw draws the document on the current page.
func (r Renderer) Draw(doc *scene.Document) {
	r.drawNode(doc.Root, 1)
	r.pdf.SetAlpha(1, "Normal")
}

func (r Renderer) drawNode(n *scene.Node, opacity float64) {
	opacity *= n.Opacity
	if opacity <= 0 {
		return
	}
	if n.Kind == scene.GroupNode {
		for _, child := range n.Children {
			r.drawNode(child, opacity)
		}
		return
	}
	if !n.Visible || len(n.Outline) == 0 {
		return
	}
	outline := n.Outline.Transform(n.Transform)
	if c, ok := approximate(n.Fill); ok && n.FillOpacity > 0 {
		r.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		r.pdf.SetAlpha(opacity*n.FillOpacity*float64(c.A)/255, "Normal")
		r.writePath(outline)
		if n.FillRule == scene.EvenOdd {
			r.pdf.DrawPath("f*")
		} else {
			r.pdf.DrawPath("f")
		}
	}
	if c, ok := approximate(n.Stroke); ok && n.StrokeOpacity > 0 && n.StrokeStyle.Width > 0 {
		st := n.StrokeStyle
		s := math.Sqrt(math.Abs(n.Transform.Determinant()))
		r.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
		r.pdf.SetAlpha(opacity*n.StrokeOpacity*float64(c.A)/255, "Normal")
		r.pdf.SetLineWidth(st.Width * s)
		r.pdf.SetLineJoinStyle(joinStyles[st.Join])
		r.pdf.SetLineCapStyle(capStyles[st.Cap])
		dash := make([]float64, len(st.Dash))
		for i, d := range st.Dash {
			dash[i] = d * s
		}
		r.pdf.SetDashPattern(dash, st.DashOffset*s)
		r.writePath(outline)
		r.pdf.DrawPath("D")
	}
}

// PDF only supports a subset of the join and cap modes.
var (
	joinStyles = [...]string{
		scene.Miter:     "miter",
		scene.Round:     "round",
		scene.Bevel:     "bevel",
		scene.Arc:       "round",
		scene.MiterClip: "miter",
		scene.ArcClip:   "round",
	}
	capStyles = [...]string{
		scene.ButtCap:      "butt",
		scene.SquareCap:    "square",
		scene.RoundCap:     "round",
		scene.CubicCap:     "round",
		scene.QuadraticCap: "round",
	}
)

// approximate returns the color used for a paint.
// TODO: support gradients with shading patterns and patterns with tiled images
func approximate(p scene.Paint) (scene.PlainColor, bool) {
	switch p := p.(type) {
	case scene.PlainColor:
		return p, true
	case *scene.Gradient:
		s := p.Stops[0]
		c := s.StopColor
		c.A = uint8(float64(c.A)*s.Opacity + 0.5)
		return c, true
	case *scene.PatternPaint:
		return averageColor(p), true
	}
	return scene.PlainColor{}, false
}

// averageColor returns the mean color of the pattern tile.
func averageColor(p *scene.PatternPaint) scene.PlainColor {
	var r, g, b, a, n uint64
	for i := 0; i+3 < len(p.Tile.Pix); i += 4 {
		r += uint64(p.Tile.Pix[i])
		g += uint64(p.Tile.Pix[i+1])
		b += uint64(p.Tile.Pix[i+2])
		a += uint64(p.Tile.Pix[i+3])
		n++
	}
	if a == 0 {
		return scene.PlainColor{}
	}
	// pixels are alpha premultiplied
	return scene.NewPlainColor(uint8(r*255/a), uint8(g*255/a), uint8(b*255/a), uint8(a/n))
}

func (r Renderer) writePath(path scene.Path) {
	for _, op := range path {
		switch op := op.(type) {
		case scene.MoveTo:
			r.pdf.MoveTo(op.X, op.Y)
		case scene.LineTo:
			r.pdf.LineTo(op.X, op.Y)
		case scene.QuadTo:
			r.pdf.CurveTo(op[0].X, op[0].Y, op[1].X, op[1].Y)
		case scene.CubicTo:
			r.pdf.CurveBezierCubicTo(op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y)
		case scene.Close:
			r.pdf.ClosePath()
		}
	}
}
