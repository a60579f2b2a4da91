package scene

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Rasterize renders the document into a new image of `width` x `height` pixels.
// The output space of the document is stretched to the image.
func Rasterize(doc *Document, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	base := Identity
	if w, h := doc.Size(); w > 0 && h > 0 {
		base = Identity.Scale(float64(width)/w, float64(height)/h)
	}
	newRenderer(img).drawNode(doc.Root, base, 1)
	return img
}

// renderer wraps rasterx, with one filler and one dasher
// sharing the scanner drawing into the image.
type renderer struct {
	dasher *rasterx.Dasher
	filler *rasterx.Filler
}

func newRenderer(img *image.RGBA) *renderer {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &renderer{dasher: rasterx.NewDasher(w, h, scanner), filler: rasterx.NewFiller(w, h, scanner)}
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		Round:     rasterx.Round,
		Bevel:     rasterx.Bevel,
		Miter:     rasterx.Miter,
		MiterClip: rasterx.MiterClip,
		Arc:       rasterx.Arc,
		ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		ButtCap:      rasterx.ButtCap,
		SquareCap:    rasterx.SquareCap,
		RoundCap:     rasterx.RoundCap,
		CubicCap:     rasterx.CubicCap,
		QuadraticCap: rasterx.QuadraticCap,
	}
)

func toFixed(m Matrix2D, p Point) fixed.Point26_6 {
	x, y := m.Transform(p.X, p.Y)
	return rasterx.ToFixedP(x, y)
}

// addPath sends the outline mapped by `m` to the adder.
func addPath(path Path, m Matrix2D, adder rasterx.Adder) {
	started := false
	for _, op := range path {
		switch op := op.(type) {
		case MoveTo:
			if started {
				adder.Stop(false)
			}
			adder.Start(toFixed(m, Point(op)))
			started = true
		case LineTo:
			adder.Line(toFixed(m, Point(op)))
		case QuadTo:
			adder.QuadBezier(toFixed(m, op[0]), toFixed(m, op[1]))
		case CubicTo:
			adder.CubeBezier(toFixed(m, op[0]), toFixed(m, op[1]), toFixed(m, op[2]))
		case Close:
			adder.Stop(true)
			started = false
		}
	}
	if started {
		adder.Stop(false)
	}
}

// drawNode renders the node, whose output space is mapped
// to pixels by `base`.
func (rd *renderer) drawNode(n *Node, base Matrix2D, opacity float64) {
	opacity *= n.Opacity
	if opacity <= 0 {
		return
	}
	if n.Kind == GroupNode {
		// hidden groups may have visible children
		for _, child := range n.Children {
			rd.drawNode(child, base, opacity)
		}
		return
	}
	if !n.Visible || len(n.Outline) == 0 {
		return
	}
	m := base.Mult(n.Transform)
	if n.Fill != nil && n.FillOpacity > 0 {
		rd.filler.Clear()
		rd.filler.SetWinding(n.FillRule == NonZero)
		addPath(n.Outline, m, rd.filler)
		rd.filler.SetColor(paintColor(n.Fill, base, m, opacity*n.FillOpacity))
		rd.filler.Draw()
	}
	if n.Stroke != nil && n.StrokeOpacity > 0 && n.StrokeStyle.Width > 0 {
		st := n.StrokeStyle
		s := math.Sqrt(math.Abs(m.Determinant()))
		var dash []float64
		for _, d := range st.Dash {
			dash = append(dash, d*s)
		}
		rd.dasher.Clear()
		rd.dasher.SetStroke(
			fixed.Int26_6(st.Width*s*64), fixed.Int26_6(st.MiterLimit*64),
			capToFunc[st.Cap], capToFunc[st.Cap], rasterx.FlatGap,
			joinToJoin[st.Join], dash, st.DashOffset*s,
		)
		addPath(n.Outline, m, rd.dasher)
		rd.dasher.SetColor(paintColor(n.Stroke, base, m, opacity*n.StrokeOpacity))
		rd.dasher.Draw()
	}
}

// paintColor returns a color or a rasterx.ColorFunc.
// `m` maps the shape user space to pixels.
func paintColor(p Paint, base, m Matrix2D, opacity float64) interface{} {
	switch p := p.(type) {
	case PlainColor:
		return p.withOpacity(opacity)
	case *Gradient:
		inv, ok := m.Mult(p.Matrix).Invert()
		if !ok {
			return p.colorAt(0).withOpacity(opacity)
		}
		return rasterx.ColorFunc(func(x, y int) color.Color {
			gx, gy := inv.Transform(float64(x)+0.5, float64(y)+0.5)
			return p.colorAt(p.parameter(gx, gy)).withOpacity(opacity)
		})
	case *PatternPaint:
		inv, ok := base.Mult(p.Brush).Invert()
		tw, th := p.Tile.Bounds().Dx(), p.Tile.Bounds().Dy()
		if !ok || tw == 0 || th == 0 {
			return color.Transparent
		}
		return rasterx.ColorFunc(func(x, y int) color.Color {
			tx, ty := inv.Transform(float64(x)+0.5, float64(y)+0.5)
			ix, iy := mod(int(math.Floor(tx)), tw), mod(int(math.Floor(ty)), th)
			c := color.NRGBAModel.Convert(p.Tile.RGBAAt(ix, iy)).(color.NRGBA)
			return PlainColor(c).withOpacity(opacity)
		})
	}
	return color.Transparent
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
