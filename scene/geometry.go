package scene

import (
	"errors"
	"fmt"
)

var errNegativeSize = errors.New("negative size")

// readGeometry returns the outline of a basic shape, in its user space.
// An empty outline disables the rendering of the shape, which is also
// the case when an error is returned.
func (b *builder) readGeometry(tag string, a attrs, vp Viewport, path string) (NodeKind, Path, error) {
	var p Path
	switch tag {
	case "rect":
		x := b.length(a, "x", "0", 'x', vp, path)
		y := b.length(a, "y", "0", 'y', vp, path)
		w := b.length(a, "width", "0", 'x', vp, path)
		h := b.length(a, "height", "0", 'y', vp, path)
		if w < 0 || h < 0 {
			return RectNode, nil, fmt.Errorf("rect: %w", errNegativeSize)
		}
		if w == 0 || h == 0 {
			return RectNode, nil, nil
		}
		rx, ry := b.cornerRadii(a, vp, path)
		rx, ry = clamp(rx, 0, w/2), clamp(ry, 0, h/2)
		if rx == 0 || ry == 0 {
			p.addRect(x, y, x+w, y+h)
		} else {
			p.addRoundRect(x, y, x+w, y+h, rx, ry)
		}
		return RectNode, p, nil
	case "circle":
		cx := b.length(a, "cx", "0", 'x', vp, path)
		cy := b.length(a, "cy", "0", 'y', vp, path)
		r := b.length(a, "r", "0", 'd', vp, path)
		if r < 0 {
			return CircleNode, nil, fmt.Errorf("circle: %w", errNegativeSize)
		}
		if r > 0 {
			p.addEllipse(cx, cy, r, r)
		}
		return CircleNode, p, nil
	case "ellipse":
		cx := b.length(a, "cx", "0", 'x', vp, path)
		cy := b.length(a, "cy", "0", 'y', vp, path)
		rx, ry := b.cornerRadii(a, vp, path)
		if rx < 0 || ry < 0 {
			return EllipseNode, nil, fmt.Errorf("ellipse: %w", errNegativeSize)
		}
		if rx > 0 && ry > 0 {
			p.addEllipse(cx, cy, rx, ry)
		}
		return EllipseNode, p, nil
	case "line":
		x1 := b.length(a, "x1", "0", 'x', vp, path)
		y1 := b.length(a, "y1", "0", 'y', vp, path)
		x2 := b.length(a, "x2", "0", 'x', vp, path)
		y2 := b.length(a, "y2", "0", 'y', vp, path)
		p.Start(Point{x1, y1})
		p.Line(Point{x2, y2})
		return LineNode, p, nil
	case "polyline", "polygon":
		kind := PolylineNode
		if tag == "polygon" {
			kind = PolygonNode
		}
		v, _ := a.get("points")
		points, err := parseNumberList(v)
		if err == nil && len(points)%2 == 1 {
			err = fmt.Errorf("%s: odd number of coordinates", tag)
		}
		if err != nil {
			return kind, nil, err
		}
		if len(points) < 4 {
			return kind, nil, nil
		}
		p.Start(Point{points[0], points[1]})
		for i := 2; i+1 < len(points); i += 2 {
			p.Line(Point{points[i], points[i+1]})
		}
		p.Stop(tag == "polygon")
		return kind, p, nil
	default: // path
		d, _ := a.get("d")
		p, err := parsePathData(d)
		if err != nil {
			return PathNode, nil, fmt.Errorf("path data: %w", err)
		}
		return PathNode, p, nil
	}
}

// cornerRadii reads the rx and ry attributes: when only one is given,
// it is used for both. Values without number are treated as not given,
// and unknown units fall back to user units.
func (b *builder) cornerRadii(a attrs, vp Viewport, path string) (rx, ry float64) {
	read := func(name string, axis byte) (float64, bool) {
		v, ok := a.get(name)
		if !ok || v == "auto" {
			return 0, false
		}
		l, err := ParseLength(v)
		if err != nil {
			b.report(path, "attribute %s: %s", name, err)
			if errors.Is(err, ErrInvalidLength) {
				return 0, false
			}
		}
		if axis == 'x' {
			return vp.ResolveX(l), true
		}
		return vp.ResolveY(l), true
	}
	rx, hasX := read("rx", 'x')
	ry, hasY := read("ry", 'y')
	switch {
	case hasX && !hasY:
		ry = rx
	case hasY && !hasX:
		rx = ry
	}
	return rx, ry
}
