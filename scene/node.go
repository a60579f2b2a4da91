package scene

import (
	"fmt"
	"io"
	"strings"
)

// NodeKind is the type of a Node.
type NodeKind uint8

const (
	GroupNode NodeKind = iota
	RectNode
	CircleNode
	EllipseNode
	LineNode
	PolylineNode
	PolygonNode
	PathNode
)

var nodeKindNames = [...]string{
	GroupNode:    "group",
	RectNode:     "rect",
	CircleNode:   "circle",
	EllipseNode:  "ellipse",
	LineNode:     "line",
	PolylineNode: "polyline",
	PolygonNode:  "polygon",
	PathNode:     "path",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "<unknown NodeKind>"
}

// Node is a resolved element of the output tree: a group or a shape.
// Nodes are created by Build and are not modified afterwards.
type Node struct {
	ID   string // id attribute, may be empty
	Name string // unique path in the source tree, like /svg/g[1]/rect#id
	Kind NodeKind

	// Transform maps the user space of the node (where Outline is expressed)
	// to the output space. It includes the transform attribute of the node.
	Transform Matrix2D
	// Viewport is the viewport used to resolve the lengths of the node.
	Viewport Viewport
	// Outline is the geometry of a shape, in its user space. It is empty for groups.
	Outline Path

	Visible bool
	Opacity float64 // opacity of the node itself (not inherited)

	Fill, Stroke  Paint // nil for none
	FillOpacity   float64
	StrokeOpacity float64
	FillRule      FillRule
	StrokeStyle   StrokeStyle

	Children []*Node
}

// Bounds returns the bounding box of the node in its user space.
// For groups, it is the union of the children bounds.
func (n *Node) Bounds() Bounds {
	if n.Kind != GroupNode {
		return n.Outline.Bounds()
	}
	var (
		out     Bounds
		started bool
	)
	inv, ok := n.Transform.Invert()
	if !ok {
		return out
	}
	for _, child := range n.Children {
		if child.Kind == GroupNode && len(child.Children) == 0 {
			continue
		}
		// child bounds, expressed in the user space of n
		cb := inv.Mult(child.Transform).TransformRect(child.Bounds())
		if !started {
			out, started = cb, true
		} else {
			out = out.Union(cb)
		}
	}
	return out
}

// AbsoluteTransform returns the transform mapping the normalized
// outline, that is the outline translated so that its bounding box
// starts at the origin, to the output space.
func (n *Node) AbsoluteTransform() Matrix2D {
	b := n.Bounds()
	return n.Transform.Translate(b.X, b.Y)
}

// Corner selects a point of the node bounding box.
type Corner uint8

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
	Center
)

// AbsolutePosition returns the position in output space of
// the given corner of the node bounding box.
func (n *Node) AbsolutePosition(c Corner) Point {
	b := n.Bounds()
	var p Point
	switch c {
	case TopLeft:
		p = Point{0, 0}
	case TopRight:
		p = Point{b.W, 0}
	case BottomRight:
		p = Point{b.W, b.H}
	case BottomLeft:
		p = Point{0, b.H}
	case Center:
		p = Point{b.W / 2, b.H / 2}
	}
	return n.AbsoluteTransform().TransformPoint(p)
}

// Walk calls fn for n and all its descendants, in document order.
// Returning false from fn skips the children of the node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns the first node with the given id, or nil.
func (n *Node) Find(id string) *Node {
	var out *Node
	n.Walk(func(node *Node) bool {
		if out != nil {
			return false
		}
		if node.ID == id {
			out = node
			return false
		}
		return true
	})
	return out
}

// Dump writes a readable description of the tree.
func (n *Node) Dump(w io.Writer) error {
	return n.dump(w, 0)
}

func (n *Node) dump(w io.Writer, level int) error {
	indent := strings.Repeat("  ", level)
	line := fmt.Sprintf("%s%s %s %s", indent, n.Kind, n.Name, n.Transform)
	if !n.Visible {
		line += " hidden"
	}
	if n.Kind != GroupNode {
		line += fmt.Sprintf(" fill=%s stroke=%s", paintString(n.Fill), paintString(n.Stroke))
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.dump(w, level+1); err != nil {
			return err
		}
	}
	return nil
}

// Document is the result of a build.
type Document struct {
	Root *Node

	// Viewport is the root viewport provided by the caller (in pixels).
	Viewport Viewport
	// ViewBox is the viewBox of the root element, if any.
	ViewBox *Bounds

	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here

	ColorProfiles map[string]*ColorProfile

	Diagnostics Diagnostics
}

// Size returns the size of the root viewport in output space (points).
func (doc *Document) Size() (w, h float64) {
	s := OutputPPI / doc.Viewport.PPI
	return doc.Viewport.Rect.W * s, doc.Viewport.Rect.H * s
}
