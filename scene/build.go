package scene

import (
	"errors"
	"strings"
)

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	buildFuncs["svg"] = svgF
	buildFuncs["g"] = groupF
	buildFuncs["a"] = groupF
	buildFuncs["switch"] = switchF
	buildFuncs["use"] = useF
	buildFuncs["symbol"] = symbolF
	for _, tag := range [...]string{"rect", "circle", "ellipse", "line", "polyline", "polygon", "path"} {
		buildFuncs[tag] = shapeF
	}
}

// buildState is shared by a build and its nested pattern sub-builds.
type buildState struct {
	root  Element
	cfg   config
	doc   *Document
	diags Diagnostics
	tiles map[tileKey]*PatternPaint
}

// builder walks an element tree and produces the resolved nodes.
type builder struct {
	state *buildState
	reg   *registry

	stack     scopeStack
	ancestors []Element // source ancestors of the element being built

	uses    map[Element]bool // use targets being instantiated
	useSize *useSize         // size given by a use element to its svg or symbol target

	depth int // pattern nesting level
}

type useSize struct{ width, height string }

// elementContext is computed for every built element.
type elementContext struct {
	path  string
	own   Matrix2D // transform attribute
	props Properties
	base  string
}

type buildFunc func(b *builder, el Element, a attrs, ctx elementContext) *Node

// buildFuncs is the closed set of supported elements. A nil function
// marks elements which only provide definitions. Elements whose
// content is built recursively are registered in init.
var buildFuncs = map[string]buildFunc{
	"title":          titleF,
	"desc":           descF,
	"color-profile":  colorProfileF,
	"defs":           nil,
	"linearGradient": nil,
	"radialGradient": nil,
	"stop":           nil,
	"pattern":        nil,
	"metadata":       nil,
	"style":          nil,
}

// Build resolves the element tree `root`, whose root should be an svg element.
// Soft failures never abort the build: they are recorded in the
// Diagnostics of the returned Document. A non nil error is only
// returned for a nil root, or when using StrictErrorMode and some
// diagnostics were recorded, in which case the document is still usable.
func Build(root Element, opts ...Option) (*Document, error) {
	if root == nil {
		return nil, errors.New("missing root element")
	}
	cfg := newConfig(opts)
	reg := newRegistry(root, cfg)
	state := &buildState{
		root:  root,
		cfg:   cfg,
		tiles: make(map[tileKey]*PatternPaint),
		doc: &Document{
			Viewport:      Viewport{Rect: cfg.viewport, PPI: cfg.ppi},
			ColorProfiles: reg.profiles,
		},
	}
	b := newBuilder(state, reg, rootFrame(cfg), nil, 0)
	doc := state.doc
	path := "/" + root.Tag()
	if root.Tag() != "svg" {
		b.report(path, "root element is %s, not svg", root.Tag())
	}
	doc.Root = b.buildElement(root, path)
	if doc.Root == nil {
		doc.Root = &Node{Name: path, Kind: GroupNode, Transform: rootFrame(cfg).transform, Viewport: doc.Viewport, Opacity: 1}
	}
	doc.Diagnostics = state.diags
	if cfg.errorMode == StrictErrorMode {
		return doc, doc.Diagnostics.Err()
	}
	return doc, nil
}

func newBuilder(state *buildState, reg *registry, initial frame, ancestors []Element, depth int) *builder {
	return &builder{
		state:     state,
		reg:       reg,
		stack:     newScopeStack(initial, reg),
		ancestors: ancestors,
		uses:      make(map[Element]bool),
		depth:     depth,
	}
}

// report records a diagnostic.
func (b *builder) report(path, format string, args ...interface{}) {
	d := diagnosticf(path, format, args...)
	b.state.diags = append(b.state.diags, d)
	if b.state.cfg.errorMode == WarnErrorMode {
		b.state.cfg.logger.Warn(d.Message, "path", d.Path)
	}
}

// isRoot is true while building the outermost element of the document.
func (b *builder) isRoot() bool { return len(b.ancestors) == 1 && b.inMainDocument() }

// inMainDocument is false inside pattern tiles and external content.
func (b *builder) inMainDocument() bool {
	return b.depth == 0 && len(b.ancestors) != 0 && b.ancestors[0] == b.state.root
}

// buildElement returns the node for `el`, or nil if the element
// does not produce output.
func (b *builder) buildElement(el Element, path string) *Node {
	a := newAttrs(el)
	top := b.stack.top()
	base := joinBase(top.base, el)
	b.reg.register(el, b.ancestors, base)

	fn, known := buildFuncs[el.Tag()]
	if !known {
		b.report(path, "cannot process svg element %s", el.Tag())
	}
	if v, _ := a.prop("display"); v == "none" || fn == nil {
		// not rendered, but its definitions are still available
		b.registerChildren(el, base)
		return nil
	}

	ctx := elementContext{
		path:  path,
		own:   b.readTransform(a, path),
		props: top.props.inherit(readDeclaration(a, func(err error) { b.report(path, "%s", err) })),
		base:  base,
	}
	b.ancestors = append(b.ancestors, el)
	defer func() { b.ancestors = b.ancestors[:len(b.ancestors)-1] }()
	return fn(b, el, a, ctx)
}

func (b *builder) registerChildren(el Element, base string) {
	ancestors := append(b.ancestors[:len(b.ancestors):len(b.ancestors)], el)
	for _, child := range el.Children() {
		b.reg.registerSubtree(child, ancestors, base)
	}
}

// buildChildren builds the children of el, in the current scope.
func (b *builder) buildChildren(el Element, path string) []*Node {
	var (
		out    []*Node
		counts = make(map[string]int)
	)
	for _, child := range el.Children() {
		index := counts[child.Tag()]
		counts[child.Tag()]++
		if node := b.buildElement(child, elementPath(path, child, index)); node != nil {
			out = append(out, node)
		}
	}
	return out
}

// readTransform returns the transform attribute, or the identity
// if it is absent or invalid.
func (b *builder) readTransform(a attrs, path string) Matrix2D {
	v, ok := a.get("transform")
	if !ok {
		return Identity
	}
	list, err := ParseTransform(v)
	if err != nil {
		b.report(path, "%s", err)
		return Identity
	}
	return list.Matrix()
}

// length reads a geometric length attribute and resolves it.
// `axis` is 'x', 'y' or 'd' (diagonal).
func (b *builder) length(a attrs, name, def string, axis byte, vp Viewport, path string) float64 {
	v, ok := a.get(name)
	if !ok {
		v = def
	}
	l, err := ParseLength(v)
	if err != nil {
		b.report(path, "attribute %s: %s", name, err)
	}
	switch axis {
	case 'x':
		return vp.ResolveX(l)
	case 'y':
		return vp.ResolveY(l)
	default:
		return vp.ResolveDiagonal(l)
	}
}

// newNode initializes the common fields of a node.
func (b *builder) newNode(el Element, kind NodeKind, ctx elementContext, transform Matrix2D, vp Viewport) *Node {
	node := &Node{
		ID:        elementID(el),
		Name:      ctx.path,
		Kind:      kind,
		Transform: transform,
		Viewport:  vp,
		Visible:   ctx.props.Visibility == Visible,
		Opacity:   1,
	}
	if v, ok := newAttrs(el).prop("opacity"); ok && v != "inherit" {
		op, err := readOpacity(v)
		if err != nil {
			b.report(ctx.path, "invalid opacity %q", v)
		} else {
			node.Opacity = op
		}
	}
	return node
}

func groupF(b *builder, el Element, _ attrs, ctx elementContext) *Node {
	top := b.stack.top()
	f := top
	f.transform = top.transform.Mult(ctx.own)
	f.props = ctx.props
	f.base = ctx.base
	node := b.newNode(el, GroupNode, ctx, f.transform, top.viewport)
	b.stack.push(f)
	node.Children = b.buildChildren(el, ctx.path)
	b.stack.pop()
	return node
}

// switchF only renders its first direct child producing output.
func switchF(b *builder, el Element, _ attrs, ctx elementContext) *Node {
	top := b.stack.top()
	f := top
	f.transform = top.transform.Mult(ctx.own)
	f.props = ctx.props
	f.base = ctx.base
	node := b.newNode(el, GroupNode, ctx, f.transform, top.viewport)
	b.stack.push(f)
	defer b.stack.pop()
	for i, child := range el.Children() {
		if fn, ok := buildFuncs[child.Tag()]; !ok || fn == nil {
			continue
		}
		if n := b.buildElement(child, elementPath(ctx.path, child, i)); n != nil {
			node.Children = []*Node{n}
			break
		}
	}
	return node
}

func svgF(b *builder, el Element, a attrs, ctx elementContext) *Node {
	size := b.useSize
	b.useSize = nil
	return b.viewportElement(el, a, ctx, size, b.isRoot())
}

// symbolF only renders symbols instantiated by a use element.
func symbolF(b *builder, el Element, a attrs, ctx elementContext) *Node {
	size := b.useSize
	b.useSize = nil
	if size == nil {
		b.registerChildren(el, ctx.base)
		return nil
	}
	return b.viewportElement(el, a, ctx, size, false)
}

// readViewBox returns nil if the attribute is absent or invalid.
func (b *builder) readViewBox(a attrs, path string) *Bounds {
	v, ok := a.get("viewBox")
	if !ok {
		return nil
	}
	points, err := parseNumberList(v)
	if err != nil || len(points) != 4 {
		b.report(path, "invalid viewBox %q", v)
		return nil
	}
	return &Bounds{X: points[0], Y: points[1], W: points[2], H: points[3]}
}

// viewportElement handles the elements establishing a new viewport:
// svg (root or nested) and instantiated symbols.
func (b *builder) viewportElement(el Element, a attrs, ctx elementContext, size *useSize, isRoot bool) *Node {
	top := b.stack.top()
	vp := top.viewport
	var rect Bounds
	if !isRoot { // x and y have no effect on the outermost svg
		rect.X = b.length(a, "x", "0", 'x', vp, ctx.path)
		rect.Y = b.length(a, "y", "0", 'y', vp, ctx.path)
	}
	widthAttr, heightAttr := "width", "height"
	if size != nil {
		// the use element dimensions override the target ones
		if size.width != "" {
			a = overrideAttr(a, "width", size.width)
		}
		if size.height != "" {
			a = overrideAttr(a, "height", size.height)
		}
	}
	rect.W = b.length(a, widthAttr, "100%", 'x', vp, ctx.path)
	rect.H = b.length(a, heightAttr, "100%", 'y', vp, ctx.path)

	node := b.newNode(el, GroupNode, ctx, top.transform.Mult(ctx.own), vp)
	viewBox := b.readViewBox(a, ctx.path)
	if isRoot {
		b.state.doc.ViewBox = viewBox
	}
	if rect.W < 0 || rect.H < 0 {
		b.report(ctx.path, "negative viewport size %gx%g", rect.W, rect.H)
		return node
	}
	if rect.W == 0 || rect.H == 0 { // rendering disabled
		b.registerChildren(el, ctx.base)
		return node
	}
	spec := DefaultFitSpec
	if v, ok := a.get("preserveAspectRatio"); ok {
		spec = ParseFitSpec(v)
	}
	parent := top
	parent.props = ctx.props
	parent.base = ctx.base
	f, err := viewportFrame(parent, ctx.own, rect, viewBox, spec)
	if err != nil {
		b.report(ctx.path, "%s", err)
		f, _ = viewportFrame(parent, ctx.own, rect, nil, spec)
	}
	b.stack.push(f)
	node.Children = b.buildChildren(el, ctx.path)
	b.stack.pop()
	return node
}

// overriddenAttrs wraps an element to replace one attribute value.
type overriddenAttrs struct {
	Element
	name, value string
}

func (o overriddenAttrs) Attr(name string) (string, bool) {
	if name == o.name {
		return o.value, true
	}
	return o.Element.Attr(name)
}

func overrideAttr(a attrs, name, value string) attrs {
	a.el = overriddenAttrs{Element: a.el, name: name, value: value}
	return a
}

// useF instantiates the referenced element, as a group
// translated by (x, y).
func useF(b *builder, el Element, a attrs, ctx elementContext) *Node {
	top := b.stack.top()
	vp := top.viewport
	x := b.length(a, "x", "0", 'x', vp, ctx.path)
	y := b.length(a, "y", "0", 'y', vp, ctx.path)
	f := top
	f.transform = top.transform.Mult(ctx.own).Translate(x, y)
	f.props = ctx.props
	f.base = ctx.base
	node := b.newNode(el, GroupNode, ctx, top.transform.Mult(ctx.own), vp)

	href := a.href()
	def, ok := b.reg.lookup(href, ctx.base)
	if !ok {
		b.report(ctx.path, "unresolved use reference %q", href)
		return node
	}
	if b.uses[def.el] {
		b.report(ctx.path, "circular use reference %q", href)
		return node
	}
	for _, anc := range b.ancestors {
		if anc == def.el {
			b.report(ctx.path, "use reference %q to an ancestor", href)
			return node
		}
	}
	if tag := def.el.Tag(); tag == "svg" || tag == "symbol" {
		w, _ := a.get("width")
		h, _ := a.get("height")
		b.useSize = &useSize{width: w, height: h}
	}
	b.uses[def.el] = true
	path := elementPath(ctx.path, def.el, 0)
	var child *Node
	if def.reg == b.reg {
		b.stack.push(f)
		child = b.buildElement(def.el, path)
		b.stack.pop()
	} else {
		// content of an external document resolves its references there
		f.base = def.parentBase()
		sub := newBuilder(b.state, def.reg, f, append([]Element(nil), def.ancestors...), b.depth)
		sub.uses = b.uses
		sub.useSize = b.useSize
		child = sub.buildElement(def.el, path)
	}
	delete(b.uses, def.el)
	b.useSize = nil
	if child != nil {
		node.Children = []*Node{child}
	}
	return node
}

func titleF(b *builder, el Element, _ attrs, _ elementContext) *Node {
	if b.inMainDocument() {
		b.state.doc.Titles = append(b.state.doc.Titles, strings.TrimSpace(el.Text()))
	}
	return nil
}

func descF(b *builder, el Element, _ attrs, _ elementContext) *Node {
	if b.inMainDocument() {
		b.state.doc.Descriptions = append(b.state.doc.Descriptions, strings.TrimSpace(el.Text()))
	}
	return nil
}

func colorProfileF(b *builder, el Element, a attrs, ctx elementContext) *Node {
	name, _ := a.get("name")
	if name == "" {
		name = elementID(el)
	}
	href := a.href()
	cp := b.reg.loadColorProfile(name, href, ctx.base)
	if cp.Data == nil && href != "" {
		b.report(ctx.path, "color profile %q: resource %q is not available", name, href)
	}
	return nil
}

// shapeF builds the basic shapes.
func shapeF(b *builder, el Element, a attrs, ctx elementContext) *Node {
	top := b.stack.top()
	kind, outline, err := b.readGeometry(el.Tag(), a, top.viewport, ctx.path)
	if err != nil {
		b.report(ctx.path, "%s", err)
	}
	node := b.newNode(el, kind, ctx, top.transform.Mult(ctx.own), top.viewport)
	node.Outline = outline
	node.FillOpacity = ctx.props.FillOpacity
	node.StrokeOpacity = ctx.props.StrokeOpacity
	node.FillRule = ctx.props.FillRule
	node.StrokeStyle = ctx.props.resolveStroke(top.viewport)
	if len(outline) == 0 {
		return node
	}
	sh := shapeContext{
		path:      ctx.path,
		bbox:      outline.Bounds(),
		transform: node.Transform,
		viewport:  top.viewport,
		props:     ctx.props,
		base:      ctx.base,
	}
	node.Fill = b.resolvePaint(ctx.props.Fill, fillChannel, sh)
	node.Stroke = b.resolvePaint(ctx.props.Stroke, strokeChannel, sh)
	return node
}
