package scene

import (
	"image"
	"math"
)

// tileKey identifies a baked tile: the same pattern applied with
// the same geometry reuses its tile.
type tileKey struct {
	def      *definition
	bbox     Bounds // zero when the tile does not depend on the shape
	device   Matrix2D
	viewport Viewport
}

var patternCoords = [4]gradientCoord{{"x", "0", 'x'}, {"y", "0", 'y'}, {"width", "0", 'x'}, {"height", "0", 'y'}}

// resolvePattern bakes the pattern tile for the given shape.
// It returns nil when the pattern paints nothing.
func (b *builder) resolvePattern(def *definition, sh shapeContext) Paint {
	cfg := b.state.cfg
	if b.depth >= cfg.maxPatternDepth {
		b.report(sh.path, "%s (pattern #%s)", ErrPatternDepth, elementID(def.el))
		return nil
	}
	chain := b.serverChain(def, sh.path, "pattern")

	units, contentUnits := ObjectBoundingBox, UserSpaceOnUse
	if v, ok := chainAttr(chain, "patternUnits"); ok {
		var valid bool
		if units, valid = parseUnits(v, ObjectBoundingBox); !valid {
			b.report(sh.path, "invalid patternUnits %q", v)
		}
	}
	if v, ok := chainAttr(chain, "patternContentUnits"); ok {
		var valid bool
		if contentUnits, valid = parseUnits(v, UserSpaceOnUse); !valid {
			b.report(sh.path, "invalid patternContentUnits %q", v)
		}
	}
	patternTransform := Identity
	if v, ok := chainAttr(chain, "patternTransform"); ok {
		list, err := ParseTransform(v)
		if err != nil {
			b.report(sh.path, "patternTransform: %s", err)
		} else {
			patternTransform = list.Matrix()
		}
	}

	if units == ObjectBoundingBox && sh.bbox.IsEmpty() {
		return nil
	}
	var coords [4]float64
	for i, c := range patternCoords {
		coords[i], _ = b.readGradientCoord(chain, c, units, sh)
	}
	ref := Bounds{X: coords[0], Y: coords[1], W: coords[2], H: coords[3]}
	if units == ObjectBoundingBox {
		ref = Bounds{
			X: sh.bbox.X + ref.X*sh.bbox.W,
			Y: sh.bbox.Y + ref.Y*sh.bbox.H,
			W: ref.W * sh.bbox.W,
			H: ref.H * sh.bbox.H,
		}
	}
	if ref.W < 0 || ref.H < 0 {
		b.report(sh.path, "pattern #%s: %s", elementID(def.el), errNegativeSize)
		return nil
	}
	if ref.W == 0 || ref.H == 0 {
		return nil
	}

	var viewBox *Bounds
	if v, ok := chainAttr(chain, "viewBox"); ok {
		points, err := parseNumberList(v)
		if err != nil || len(points) != 4 || points[2] <= 0 || points[3] <= 0 {
			b.report(sh.path, "pattern #%s: invalid viewBox %q", elementID(def.el), v)
		} else {
			viewBox = &Bounds{X: points[0], Y: points[1], W: points[2], H: points[3]}
		}
	}

	holder := chainChildren(chain, "")
	if holder == nil {
		return nil
	}

	// pattern tile space -> output space
	device := sh.transform.Mult(patternTransform).Translate(ref.X, ref.Y)
	sx, sy := device.ScaleFactors()
	tw := clamp(int(math.Ceil(ref.W*sx)), 1, cfg.maxTileSize)
	th := clamp(int(math.Ceil(ref.H*sy)), 1, cfg.maxTileSize)

	// pattern content -> tile pixels
	content := Identity.Scale(float64(tw)/ref.W, float64(th)/ref.H)
	contentViewport := sh.viewport
	dependsOnBox := units == ObjectBoundingBox
	switch {
	case viewBox != nil:
		spec := DefaultFitSpec
		if v, ok := chainAttr(chain, "preserveAspectRatio"); ok {
			spec = ParseFitSpec(v)
		}
		fit, _ := Fit(*viewBox, Bounds{W: ref.W, H: ref.H}, spec)
		content = content.Mult(fit)
		contentViewport.Rect = *viewBox
	case contentUnits == ObjectBoundingBox:
		content = content.Scale(sh.bbox.W, sh.bbox.H)
		contentViewport.Rect = Bounds{W: 1, H: 1}
		dependsOnBox = true
	}

	key := tileKey{def: def, device: device, viewport: sh.viewport}
	if dependsOnBox {
		key.bbox = sh.bbox
	}
	if tile, ok := b.state.tiles[key]; ok {
		return tile
	}

	ancestors := append(append([]Element(nil), holder.ancestors...), holder.el)
	sub := newBuilder(b.state, holder.reg, frame{
		transform: content,
		viewport:  contentViewport,
		props:     holder.properties(),
		base:      holder.base,
	}, ancestors, b.depth+1)
	root := &Node{Kind: GroupNode, Transform: Identity, Opacity: 1, Visible: true}
	root.Children = sub.buildChildren(holder.el, sh.path+"/pattern#"+elementID(def.el))

	img := image.NewRGBA(image.Rect(0, 0, tw, th))
	newRenderer(img).drawNode(root, Identity, 1)
	cfg.logger.Debug("baked pattern tile", "id", elementID(def.el), "width", tw, "height", th, "depth", b.depth)

	out := &PatternPaint{
		ID:    elementID(def.el),
		Tile:  img,
		Brush: device.Scale(ref.W/float64(tw), ref.H/float64(th)),
		Rect:  ref,
	}
	b.state.tiles[key] = out
	return out
}
