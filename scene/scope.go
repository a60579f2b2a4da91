package scene

// frame is the context in effect at some depth of the traversal.
type frame struct {
	transform Matrix2D // root output space <- current user space
	viewport  Viewport
	props     Properties
	base      string // xml:base
}

// scopeStack is the per-traversal context. Frames are values,
// so that popping restores the parent state exactly.
type scopeStack struct {
	frames []frame
	reg    *registry
}

func newScopeStack(initial frame, reg *registry) scopeStack {
	return scopeStack{frames: []frame{initial}, reg: reg}
}

func (s *scopeStack) top() frame { return s.frames[len(s.frames)-1] }

func (s *scopeStack) push(f frame) { s.frames = append(s.frames, f) }

func (s *scopeStack) pop() { s.frames = s.frames[:len(s.frames)-1] }

// rootFrame maps the caller viewport, given in pixels at `ppi`,
// to the output space, in points.
func rootFrame(cfg config) frame {
	s := OutputPPI / cfg.ppi
	return frame{
		transform: Identity.Scale(s, s),
		viewport:  Viewport{Rect: cfg.viewport, PPI: cfg.ppi},
		props:     DefaultProperties,
	}
}

// viewportFrame returns the frame established by an element declaring
// its own rectangle (in the parent user space) and an optional viewBox.
// `own` is the transform attribute of the element.
func viewportFrame(parent frame, own Matrix2D, rect Bounds, viewBox *Bounds, spec FitSpec) (frame, error) {
	out := parent
	out.transform = parent.transform.Mult(own)
	if viewBox == nil {
		out.transform = out.transform.Translate(rect.X, rect.Y)
		out.viewport = Viewport{Rect: Bounds{W: rect.W, H: rect.H}, PPI: parent.viewport.PPI}
		return out, nil
	}
	fit, err := Fit(*viewBox, rect, spec)
	if err != nil {
		return parent, err
	}
	out.transform = out.transform.Mult(fit)
	out.viewport = Viewport{Rect: *viewBox, PPI: parent.viewport.PPI}
	return out, nil
}
