package scene

import (
	"log/slog"
	"path"
	"strings"
)

// definition is an element which may be referenced by id,
// with the context needed to resolve it.
type definition struct {
	el        Element
	ancestors []Element // from the document root, excluding el
	base      string    // xml:base in effect
	reg       *registry // owning document

	props    *Properties // inherited properties at el, computed on demand
	propsErr []error
}

// properties returns the inherited properties in effect at the
// definition, which (for instance) give the value of currentColor.
func (def *definition) properties() Properties {
	if def.props == nil {
		p := DefaultProperties
		report := func(err error) { def.propsErr = append(def.propsErr, err) }
		for _, anc := range def.ancestors {
			p = p.inherit(readDeclaration(newAttrs(anc), report))
		}
		p = p.inherit(readDeclaration(newAttrs(def.el), report))
		def.props = &p
	}
	return *def.props
}

// parentBase returns the xml:base in effect around the definition.
func (def *definition) parentBase() string {
	base := def.reg.base
	for _, anc := range def.ancestors {
		base = joinBase(base, anc)
	}
	return base
}

// ColorProfile is a color-profile element, whose
// referenced data has been fetched.
type ColorProfile struct {
	Name string
	Href string
	Data []byte // nil if the fetch failed
}

type fetchResult struct {
	data []byte
	ok   bool
}

// fetchCache is shared by a document and its external documents,
// so that each identifier is fetched at most once per build.
type fetchCache struct {
	fetch   Fetcher
	parse   Parser
	logger  *slog.Logger
	results map[string]fetchResult
	docs    map[string]*registry // parsed external documents
}

func (fc *fetchCache) get(identifier string) ([]byte, bool) {
	if res, ok := fc.results[identifier]; ok {
		return res.data, res.ok
	}
	data, ok := fc.fetch(identifier)
	fc.logger.Debug("fetching external resource", "identifier", identifier, "found", ok)
	fc.results[identifier] = fetchResult{data: data, ok: ok}
	return data, ok
}

// registry maps identifiers to definitions. It is filled during the
// traversal of the document; lookups of ids not yet registered trigger
// an indexation of the whole tree, so that forward references are supported.
type registry struct {
	root    Element
	base    string // directory of the document, relative to the main one
	defs    map[string]*definition
	indexed bool

	profiles map[string]*ColorProfile
	cache    *fetchCache
}

func newRegistry(root Element, cfg config) *registry {
	cache := &fetchCache{
		fetch:   cfg.fetch,
		parse:   cfg.parse,
		logger:  cfg.logger,
		results: make(map[string]fetchResult),
		docs:    make(map[string]*registry),
	}
	return newDocumentRegistry(root, cache, "")
}

func newDocumentRegistry(root Element, cache *fetchCache, base string) *registry {
	return &registry{
		root:     root,
		base:     base,
		defs:     make(map[string]*definition),
		profiles: make(map[string]*ColorProfile),
		cache:    cache,
	}
}

// register adds the element, if it has an id. The first
// definition of an id wins.
func (r *registry) register(el Element, ancestors []Element, base string) {
	id := elementID(el)
	if id == "" {
		return
	}
	if _, has := r.defs[id]; has {
		return
	}
	r.defs[id] = &definition{
		el:        el,
		ancestors: append([]Element(nil), ancestors...),
		base:      base,
		reg:       r,
	}
}

// registerSubtree registers el and all its descendants.
func (r *registry) registerSubtree(el Element, ancestors []Element, base string) {
	base = joinBase(base, el)
	r.register(el, ancestors, base)
	ancestors = append(ancestors, el)
	for _, child := range el.Children() {
		r.registerSubtree(child, ancestors, base)
	}
}

// index registers all the elements of the document.
func (r *registry) index() {
	if r.indexed || r.root == nil {
		return
	}
	r.indexed = true
	r.registerSubtree(r.root, nil, r.base)
}

// lookupID returns the definition for a local id,
// or false if it is not defined anywhere in the document.
func (r *registry) lookupID(id string) (*definition, bool) {
	if def, ok := r.defs[id]; ok {
		return def, true
	}
	r.index()
	def, ok := r.defs[id]
	return def, ok
}

// lookup resolves an IRI like "#id" or "other.svg#id".
func (r *registry) lookup(iri, base string) (*definition, bool) {
	iri = strings.TrimSpace(iri)
	idx := strings.IndexByte(iri, '#')
	if idx < 0 {
		return nil, false
	}
	file, id := iri[:idx], iri[idx+1:]
	if id == "" {
		return nil, false
	}
	if file == "" {
		return r.lookupID(id)
	}
	ext := r.external(resolveHref(base, file))
	if ext == nil {
		return nil, false
	}
	return ext.lookupID(id)
}

// external returns the registry of an external document,
// fetching and parsing it on first use.
func (r *registry) external(identifier string) *registry {
	if ext, ok := r.cache.docs[identifier]; ok {
		return ext
	}
	r.cache.docs[identifier] = nil // also guards against cycles
	data, ok := r.cache.get(identifier)
	if !ok || r.cache.parse == nil {
		return nil
	}
	root, err := r.cache.parse(data)
	if err != nil {
		r.cache.logger.Debug("invalid external document", "identifier", identifier, "error", err)
		return nil
	}
	dir := path.Dir(identifier)
	if dir == "." || strings.Contains(identifier, "://") {
		dir = ""
	}
	ext := newDocumentRegistry(root, r.cache, dir)
	r.cache.docs[identifier] = ext
	return ext
}

// loadColorProfile registers a color profile, fetching its data.
func (r *registry) loadColorProfile(name, href, base string) *ColorProfile {
	if cp, ok := r.profiles[name]; ok {
		return cp
	}
	cp := &ColorProfile{Name: name, Href: href}
	if href != "" {
		if data, ok := r.cache.get(resolveHref(base, href)); ok {
			cp.Data = data
		}
	}
	r.profiles[name] = cp
	return cp
}

// resolveHref applies xml:base to a relative reference.
func resolveHref(base, href string) string {
	if base == "" || path.IsAbs(href) || strings.Contains(href, "://") {
		return href
	}
	return path.Join(base, href)
}

// joinBase returns the xml:base in effect inside el.
// The attribute always names a directory.
func joinBase(parent string, el Element) string {
	b, ok := el.Attr("base")
	if !ok {
		return parent
	}
	b = strings.TrimSuffix(strings.TrimSpace(b), "/")
	if b == "" {
		return parent
	}
	return resolveHref(parent, b)
}
