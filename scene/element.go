package scene

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Element is the already parsed document tree consumed by the builder.
// See the svgxml package for an implementation reading XML sources.
type Element interface {
	// Tag returns the local name of the element, like "rect".
	Tag() string
	// Attr returns the value of the attribute with the given local name.
	Attr(name string) (string, bool)
	// Attrs returns all the attributes, in document order.
	Attrs() []xml.Attr
	// Children returns the child elements, in document order.
	Children() []Element
	// Text returns the character data directly contained in the element.
	Text() string
}

// attrs gives a typed access to the attributes of an element,
// merged with its style attribute.
// Presentation attributes are overridden by the style attribute.
type attrs struct {
	el    Element
	style map[string]string
}

func newAttrs(el Element) attrs {
	out := attrs{el: el}
	if st, ok := el.Attr("style"); ok {
		out.style = parseStyleAttr(st)
	}
	return out
}

// parseStyleAttr splits a style attribute
// into its declarations.
func parseStyleAttr(v string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(v, ";") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])
		val = strings.TrimSpace(strings.TrimSuffix(val, "!important"))
		if k != "" {
			out[k] = val
		}
	}
	return out
}

// lookup returns the raw attribute value. Style declarations are only looked
// up when `presentation` is true.
func (a attrs) lookup(name string, presentation bool) (string, bool) {
	if presentation {
		if v, ok := a.style[name]; ok {
			return v, true
		}
	}
	v, ok := a.el.Attr(name)
	return strings.TrimSpace(v), ok
}

// get returns a geometric (non presentation) attribute.
func (a attrs) get(name string) (string, bool) { return a.lookup(name, false) }

// prop returns a presentation property, looking at
// the style attribute first.
func (a attrs) prop(name string) (string, bool) { return a.lookup(name, true) }

// href returns the target of a (xlink:)href attribute.
func (a attrs) href() string {
	// the local name is the same for both href and xlink:href
	v, _ := a.get("href")
	return v
}

// elementID returns the id attribute, or the empty string.
func elementID(el Element) string {
	id, _ := el.Attr("id")
	return strings.TrimSpace(id)
}

// elementPath returns a readable path for diagnostics,
// like /svg/g[1]/rect#id.
func elementPath(parent string, el Element, index int) string {
	s := parent + "/" + el.Tag()
	if index > 0 {
		s += "[" + strconv.Itoa(index) + "]"
	}
	if id := elementID(el); id != "" {
		s += "#" + id
	}
	return s
}
