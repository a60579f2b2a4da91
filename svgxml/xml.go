// Package svgxml reads SVG sources into element trees
// suitable for scene.Build.
package svgxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/benoitkugler/svgscene/scene"
	"golang.org/x/net/html/charset"
)

var errNoElement = errors.New("invalid svg xml: no element found")

// Node is an XML element, with its attributes and children.
type Node struct {
	Name       xml.Name
	Attributes []xml.Attr
	Nodes      []*Node
	CharData   string
}

var _ scene.Element = (*Node)(nil) // assert interface conformance

func (n *Node) Tag() string { return n.Name.Local }

// Attr matches the local name of the attributes: both
// href and xlink:href are returned for "href". Attributes
// without namespace take precedence.
func (n *Node) Attr(name string) (string, bool) {
	var (
		value string
		found bool
	)
	for _, attr := range n.Attributes {
		if attr.Name.Local != name {
			continue
		}
		if attr.Name.Space == "" {
			return attr.Value, true
		}
		if !found {
			value, found = attr.Value, true
		}
	}
	return value, found
}

func (n *Node) Attrs() []xml.Attr { return n.Attributes }

func (n *Node) Children() []scene.Element {
	out := make([]scene.Element, len(n.Nodes))
	for i, child := range n.Nodes {
		out[i] = child
	}
	return out
}

func (n *Node) Text() string { return n.CharData }

// Parse reads the XML tree from `r`, honoring the
// charset declared by the document.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		root  *Node
		stack []*Node
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			node := &Node{Name: se.Name, Attributes: se.Copy().Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("invalid svg xml: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Nodes = append(parent.Nodes, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) != 0 {
				stack[len(stack)-1].CharData += string(se)
			}
		}
	}
	if root == nil {
		return nil, errNoElement
	}
	return root, nil
}

// ParseBytes is a convenience wrapper for Parse, and
// may be used with scene.WithParser.
func ParseBytes(data []byte) (scene.Element, error) {
	root, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return root, nil
}

// ReadDocument parses the SVG source and builds it.
// External documents are read with ParseBytes, unless
// a custom parser is given in `opts`.
func ReadDocument(r io.Reader, opts ...scene.Option) (*scene.Document, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}
	opts = append([]scene.Option{scene.WithParser(ParseBytes)}, opts...)
	return scene.Build(root, opts...)
}

// ReadDocumentFile reads the named file. External
// resources are fetched relatively to its directory, unless
// a custom fetcher is given in `opts`.
func ReadDocumentFile(filename string, opts ...scene.Option) (*scene.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	opts = append([]scene.Option{scene.WithFetcher(scene.DirFetcher(filepath.Dir(filename)))}, opts...)
	return ReadDocument(f, opts...)
}
