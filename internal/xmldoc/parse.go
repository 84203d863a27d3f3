package xmldoc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// ParseError is the only fatal error class in the pipeline: the input is not
// well-formed XML or is not navigable as a census return.
type ParseError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *ParseError) Unwrap() error { return e.Err }

// Document is a parsed return with document-order element identities.
type Document struct {
	root *xmlquery.Node
	ids  map[*xmlquery.Node]int64
}

// Node is one element of a parsed document.
type Node struct {
	doc *Document
	n   *xmlquery.Node
}

// Parse parses the return and numbers every element node in document order,
// starting at 1. The numbering is the synthetic identity scheme the whole
// pipeline relies on.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Message: "document is not well-formed", Err: err}
	}
	doc := &Document{
		root: root,
		ids:  make(map[*xmlquery.Node]int64),
	}
	var next int64
	var number func(n *xmlquery.Node)
	number = func(n *xmlquery.Node) {
		if n.Type == xmlquery.ElementNode {
			next++
			doc.ids[n] = next
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			number(c)
		}
	}
	number(root)
	if next == 0 {
		return nil, &ParseError{Message: "document has no elements"}
	}
	return doc, nil
}

// Select returns the elements matching an absolute XPath expression, in
// document order. The expression is compiled once per call; callers holding
// hot paths should cache via CompileSelect.
func (d *Document) Select(expr string) ([]*Node, error) {
	sel, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid selection %q: %w", expr, err)
	}
	return d.selectCompiled(sel), nil
}

// CompileSelect compiles an XPath expression for repeated use.
func CompileSelect(expr string) (*xpath.Expr, error) {
	sel, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid selection %q: %w", expr, err)
	}
	return sel, nil
}

// SelectCompiled returns the elements matching a precompiled expression.
func (d *Document) SelectCompiled(sel *xpath.Expr) []*Node {
	return d.selectCompiled(sel)
}

func (d *Document) selectCompiled(sel *xpath.Expr) []*Node {
	matches := xmlquery.QuerySelectorAll(d.root, sel)
	out := make([]*Node, 0, len(matches))
	for _, m := range matches {
		if m.Type == xmlquery.ElementNode {
			out = append(out, &Node{doc: d, n: m})
		}
	}
	return out
}

// Identity returns the element's document-order identity.
func (n *Node) Identity() int64 { return n.doc.ids[n.n] }

// Name returns the element name.
func (n *Node) Name() string { return n.n.Data }

// Resolve follows a relative location ("..", "../..", or a child sub-path)
// to another element. The boolean is false when nothing is there.
func (n *Node) Resolve(loc string) (*Node, bool) {
	cur := n.n
	for _, step := range strings.Split(loc, "/") {
		switch step {
		case "", ".":
			continue
		case "..":
			cur = cur.Parent
			if cur == nil || cur.Type != xmlquery.ElementNode {
				return nil, false
			}
		default:
			cur = childElement(cur, step)
			if cur == nil {
				return nil, false
			}
		}
	}
	return &Node{doc: n.doc, n: cur}, true
}

// Value reads a field at a location relative to the element:
//
//	"."      the element's own inner text
//	"@name"  an attribute of the element
//	"a/b"    the inner text of a nested child element
//
// The boolean reports whether the location exists at all; an empty string
// with true means an explicitly empty element.
func (n *Node) Value(loc string) (string, bool) {
	if loc == "." {
		return n.n.InnerText(), true
	}
	if strings.HasPrefix(loc, "@") {
		name := strings.TrimPrefix(loc, "@")
		for _, a := range n.n.Attr {
			if a.Name.Local == name {
				return a.Value, true
			}
		}
		return "", false
	}
	target, ok := n.Resolve(loc)
	if !ok {
		return "", false
	}
	return target.n.InnerText(), true
}

func childElement(parent *xmlquery.Node, name string) *xmlquery.Node {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == name {
			return c
		}
	}
	return nil
}
