package xmldoc

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// Element is one node of a tree to be rendered. An element either carries
// text or children, never both; an element with neither renders as an
// explicitly empty element.
type Element struct {
	Name     string
	Text     string
	Children []*Element
}

// NewElement creates an empty element.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// TextElement creates a leaf element carrying text.
func TextElement(name, text string) *Element {
	return &Element{Name: name, Text: text}
}

// Add appends child elements and returns the receiver for chaining.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Marshal renders the tree as a UTF-8 XML document with an XML declaration,
// two-space indentation, and leaf text inline. Empty elements render with an
// explicit close tag so "present but empty" is visible in the output.
func (e *Element) Marshal() []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	writeElement(&buf, e, 0)
	return buf.Bytes()
}

func writeElement(buf *bytes.Buffer, e *Element, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	buf.WriteByte('>')

	switch {
	case len(e.Children) > 0:
		buf.WriteByte('\n')
		for _, c := range e.Children {
			writeElement(buf, c, depth+1)
		}
		buf.WriteString(indent)
	default:
		escapeText(buf, e.Text)
	}

	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteString(">\n")
}

// escapeText writes text with XML entity escaping, leaving newlines alone.
func escapeText(buf *bytes.Buffer, s string) {
	if s == "" {
		return
	}
	// xml.EscapeText also escapes \n and \t; field text never contains
	// either, so the simpler replacer keeps the output readable.
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	buf.WriteString(replacer.Replace(s))
}
