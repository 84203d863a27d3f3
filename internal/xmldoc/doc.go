// Package xmldoc is the document capability boundary: parsing one census
// return into a navigable tree, path-scoped row extraction, and rendering a
// typed element tree back to markup.
//
// The package knows nothing about the census data model. It exposes exactly
// what the shredder and rebuilder need:
//
//   - Parse assigns every element a synthetic identity in document order, so
//     ascending identity reproduces the order elements were read.
//   - Select runs a compiled XPath query and returns matching elements.
//   - Element/Marshal render a tree with exact control over element order
//     and the presence of empty elements.
//
// Parsing and querying are built on github.com/antchfx/xmlquery with
// expressions compiled through github.com/antchfx/xpath.
package xmldoc
