// =============================================================================
// WizBang Client - XML Document Tree
// =============================================================================
//
// This module provides a generic XML node tree for the WizBang payloads.
// The server's schema is irregular (ID attributes vary in naming, optional
// nodes, implicit arrays), so payloads are decoded into a loose tree and
// walked by the mappers instead of being bound to rigid struct tags.
//
// TREE STRUCTURE:
//   Each Node mirrors one XML element:
//
//   <item itemid="7">            <!-- XMLName + Attrs -->
//     <name>Flat White</name>    <!-- child Node with Text -->
//     <price1>4.50</price1>
//   </item>
//
// ATTRIBUTE CONVENTIONS:
//   Different element kinds name their identifying attribute inconsistently
//   (itemid, groupid, modgroupid, ...). ExtractID scans for the first
//   attribute whose name contains "id"; ExtractType does the same for
//   "type". Both are deliberately narrow compatibility shims for the
//   upstream schema, not schema validators.
//
// =============================================================================

package wbxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/wizbangpos/wizbang-client/internal/wberr"
)

// =============================================================================
// NODE STRUCTURE
// =============================================================================

// Node is one element of a parsed XML document.
type Node struct {
	// XMLName is the element name.
	XMLName xml.Name

	// Attrs are the element's attributes in document order.
	Attrs []xml.Attr `xml:",any,attr"`

	// Text is the element's character data.
	Text string `xml:",chardata"`

	// Children are the child elements in document order.
	Children []Node `xml:",any"`
}

// Parse decodes an XML document into a node tree rooted at its top-level
// element.
func Parse(data []byte) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	var root Node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return &root, nil
}

// Name returns the local element name.
func (n *Node) Name() string {
	return n.XMLName.Local
}

// =============================================================================
// TREE NAVIGATION
// =============================================================================
// Element name matching is case-insensitive throughout; observed payloads
// mix casing between schema revisions.

// Find returns the first direct child with the given name, or nil.
func (n *Node) Find(name string) *Node {
	for i := range n.Children {
		if strings.EqualFold(n.Children[i].XMLName.Local, name) {
			return &n.Children[i]
		}
	}
	return nil
}

// FindAll returns all direct children with the given name, in document
// order.
func (n *Node) FindAll(name string) []*Node {
	var nodes []*Node
	for i := range n.Children {
		if strings.EqualFold(n.Children[i].XMLName.Local, name) {
			nodes = append(nodes, &n.Children[i])
		}
	}
	return nodes
}

// Collect returns every element with the given name in the subtree rooted
// at n, including n itself, in document order. This is how the mappers
// tolerate optional wrapper elements: <itemgroups><itemgroup/>... and a
// bare sequence of <itemgroup/> elements collect identically.
func (n *Node) Collect(name string) []*Node {
	var nodes []*Node
	n.collect(name, &nodes)
	return nodes
}

func (n *Node) collect(name string, out *[]*Node) {
	if strings.EqualFold(n.XMLName.Local, name) {
		*out = append(*out, n)
	}
	for i := range n.Children {
		n.Children[i].collect(name, out)
	}
}

// =============================================================================
// FIELD EXTRACTION
// =============================================================================

// OptionalText reads a named child element as trimmed text. The second
// return value reports whether the child was present at all, so callers
// can distinguish "present but empty" from "not present in this schema
// revision".
func (n *Node) OptionalText(name string) (string, bool) {
	child := n.Find(name)
	if child == nil {
		return "", false
	}
	return strings.TrimSpace(child.Text), true
}

// RequiredText reads a named child element as trimmed text and fails with
// a MappingError carrying the element kind and field name when the child
// is missing.
func (n *Node) RequiredText(kind, name string) (string, error) {
	text, ok := n.OptionalText(name)
	if !ok {
		return "", &wberr.MappingError{
			Kind:    kind,
			Field:   name,
			Message: "required element missing",
		}
	}
	return text, nil
}

// ExtractID returns the value of the element's identifying attribute: the
// first attribute whose name contains the substring "id". The upstream
// schema names ID attributes inconsistently between element kinds, so a
// fixed attribute name cannot be relied on. Fails with a MappingError when
// no such attribute exists.
func (n *Node) ExtractID(kind string) (string, error) {
	return n.scanAttr(kind, "id")
}

// ExtractType returns the value of the first attribute whose name contains
// the substring "type", using the same permissive scan as ExtractID.
func (n *Node) ExtractType(kind string) (string, error) {
	return n.scanAttr(kind, "type")
}

// scanAttr implements the attribute-name-substring convention shared by
// ExtractID and ExtractType.
func (n *Node) scanAttr(kind, substring string) (string, error) {
	for _, attr := range n.Attrs {
		if strings.Contains(strings.ToLower(attr.Name.Local), substring) {
			return attr.Value, nil
		}
	}
	return "", &wberr.MappingError{
		Kind:    kind,
		Field:   substring,
		Message: fmt.Sprintf("no attribute with %q in its name on element <%s>", substring, n.XMLName.Local),
	}
}
