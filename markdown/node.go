package markdown

import (
	"bytes"
	"strconv"
)

// A Node is an element of the HTML tree built from a document.
// The tree is a strict forest: every node is owned by exactly one parent,
// or by the caller for the root.
type Node interface {
	// RenderHTML writes the HTML for the node and its descendants.
	RenderHTML(br *ByteRenderer) error
}

// An Attribute is an attribute key-value pair. Val is written as-is,
// without any escaping.
type Attribute struct {
	Key string
	Val []byte
}

// Attr is a shortcut to build an Attribute from strings.
func Attr(key string, val string) Attribute {
	return Attribute{Key: key, Val: []byte(val)}
}

// LeafNode is a node without children: plain text when Tag is empty, or a
// single element wrapping Value otherwise.
// A nil Value means the value was never set, which is different from an
// empty value (used by void-like elements such as img).
type LeafNode struct {
	Tag   string
	Value []byte
	Attr  []Attribute
}

// NewLeaf returns a leaf with its value set, even when value is empty.
func NewLeaf(tag string, value string, attrs ...Attribute) *LeafNode {
	return &LeafNode{
		Tag:   tag,
		Value: append([]byte{}, value...),
		Attr:  attrs,
	}
}

// RenderHTML renders the leaf. Plain text leaves are written verbatim.
func (n *LeafNode) RenderHTML(br *ByteRenderer) error {
	if n.Value == nil {
		return ErrMissingValue
	}

	if len(n.Tag) == 0 {
		br.Render(n.Value)
		return nil
	}

	br.Render("<", n.Tag)
	renderAttributes(br, n.Attr)
	br.Render(">", n.Value, "</", n.Tag, ">")
	return nil
}

// String returns a debugging representation of the leaf.
func (n *LeafNode) String() string {
	buf := bytes.NewBufferString("LeafNode(")
	buf.WriteString(strconv.Quote(n.Tag))
	buf.WriteString(", ")
	if n.Value == nil {
		buf.WriteString("<nil>")
	} else {
		buf.WriteString(strconv.Quote(string(n.Value)))
	}
	buf.WriteString(", ")
	buf.WriteString(attrString(n.Attr))
	buf.WriteByte(')')
	return buf.String()
}

// ParentNode is an element with an ordered list of children.
// A nil Children slice means the children were never set; an empty,
// non-nil slice is a valid element with no content.
type ParentNode struct {
	Tag      string
	Children []Node
	Attr     []Attribute
}

// NewParent returns an element owning the given children.
// Passing nil children leaves the node in the unset state.
func NewParent(tag string, children []Node, attrs ...Attribute) *ParentNode {
	return &ParentNode{
		Tag:      tag,
		Children: children,
		Attr:     attrs,
	}
}

// AppendChild adds child as the last child of n.
func (n *ParentNode) AppendChild(child Node) {
	if n.Children == nil {
		n.Children = []Node{}
	}
	n.Children = append(n.Children, child)
}

// RenderHTML renders recursively to HTML this node and its children.
func (n *ParentNode) RenderHTML(br *ByteRenderer) error {
	if len(n.Tag) == 0 {
		return ErrMissingTag
	}
	if n.Children == nil {
		return ErrMissingChildren
	}

	br.Render("<", n.Tag)
	renderAttributes(br, n.Attr)
	br.Render(">")

	// We visit depth-first the children of the node
	for _, child := range n.Children {
		if err := child.RenderHTML(br); err != nil {
			return err
		}
	}

	br.Render("</", n.Tag, ">")
	return nil
}

// String returns a debugging representation of the element.
func (n *ParentNode) String() string {
	buf := bytes.NewBufferString("ParentNode(")
	buf.WriteString(strconv.Quote(n.Tag))
	buf.WriteString(", ")
	if n.Children == nil {
		buf.WriteString("<nil>")
	} else {
		buf.WriteString(strconv.Itoa(len(n.Children)))
		buf.WriteString(" children")
	}
	buf.WriteString(", ")
	buf.WriteString(attrString(n.Attr))
	buf.WriteByte(')')
	return buf.String()
}

// Render returns the HTML text for the tree rooted at n.
func Render(n Node) (string, error) {
	br := &ByteRenderer{}
	if err := n.RenderHTML(br); err != nil {
		return "", err
	}
	return br.String(), nil
}

// renderAttributes writes each attribute as ` key="val"`, in insertion order.
func renderAttributes(br *ByteRenderer, attrs []Attribute) {
	for _, a := range attrs {
		br.Render(" ", a.Key, `="`, a.Val, `"`)
	}
}

func attrString(attrs []Attribute) string {
	if attrs == nil {
		return "<nil>"
	}
	br := &ByteRenderer{}
	br.Render("{")
	renderAttributes(br, attrs)
	br.Render(" }")
	return br.String()
}
