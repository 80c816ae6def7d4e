package markdown

import (
	"fmt"
	"strconv"
)

// A SpanRole is the semantic role of a run of inline text.
type SpanRole uint32

const (
	// PlainSpan is text without markup. Only plain spans are split further
	// by the tokenizer.
	PlainSpan SpanRole = iota
	// BoldSpan looks like **text**.
	BoldSpan
	// ItalicSpan looks like _text_.
	ItalicSpan
	// CodeSpan looks like `text`.
	CodeSpan
	// LinkSpan looks like [text](url).
	LinkSpan
	// ImageSpan looks like ![alt](url).
	ImageSpan
)

// String returns a string representation of the SpanRole.
func (r SpanRole) String() string {
	switch r {
	case PlainSpan:
		return "Plain"
	case BoldSpan:
		return "Bold"
	case ItalicSpan:
		return "Italic"
	case CodeSpan:
		return "Code"
	case LinkSpan:
		return "Link"
	case ImageSpan:
		return "Image"
	}
	return "Invalid(" + strconv.Itoa(int(r)) + ")"
}

// A Span is an indivisible run of inline text with a role.
// URL is only set for links and images. Spans are comparable with ==.
type Span struct {
	Role SpanRole
	Text string
	URL  string
}

// String returns a string representation of the Span.
func (s Span) String() string {
	if s.Role == LinkSpan || s.Role == ImageSpan {
		return s.Role.String() + "(" + strconv.Quote(s.Text) + ", " + strconv.Quote(s.URL) + ")"
	}
	return s.Role.String() + "(" + strconv.Quote(s.Text) + ")"
}

// SpanToHTML lowers a span to the leaf that renders it.
func SpanToHTML(s Span) (*LeafNode, error) {
	switch s.Role {
	case PlainSpan:
		return NewLeaf("", s.Text), nil
	case BoldSpan:
		return NewLeaf("b", s.Text), nil
	case ItalicSpan:
		return NewLeaf("i", s.Text), nil
	case CodeSpan:
		return NewLeaf("code", s.Text), nil
	case LinkSpan:
		return NewLeaf("a", s.Text, Attr("href", s.URL)), nil
	case ImageSpan:
		return NewLeaf("img", "", Attr("src", s.URL), Attr("alt", s.Text)), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidSpanRole, s.Role)
}

// spansToHTML lowers every span, keeping their order.
func spansToHTML(spans []Span) ([]Node, error) {
	children := make([]Node, 0, len(spans))
	for _, s := range spans {
		leaf, err := SpanToHTML(s)
		if err != nil {
			return nil, err
		}
		children = append(children, leaf)
	}
	return children, nil
}
