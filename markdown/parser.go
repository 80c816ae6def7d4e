package markdown

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Converter lowers Markdown documents to HTML trees.
// It is not modified after NewConverter returns, so it can be shared by
// several goroutines.
type Converter struct {
	log *zap.SugaredLogger

	// Code blocks with an info string are highlighted with this style
	highlight bool
	codeStyle string

	// Fenced d2 blocks are rendered to SVG, caching the result by content
	diagrams     bool
	diagramCache *sync.Map

	// Quote blocks use the blockquote tag instead of ol
	blockquotes bool
}

var defaultConverter = NewConverter()

// NewConverter returns a Converter configured with opts. With no options
// the output uses only the core lowering rules.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		log:          zap.NewNop().Sugar(),
		codeStyle:    defaultCodeStyle,
		diagramCache: &sync.Map{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MarkdownToDocument lowers a whole document with the default Converter.
func MarkdownToDocument(markdown string) (*ParentNode, error) {
	return defaultConverter.MarkdownToDocument(markdown)
}

// ToHTML lowers and renders a document with the default Converter.
func ToHTML(markdown string) (string, error) {
	return defaultConverter.ToHTML(markdown)
}

// ToHTML lowers and renders a document.
func (c *Converter) ToHTML(markdown string) (string, error) {
	doc, err := c.MarkdownToDocument(markdown)
	if err != nil {
		return "", err
	}
	return Render(doc)
}

// MarkdownToDocument splits the document in blocks and lowers each of them.
// The root is always a div containing one element per block, in order.
// The first block that fails aborts the conversion.
func (c *Converter) MarkdownToDocument(markdown string) (*ParentNode, error) {
	blocks := MarkdownToBlocks(markdown)

	root := NewParent("div", make([]Node, 0, len(blocks)))

	for _, block := range blocks {
		class := ClassifyBlock(block.Text)
		c.log.Debugw("block", "line", block.Line, "type", class.Type.String(), "level", class.Level)

		node, err := c.BlockToHTML(block.Text, class)
		if err != nil {
			return nil, &SyntaxError{
				Line: block.Line,
				Msg:  "lowering " + class.Type.String() + " block",
				Err:  err,
			}
		}
		root.AppendChild(node)
	}

	return root, nil
}

// BlockToHTML lowers one block of the given class.
func (c *Converter) BlockToHTML(text string, class BlockClass) (Node, error) {
	switch class.Type {
	case ParagraphBlock:
		return paragraphToHTML(text)
	case HeadingBlock:
		return headingToHTML(text, class.Level)
	case CodeBlock:
		return c.codeToHTML(text)
	case QuoteBlock:
		return c.quoteToHTML(text)
	case UnorderedListBlock:
		return listToHTML("ul", text, stripUnorderedPrefix)
	case OrderedListBlock:
		return listToHTML("ol", text, stripOrderedPrefix)
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidBlockType, class.Type)
}

// textToChildren tokenizes inline text and lowers the spans.
func textToChildren(text string) ([]Node, error) {
	spans, err := TextToSpans(text)
	if err != nil {
		return nil, err
	}
	return spansToHTML(spans)
}

func paragraphToHTML(text string) (Node, error) {
	children, err := textToChildren(strings.ReplaceAll(text, "\n", " "))
	if err != nil {
		return nil, err
	}
	return NewParent("p", children), nil
}

func headingToHTML(text string, level int) (Node, error) {
	// Trim the '#' run and the single blank after it
	_, rest := trimLeft(text, '#')
	rest = strings.TrimPrefix(rest, " ")

	children, err := textToChildren(rest)
	if err != nil {
		return nil, err
	}
	return NewParent(fmt.Sprintf("h%d", level), children), nil
}

// codeToHTML keeps the text strictly between the opening and closing fence
// lines, without any inline processing.
func (c *Converter) codeToHTML(text string) (Node, error) {
	first := strings.IndexByte(text, '\n')
	last := strings.LastIndexByte(text, '\n')
	if first == -1 {
		return nil, fmt.Errorf("%w: code block without fence lines", ErrInvalidBlockType)
	}

	var code string
	if last > first {
		code = text[first+1 : last]
	}

	// The language is the first word of the info string, like "go" in
	// "```go title"
	var lang string
	if words := strings.Fields(strings.TrimPrefix(text[:first], codeFence)); len(words) > 0 {
		lang = words[0]
	}

	if c.diagrams && lang == "d2" {
		return c.diagramToHTML(code)
	}
	if c.highlight && len(lang) > 0 {
		return c.highlightToHTML(lang, code)
	}

	codeNode := NewParent("code", []Node{NewLeaf("", code)})
	return NewParent("pre", []Node{codeNode}), nil
}

// quoteToHTML collapses the quote in a single line.
func (c *Converter) quoteToHTML(text string) (Node, error) {
	lines := mapLines(text, func(line string) string {
		line = strings.TrimPrefix(line, ">")
		return strings.TrimPrefix(line, " ")
	})

	children, err := textToChildren(strings.Join(lines, " "))
	if err != nil {
		return nil, err
	}

	tag := "ol"
	if c.blockquotes {
		tag = "blockquote"
	}
	return NewParent(tag, children), nil
}

func stripUnorderedPrefix(line string) string {
	return strings.TrimPrefix(line, "- ")
}

// stripOrderedPrefix removes everything up to the first ". " of the line.
// Item text containing an earlier ". " is cut there as well.
func stripOrderedPrefix(line string) string {
	if i := strings.Index(line, ". "); i != -1 {
		return line[i+2:]
	}
	return line
}

// listToHTML builds one li per line, each tokenized independently.
func listToHTML(tag string, text string, strip func(string) string) (Node, error) {
	lines := mapLines(text, strip)

	items := make([]Node, 0, len(lines))
	for _, line := range lines {
		children, err := textToChildren(line)
		if err != nil {
			return nil, err
		}
		items = append(items, NewParent("li", children))
	}

	return NewParent(tag, items), nil
}
