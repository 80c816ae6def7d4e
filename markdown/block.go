package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

const codeFence = "```"

// A BlockType is the structural type of a block of text.
type BlockType uint32

const (
	ParagraphBlock BlockType = iota
	HeadingBlock
	CodeBlock
	QuoteBlock
	UnorderedListBlock
	OrderedListBlock
)

// String returns a string representation of the BlockType.
func (t BlockType) String() string {
	switch t {
	case ParagraphBlock:
		return "Paragraph"
	case HeadingBlock:
		return "Heading"
	case CodeBlock:
		return "Code"
	case QuoteBlock:
		return "Quote"
	case UnorderedListBlock:
		return "UnorderedList"
	case OrderedListBlock:
		return "OrderedList"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// BlockClass is the result of classifying a block.
// Level is the heading level (1 to 6) and zero for other types.
type BlockClass struct {
	Type  BlockType
	Level int
}

// A Block is a maximal run of non-blank lines of the document, trimmed.
// Line is the 1-based line of the source where the block starts.
type Block struct {
	Text string
	Line int
}

// MarkdownToBlocks splits a document on blank lines. A blank line is a line
// with no characters at all; several of them in a row count as one
// separator. Blocks are trimmed and empty ones dropped.
func MarkdownToBlocks(markdown string) []Block {
	var blocks []Block

	lines := strings.Split(markdown, "\n")

	start := 0
	flush := func(end int) {
		text := strings.TrimSpace(strings.Join(lines[start:end], "\n"))
		if len(text) == 0 {
			return
		}

		// The block starts at its first line with some content
		lineNum := start + 1
		for _, line := range lines[start:end] {
			if len(strings.TrimSpace(line)) > 0 {
				break
			}
			lineNum++
		}

		blocks = append(blocks, Block{Text: text, Line: lineNum})
	}

	for i, line := range lines {
		if len(line) == 0 {
			flush(i)
			start = i + 1
		}
	}
	flush(len(lines))

	return blocks
}

// A heading is anchored at the start of the whole block, not per line
var reHeading = regexp.MustCompile(`^#{1,6} `)

// ClassifyBlock determines the type of a block from its shape.
// The first matching rule wins and anything else is a paragraph.
func ClassifyBlock(text string) BlockClass {
	if reHeading.MatchString(text) {
		level, _ := trimLeft(text, '#')
		return BlockClass{Type: HeadingBlock, Level: level}
	}

	lines := strings.Split(text, "\n")

	// A single line starting and ending with a fence is inline code, not a block
	if len(lines) > 1 && strings.HasPrefix(text, codeFence) && strings.HasSuffix(text, codeFence) {
		return BlockClass{Type: CodeBlock}
	}

	if allHavePrefix(lines, ">") {
		return BlockClass{Type: QuoteBlock}
	}

	if allHavePrefix(lines, "- ") {
		return BlockClass{Type: UnorderedListBlock}
	}

	for i, line := range lines {
		if !strings.HasPrefix(line, strconv.Itoa(i+1)+". ") {
			return BlockClass{Type: ParagraphBlock}
		}
	}
	return BlockClass{Type: OrderedListBlock}
}
