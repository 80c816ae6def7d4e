package markdown

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToBlocks(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     []Block
	}{
		{
			name: "Paragraphs and list",
			markdown: "This is **bolded** paragraph\n" +
				"\n" +
				"This is another paragraph with _italic_ text and `code` here\n" +
				"This is the same paragraph on a new line\n" +
				"\n" +
				"- This is a list\n" +
				"- with items\n",
			want: []Block{
				{Text: "This is **bolded** paragraph", Line: 1},
				{Text: "This is another paragraph with _italic_ text and `code` here\nThis is the same paragraph on a new line", Line: 3},
				{Text: "- This is a list\n- with items", Line: 6},
			},
		},
		{
			name:     "Excessive blank lines",
			markdown: "\n\n\n  first  \n\n\n\nsecond\n\n",
			want: []Block{
				{Text: "first", Line: 4},
				{Text: "second", Line: 8},
			},
		},
		{
			name:     "Lines with blanks do not separate blocks",
			markdown: "a\n   \nb",
			want:     []Block{{Text: "a\n   \nb", Line: 1}},
		},
		{
			name:     "Leading blank content line",
			markdown: "   \nfoo\n\nbar",
			want: []Block{
				{Text: "foo", Line: 2},
				{Text: "bar", Line: 4},
			},
		},
		{
			name:     "Empty document",
			markdown: "",
			want:     nil,
		},
		{
			name:     "Only whitespace",
			markdown: "\n \n\t\n\n",
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkdownToBlocks(tt.markdown))
		})
	}
}

func TestClassifyBlock(t *testing.T) {
	tests := []struct {
		block string
		want  BlockClass
	}{
		{"# heading", BlockClass{Type: HeadingBlock, Level: 1}},
		{"### heading", BlockClass{Type: HeadingBlock, Level: 3}},
		{"###### heading", BlockClass{Type: HeadingBlock, Level: 6}},
		{"####### heading", BlockClass{Type: ParagraphBlock}},
		{"#heading", BlockClass{Type: ParagraphBlock}},
		{"# heading\nsecond line", BlockClass{Type: HeadingBlock, Level: 1}},
		{"text\n# heading", BlockClass{Type: ParagraphBlock}},
		{"```\ncode\n```", BlockClass{Type: CodeBlock}},
		{"```go\nfunc main() {}\n```", BlockClass{Type: CodeBlock}},
		{"```code```", BlockClass{Type: ParagraphBlock}},
		{"```\ncode", BlockClass{Type: ParagraphBlock}},
		{"> quote\n> more quote", BlockClass{Type: QuoteBlock}},
		{">a\n>b", BlockClass{Type: QuoteBlock}},
		{"> a\nb", BlockClass{Type: ParagraphBlock}},
		{"- list\n- items", BlockClass{Type: UnorderedListBlock}},
		{"- list\nitems", BlockClass{Type: ParagraphBlock}},
		{"-list", BlockClass{Type: ParagraphBlock}},
		{"1. list\n2. items\n3. more", BlockClass{Type: OrderedListBlock}},
		{"1. list\n3. items", BlockClass{Type: ParagraphBlock}},
		{"2. list", BlockClass{Type: ParagraphBlock}},
		{"1.list", BlockClass{Type: ParagraphBlock}},
		{"paragraph", BlockClass{Type: ParagraphBlock}},
		{"", BlockClass{Type: ParagraphBlock}},
	}
	for _, tt := range tests {
		t.Run(tt.block, func(t *testing.T) {
			got := ClassifyBlock(tt.block)
			assert.Equal(t, tt.want, got)

			// Classification depends only on the text
			assert.Equal(t, got, ClassifyBlock(tt.block))
		})
	}
}

func TestClassifyBlock_LongOrderedList(t *testing.T) {
	var block string
	for i := 1; i <= 12; i++ {
		if i > 1 {
			block += "\n"
		}
		block += strconv.Itoa(i) + ". item"
	}
	assert.Equal(t, BlockClass{Type: OrderedListBlock}, ClassifyBlock(block))
}

func TestBlockType_String(t *testing.T) {
	assert.Equal(t, "Paragraph", ParagraphBlock.String())
	assert.Equal(t, "Heading", HeadingBlock.String())
	assert.Equal(t, "Code", CodeBlock.String())
	assert.Equal(t, "Quote", QuoteBlock.String())
	assert.Equal(t, "UnorderedList", UnorderedListBlock.String())
	assert.Equal(t, "OrderedList", OrderedListBlock.String())
	assert.Equal(t, "Invalid(99)", BlockType(99).String())
}
