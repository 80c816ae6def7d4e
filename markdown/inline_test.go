package markdown

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(text string) Span  { return Span{Role: PlainSpan, Text: text} }
func bold(text string) Span   { return Span{Role: BoldSpan, Text: text} }
func italic(text string) Span { return Span{Role: ItalicSpan, Text: text} }
func code(text string) Span   { return Span{Role: CodeSpan, Text: text} }
func link(text, url string) Span {
	return Span{Role: LinkSpan, Text: text, URL: url}
}
func image(text, url string) Span {
	return Span{Role: ImageSpan, Text: text, URL: url}
}

func TestSplitSpansDelimiter(t *testing.T) {
	tests := []struct {
		name      string
		input     []Span
		delimiter string
		role      SpanRole
		want      []Span
	}{
		{
			name:      "Bold in the middle",
			input:     []Span{plain("This is text with a **bolded phrase** in the middle")},
			delimiter: "**",
			role:      BoldSpan,
			want:      []Span{plain("This is text with a "), bold("bolded phrase"), plain(" in the middle")},
		},
		{
			name:      "Bold at the start",
			input:     []Span{plain("**bold** at start")},
			delimiter: "**",
			role:      BoldSpan,
			want:      []Span{bold("bold"), plain(" at start")},
		},
		{
			name:      "Two bold runs",
			input:     []Span{plain("**one** and **two**")},
			delimiter: "**",
			role:      BoldSpan,
			want:      []Span{bold("one"), plain(" and "), bold("two")},
		},
		{
			name:      "Italic",
			input:     []Span{plain("an _italic_ word")},
			delimiter: "_",
			role:      ItalicSpan,
			want:      []Span{plain("an "), italic("italic"), plain(" word")},
		},
		{
			name:      "Code",
			input:     []Span{plain("`code` and more")},
			delimiter: "`",
			role:      CodeSpan,
			want:      []Span{code("code"), plain(" and more")},
		},
		{
			name:      "Empty pair is dropped",
			input:     []Span{plain("a ____ b")},
			delimiter: "__",
			role:      ItalicSpan,
			want:      []Span{plain("a "), plain(" b")},
		},
		{
			name:      "Spans that are not plain pass through",
			input:     []Span{bold("keep_this_one"), plain("x")},
			delimiter: "_",
			role:      ItalicSpan,
			want:      []Span{bold("keep_this_one"), plain("x")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitSpansDelimiter(tt.input, tt.delimiter, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitSpansDelimiter_Unbalanced(t *testing.T) {
	for _, d := range []string{"**", "_", "`"} {
		t.Run(d, func(t *testing.T) {
			_, err := SplitSpansDelimiter([]Span{plain("a " + d + "b" + d + " c " + d + "d")}, d, BoldSpan)
			require.ErrorIs(t, err, ErrUnbalancedDelimiter)

			var de *DelimiterError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, d, de.Delimiter)
			assert.Contains(t, err.Error(), d)
		})
	}
}

func TestTextToSpans(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Span
	}{
		{
			name: "Bold phrase",
			text: "This is text with a **bolded phrase** in the middle",
			want: []Span{plain("This is text with a "), bold("bolded phrase"), plain(" in the middle")},
		},
		{
			name: "Image at the beginning",
			text: "![image](https://x/y.png) an image at the beginning..",
			want: []Span{image("image", "https://x/y.png"), plain(" an image at the beginning..")},
		},
		{
			name: "Everything",
			text: "This is **text** with an _italic_ word and a `code block` and an ![obi wan image](https://i.imgur.com/fJRm4Vk.jpeg) and a [link](https://boot.dev)",
			want: []Span{
				plain("This is "),
				bold("text"),
				plain(" with an "),
				italic("italic"),
				plain(" word and a "),
				code("code block"),
				plain(" and an "),
				image("obi wan image", "https://i.imgur.com/fJRm4Vk.jpeg"),
				plain(" and a "),
				link("link", "https://boot.dev"),
			},
		},
		{
			name: "Link inside bold is not extracted",
			text: "**[a](b)** and [c](d)",
			want: []Span{bold("[a](b)"), plain(" and "), link("c", "d")},
		},
		{
			name: "Link and image with the same text",
			text: "![a](b) then [a](b)",
			want: []Span{image("a", "b"), plain(" then "), link("a", "b")},
		},
		{
			name: "Unterminated link is plain text",
			text: "a [link](without end",
			want: []Span{plain("a [link](without end")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TextToSpans(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextToSpans_NoDelimiters(t *testing.T) {
	for _, text := range []string{
		"plain text",
		"  leading and trailing  ",
		"punctuation, like: this! (and this) [and this].",
		"unicode: ñandú, 日本語",
		"single * star",
	} {
		got, err := TextToSpans(text)
		require.NoError(t, err)
		assert.Equal(t, []Span{plain(text)}, got, text)
	}
}

func TestTextToSpans_Empty(t *testing.T) {
	got, err := TextToSpans("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTextToSpans_Unbalanced(t *testing.T) {
	tests := []struct {
		text      string
		delimiter string
	}{
		{"this is **broken", "**"},
		{"snake_case", "_"},
		{"a `b", "`"},
		{"**ok** but _not", "_"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := TextToSpans(tt.text)
			var de *DelimiterError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.delimiter, de.Delimiter)
		})
	}
}

func TestExtractMarkdownImages(t *testing.T) {
	got := ExtractMarkdownImages("This is text with a ![rick roll](https://i.imgur.com/aKaOqIh.gif) and ![obi wan](https://i.imgur.com/fJRm4Vk.jpeg)")
	assert.Equal(t, []MarkdownLink{
		{Text: "rick roll", URL: "https://i.imgur.com/aKaOqIh.gif"},
		{Text: "obi wan", URL: "https://i.imgur.com/fJRm4Vk.jpeg"},
	}, got)
}

func TestExtractMarkdownLinks(t *testing.T) {
	got := ExtractMarkdownLinks("This is text with a link [to boot dev](https://www.boot.dev) and [to youtube](https://www.youtube.com/@bootdotdev)")
	assert.Equal(t, []MarkdownLink{
		{Text: "to boot dev", URL: "https://www.boot.dev"},
		{Text: "to youtube", URL: "https://www.youtube.com/@bootdotdev"},
	}, got)

	// Images are not links
	got = ExtractMarkdownLinks("![img](a.png) and [l](b)")
	assert.Equal(t, []MarkdownLink{{Text: "l", URL: "b"}}, got)

	assert.Empty(t, ExtractMarkdownLinks("no links [here] (either)"))
}

func TestSplitSpansLink(t *testing.T) {
	got := SplitSpansLink([]Span{
		plain("This is text with a [link](https://www.example.com) and [another link](https://blog.example.com) with text that follows"),
		bold("[not](touched)"),
	})
	assert.Equal(t, []Span{
		plain("This is text with a "),
		link("link", "https://www.example.com"),
		plain(" and "),
		link("another link", "https://blog.example.com"),
		plain(" with text that follows"),
		bold("[not](touched)"),
	}, got)
}

func TestSplitSpansImage(t *testing.T) {
	got := SplitSpansImage([]Span{
		plain("This is text with an ![image](https://i.imgur.com/zjjcJKZ.png) and another ![second image](https://i.imgur.com/3elNhQu.png)"),
	})
	assert.Equal(t, []Span{
		plain("This is text with an "),
		image("image", "https://i.imgur.com/zjjcJKZ.png"),
		plain(" and another "),
		image("second image", "https://i.imgur.com/3elNhQu.png"),
	}, got)
}

func TestSpan_String(t *testing.T) {
	assert.Equal(t, `Bold("x")`, bold("x").String())
	assert.Equal(t, `Link("x", "u")`, link("x", "u").String())
	assert.Equal(t, "Invalid(42)", SpanRole(42).String())
	assert.Equal(t, plain("a"), plain("a"))
	assert.NotEqual(t, link("a", "u"), link("a", ""))
}
