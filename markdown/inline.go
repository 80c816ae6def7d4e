package markdown

import (
	"regexp"
	"strings"
)

// These regexes detect the Markdown images and links.
// A link must not be preceded by '!', which is checked while scanning
// because RE2 has no lookbehind.
var reMarkdownImage = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^\(\)]*)\)`)
var reMarkdownLink = regexp.MustCompile(`\[([^\[\]]*)\]\(([^\(\)]*)\)`)

// The delimiters are applied in this order, before links and images.
var inlineDelimiters = []struct {
	delimiter string
	role      SpanRole
}{
	{"**", BoldSpan},
	{"_", ItalicSpan},
	{"`", CodeSpan},
}

// TextToSpans tokenizes a run of inline text.
// Empty text produces no spans.
func TextToSpans(text string) ([]Span, error) {
	spans := []Span{{Role: PlainSpan, Text: text}}

	var err error
	for _, d := range inlineDelimiters {
		spans, err = SplitSpansDelimiter(spans, d.delimiter, d.role)
		if err != nil {
			return nil, err
		}
	}

	spans = SplitSpansLink(spans)
	spans = SplitSpansImage(spans)

	return spans, nil
}

// SplitSpansDelimiter splits every plain span on delimiter. Text between a
// pair of delimiters gets role; the rest stays plain. Empty segments are
// dropped and spans that are not plain are passed through.
func SplitSpansDelimiter(old []Span, delimiter string, role SpanRole) ([]Span, error) {
	spans := make([]Span, 0, len(old))

	for _, s := range old {
		if s.Role != PlainSpan {
			spans = append(spans, s)
			continue
		}

		segments := strings.Split(s.Text, delimiter)
		if len(segments)%2 == 0 {
			return nil, &DelimiterError{Delimiter: delimiter}
		}

		for i, segment := range segments {
			if len(segment) == 0 {
				continue
			}
			if i%2 == 1 {
				spans = append(spans, Span{Role: role, Text: segment})
			} else {
				spans = append(spans, Span{Role: PlainSpan, Text: segment})
			}
		}
	}

	return spans, nil
}

// A MarkdownLink is the label and destination of a link or image.
type MarkdownLink struct {
	Text string
	URL  string
}

// ExtractMarkdownImages returns the alt text and URL of every ![alt](url) in text.
func ExtractMarkdownImages(text string) []MarkdownLink {
	return toMarkdownLinks(text, findImages(text))
}

// ExtractMarkdownLinks returns the label and URL of every [label](url) in
// text which is not part of an image.
func ExtractMarkdownLinks(text string) []MarkdownLink {
	return toMarkdownLinks(text, findLinks(text))
}

// SplitSpansLink extracts links from the plain spans.
func SplitSpansLink(old []Span) []Span {
	return splitSpansPattern(old, LinkSpan, findLinks)
}

// SplitSpansImage extracts images from the plain spans.
func SplitSpansImage(old []Span) []Span {
	return splitSpansPattern(old, ImageSpan, findImages)
}

// splitSpansPattern scans the plain spans left to right with find, and
// replaces each match with a span of the given role, keeping the text
// around the matches as plain spans.
func splitSpansPattern(old []Span, role SpanRole, find func(string) [][]int) []Span {
	spans := make([]Span, 0, len(old))

	for _, s := range old {
		if s.Role != PlainSpan {
			spans = append(spans, s)
			continue
		}

		matches := find(s.Text)
		if len(matches) == 0 {
			spans = append(spans, s)
			continue
		}

		rest := 0
		for _, m := range matches {
			if m[0] > rest {
				spans = append(spans, Span{Role: PlainSpan, Text: s.Text[rest:m[0]]})
			}
			spans = append(spans, Span{Role: role, Text: s.Text[m[2]:m[3]], URL: s.Text[m[4]:m[5]]})
			rest = m[1]
		}

		if rest < len(s.Text) {
			spans = append(spans, Span{Role: PlainSpan, Text: s.Text[rest:]})
		}
	}

	return spans
}

// findImages returns the submatch indexes of every image in text.
func findImages(text string) [][]int {
	return reMarkdownImage.FindAllStringSubmatchIndex(text, -1)
}

// findLinks returns the submatch indexes of every link in text, skipping
// candidates which are the tail of an image.
func findLinks(text string) [][]int {
	var found [][]int

	pos := 0
	for pos < len(text) {
		m := reMarkdownLink.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		for i := range m {
			m[i] += pos
		}

		// Try again just after the '[' of an image
		if m[0] > 0 && text[m[0]-1] == '!' {
			pos = m[0] + 1
			continue
		}

		found = append(found, m)
		pos = m[1]
	}

	return found
}

func toMarkdownLinks(text string, matches [][]int) []MarkdownLink {
	links := make([]MarkdownLink, 0, len(matches))
	for _, m := range matches {
		links = append(links, MarkdownLink{Text: text[m[2]:m[3]], URL: text[m[4]:m[5]]})
	}
	return links
}
