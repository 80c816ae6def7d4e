package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Highlighting(t *testing.T) {
	c := NewConverter(WithHighlighting(""))

	got, err := c.ToHTML("```go\nfunc main() {}\n```")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, `<div><pre><code class="language-go">`), got)
	assert.True(t, strings.HasSuffix(got, "</code></pre></div>"), got)
	assert.Contains(t, got, "<span")
	assert.Contains(t, got, "main")
}

func TestConverter_HighlightingUsesFirstInfoWord(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"Trailing words", "```go title=\"main.go\"\nfunc main() {}\n```"},
		{"Extra spaces", "```  go   linenos\nfunc main() {}\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewConverter(WithHighlighting("")).ToHTML(tt.doc)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(got, `<div><pre><code class="language-go">`), got)
			assert.NotContains(t, got, "title")
			assert.NotContains(t, got, "linenos")
		})
	}
}

func TestConverter_HighlightingNeedsInfoString(t *testing.T) {
	c := NewConverter(WithHighlighting("monokai"))

	got, err := c.ToHTML("```\nx := 1\n```")
	require.NoError(t, err)
	assert.Equal(t, "<div><pre><code>x := 1</code></pre></div>", got)
}

func TestConverter_Diagrams(t *testing.T) {
	if testing.Short() {
		t.Skip("d2 layout is slow")
	}

	c := NewConverter(WithDiagrams())
	doc := "```d2\nclient -> server: request\n```"

	got, err := c.ToHTML(doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, `<div><figure class="diagram">`), got)
	assert.Contains(t, got, "<svg")

	// The second conversion is served from the cache
	again, err := c.ToHTML(doc)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestConverter_DiagramsOnlyForD2(t *testing.T) {
	c := NewConverter(WithDiagrams())

	got, err := c.ToHTML("```mermaid\ngraph TD\n```")
	require.NoError(t, err)
	assert.Equal(t, "<div><pre><code>graph TD</code></pre></div>", got)
}
