package markdown

import (
	"go.uber.org/zap"
)

const defaultCodeStyle = "github"

// An Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger used to trace block processing.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.log = logger
		}
	}
}

// WithHighlighting highlights code blocks whose opening fence names a
// language, using the given chroma style. An empty style selects "github".
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.highlight = true
		if len(style) > 0 {
			c.codeStyle = style
		}
	}
}

// WithDiagrams renders code blocks fenced with "```d2" as inline SVG.
func WithDiagrams() Option {
	return func(c *Converter) {
		c.diagrams = true
	}
}

// WithBlockquotes renders quote blocks with the blockquote tag.
// Without it quote blocks are rendered with the ol tag.
func WithBlockquotes() Option {
	return func(c *Converter) {
		c.blockquotes = true
	}
}
