package markdown

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightToHTML renders code with chroma. The formatter output is a run
// of styled spans which goes raw inside the usual pre and code elements.
func (c *Converter) highlightToHTML(lang string, code string) (Node, error) {

	// Determine lexer.
	l := lexers.Get(lang)
	if l == nil {
		l = lexers.Analyse(code)
	}
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	s := styles.Get(c.codeStyle)

	f := hlhtml.New(hlhtml.Standalone(false), hlhtml.PreventSurroundingPre(true))

	it, err := l.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("tokenising %s code: %w", lang, err)
	}

	rb := &bytes.Buffer{}
	if err := f.Format(rb, s, it); err != nil {
		return nil, fmt.Errorf("formatting %s code: %w", lang, err)
	}

	c.log.Debugw("highlighted code", "lang", lang, "lexer", l.Config().Name, "style", c.codeStyle)

	codeNode := NewParent("code", []Node{NewLeaf("", rb.String())}, Attr("class", "language-"+lang))
	return NewParent("pre", []Node{codeNode}), nil
}
