package markdown

import (
	"context"
	"crypto/md5"
	"fmt"

	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2dagrelayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"
	"oss.terrastruct.com/d2/lib/textmeasure"
)

// diagramToHTML renders a D2 diagram to SVG with the embedded D2 processor.
// The same source is only compiled once per Converter.
func (c *Converter) diagramToHTML(source string) (Node, error) {

	// To enable caching, we calculate the hash of the diagram input data
	hh := fmt.Sprintf("%x", md5.Sum([]byte(source)))

	svg, ok := c.diagramCache.Load(hh)
	if !ok {
		body, err := renderD2(source)
		if err != nil {
			return nil, err
		}
		c.log.Debugw("rendered diagram", "hash", hh, "bytes", len(body))
		svg, _ = c.diagramCache.LoadOrStore(hh, string(body))
	}

	return NewParent("figure", []Node{NewLeaf("", svg.(string))}, Attr("class", "diagram")), nil
}

func renderD2(source string) ([]byte, error) {
	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return nil, fmt.Errorf("creating d2 ruler: %w", err)
	}

	defaultLayout := func(ctx context.Context, g *d2graph.Graph) error {
		return d2dagrelayout.Layout(ctx, g, nil)
	}
	diagram, _, err := d2lib.Compile(context.Background(), source, &d2lib.CompileOptions{
		Layout: defaultLayout,
		Ruler:  ruler,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling d2 diagram: %w", err)
	}

	body, err := d2svg.Render(diagram, &d2svg.RenderOpts{
		Pad:     d2svg.DEFAULT_PADDING,
		ThemeID: d2themescatalog.NeutralDefault.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering d2 diagram: %w", err)
	}

	return body, nil
}
