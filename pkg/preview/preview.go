// Package preview renders documents to HTML for the live preview pane.
// Output is recomputed from block text on every call; nothing is cached.
package preview

import (
	"bytes"
	"fmt"
	"html"

	"docs-editor/pkg/doctree"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer turns document content into HTML
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer returns a renderer with GitHub flavoured markdown enabled.
// Raw HTML inside text blocks is passed through.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

// RenderDocument renders every content block of doc in order.
func (r *Renderer) RenderDocument(doc *doctree.Document) (string, error) {
	var buf bytes.Buffer
	for i, block := range doc.Content {
		if err := r.renderBlock(&buf, block); err != nil {
			return "", fmt.Errorf("render block %d: %w", i, err)
		}
	}
	return buf.String(), nil
}

// RenderText renders a single markdown source.
func (r *Renderer) RenderText(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) renderBlock(buf *bytes.Buffer, block doctree.ContentBlock) error {
	switch block.Kind {
	case doctree.KindText:
		return r.md.Convert([]byte(block.Value), buf)
	case doctree.KindCodeGroup:
		writeCodeGroup(buf, block.Entries)
		return nil
	default:
		return fmt.Errorf("%w: %q", doctree.ErrBlockKind, block.Kind)
	}
}

// writeCodeGroup emits one tab per language; the first tab is active.
func writeCodeGroup(buf *bytes.Buffer, entries []doctree.CodeEntry) {
	buf.WriteString(`<div class="code-group">` + "\n")
	buf.WriteString(`<div class="code-group-tabs">`)
	for i, e := range entries {
		class := "code-group-tab"
		if i == 0 {
			class += " active"
		}
		fmt.Fprintf(buf, `<button class="%s" data-index="%d">%s</button>`, class, i, html.EscapeString(e.Language))
	}
	buf.WriteString("</div>\n")
	for i, e := range entries {
		hidden := ""
		if i != 0 {
			hidden = " hidden"
		}
		fmt.Fprintf(buf, `<pre data-index="%d"%s><code class="language-%s">%s</code></pre>`+"\n",
			i, hidden, html.EscapeString(e.Language), html.EscapeString(e.Code))
	}
	buf.WriteString("</div>\n")
}
