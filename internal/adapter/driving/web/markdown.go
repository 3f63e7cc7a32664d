package web

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

var (
	mdRenderer    = newMarkdown()
	htmlSanitizer = newSanitizer()
)

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

// newSanitizer keeps heading ids so in-page anchors survive sanitizing.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return p
}

// renderedPage is a markdown document converted to sanitized HTML.
type renderedPage struct {
	// Title is the text of the first level-one heading, or "" if there is none.
	Title string
	HTML  string
}

// renderPage parses src once, pulls the title from the syntax tree and
// renders the sanitized body.
func renderPage(src []byte) (renderedPage, error) {
	doc := mdRenderer.Parser().Parse(text.NewReader(src))

	var page renderedPage
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering && h.Level == 1 {
			page.Title = string(h.Text(src))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return renderedPage{}, fmt.Errorf("walk markdown: %w", err)
	}

	var buf bytes.Buffer
	if err := mdRenderer.Renderer().Render(&buf, src, doc); err != nil {
		return renderedPage{}, fmt.Errorf("render markdown: %w", err)
	}

	page.HTML = htmlSanitizer.Sanitize(buf.String())
	return page, nil
}
