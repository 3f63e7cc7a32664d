package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, src string) renderedPage {
	t.Helper()
	page, err := renderPage([]byte(src))
	require.NoError(t, err)
	return page
}

func TestRenderPage_Empty(t *testing.T) {
	page := render(t, "")

	assert.Empty(t, page.Title)
	assert.Empty(t, page.HTML)
}

func TestRenderPage_Inline(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "bold", src: "**bold text**", want: "<strong>bold text</strong>"},
		{name: "inline code", src: "run `affirmctl meta list`", want: "<code>affirmctl meta list</code>"},
		{name: "strikethrough", src: "~~gone~~", want: "<del>gone</del>"},
		{name: "autolink", src: "see https://developers.cloudflare.com/d1/", want: `<a href="https://developers.cloudflare.com/d1/"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, render(t, tt.src).HTML, tt.want)
		})
	}
}

func TestRenderPage_FencedCode(t *testing.T) {
	page := render(t, "```sh\naffirmctl migrate apply -remote\n```")

	assert.Contains(t, page.HTML, "<pre><code")
	assert.Contains(t, page.HTML, "affirmctl migrate apply -remote")
}

func TestRenderPage_Link(t *testing.T) {
	page := render(t, "[about](/about)")

	assert.Contains(t, page.HTML, `href="/about"`)
	assert.Contains(t, page.HTML, "about</a>")
}

func TestRenderPage_Table(t *testing.T) {
	page := render(t, "| env | db |\n|---|---|\n| staging | affirm-staging |")

	assert.Contains(t, page.HTML, "<table>")
	assert.Contains(t, page.HTML, "<td>affirm-staging</td>")
}

func TestRenderPage_StripsScriptsAndHandlers(t *testing.T) {
	page := render(t, "# Hi\n\n<script>alert(\"xss\")</script>\n\n<img src=\"/x.png\" onerror=\"alert(1)\">")

	assert.NotContains(t, page.HTML, "<script")
	assert.NotContains(t, page.HTML, "onerror")
	assert.Equal(t, "Hi", page.Title)
}

func TestRenderPage_StripsJavascriptLinks(t *testing.T) {
	page := render(t, "[click](javascript:alert(1))")

	assert.NotContains(t, page.HTML, "javascript:")
}
