package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadContent_About(t *testing.T) {
	page, err := loadContent("about")

	require.NoError(t, err)
	assert.Equal(t, "about", page.Slug)
	assert.Equal(t, "About Affirm", page.Title)
	assert.Contains(t, page.HTML, "<h1")
	assert.Contains(t, page.HTML, "<strong>templ</strong>")
}

func TestLoadContent_CodeBlock(t *testing.T) {
	page, err := loadContent("getting-started")

	require.NoError(t, err)
	assert.Equal(t, "Getting started", page.Title)
	assert.Contains(t, page.HTML, "affirmctl meta set site_title Affirm")
}

func TestLoadContent_NotFound(t *testing.T) {
	for _, slug := range []string{"missing", "", "../secrets", "About", "a--b", "-lead", "trail-", "about.md"} {
		_, err := loadContent(slug)
		assert.ErrorIs(t, err, ErrContentNotFound, "slug %q", slug)
	}
}

func TestRenderPage_Title(t *testing.T) {
	page, err := renderPage([]byte("intro\n\n## second\n\n# The *real* title\n\n# later"))

	require.NoError(t, err)
	assert.Equal(t, "The real title", page.Title)
	assert.Contains(t, page.HTML, `<h1 id="the-real-title">`)
}

func TestRenderPage_NoTitle(t *testing.T) {
	page, err := renderPage([]byte("## only second level"))

	require.NoError(t, err)
	assert.Empty(t, page.Title)
	assert.Contains(t, page.HTML, `<h2 id="only-second-level">`)
}
