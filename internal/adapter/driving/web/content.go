package web

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	vm "github.com/ericfisherdev/affirm/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/affirm/internal/format"
)

// ErrContentNotFound is returned by loadContent for unknown or malformed slugs.
var ErrContentNotFound = errors.New("content page not found")

// loadContent reads content/<slug>.md and renders it. The page title is the
// first level-one heading, or the capitalized slug when there is none.
func loadContent(slug string) (vm.ContentViewModel, error) {
	if !isValidSlug(slug) {
		return vm.ContentViewModel{}, ErrContentNotFound
	}

	src, err := fs.ReadFile(contentFS, "content/"+slug+".md")
	if errors.Is(err, fs.ErrNotExist) {
		return vm.ContentViewModel{}, ErrContentNotFound
	}
	if err != nil {
		return vm.ContentViewModel{}, fmt.Errorf("read content %q: %w", slug, err)
	}

	page, err := renderPage(src)
	if err != nil {
		return vm.ContentViewModel{}, fmt.Errorf("content %q: %w", slug, err)
	}

	title := page.Title
	if title == "" {
		title = format.Capitalize(strings.ReplaceAll(slug, "-", " "))
	}

	return vm.ContentViewModel{Slug: slug, Title: title, HTML: page.HTML}, nil
}

// isValidSlug accepts lowercase letters, digits and single hyphens.
func isValidSlug(slug string) bool {
	if slug == "" || strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") || strings.Contains(slug, "--") {
		return false
	}
	for _, ch := range slug {
		if !(ch >= 'a' && ch <= 'z') && !(ch >= '0' && ch <= '9') && ch != '-' {
			return false
		}
	}
	return true
}
