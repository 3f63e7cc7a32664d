// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from application types.
package viewmodel

// LayoutViewModel holds values shared by every page's chrome.
type LayoutViewModel struct {
	Title       string
	AppName     string
	Version     string
	Environment string
}

// HomeViewModel holds presentation-ready data for the landing page.
type HomeViewModel struct {
	AppName  string
	Greeting string
	Version  string
	// ProvidedKeys lists the values registered by startup plugins.
	ProvidedKeys []string
}

// ContentViewModel holds a rendered markdown content page.
type ContentViewModel struct {
	Slug  string
	Title string
	// HTML is sanitized and safe to emit unescaped.
	HTML string
}

// NavLink is one entry in the site navigation.
type NavLink struct {
	Label  string
	Path   string
	Active bool
}
