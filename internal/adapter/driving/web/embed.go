package web

import "embed"

//go:generate go run github.com/ericfisherdev/affirm/cmd/vendorjs -url https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js -out static/htmx.min.js

// StaticFS holds the embedded static assets: the stylesheet and the vendored
// htmx script the layout loads from /static.
//
//go:embed static/*
var StaticFS embed.FS

// contentFS holds the markdown content pages served at /{slug}.
//
//go:embed content/*.md
var contentFS embed.FS
