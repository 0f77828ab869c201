// Package views holds the HTML templates and static assets, embedded into
// the binary.
package views

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed layout.html users posts tags static
var FS embed.FS

// Static returns the static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page parses the layout together with the named page template.
func Page(fsys fs.FS, page string) *template.Template {
	return template.Must(template.ParseFS(fsys, "layout.html", page))
}
