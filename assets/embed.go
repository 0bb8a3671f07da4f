package assets

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates static
var assetsFS embed.FS

const pageTemplate = "templates/page.html.tmpl"

// PageTemplate parses the workflows page served by the web front end.
func PageTemplate() (*template.Template, error) {
	return template.ParseFS(assetsFS, pageTemplate)
}

// StaticFS holds the files served under /static/, rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(assetsFS, "static")
	if err != nil {
		// Only fails on an invalid path, and "static" is fixed.
		panic(err)
	}
	return sub
}
