// Package docs serves an interactive API reference for the OpenAPI document.
package docs

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/promptvault/pkg/module"
)

//go:embed index.html
var staticFS embed.FS

var tmpl = template.Must(template.ParseFS(staticFS, "index.html"))

// NewModule creates a module at prefix that renders the Scalar API
// reference for the document served at specURL.
func NewModule(prefix, title, specURL string) *module.Module {
	return module.New(prefix, buildRouter(title, specURL))
}

func buildRouter(title, specURL string) http.Handler {
	mux := http.NewServeMux()

	data := map[string]string{
		"Title":   title,
		"SpecURL": specURL,
	}

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		tmpl.Execute(w, data)
	})

	return mux
}
