// Package views holds the embedded HTML templates of the rendered pages.
package views

import (
	"embed"
	"html/template"
	"time"

	"github.com/yukikurage/todo-tracker/internal/i18n"
	"github.com/yukikurage/todo-tracker/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Load parses every page template with the helper functions bound to catalog.
func Load(catalog *i18n.Catalog) (*template.Template, error) {
	return template.New("").Funcs(FuncMap(catalog)).ParseFS(templateFS, "templates/*.html")
}

// FuncMap returns the template helpers.
func FuncMap(catalog *i18n.Catalog) template.FuncMap {
	return template.FuncMap{
		"t":    catalog.T,
		"date": utils.FormatDate,
		"datetime": func(t time.Time) string {
			return t.UTC().Format("2006-01-02 15:04")
		},
		"deref": func(id *uint64) uint64 {
			if id == nil {
				return 0
			}
			return *id
		},
	}
}
