package console

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates renders the console's server-side pages. Every page shares the
// base layout; the page body is selected by name.
type Templates struct {
	pages map[string]*template.Template
}

var pageNames = []string{"list", "form", "confirm", "assignments", "assignment_form"}

func NewTemplates() (*Templates, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/base.tmpl", "templates/"+name+".tmpl")
		if err != nil {
			return nil, err
		}
		pages[name] = t
	}
	return &Templates{pages: pages}, nil
}

func (t *Templates) Render(w io.Writer, page string, data interface{}) error {
	return t.pages[page].ExecuteTemplate(w, "base", data)
}
