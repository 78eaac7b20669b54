package labels

import (
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Renderer executes the ZPL label template against a flat field map.
// text/template is used rather than html/template: ZPL is not markup and
// must not be entity-escaped.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the store's template once; Render reuses it.
func NewRenderer(store *TemplateStore) (*Renderer, error) {
	tmpl, err := template.New("label").
		Option("missingkey=error").
		Funcs(template.FuncMap{
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
			"title": titleCase,
			"trim":  strings.TrimSpace,
		}).
		Parse(store.Content())
	if err != nil {
		return nil, fmt.Errorf("labels: parsing template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces one label document from the field map.
func (r *Renderer) Render(fields map[string]string) (string, error) {
	var b strings.Builder
	if err := r.tmpl.Execute(&b, fields); err != nil {
		return "", fmt.Errorf("labels: rendering template: %w", err)
	}
	return b.String(), nil
}

// titleCase converts a string to title case with Unicode-aware rules.
func titleCase(s string) string {
	return cases.Title(language.Spanish).String(s)
}
