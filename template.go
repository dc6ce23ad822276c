package routedoc

import (
	"html/template"
	"io"
)

// HTMLEngine is a TemplateEngine backed by html/template. The view name
// selects the template to execute.
type HTMLEngine struct {
	tmpl *template.Template
}

// NewHTMLEngine wraps a parsed template set.
func NewHTMLEngine(t *template.Template) *HTMLEngine {
	return &HTMLEngine{tmpl: t}
}

// Render implements TemplateEngine.
func (e *HTMLEngine) Render(w io.Writer, mv ModelAndView) error {
	if mv.View == "" {
		return e.tmpl.Execute(w, mv.Model)
	}
	return e.tmpl.ExecuteTemplate(w, mv.View, mv.Model)
}
