// Package render turns alerts into HTML for the supported CSS frameworks.
package render

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/pkg/errors"

	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Renderer renders a list of alerts into a single HTML fragment.
type Renderer interface {
	Render(list []*alerts.Alert) (template.HTML, error)
}

// BootstrapSkin maps types to Bootstrap 5 contextual classes.
var BootstrapSkin = Skin{
	Base: []string{"alert"},
	Types: map[string][]string{
		"primary":   {"alert-primary"},
		"secondary": {"alert-secondary"},
		"success":   {"alert-success"},
		"danger":    {"alert-danger"},
		"warning":   {"alert-warning"},
		"info":      {"alert-info"},
		"light":     {"alert-light"},
		"dark":      {"alert-dark"},
	},
	Dismiss: []string{"fade", "show", "alert-dismissible"},
}

// TailwindSkin maps types to Tailwind CSS utility classes.
var TailwindSkin = Skin{
	Base: []string{"relative", "max-w-lg", "rounded-lg", "px-4", "py-4", "mb-2", "shadow-md", "ring-1"},
	Types: map[string][]string{
		"success": {"bg-green-100", "ring-green-500/20", "text-green-900"},
		"failure": {"bg-red-100", "ring-red-500/20", "text-red-900"},
		"warning": {"bg-yellow-100", "ring-yellow-500/20", "text-yellow-900"},
		"info":    {"bg-blue-100", "ring-blue-500/20", "text-blue-900"},
		"light":   {"bg-white", "ring-gray-900/5", "text-gray-900"},
		"dark":    {"bg-gray-800", "ring-white/10", "text-gray-300"},
	},
	Dismiss: []string{"transition-opacity", "opacity-100"},
}

// TemplateRenderer renders alerts through a named template and skin.
type TemplateRenderer struct {
	name string
	skin Skin
	tmpl *template.Template
}

// NewTemplateRenderer returns a renderer executing the named template of tmpl.
// A nil tmpl uses the built-in templates.
func NewTemplateRenderer(name string, skin Skin, tmpl *template.Template) (*TemplateRenderer, error) {
	if tmpl == nil {
		tmpl = templates
	}
	if tmpl.Lookup(name) == nil {
		return nil, errors.Errorf("render: template %q not defined", name)
	}
	return &TemplateRenderer{name: name, skin: skin, tmpl: tmpl}, nil
}

// NewBootstrap returns the Bootstrap 5 renderer.
func NewBootstrap() Renderer {
	r, _ := NewTemplateRenderer("bootstrap", BootstrapSkin, nil)
	return r
}

// NewTailwind returns the Tailwind CSS renderer.
func NewTailwind() Renderer {
	r, _ := NewTemplateRenderer("tailwind", TailwindSkin, nil)
	return r
}

func (r *TemplateRenderer) Render(list []*alerts.Alert) (template.HTML, error) {
	compiled := make([]Compiled, 0, len(list))
	for _, a := range list {
		compiled = append(compiled, Compile(a, r.skin))
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, r.name, compiled); err != nil {
		return "", errors.Wrapf(err, "render %s alerts", r.name)
	}
	return template.HTML(buf.String()), nil
}
