// Package views renders the server-side HTML pages.
package views

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
)

// Renderer holds the parsed page templates
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout
func NewRenderer() (*Renderer, error) {
	layout, ok := templates["layout"]
	if !ok {
		return nil, fmt.Errorf("layout template not found")
	}

	pages := make(map[string]*template.Template, len(templates)-1)
	for name, content := range templates {
		if name == "layout" {
			continue
		}
		tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(layout)
		if err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
		if _, err := tmpl.New(name).Parse(content); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Render executes the named page into a buffer and writes it with status
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data map[string]any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
