// Package web renders the landing page.
package web

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/index.html
var defaultIndex []byte

// TemplateSource supplies the landing page template, e.g. from object storage.
type TemplateSource interface {
	FetchTemplate(ctx context.Context) ([]byte, error)
}

type Page struct {
	body []byte
}

// NewPage parses and renders the template once. A nil source uses the
// embedded default.
func NewPage(ctx context.Context, src TemplateSource) (*Page, error) {
	raw := defaultIndex
	if src != nil {
		fetched, err := src.FetchTemplate(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch landing page template: %w", err)
		}
		raw = fetched
	}

	tmpl, err := template.New("index").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse landing page template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return nil, fmt.Errorf("render landing page template: %w", err)
	}
	return &Page{body: buf.Bytes()}, nil
}

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(p.body); err != nil {
		log.Println("error writing landing page:", err)
	}
}
