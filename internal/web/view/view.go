// Package view renders the server-side HTML pages. Handlers depend on the
// Renderer interface; tests substitute a recorder.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/session"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

//go:embed templates
var templatesFS embed.FS

// User is the identity block available to every template.
type User struct {
	IsAuthenticated bool
	ID              int64
	Name            string
	Role            string
}

// Data is the envelope handed to every page render.
type Data struct {
	Title   string
	User    User
	Flash   *session.Flash
	Content any
}

type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data Data) error
}

type HTMLRenderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return "R" + d.StringFixed(2)
	},
}

// NewHTMLRenderer parses every page template together with the shared
// partials. Pages live under templates/pages and templates/admin; the page
// name keeps its directory prefix, e.g. "pages/home" or "admin/dashboard".
func NewHTMLRenderer() (*HTMLRenderer, error) {
	pages := make(map[string]*template.Template)

	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(p, "templates/partials/") {
			return nil
		}

		name := strings.TrimPrefix(strings.TrimSuffix(p, ".html"), "templates/")
		tmpl, err := template.New(path.Base(p)).Funcs(funcs).ParseFS(
			templatesFS, "templates/partials/*.html", p,
		)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", p, err)
		}
		pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &HTMLRenderer{pages: pages}, nil
}

func (r *HTMLRenderer) Render(w http.ResponseWriter, status int, page string, data Data) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown template: %s", page)
	}

	// Render into a buffer first so a template error never produces a
	// half-written response.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		logger.Error("Template execution failed", "page", page, "error", err)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
