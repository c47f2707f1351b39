package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"matchmaker/internal/identity"
	"matchmaker/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const layout = "templates/base.html"

// Renderer renders full pages. Each page template is parsed together with the
// shared layout and the partials (files starting with "_") into its own set,
// so pages may redefine the same blocks.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses every embedded page.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"date": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.UTC().Format("2006-01-02")
		},
		"join": strings.Join,
		"checked": func(b bool) template.HTMLAttr {
			if b {
				return "checked"
			}
			return ""
		},
		"fieldErr": func(errs map[string]string, field string) string {
			return errs[field]
		},
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	shared := []string{layout}
	var pages []string
	for _, file := range files {
		switch {
		case file == layout:
		case strings.HasPrefix(path.Base(file), "_"):
			shared = append(shared, file)
		default:
			pages = append(pages, file)
		}
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range pages {
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, append(shared, file)...)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render implements echo.Renderer. data must be nil or a map[string]any; the
// caller identity, pending flashes and CSRF token are added to it.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	payload, _ := data.(map[string]any)
	if payload == nil {
		payload = make(map[string]any)
	}
	payload["Identity"] = identity.FromContext(c)
	payload["Flashes"] = session.TakeFlashes(c)
	if token, ok := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string); ok {
		payload["CSRFToken"] = token
	}

	return tmpl.ExecuteTemplate(w, "base", payload)
}
