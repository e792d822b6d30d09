// Package views renders the storefront HTML pages from embedded templates.
//
// Every page template is parsed together with the layout and partials and
// executed as "base". Fragments (the grid page and the carousels served to
// htmx) execute a single named partial.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/exclusivefashions/storefront/internal/catalog"
	"github.com/exclusivefashions/storefront/internal/content"
	"github.com/exclusivefashions/storefront/internal/links"
)

//go:embed templates
var templateFS embed.FS

const (
	layoutDir   = "templates/layout"
	partialsDir = "templates/partials"
	pagesDir    = "templates/pages"
)

// Page template names.
const (
	PageHome           = "home"
	PageListing        = "listing"
	PageDetail         = "detail"
	PageContact        = "contact"
	PageNotFound       = "not_found"
	PageAdminLogin     = "admin_login"
	PageAdminDashboard = "admin_dashboard"
)

// Fragments returned to htmx requests.
const (
	FragmentGridPage     = "grid_page"
	FragmentHero         = "hero"
	FragmentAnnouncement = "announcement_rotator"
)

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages    map[string]*template.Template
	fragment *template.Template
}

// NewRenderer parses the embedded templates. markdown may be nil.
func NewRenderer(markdown *content.Renderer) (*Renderer, error) {
	if markdown == nil {
		markdown = content.NewRenderer()
	}
	funcs := FuncMap(markdown)

	shared, err := globFiles(layoutDir, partialsDir)
	if err != nil {
		return nil, err
	}
	base, err := template.New("_root").Funcs(funcs).ParseFS(templateFS, shared...)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := globFiles(pagesDir)
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		name := strings.TrimSuffix(path.Base(file), ".tmpl")
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = clone
	}
	return &Renderer{pages: pages, fragment: base}, nil
}

// MustNewRenderer panics when the embedded templates do not parse.
func MustNewRenderer(markdown *content.Renderer) *Renderer {
	r, err := NewRenderer(markdown)
	if err != nil {
		panic(err)
	}
	return r
}

// Page executes the named page into a buffer. Nothing is written on failure.
func (r *Renderer) Page(name string, data any) ([]byte, error) {
	t, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Fragment executes a single partial.
func (r *Renderer) Fragment(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.fragment.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render fragment %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Write renders a page and writes it with status.
func (r *Renderer) Write(w http.ResponseWriter, status int, name string, data any) error {
	body, err := r.Page(name, data)
	if err != nil {
		return err
	}
	writeHTML(w, status, body)
	return nil
}

// WriteFragment renders a partial and writes it with 200.
func (r *Renderer) WriteFragment(w http.ResponseWriter, name string, data any) error {
	body, err := r.Fragment(name, data)
	if err != nil {
		return err
	}
	writeHTML(w, http.StatusOK, body)
	return nil
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// FuncMap exposes the helpers available to every template.
func FuncMap(markdown *content.Renderer) template.FuncMap {
	return template.FuncMap{
		"price":           catalog.FormatPrice,
		"markdown":        markdown.Render,
		"whatsapp":        links.WhatsApp,
		"whatsappProduct": links.WhatsAppProduct,
		"instagram":       links.Instagram,
		"year":            func() int { return time.Now().Year() },
		"isActive": func(index, active int) bool {
			return index == active
		},
	}
}

func globFiles(dirs ...string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		err := fs.WalkDir(templateFS, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", strings.Join(dirs, ", "))
	}
	return files, nil
}
