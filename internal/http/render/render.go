// Package render executes the embedded HTML templates.
package render

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

	"github.com/Rhymond/go-money"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html templates/pages/*.html
var templatesFS embed.FS

// View is what every page template receives. Content templates read their own data from Data.
type View struct {
	Title string
	Path  string
	Data  any
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses the layout once and clones it for every page under templates/pages.
func New() (*Renderer, error) {
	base, err := template.New("").Funcs(Funcs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	files, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}

	for _, f := range files {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning layout: %w", err)
		}

		if _, err := t.ParseFS(templatesFS, f); err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", f, err)
		}

		r.pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}

	return r, nil
}

// Page renders a full page with the given status. The page is executed into a buffer first,
// so a template failure never leaves a half-written response.
func (r *Renderer) Page(w http.ResponseWriter, status int, page string, v View) error {
	var buf bytes.Buffer
	if err := r.execute(&buf, page, "layout", v); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing page %s: %w", page, err)
	}

	return nil
}

func (r *Renderer) execute(buf *bytes.Buffer, page, name string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	if err := t.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("executing %s/%s: %w", page, name, err)
	}

	return nil
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	titler := cases.Title(language.English)

	return template.FuncMap{
		"formatCurrency": FormatCurrency,
		"formatDate":     FormatDate,
		"title": func(s any) string {
			return titler.String(fmt.Sprint(s))
		},
		"hasPrefix": strings.HasPrefix,
		"fieldErrors": func(errs map[string][]string, field string) []string {
			return errs[field]
		},
	}
}

// FormatCurrency renders cents as US dollars, e.g. 157095 → "$1,570.95".
func FormatCurrency(cents int64) string {
	return money.New(cents, money.USD).Display()
}

// FormatDate renders a date the way the dashboard tables show it, e.g. "Dec 6, 2022".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
