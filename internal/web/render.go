package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFiles embed.FS

// GenericFailure is shown when the store fails during a user-critical action.
const GenericFailure = "Something went wrong while saving. Please try again."

// Page is the envelope every template receives.
type Page struct {
	Title  string
	Nav    bool // show the admin navigation bar
	Error  string
	Notice string
	Data   any
}

// Renderer writes a named page with the given status.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, page Page)
}

// page name -> layout it is wrapped in
var pages = map[string]string{
	"login":      "layout.html",
	"home":       "layout.html",
	"menu":       "layout.html",
	"order":      "layout.html",
	"customers":  "layout.html",
	"reports":    "layout.html",
	"bill":       "layout.html",
	"error":      "layout.html",
	"bill_print": "print.html",
}

type TemplateRenderer struct {
	pages map[string]*template.Template
	log   zerolog.Logger
}

func NewTemplateRenderer(log zerolog.Logger) (*TemplateRenderer, error) {
	parsed := make(map[string]*template.Template, len(pages))
	for name, layout := range pages {
		t, err := template.New(layout).ParseFS(templateFiles, "templates/"+layout, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		parsed[name] = t
	}
	return &TemplateRenderer{pages: parsed, log: log}, nil
}

func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	t, ok := r.pages[name]
	if !ok {
		r.log.Error().Str("page", name).Msg("unknown template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		r.log.Error().Err(err).Str("page", name).Msg("failed to render template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// ServerError renders the generic failure page at 500.
func ServerError(w http.ResponseWriter, r Renderer, nav bool) {
	r.Render(w, http.StatusInternalServerError, "error", Page{
		Title: "Error",
		Nav:   nav,
		Error: GenericFailure,
	})
}
