package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"petcare-web/internal/middleware"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets/*
var assetFS embed.FS

// View es lo que recibe el layout. Data es el modelo propio de cada página.
type View struct {
	Title    string
	SignedIn bool
	UserID   string
	Email    string
	Notice   string
	Error    string
	Data     any
}

// NewView arma la vista con la identidad (sólo presentación) y los mensajes
// inline que dejó el redirect anterior (?notice= / ?error=).
func NewView(r *http.Request, title string, data any) View {
	v := View{
		Title:  title,
		Notice: r.URL.Query().Get("notice"),
		Error:  r.URL.Query().Get("error"),
		Data:   data,
	}
	if id, ok := middleware.GetIdentity(r.Context()); ok {
		v.SignedIn = true
		v.UserID = id.Claims.UserID
		v.Email = id.Claims.Email
	}
	return v
}

type Renderer struct {
	pages map[string]*template.Template
	base  *template.Template
	log   *zap.Logger
}

const (
	layoutFile   = "layout.html"
	partialsFile = "partials.html"
)

// New parsea los templates embebidos: layout + partials + una página por archivo.
func New(log *zap.Logger) (*Renderer, error) {
	base, err := template.New("").Funcs(funcMap()).ParseFS(templateFS,
		"templates/"+layoutFile, "templates/"+partialsFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		name := path.Base(f)
		if name == layoutFile || name == partialsFile {
			continue
		}
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = t
	}

	return &Renderer{pages: pages, base: base, log: log}, nil
}

// Execute escribe la página completa (layout) en w.
func (rd *Renderer) Execute(w io.Writer, page string, v View) error {
	t, ok := rd.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(w, "layout", v)
}

// Page renderiza a buffer primero para no mandar HTML a medias si falla.
func (rd *Renderer) Page(w http.ResponseWriter, status int, page string, v View) {
	var buf bytes.Buffer
	if err := rd.Execute(&buf, page, v); err != nil {
		rd.log.Error("render page failed", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Fragment renderiza un bloque de partials.html (respuestas parciales, p.ej. búsqueda).
func (rd *Renderer) Fragment(w http.ResponseWriter, block string, data any) {
	var buf bytes.Buffer
	if err := rd.base.ExecuteTemplate(&buf, block, data); err != nil {
		rd.log.Error("render fragment failed", zap.String("block", block), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Assets sirve css/js embebidos bajo el prefijo dado.
func Assets(prefix string) http.Handler {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix(prefix, http.FileServer(http.FS(sub)))
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"15:04:05",
	"15:04",
}

// ParseTime acepta los formatos que devuelve el backend (con o sin zona).
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatWith(layout string) func(string) string {
	return func(s string) string {
		t, ok := ParseTime(s)
		if !ok {
			return s
		}
		return t.Format(layout)
	}
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"date":     formatWith("Jan 2, 2006"),
		"clock":    formatWith("15:04"),
		"datetime": formatWith("Jan 2, 2006 15:04"),
		"truncate": func(n int, s string) string {
			r := []rune(s)
			if len(r) <= n {
				return s
			}
			return string(r[:n]) + "..."
		},
		"label": func(s any) string {
			return strings.ReplaceAll(fmt.Sprint(s), "_", " ")
		},
		"lower": func(s any) string { return strings.ToLower(fmt.Sprint(s)) },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"add": func(a, b int) int { return a + b },
	}
}
