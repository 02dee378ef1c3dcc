package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"tableflip.dev/mytodo/pkg/glyph"
	"tableflip.dev/mytodo/pkg/task"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// AssetPaths are the static files served next to the pages. They are also
// what an asset cache should precache.
var AssetPaths = []string{"/index.html", "/app.css", "/app.js", "/manifest.json"}

// Assets serves the embedded static files. http.FileServer is avoided since
// it redirects /index.html to /.
func Assets() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Join("static", path.Clean("/"+r.URL.Path))
		data, err := fs.ReadFile(staticFS, name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
	})
}

func checkGlyph(t *task.Task) string { return glyph.Check(t).Symbol }

func markGlyph(t *task.Task) string { return glyph.Mark(t).Symbol }

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"eq": func(a, b string) bool { return a == b },
	}
	return template.Must(template.New("page").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

type templateWrapper struct {
	tmpl *template.Template
}

func newTemplateWrapper() *templateWrapper {
	return &templateWrapper{tmpl: newTemplates()}
}

// Render executes into a buffer so a template error never leaves a half
// written page behind a 200.
func (tw *templateWrapper) Render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := tw.tmpl.ExecuteTemplate(&buf, "page.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
