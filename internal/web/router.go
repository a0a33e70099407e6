package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bfqc/courtres/internal/handlers"
)

//go:embed templates
var templatesFS embed.FS

// Options are the router knobs that are not handler dependencies.
type Options struct {
	RequestsPerMinute int
	Metrics           bool
}

func Router(h *handlers.Handlers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.Log))
	r.Use(middleware.Recoverer)
	r.Use(h.Sessions.LoadViewer)

	base := mustParseTemplates(templatesFS)
	index := page(base, "index.tmpl")
	login := page(base, "login.tmpl")
	admin := page(base, "admin.tmpl")

	limit := func(next http.Handler) http.Handler { return next }
	if opts.RequestsPerMinute > 0 {
		limit = httprate.LimitByIP(opts.RequestsPerMinute, time.Minute)
	}

	// Public pages
	r.Get("/", h.Home(index))
	r.With(limit).Post("/", h.Book(index))
	r.Get("/healthz", h.Health)

	// Admin auth
	r.Get("/login", h.LoginForm(login))
	r.With(limit).Post("/login", h.LoginSubmit(login))
	r.Get("/logout", h.Logout)

	// Guarded admin pages
	r.Group(func(ag chi.Router) {
		ag.Use(handlers.RequireAdmin)

		ag.Get("/admin", h.AdminDashboard(admin))
		ag.Post("/edit_modal", h.AdminEdit)
		ag.Get("/delete/{res_id}", h.AdminDelete)
		ag.Get("/admin/reservations.xlsx", h.ReservationsXLSX)
		ag.Get("/admin/reservations/{id}/qr.png", h.ReservationQR)
	})

	if opts.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

var funcs = template.FuncMap{
	"year":    func() string { return time.Now().Format("2006") },
	"isodate": func(t time.Time) string { return t.Format("2006-01-02") },
	"dayname": func(t time.Time) string { return t.Format("Mon") },
	"daymon":  func(t time.Time) string { return t.Format("02 Jan") },
	"fmtDate": func(t time.Time) string { return t.Format("Mon, 02 Jan 2006") },
	"add":     func(a, b int) int { return a + b },
	"sameDay": func(a, b time.Time) bool { return a.Format("2006-01-02") == b.Format("2006-01-02") },
}

func mustParseTemplates(fsys fs.FS) *template.Template {
	p := template.New("").Funcs(funcs)
	p = template.Must(p.ParseFS(fsys, "templates/layouts/*.tmpl"))
	p = template.Must(p.ParseFS(fsys, "templates/partials/*.tmpl"))
	return p
}

// page clones the shared layouts and adds one page, so each page can define
// its own "content" block.
func page(base *template.Template, name string) *template.Template {
	view := template.Must(base.Clone())
	return template.Must(view.ParseFS(templatesFS, "templates/pages/"+name))
}
