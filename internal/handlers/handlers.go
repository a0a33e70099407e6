package handlers

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/bfqc/courtres/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger func(ctx context.Context) error

// Handlers carries the dependencies of every HTTP handler.
type Handlers struct {
	Engine   *services.Engine
	Auth     *services.Auth
	Sessions *Sessions
	Log      zerolog.Logger
	SiteName string
	Ping     Pinger

	validate *validator.Validate
}

func New(engine *services.Engine, auth *services.Auth, sessions *Sessions, log zerolog.Logger, siteName string, ping Pinger) *Handlers {
	return &Handlers{
		Engine:   engine,
		Auth:     auth,
		Sessions: sessions,
		Log:      log,
		SiteName: siteName,
		Ping:     ping,
		validate: newValidator(),
	}
}

// render executes name into a buffer first so a template error still yields
// a clean 500.
func (h *Handlers) render(w http.ResponseWriter, t *template.Template, name string, status int, data map[string]any) {
	data["Site"] = h.SiteName
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		h.Log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// GET /healthz
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.Ping != nil {
		if err := h.Ping(r.Context()); err != nil {
			h.Log.Error().Err(err).Msg("health check failed")
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
