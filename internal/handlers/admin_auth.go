package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/bfqc/courtres/internal/metrics"
	"github.com/bfqc/courtres/internal/services"
)

// safeNext only allows local absolute paths as a post-login target.
// Control characters are rejected since browsers strip them before
// resolving the Location header.
func safeNext(next string) string {
	const fallback = "/admin"
	for i := 0; i < len(next); i++ {
		if next[i] < 0x20 || next[i] == 0x7f {
			return fallback
		}
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}

// GET /login
func (h *Handlers) LoginForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ViewerFrom(r.Context()).IsAdmin {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		h.render(w, t, "login.tmpl", http.StatusOK, map[string]any{
			"Title":    "Admin • Login",
			"Next":     r.URL.Query().Get("next"),
			"Username": "",
		})
	}
}

// POST /login
func (h *Handlers) LoginSubmit(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		form := loginForm{
			Username: strings.TrimSpace(r.FormValue("username")),
			Password: r.FormValue("password"),
			Next:     r.FormValue("next"),
		}

		err := services.ErrAuthentication
		if h.checkForm(form) == nil {
			_, err = h.Auth.Authenticate(r.Context(), form.Username, form.Password)
		}
		switch {
		case errors.Is(err, services.ErrAuthentication):
			metrics.IncLogin("failed")
			h.Log.Warn().Str("username", form.Username).Str("ip", r.RemoteAddr).Msg("admin login failed")
			h.render(w, t, "login.tmpl", http.StatusUnauthorized, map[string]any{
				"Title":    "Admin • Login",
				"Next":     form.Next,
				"Username": form.Username,
				"Flash":    &Flash{Kind: "error", Text: "Invalid credentials."},
			})
			return
		case err != nil:
			h.Log.Error().Err(err).Msg("admin login")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if err := h.Sessions.Issue(w, form.Username); err != nil {
			h.Log.Error().Err(err).Msg("issue session")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		metrics.IncLogin("ok")
		h.Log.Info().Str("username", form.Username).Msg("admin logged in")
		http.Redirect(w, r, safeNext(form.Next), http.StatusSeeOther)
	}
}

// GET /logout
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
