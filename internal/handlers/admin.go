package handlers

import (
	"html/template"
	"net/http"

	"github.com/bfqc/courtres/internal/services"
)

// GET /admin
func (h *Handlers) AdminDashboard(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dash, err := h.Engine.Dashboard(r.Context())
		if err != nil {
			h.Log.Error().Err(err).Msg("load dashboard")
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		h.render(w, t, "admin.tmpl", http.StatusOK, map[string]any{
			"Title":     "Admin • Reservations",
			"Dash":      dash,
			"Upcoming":  dash.Upcoming,
			"Completed": dash.Completed,
			"Now":       dash.Now,
			"TodayISO":  fmtISODate(dash.Today),
			"Slots":     services.Slots(),
			"Flash":     MakeFlash(r, "", ""),
			"IsAdmin":   true,
		})
	}
}
