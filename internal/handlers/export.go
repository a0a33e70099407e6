package handlers

import (
	"bytes"
	"net/http"

	"github.com/bfqc/courtres/internal/export"
)

// GET /admin/reservations.xlsx
func (h *Handlers) ReservationsXLSX(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Engine.Dashboard(r.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("load reservations for export")
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err = export.WriteReservations(&buf,
		export.Sheet{Name: "Upcoming", Rows: dash.Upcoming},
		export.Sheet{Name: "Completed", Rows: dash.Completed},
	)
	if err != nil {
		h.Log.Error().Err(err).Msg("write xlsx")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	name := "reservations-" + fmtISODate(dash.Today) + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = buf.WriteTo(w)
}
