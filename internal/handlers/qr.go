package handlers

import (
	"errors"
	"fmt"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/bfqc/courtres/internal/services"
)

// GET /admin/reservations/{id}/qr.png
func (h *Handlers) ReservationQR(w http.ResponseWriter, r *http.Request) {
	id, ok := resID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	res, err := h.Engine.Reservation(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Uint("id", id).Msg("load reservation for qr")
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	coaching := ""
	if res.WithCoaching {
		coaching = " (with coaching)"
	}
	text := fmt.Sprintf("%s\nReservation #%d\n%s %s\n%s%s",
		h.SiteName, res.ID, fmtDate(res.Date), res.TimeSlot, res.Name, coaching)

	png, err := qrcode.Encode(text, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "failed to generate qr", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
