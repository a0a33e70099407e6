package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bfqc/courtres/internal/metrics"
	"github.com/bfqc/courtres/internal/services"
)

// adminErrKey maps an engine error to a flash key on /admin.
func adminErrKey(err error) string {
	switch {
	case errors.Is(err, services.ErrPastDate):
		return "past_slot"
	case errors.Is(err, services.ErrSlotConflict):
		return "slot_taken"
	case errors.Is(err, services.ErrNotFound):
		return "not_found"
	case errors.Is(err, services.ErrInvalidSlot), errors.Is(err, services.ErrInvalidInput):
		return "invalid"
	}
	return "failed"
}

func resID(r *http.Request, param string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, param), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// POST /edit_modal
func (h *Handlers) AdminEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	form := readEditForm(r)

	err := h.checkForm(form)
	if err == nil {
		var p services.Proposal
		if p, err = form.proposal(); err == nil {
			_, err = h.Engine.Edit(r.Context(), form.ResID, p)
		}
	}
	if err != nil {
		key := adminErrKey(err)
		metrics.IncAdminAction("edit", key)
		if key == "failed" {
			h.Log.Error().Err(err).Uint("id", form.ResID).Msg("edit reservation")
		}
		http.Redirect(w, r, "/admin?error="+key, http.StatusSeeOther)
		return
	}

	metrics.IncAdminAction("edit", "ok")
	h.Log.Info().Uint("id", form.ResID).Str("admin", ViewerFrom(r.Context()).Username).Msg("reservation updated")
	http.Redirect(w, r, "/admin?ok=updated", http.StatusSeeOther)
}

// GET /delete/{res_id}
func (h *Handlers) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := resID(r, "res_id")
	err := services.ErrNotFound
	if ok {
		err = h.Engine.Remove(r.Context(), id)
	}
	if err != nil {
		key := adminErrKey(err)
		metrics.IncAdminAction("delete", key)
		if key == "failed" {
			h.Log.Error().Err(err).Uint("id", id).Msg("delete reservation")
		}
		http.Redirect(w, r, "/admin?error="+key, http.StatusSeeOther)
		return
	}

	metrics.IncAdminAction("delete", "ok")
	h.Log.Info().Uint("id", id).Str("admin", ViewerFrom(r.Context()).Username).Msg("reservation deleted")
	http.Redirect(w, r, "/admin?ok=deleted", http.StatusSeeOther)
}
