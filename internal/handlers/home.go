package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bfqc/courtres/internal/metrics"
	"github.com/bfqc/courtres/internal/services"
)

// bookingError maps an engine error to a metrics outcome and the message shown
// above the booking form. An empty message means the error is unexpected.
func bookingError(err error) (outcome, msg string) {
	switch {
	case errors.Is(err, services.ErrPastDate):
		return "past_date", "Cannot reserve past dates."
	case errors.Is(err, services.ErrSlotConflict):
		return "slot_conflict", "This time slot is already reserved. Please choose another."
	case errors.Is(err, services.ErrQuotaExceeded):
		return "quota_exceeded", "You can only book up to 2 hours per day."
	case errors.Is(err, services.ErrInvalidSlot):
		return "invalid", "Please choose one of the listed time slots."
	case errors.Is(err, services.ErrInvalidInput):
		return "invalid", "Please enter your name, contact number and a valid date."
	}
	return "error", ""
}

func weekOffset(r *http.Request) int {
	n, err := strconv.Atoi(r.FormValue("week_offset"))
	if err != nil {
		return 0
	}
	return n
}

// bookedURL is the post-booking redirect back to the week the form was on.
func bookedURL(offset int) string {
	q := url.Values{"ok": {"booked"}}
	if offset != 0 {
		q.Set("week_offset", strconv.Itoa(offset))
	}
	return "/?" + q.Encode()
}

// GET /
func (h *Handlers) Home(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := reservationForm{
			Date:     r.URL.Query().Get("date"),
			TimeSlot: r.URL.Query().Get("slot"),
		}
		h.renderHome(w, r, t, weekOffset(r), form, "")
	}
}

// POST /
func (h *Handlers) Book(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		offset := weekOffset(r)
		form := readReservationForm(r)

		err := h.checkForm(form)
		if err == nil {
			var p services.Proposal
			if p, err = form.proposal(); err == nil {
				res, bookErr := h.Engine.Book(r.Context(), p)
				if bookErr == nil {
					metrics.IncBooking("ok")
					h.Log.Info().
						Uint("id", res.ID).
						Str("date", res.DateISO()).
						Str("slot", res.TimeSlot).
						Msg("reservation booked")
					http.Redirect(w, r, bookedURL(offset), http.StatusSeeOther)
					return
				}
				err = bookErr
			}
		}

		outcome, msg := bookingError(err)
		metrics.IncBooking(outcome)
		if msg == "" {
			h.Log.Error().Err(err).Msg("booking failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		h.renderHome(w, r, t, offset, form, msg)
	}
}

func (h *Handlers) renderHome(w http.ResponseWriter, r *http.Request, t *template.Template, offset int, form reservationForm, errMsg string) {
	viewer := ViewerFrom(r.Context())
	week, err := h.Engine.Week(r.Context(), offset, viewer.IsAdmin)
	if err != nil {
		h.Log.Error().Err(err).Msg("load week")
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	h.render(w, t, "index.tmpl", http.StatusOK, map[string]any{
		"Title":    "Court Schedule",
		"Week":     week,
		"Form":     form,
		"Flash":    MakeFlash(r, errMsg, ""),
		"IsAdmin":  viewer.IsAdmin,
		"TodayISO": fmtISODate(week.Today),
	})
}
