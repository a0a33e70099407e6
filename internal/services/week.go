package services

import (
	"context"
	"time"

	"github.com/bfqc/courtres/internal/models"
)

func cellKey(date time.Time, slot string) string {
	return date.Format("2006-01-02") + " " + slot
}

// Availability maps ISO date -> slot -> free for every requested date.
func Availability(dates []time.Time, slots []string, rs []models.Reservation) map[string]map[string]bool {
	taken := make(map[string]bool, len(rs))
	for _, r := range rs {
		taken[cellKey(r.Date, r.TimeSlot)] = true
	}
	out := make(map[string]map[string]bool, len(dates))
	for _, d := range dates {
		day := make(map[string]bool, len(slots))
		for _, s := range slots {
			day[s] = !taken[cellKey(d, s)]
		}
		out[d.Format("2006-01-02")] = day
	}
	return out
}

// WeekView is one rendered calendar week.
type WeekView struct {
	Offset  int
	Today   time.Time
	Dates   []time.Time
	Slots   []string
	IsAdmin bool
	Free    map[string]map[string]bool

	cells map[string]View
}

// Cell returns the visible reservation at (date, slot), or nil when free.
func (w *WeekView) Cell(date time.Time, slot string) *View {
	v, ok := w.cells[cellKey(date, slot)]
	if !ok {
		return nil
	}
	return &v
}

// Bookable reports whether the public form may offer (date, slot).
func (w *WeekView) Bookable(date time.Time, slot string) bool {
	if date.Before(w.Today) {
		return false
	}
	return w.Free[date.Format("2006-01-02")][slot]
}

// Week loads the reservations of the week at offset and masks them for the
// caller.
func (e *Engine) Week(ctx context.Context, offset int, isAdmin bool) (*WeekView, error) {
	today := e.Today()
	dates := WeekDates(today, offset)
	slots := Slots()

	rs, err := e.repo.ListByDates(ctx, dates)
	if err != nil {
		return nil, err
	}

	cells := make(map[string]View, len(rs))
	for _, r := range rs {
		cells[cellKey(r.Date, r.TimeSlot)] = Mask(r, isAdmin)
	}

	return &WeekView{
		Offset:  offset,
		Today:   today,
		Dates:   dates,
		Slots:   slots,
		IsAdmin: isAdmin,
		Free:    Availability(dates, slots, rs),
		cells:   cells,
	}, nil
}
