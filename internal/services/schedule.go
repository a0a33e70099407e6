package services

import (
	"context"
	"sort"
	"time"

	"github.com/bfqc/courtres/internal/models"
)

// SortBySlot orders reservations by (date, time_slot) ascending.
func SortBySlot(rs []models.Reservation) {
	sort.SliceStable(rs, func(i, j int) bool {
		if !rs[i].Date.Equal(rs[j].Date) {
			return rs[i].Date.Before(rs[j].Date)
		}
		return rs[i].TimeSlot < rs[j].TimeSlot
	})
}

// Partition splits reservations into those whose slot starts at or after now
// and those already past. Both halves are ordered by (date, time_slot).
func Partition(rs []models.Reservation, now time.Time, loc *time.Location) (upcoming, completed []models.Reservation) {
	sorted := make([]models.Reservation, len(rs))
	copy(sorted, rs)
	SortBySlot(sorted)

	for _, r := range sorted {
		start, err := SlotStart(r.Date, r.TimeSlot, loc)
		if err != nil || start.Before(now) {
			completed = append(completed, r)
			continue
		}
		upcoming = append(upcoming, r)
	}
	return upcoming, completed
}

type Dashboard struct {
	Now       time.Time
	Today     time.Time
	Upcoming  []models.Reservation
	Completed []models.Reservation

	// Free is the availability of every date that has an upcoming
	// reservation, keyed like Availability.
	Free map[string]map[string]bool
}

// SlotTaken reports whether slot on r's date is held by another reservation.
func (d *Dashboard) SlotTaken(r models.Reservation, slot string) bool {
	if slot == r.TimeSlot {
		return false
	}
	day, ok := d.Free[r.DateISO()]
	if !ok {
		return false
	}
	return !day[slot]
}

func (e *Engine) Dashboard(ctx context.Context) (*Dashboard, error) {
	all, err := e.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := e.Now()
	up, done := Partition(all, now, e.loc)

	var dates []time.Time
	seen := make(map[string]bool, len(up))
	for _, r := range up {
		if !seen[r.DateISO()] {
			seen[r.DateISO()] = true
			dates = append(dates, r.Date)
		}
	}

	return &Dashboard{
		Now:       now,
		Today:     DateOf(now),
		Upcoming:  up,
		Completed: done,
		Free:      Availability(dates, Slots(), all),
	}, nil
}

// Reservation fetches one reservation by id.
func (e *Engine) Reservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return e.repo.FindByID(ctx, id)
}
