package services

import (
	"fmt"
	"time"
)

const (
	FirstSlotHour = 6
	LastSlotHour  = 19
)

var slotCatalog = func() []string {
	out := make([]string, 0, LastSlotHour-FirstSlotHour+1)
	for h := FirstSlotHour; h <= LastSlotHour; h++ {
		out = append(out, fmt.Sprintf("%02d:00", h))
	}
	return out
}()

// Slots returns the bookable hourly labels, "06:00" through "19:00".
func Slots() []string {
	out := make([]string, len(slotCatalog))
	copy(out, slotCatalog)
	return out
}

func IsSlot(label string) bool {
	for _, s := range slotCatalog {
		if s == label {
			return true
		}
	}
	return false
}

// SlotStart resolves a slot label on the given civil date to a wall-clock
// instant in loc.
func SlotStart(date time.Time, label string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", label)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slot %q: %w", label, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
