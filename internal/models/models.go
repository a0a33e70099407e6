package models

import "time"

// Reservation is one booked court slot. Date holds the civil date at
// midnight UTC; TimeSlot is a catalog label such as "09:00".
type Reservation struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Date          time.Time `gorm:"not null;uniqueIndex:idx_reservation_slot,priority:1;index:idx_reservation_contact,priority:1"`
	TimeSlot      string    `gorm:"size:10;not null;uniqueIndex:idx_reservation_slot,priority:2"`
	Name          string    `gorm:"size:50;not null"`
	ContactNumber string    `gorm:"size:20;not null;index:idx_reservation_contact,priority:2"`
	WithCoaching  bool      `gorm:"default:false"`
}

// DateISO is the reservation date as YYYY-MM-DD.
func (r Reservation) DateISO() string {
	return r.Date.Format("2006-01-02")
}

type Admin struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Username     string `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
}
