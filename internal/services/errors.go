package services

import "errors"

var (
	ErrPastDate       = errors.New("date is in the past")
	ErrSlotConflict   = errors.New("time slot already reserved")
	ErrQuotaExceeded  = errors.New("daily reservation quota reached")
	ErrNotFound       = errors.New("reservation not found")
	ErrAuthentication = errors.New("invalid credentials")
	ErrAuthorization  = errors.New("admin session required")

	ErrInvalidSlot  = errors.New("unknown time slot")
	ErrInvalidInput = errors.New("name and contact are required")
)
