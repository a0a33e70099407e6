package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bfqc/courtres/internal/models"
)

// DailyQuota caps public reservations per contact per date.
const DailyQuota = 2

// Repository is the reservation store the engine runs against. Lookups that
// match nothing return ErrNotFound; Insert and Update return ErrSlotConflict
// when the store's (date, time_slot) uniqueness constraint rejects the write.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindBySlot(ctx context.Context, date time.Time, slot string) (*models.Reservation, error)
	CountByContact(ctx context.Context, date time.Time, contact string) (int64, error)
	Insert(ctx context.Context, r *models.Reservation) error
	Update(ctx context.Context, r *models.Reservation) error
	Delete(ctx context.Context, id uint) error
	ListByDates(ctx context.Context, dates []time.Time) ([]models.Reservation, error)
	ListAll(ctx context.Context) ([]models.Reservation, error)

	// WithinTx runs fn against a repository bound to a single transaction.
	WithinTx(ctx context.Context, fn func(tx Repository) error) error
}

// Proposal is a requested reservation, either a new booking or the new
// contents of an existing one.
type Proposal struct {
	Date         time.Time
	TimeSlot     string
	Name         string
	Contact      string
	WithCoaching bool
}

func (p Proposal) normalized() Proposal {
	p.Date = DateOf(p.Date)
	p.TimeSlot = strings.TrimSpace(p.TimeSlot)
	p.Name = strings.TrimSpace(p.Name)
	p.Contact = strings.TrimSpace(p.Contact)
	return p
}

func (p Proposal) check() error {
	if !IsSlot(p.TimeSlot) {
		return ErrInvalidSlot
	}
	if p.Name == "" || p.Contact == "" {
		return ErrInvalidInput
	}
	return nil
}

func (p Proposal) apply(r *models.Reservation) {
	r.Date = p.Date
	r.TimeSlot = p.TimeSlot
	r.Name = p.Name
	r.ContactNumber = p.Contact
	r.WithCoaching = p.WithCoaching
}

// Engine admits or rejects reservations against the store.
type Engine struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewEngine(repo Repository, loc *time.Location, now func() time.Time) *Engine {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{repo: repo, loc: loc, now: now}
}

func (e *Engine) Location() *time.Location { return e.loc }

// Now is the current instant in the court's time zone.
func (e *Engine) Now() time.Time { return e.now().In(e.loc) }

// Today is the court's current civil date.
func (e *Engine) Today() time.Time { return DateOf(e.Now()) }

// Book admits a public reservation. Checks run in order (past date, slot
// conflict, quota) and the first failure is returned.
func (e *Engine) Book(ctx context.Context, p Proposal) (*models.Reservation, error) {
	p = p.normalized()
	if err := p.check(); err != nil {
		return nil, err
	}
	if p.Date.Before(e.Today()) {
		return nil, ErrPastDate
	}

	var res models.Reservation
	p.apply(&res)

	err := e.repo.WithinTx(ctx, func(tx Repository) error {
		if err := slotFree(ctx, tx, p, 0); err != nil {
			return err
		}
		n, err := tx.CountByContact(ctx, p.Date, p.Contact)
		if err != nil {
			return err
		}
		if n >= DailyQuota {
			return ErrQuotaExceeded
		}
		return tx.Insert(ctx, &res)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Edit rewrites an existing reservation on behalf of an admin. The new slot
// must not have started yet (date and time, unlike Book) and the daily quota
// is not re-checked.
func (e *Engine) Edit(ctx context.Context, id uint, p Proposal) (*models.Reservation, error) {
	p = p.normalized()
	if err := p.check(); err != nil {
		return nil, err
	}
	start, err := SlotStart(p.Date, p.TimeSlot, e.loc)
	if err != nil {
		return nil, err
	}

	var res *models.Reservation
	err = e.repo.WithinTx(ctx, func(tx Repository) error {
		cur, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if start.Before(e.Now()) {
			return ErrPastDate
		}
		if err := slotFree(ctx, tx, p, cur.ID); err != nil {
			return err
		}
		p.apply(cur)
		if err := tx.Update(ctx, cur); err != nil {
			return err
		}
		res = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Remove deletes a reservation by id.
func (e *Engine) Remove(ctx context.Context, id uint) error {
	return e.repo.Delete(ctx, id)
}

// slotFree reports ErrSlotConflict when (date, slot) is held by a reservation
// other than self.
func slotFree(ctx context.Context, tx Repository, p Proposal, self uint) error {
	other, err := tx.FindBySlot(ctx, p.Date, p.TimeSlot)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return err
	case self != 0 && other.ID == self:
		return nil
	default:
		return ErrSlotConflict
	}
}
