package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bfqc/courtres/internal/models"
	"github.com/bfqc/courtres/internal/services"
)

// ReservationStore is the gorm-backed services.Repository.
type ReservationStore struct {
	db *gorm.DB
}

func NewReservationStore(conn *gorm.DB) *ReservationStore {
	return &ReservationStore{db: conn}
}

var _ services.Repository = (*ReservationStore)(nil)

func (s *ReservationStore) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, normalize(err)
	}
	return &r, nil
}

func (s *ReservationStore) FindBySlot(ctx context.Context, date time.Time, slot string) (*models.Reservation, error) {
	var r models.Reservation
	err := s.db.WithContext(ctx).
		Where("date = ? AND time_slot = ?", date, slot).
		First(&r).Error
	if err != nil {
		return nil, normalize(err)
	}
	return &r, nil
}

func (s *ReservationStore) CountByContact(ctx context.Context, date time.Time, contact string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("date = ? AND contact_number = ?", date, contact).
		Count(&n).Error
	return n, err
}

func (s *ReservationStore) Insert(ctx context.Context, r *models.Reservation) error {
	return normalize(s.db.WithContext(ctx).Create(r).Error)
}

func (s *ReservationStore) Update(ctx context.Context, r *models.Reservation) error {
	res := s.db.WithContext(ctx).Model(&models.Reservation{ID: r.ID}).
		Select("date", "time_slot", "name", "contact_number", "with_coaching", "updated_at").
		Updates(r)
	if res.Error != nil {
		return normalize(res.Error)
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *ReservationStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Reservation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *ReservationStore) ListByDates(ctx context.Context, dates []time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	if len(dates) == 0 {
		return out, nil
	}
	err := s.db.WithContext(ctx).
		Where("date IN ?", dates).
		Order("date asc, time_slot asc").
		Find(&out).Error
	return out, err
}

func (s *ReservationStore) ListAll(ctx context.Context) ([]models.Reservation, error) {
	var out []models.Reservation
	err := s.db.WithContext(ctx).Order("date asc, time_slot asc").Find(&out).Error
	return out, err
}

func (s *ReservationStore) WithinTx(ctx context.Context, fn func(tx services.Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReservationStore{db: tx})
	})
}

// normalize maps gorm errors onto the services sentinels.
func normalize(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return services.ErrNotFound
	case isUniqueViolation(err):
		return services.ErrSlotConflict
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
