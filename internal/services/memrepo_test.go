package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bfqc/courtres/internal/models"
	"github.com/bfqc/courtres/internal/services"
)

// memRepo is an in-memory services.Repository with the same uniqueness
// rule as the sqlite store.
type memRepo struct {
	txMu   sync.Mutex
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.Reservation
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[uint]models.Reservation)}
}

func (m *memRepo) FindByID(_ context.Context, id uint) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &r, nil
}

func (m *memRepo) FindBySlot(_ context.Context, date time.Time, slot string) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Date.Equal(date) && r.TimeSlot == slot {
			return &r, nil
		}
	}
	return nil, services.ErrNotFound
}

func (m *memRepo) CountByContact(_ context.Context, date time.Time, contact string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.rows {
		if r.Date.Equal(date) && r.ContactNumber == contact {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) taken(r *models.Reservation) bool {
	for id, o := range m.rows {
		if id != r.ID && o.Date.Equal(r.Date) && o.TimeSlot == r.TimeSlot {
			return true
		}
	}
	return false
}

func (m *memRepo) Insert(_ context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.taken(r) {
		return services.ErrSlotConflict
	}
	m.nextID++
	r.ID = m.nextID
	m.rows[r.ID] = *r
	return nil
}

func (m *memRepo) Update(_ context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[r.ID]; !ok {
		return services.ErrNotFound
	}
	if m.taken(r) {
		return services.ErrSlotConflict
	}
	m.rows[r.ID] = *r
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return services.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepo) ListByDates(_ context.Context, dates []time.Time) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reservation
	for _, r := range m.rows {
		for _, d := range dates {
			if r.Date.Equal(d) {
				out = append(out, r)
				break
			}
		}
	}
	services.SortBySlot(out)
	return out, nil
}

func (m *memRepo) ListAll(_ context.Context) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Reservation, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) WithinTx(_ context.Context, fn func(tx services.Repository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(m)
}

// fixedClock pins the engine to a known instant.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
