package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/bfqc/courtres/internal/models"
	"github.com/bfqc/courtres/internal/services"
)

type AdminStore struct {
	db *gorm.DB
}

func NewAdminStore(conn *gorm.DB) *AdminStore {
	return &AdminStore{db: conn}
}

var _ services.AdminStore = (*AdminStore)(nil)

func (s *AdminStore) FindAdmin(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		return nil, normalize(err)
	}
	return &a, nil
}

func (s *AdminStore) CreateAdmin(ctx context.Context, a *models.Admin) error {
	return s.db.WithContext(ctx).Create(a).Error
}
