package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/bfqc/courtres/internal/models"
)

// AdminStore persists admin accounts. FindAdmin returns ErrNotFound for an
// unknown username.
type AdminStore interface {
	FindAdmin(ctx context.Context, username string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, a *models.Admin) error
}

type Auth struct {
	store AdminStore
	cost  int
}

// NewAuth uses bcrypt.DefaultCost when cost is out of range.
func NewAuth(store AdminStore, cost int) *Auth {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Auth{store: store, cost: cost}
}

// EnsureAdmin seeds the admin account if it does not exist yet.
func (a *Auth) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := a.store.FindAdmin(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	if err := a.store.CreateAdmin(ctx, &models.Admin{Username: username, PasswordHash: string(hash)}); err != nil {
		return false, err
	}
	return true, nil
}

func (a *Auth) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	adm, err := a.store.FindAdmin(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrAuthentication
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(adm.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthentication
	}
	return adm, nil
}
