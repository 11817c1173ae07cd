package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/virajdomadia/E-Commerce-backend/internal/domain"
	"github.com/virajdomadia/E-Commerce-backend/internal/store"
)

const (
	adminName     = "Admin"
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
)

// SeedAdmin creates the default admin account. It is idempotent: when a
// user with the admin email already exists nothing is written.
func SeedAdmin(ctx context.Context, users store.UserStore) error {
	log := logrus.WithField("component", "seed")

	_, err := users.GetByEmail(ctx, adminEmail)
	if err == nil {
		log.Info("admin user already exists")
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Name:     adminName,
		Email:    adminEmail,
		Password: string(hashed),
		IsAdmin:  true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Info("admin user seeded")
	return nil
}
