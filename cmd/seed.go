package cmd

import (
	"context"
	"time"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/internal/data/repository"
	"pricelist-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seed fills an empty database with an admin account, the default user
// levels and a couple of sample categories. Safe to re-run, existing
// records are left alone.
func Seed(repo *repository.Repository, logger *zap.Logger) error {
	ctx := context.Background()
	now := time.Now()

	// Default levels, ordered by discount
	levels := []struct {
		name     string
		discount float64
		desc     string
	}{
		{"Bronze", 0, "Default level for new customers"},
		{"Silver", 5, "Regular customers"},
		{"Gold", 10, "High volume customers"},
		{"VIP", 15, "Wholesale partners"},
	}

	for _, l := range levels {
		existing, err := repo.UserLevel.FindByName(ctx, l.name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		desc := l.desc
		level := &entity.UserLevel{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:               l.name,
			DiscountPercentage: l.discount,
			Description:        &desc,
		}
		if err := repo.UserLevel.Create(ctx, level); err != nil {
			return err
		}
		logger.Info("Seeded user level", zap.String("name", l.name))
	}

	// Admin account
	adminEmail := "admin@example.com"
	existing, err := repo.User.FindByEmail(ctx, adminEmail)
	if err != nil {
		return err
	}
	if existing == nil {
		hashed, err := utils.HashPassword("admin123")
		if err != nil {
			return err
		}

		admin := &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:            "Administrator",
			Email:           adminEmail,
			PasswordHash:    hashed,
			Role:            entity.RoleAdmin,
			IsPhoneVerified: false,
		}
		if err := repo.User.Create(ctx, admin); err != nil {
			return err
		}
		logger.Info("Seeded admin account", zap.String("email", adminEmail))
	}

	// Sample categories
	for _, name := range []string{"لوازم برقی", "ابزار دستی"} {
		existing, err := repo.Category.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		category := &entity.Category{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name: name,
		}
		if err := repo.Category.Create(ctx, category); err != nil {
			return err
		}
		logger.Info("Seeded category", zap.String("name", name))
	}

	logger.Info("Seeding finished")
	return nil
}
