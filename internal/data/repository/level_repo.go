package repository

import (
	"context"
	"fmt"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserLevelRepository interface {
	Create(ctx context.Context, level *entity.UserLevel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UserLevel, error)
	FindByName(ctx context.Context, name string) (*entity.UserLevel, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.UserLevel, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, level *entity.UserLevel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userLevelRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserLevelRepository(db database.PgxIface, log *zap.Logger) UserLevelRepository {
	return &userLevelRepository{
		db:  db,
		log: log.With(zap.String("repository", "user_level")),
	}
}

func (r *userLevelRepository) Create(ctx context.Context, level *entity.UserLevel) error {
	query := `
		INSERT INTO user_levels (id, name, discount_percentage, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		level.ID,
		level.Name,
		level.DiscountPercentage,
		level.Description,
		level.CreatedAt,
		level.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create user level",
			zap.Error(err),
			zap.String("name", level.Name),
		)
		return fmt.Errorf("create user level %s: %w", level.Name, err)
	}

	return nil
}

func (r *userLevelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserLevel, error) {
	query := `
		SELECT id, name, discount_percentage, description, created_at, updated_at, deleted_at
		FROM user_levels
		WHERE id = $1 AND deleted_at IS NULL
	`

	var level entity.UserLevel
	err := r.db.QueryRow(ctx, query, id).Scan(
		&level.ID,
		&level.Name,
		&level.DiscountPercentage,
		&level.Description,
		&level.CreatedAt,
		&level.UpdatedAt,
		&level.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user level by ID",
			zap.Error(err),
			zap.String("level_id", id.String()),
		)
		return nil, fmt.Errorf("find user level by ID %s: %w", id.String(), err)
	}

	return &level, nil
}

func (r *userLevelRepository) FindByName(ctx context.Context, name string) (*entity.UserLevel, error) {
	query := `
		SELECT id, name, discount_percentage, description, created_at, updated_at, deleted_at
		FROM user_levels
		WHERE name = $1 AND deleted_at IS NULL
	`

	var level entity.UserLevel
	err := r.db.QueryRow(ctx, query, name).Scan(
		&level.ID,
		&level.Name,
		&level.DiscountPercentage,
		&level.Description,
		&level.CreatedAt,
		&level.UpdatedAt,
		&level.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user level by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find user level by name %s: %w", name, err)
	}

	return &level, nil
}

func (r *userLevelRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.UserLevel, error) {
	query := `
		SELECT id, name, discount_percentage, description, created_at, updated_at, deleted_at
		FROM user_levels
		WHERE deleted_at IS NULL
		ORDER BY discount_percentage ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get user levels",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all user levels: %w", err)
	}
	defer rows.Close()

	var levels []*entity.UserLevel
	for rows.Next() {
		var level entity.UserLevel
		err := rows.Scan(
			&level.ID,
			&level.Name,
			&level.DiscountPercentage,
			&level.Description,
			&level.CreatedAt,
			&level.UpdatedAt,
			&level.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan user level row", zap.Error(err))
			return nil, fmt.Errorf("scan user level row: %w", err)
		}
		levels = append(levels, &level)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user level rows: %w", err)
	}

	return levels, nil
}

func (r *userLevelRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM user_levels WHERE deleted_at IS NULL`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count user levels", zap.Error(err))
		return 0, fmt.Errorf("count user levels: %w", err)
	}

	return count, nil
}

func (r *userLevelRepository) Update(ctx context.Context, level *entity.UserLevel) error {
	query := `
		UPDATE user_levels
		SET name = $2, discount_percentage = $3, description = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		level.ID,
		level.Name,
		level.DiscountPercentage,
		level.Description,
		level.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update user level",
			zap.Error(err),
			zap.String("level_id", level.ID.String()),
		)
		return fmt.Errorf("update user level %s: %w", level.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user level %s not found", level.ID.String())
	}

	return nil
}

func (r *userLevelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE user_levels SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete user level",
			zap.Error(err),
			zap.String("level_id", id.String()),
		)
		return fmt.Errorf("delete user level %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user level %s not found", id.String())
	}

	r.log.Info("User level deleted", zap.String("level_id", id.String()))
	return nil
}
