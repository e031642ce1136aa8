package usecase

import (
	"context"
	"testing"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestLevelCreateDuplicateName(t *testing.T) {
	repo, _, levelRepo, _, _, _, _, _ := newTestRepository()

	levelRepo.FindByNameFn = func(ctx context.Context, name string) (*entity.UserLevel, error) {
		return &entity.UserLevel{Name: name}, nil
	}

	svc := NewUserLevelService(repo, testLogger())

	_, err := svc.Create(context.Background(), &request.UserLevelRequest{
		Name:               "Gold",
		DiscountPercentage: 10,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level name already exists")
}

func TestLevelUpdatePropagatesDiscount(t *testing.T) {
	repo, userRepo, levelRepo, _, _, _, _, _ := newTestRepository()

	levelID := uuid.New()
	levelRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.UserLevel, error) {
		return &entity.UserLevel{
			Base:               entity.Base{ID: id},
			Name:               "Gold",
			DiscountPercentage: 10,
		}, nil
	}

	var syncedLevel uuid.UUID
	var syncedDiscount float64
	synced := false
	userRepo.SyncDiscountByLevelIDFn = func(ctx context.Context, id uuid.UUID, discount float64) error {
		synced = true
		syncedLevel = id
		syncedDiscount = discount
		return nil
	}

	svc := NewUserLevelService(repo, testLogger())

	resp, err := svc.Update(context.Background(), levelID, &request.UserLevelUpdateRequest{
		DiscountPercentage: floatPtr(15),
	})
	require.NoError(t, err)

	assert.True(t, synced)
	assert.Equal(t, levelID, syncedLevel)
	assert.Equal(t, 15.0, syncedDiscount)
	assert.Equal(t, 15.0, resp.DiscountPercentage)
}

func TestLevelUpdateNameOnlySkipsSync(t *testing.T) {
	repo, userRepo, levelRepo, _, _, _, _, _ := newTestRepository()

	levelRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.UserLevel, error) {
		return &entity.UserLevel{
			Base:               entity.Base{ID: id},
			Name:               "Gold",
			DiscountPercentage: 10,
		}, nil
	}

	synced := false
	userRepo.SyncDiscountByLevelIDFn = func(ctx context.Context, id uuid.UUID, discount float64) error {
		synced = true
		return nil
	}

	svc := NewUserLevelService(repo, testLogger())

	name := "Platinum"
	_, err := svc.Update(context.Background(), uuid.New(), &request.UserLevelUpdateRequest{
		Name: &name,
	})
	require.NoError(t, err)
	assert.False(t, synced, "unchanged discount must not touch users")
}

func TestLevelDeleteWithMembers(t *testing.T) {
	repo, userRepo, levelRepo, _, _, _, _, _ := newTestRepository()

	levelRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.UserLevel, error) {
		return &entity.UserLevel{Base: entity.Base{ID: id}, Name: "Gold"}, nil
	}
	userRepo.CountByLevelIDFn = func(ctx context.Context, levelID uuid.UUID) (int64, error) {
		return 3, nil
	}

	deleted := false
	levelRepo.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
		deleted = true
		return nil
	}

	svc := NewUserLevelService(repo, testLogger())

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level has assigned users")
	assert.False(t, deleted)
}

func TestLevelDeleteEmpty(t *testing.T) {
	repo, _, levelRepo, _, _, _, _, _ := newTestRepository()

	levelRepo.FindByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.UserLevel, error) {
		return &entity.UserLevel{Base: entity.Base{ID: id}, Name: "Bronze"}, nil
	}

	deleted := false
	levelRepo.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
		deleted = true
		return nil
	}

	svc := NewUserLevelService(repo, testLogger())

	require.NoError(t, svc.Delete(context.Background(), uuid.New()))
	assert.True(t, deleted)
}

func TestLevelDeleteNotFound(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepository()
	svc := NewUserLevelService(repo, testLogger())

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level not found")
}
