package usecase

import (
	"context"
	"testing"
	"time"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/internal/dto/request"
	"pricelist-manager/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	repo, userRepo, _, _, _, _, _, _ := newTestRepository()

	var created *entity.User
	userRepo.CreateFn = func(ctx context.Context, user *entity.User) error {
		created = user
		return nil
	}

	svc := NewAuthService(repo, testConfig(t.TempDir()), testLogger())

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "علی رضایی",
		Email:    "ali@example.com",
		Password: "secret1",
		Phone:    strPtr("09123456789"),
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, entity.RoleUser, created.Role)
	assert.False(t, created.IsPhoneVerified)
	assert.True(t, utils.CheckPasswordHash("secret1", created.PasswordHash))

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ali@example.com", resp.Email)
	assert.Equal(t, entity.RoleUser, resp.Role)
	assert.Equal(t, created.ID.String(), resp.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo, userRepo, _, _, _, _, _, _ := newTestRepository()

	userRepo.FindByEmailFn = func(ctx context.Context, email string) (*entity.User, error) {
		return &entity.User{Email: email}, nil
	}

	svc := NewAuthService(repo, testConfig(t.TempDir()), testLogger())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "علی",
		Email:    "taken@example.com",
		Password: "secret1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already registered")
}

func TestRegisterShortPassword(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepository()
	svc := NewAuthService(repo, testConfig(t.TempDir()), testLogger())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "علی",
		Email:    "ali@example.com",
		Password: "123",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLogin(t *testing.T) {
	repo, userRepo, _, _, _, _, _, _ := newTestRepository()

	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	userRepo.FindByEmailFn = func(ctx context.Context, email string) (*entity.User, error) {
		return &entity.User{
			Base:         entity.Base{ID: uuid.New()},
			Email:        email,
			PasswordHash: hash,
			Role:         entity.RoleUser,
		}, nil
	}

	svc := NewAuthService(repo, testConfig(t.TempDir()), testLogger())

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "ali@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Email:    "ali@example.com",
		Password: "wrong-1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepository()
	svc := NewAuthService(repo, testConfig(t.TempDir()), testLogger())

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestSendOTPExistingUser(t *testing.T) {
	repo, userRepo, _, _, _, _, _, _ := newTestRepository()

	phone := "09123456789"
	var updated *entity.User
	userRepo.FindByPhoneFn = func(ctx context.Context, p string) (*entity.User, error) {
		return &entity.User{
			Base:  entity.Base{ID: uuid.New()},
			Phone: &p,
		}, nil
	}
	userRepo.UpdateFn = func(ctx context.Context, user *entity.User) error {
		updated = user
		return nil
	}

	svc := NewAuthService(repo, testConfig(t.TempDir()), testLogger())

	code, err := svc.SendOTP(context.Background(), &request.SendOTPRequest{Phone: phone})
	require.NoError(t, err)
	assert.Len(t, code, 6)

	require.NotNil(t, updated)
	require.NotNil(t, updated.OTPCode)
	assert.Equal(t, code, *updated.OTPCode)
	require.NotNil(t, updated.OTPExpires)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), *updated.OTPExpires, time.Minute)
}

func TestSendOTPCreatesPlaceholderUser(t *testing.T) {
	repo, userRepo, _, _, _, _, _, _ := newTestRepository()

	var created *entity.User
	userRepo.CreateFn = func(ctx context.Context, user *entity.User) error {
		created = user
		return nil
	}

	svc := NewAuthService(repo, testConfig(t.TempDir()), testLogger())

	code, err := svc.SendOTP(context.Background(), &request.SendOTPRequest{Phone: "09123456789"})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "کاربر 6789", created.Name)
	assert.Equal(t, "09123456789@temp.com", created.Email)
	assert.Equal(t, entity.RoleUser, created.Role)
	assert.False(t, created.IsPhoneVerified)
	require.NotNil(t, created.OTPCode)
	assert.Equal(t, code, *created.OTPCode)
}

func TestVerifyOTP(t *testing.T) {
	repo, userRepo, _, _, _, _, _, _ := newTestRepository()

	code := "123456"
	expires := time.Now().Add(5 * time.Minute)
	var updated *entity.User
	userRepo.FindByPhoneFn = func(ctx context.Context, p string) (*entity.User, error) {
		return &entity.User{
			Base:       entity.Base{ID: uuid.New()},
			Email:      "ali@example.com",
			Phone:      &p,
			Role:       entity.RoleUser,
			OTPCode:    &code,
			OTPExpires: &expires,
		}, nil
	}
	userRepo.UpdateFn = func(ctx context.Context, user *entity.User) error {
		updated = user
		return nil
	}

	svc := NewAuthService(repo, testConfig(t.TempDir()), testLogger())

	resp, err := svc.VerifyOTP(context.Background(), &request.VerifyOTPRequest{
		Phone: "09123456789",
		Code:  code,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	require.NotNil(t, updated)
	assert.True(t, updated.IsPhoneVerified)
	assert.Nil(t, updated.OTPCode)
	assert.Nil(t, updated.OTPExpires)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	repo, userRepo, _, _, _, _, _, _ := newTestRepository()

	code := "123456"
	expires := time.Now().Add(5 * time.Minute)
	userRepo.FindByPhoneFn = func(ctx context.Context, p string) (*entity.User, error) {
		return &entity.User{
			Base:       entity.Base{ID: uuid.New()},
			Phone:      &p,
			OTPCode:    &code,
			OTPExpires: &expires,
		}, nil
	}

	svc := NewAuthService(repo, testConfig(t.TempDir()), testLogger())

	_, err := svc.VerifyOTP(context.Background(), &request.VerifyOTPRequest{
		Phone: "09123456789",
		Code:  "654321",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid code")
}

func TestVerifyOTPExpired(t *testing.T) {
	repo, userRepo, _, _, _, _, _, _ := newTestRepository()

	code := "123456"
	expires := time.Now().Add(-time.Minute)
	userRepo.FindByPhoneFn = func(ctx context.Context, p string) (*entity.User, error) {
		return &entity.User{
			Base:       entity.Base{ID: uuid.New()},
			Phone:      &p,
			OTPCode:    &code,
			OTPExpires: &expires,
		}, nil
	}

	svc := NewAuthService(repo, testConfig(t.TempDir()), testLogger())

	_, err := svc.VerifyOTP(context.Background(), &request.VerifyOTPRequest{
		Phone: "09123456789",
		Code:  code,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code has expired")
}

func TestVerifyOTPUnknownPhone(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepository()
	svc := NewAuthService(repo, testConfig(t.TempDir()), testLogger())

	_, err := svc.VerifyOTP(context.Background(), &request.VerifyOTPRequest{
		Phone: "09123456789",
		Code:  "123456",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone not found")
}
