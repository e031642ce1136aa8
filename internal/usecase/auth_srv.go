package usecase

import (
	"context"
	"fmt"
	"time"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/internal/data/repository"
	"pricelist-manager/internal/dto/request"
	"pricelist-manager/internal/dto/response"
	"pricelist-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	SendOTP(ctx context.Context, req *request.SendOTPRequest) (string, error)
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Check email not taken
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existingUser != nil {
		return nil, fmt.Errorf("email already registered")
	}

	// 3. Check phone not taken
	if req.Phone != nil {
		existingUser, err = s.repo.User.FindByPhone(ctx, *req.Phone)
		if err != nil {
			s.log.Error("Failed to check phone", zap.Error(err), zap.String("phone", *req.Phone))
			return nil, fmt.Errorf("failed to check phone")
		}
		if existingUser != nil {
			return nil, fmt.Errorf("phone already registered")
		}
	}

	// 4. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// 5. Create user
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    hashedPassword,
		Phone:           req.Phone,
		Role:            entity.RoleUser,
		IsPhoneVerified: false,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create account")
	}

	// 6. Auto login after register
	token, expiresAt, err := utils.GenerateToken(user.ID, user.Email, string(user.Role), s.config.JWT)
	if err != nil {
		s.log.Error("Failed to generate token after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create token")
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials")
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("invalid credentials")
	}

	// 4. Issue token
	token, expiresAt, err := utils.GenerateToken(user.ID, user.Email, string(user.Role), s.config.JWT)
	if err != nil {
		s.log.Error("Failed to generate token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create token")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

// SendOTP stores a fresh code on the user row, creating a placeholder
// account when the phone is unknown. Returns the code so the caller can
// hand it to the SMS gateway.
func (s *authService) SendOTP(ctx context.Context, req *request.SendOTPRequest) (string, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("SendOTP validation failed", zap.Any("errors", errs))
		return "", fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Generate code and expiry
	code := utils.GenerateOTP(s.config.OTP.Length)
	expires := time.Now().Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute)

	// 3. Find or create user by phone
	user, err := s.repo.User.FindByPhone(ctx, req.Phone)
	if err != nil {
		s.log.Error("Failed to find user for OTP", zap.Error(err), zap.String("phone", req.Phone))
		return "", fmt.Errorf("failed to find user")
	}

	if user == nil {
		// Placeholder account verified later through the OTP flow
		hashedPassword, err := utils.HashPassword(uuid.NewString())
		if err != nil {
			s.log.Error("Failed to hash placeholder password", zap.Error(err))
			return "", fmt.Errorf("failed to create account")
		}

		now := time.Now()
		phone := req.Phone
		last4 := phone
		if len(phone) > 4 {
			last4 = phone[len(phone)-4:]
		}
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:            fmt.Sprintf("کاربر %s", last4),
			Email:           fmt.Sprintf("%s@temp.com", phone),
			PasswordHash:    hashedPassword,
			Phone:           &phone,
			Role:            entity.RoleUser,
			OTPCode:         &code,
			OTPExpires:      &expires,
			IsPhoneVerified: false,
		}

		if err := s.repo.User.Create(ctx, user); err != nil {
			s.log.Error("Failed to create placeholder user", zap.Error(err), zap.String("phone", req.Phone))
			return "", fmt.Errorf("failed to create account")
		}
	} else {
		user.OTPCode = &code
		user.OTPExpires = &expires
		user.UpdatedAt = time.Now()

		if err := s.repo.User.Update(ctx, user); err != nil {
			s.log.Error("Failed to store OTP", zap.Error(err), zap.String("user_id", user.ID.String()))
			return "", fmt.Errorf("failed to store code")
		}
	}

	// TODO: hand off to the SMS gateway once one is provisioned
	s.log.Info("OTP issued",
		zap.String("user_id", user.ID.String()),
		zap.String("phone", req.Phone))

	return code, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("VerifyOTP validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user
	user, err := s.repo.User.FindByPhone(ctx, req.Phone)
	if err != nil {
		s.log.Error("Failed to find user for OTP verify", zap.Error(err), zap.String("phone", req.Phone))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("phone not found")
	}

	// 3. Check code
	if user.OTPCode == nil || *user.OTPCode != req.Code {
		s.log.Warn("Wrong OTP code", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("invalid code")
	}

	// 4. Check expiry
	if user.OTPExpires == nil || time.Now().After(*user.OTPExpires) {
		s.log.Warn("Expired OTP code", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("code has expired")
	}

	// 5. Mark phone verified and clear the code
	user.IsPhoneVerified = true
	user.OTPCode = nil
	user.OTPExpires = nil
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to mark phone verified", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to verify phone")
	}

	// 6. Issue token
	token, expiresAt, err := utils.GenerateToken(user.ID, user.Email, string(user.Role), s.config.JWT)
	if err != nil {
		s.log.Error("Failed to generate token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create token")
	}

	s.log.Info("Phone verified",
		zap.String("user_id", user.ID.String()),
		zap.String("phone", req.Phone))

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load current user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
