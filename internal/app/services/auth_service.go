package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/repositories"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/auth"
)

// ErrInvalidLogin is returned for unknown users and wrong passwords alike
var ErrInvalidLogin = &apperrors.CustomError{Err: apperrors.ErrInvalidCredentials, Message: "Invalid username or password"}

// AuthService handles admin authentication
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

type authServiceImpl struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	now        func() time.Time
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		now:        time.Now,
		logger:     logger,
	}
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        string(u.Role),
		LastLoginAt: u.LastLoginAt,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.NewBadRequestError("Username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Info().Str("username", username).Msg("Login attempt for unknown user")
			return nil, ErrInvalidLogin
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Info().Str("username", username).Msg("Login attempt with wrong password")
		return nil, ErrInvalidLogin
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	loginAt := s.now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	} else {
		user.LastLoginAt = &loginAt
	}

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		User:      toUserResponse(user),
	}, nil
}

func (s *authServiceImpl) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}
