package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/repository"
)

// AuthService implements account creation and verification. Passwords
// are compared in plain text; hardening the credential storage is an
// explicit non-goal of this service.
type AuthService struct {
	users  UserStore
	logger *zap.Logger
}

func NewAuthService(users UserStore, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserProfile, error) {
	user := &domain.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrUserExists
		}
		s.logger.Error("Failed to register user", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.Hex()))
	profile := user.Profile()
	return &profile, nil
}

func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.UserProfile, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password != req.Password {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.Hex()))
	profile := user.Profile()
	return &profile, nil
}
