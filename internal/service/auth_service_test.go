package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), zap.NewNop())

	profile, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "hunter2",
		Phone:    "555-0101",
	})
	require.NoError(t, err)
	assert.False(t, profile.ID.IsZero())
	assert.Equal(t, "Asha", profile.Name)

	loggedIn, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "asha@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), zap.NewNop())

	req := domain.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "hunter2"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), zap.NewNop())

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Asha", Email: "asha@example.com", Password: "hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email: "asha@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email: "nobody@example.com", Password: "hunter2",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
