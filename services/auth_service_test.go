package services

import (
	"context"
	"testing"
	"time"

	"taskhub/auth"
	"taskhub/domain"
	"taskhub/errors"
	"taskhub/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestTokens() *auth.TokenService {
	return auth.NewTokenService("test-secret-at-least-32-bytes-long", "taskhub", 24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIUserRepository(ctrl)
	tokens := newTestTokens()
	svc := NewAuthService(mockRepo, tokens)
	ctx := context.Background()

	t.Run("should register successfully when input is valid", func(t *testing.T) {
		req := require.New(t)
		email := "test@example.com"
		password := "ComplexPass123!"
		expectedUserID := "user-uuid"

		// Expect CreateUser to be called with a hashed password (not the plain one)
		mockRepo.EXPECT().
			CreateUser(ctx, email, "Ada", gomock.Not(password)).
			Return(expectedUserID, nil).
			Times(1)

		token, err := svc.Register(ctx, email, "Ada", password)

		req.NoError(err)
		req.NotEmpty(token)
	})

	t.Run("should fail when password complexity is not met", func(t *testing.T) {
		req := require.New(t)
		email := "test@example.com"
		password := "simple" // Fails validation

		// Repository should NEVER be called
		mockRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		token, err := svc.Register(ctx, email, "Ada", password)

		req.Error(err)
		req.ErrorIs(err, errors.ErrInvalidPassword)
		req.Empty(token)
	})

	t.Run("should fail when user already exists in repository", func(t *testing.T) {
		req := require.New(t)
		email := "duplicate@example.com"
		password := "ComplexPass123!"

		mockRepo.EXPECT().
			CreateUser(ctx, email, "Ada", gomock.Any()).
			Return("", errors.ErrUserAlreadyExists).
			Times(1)

		_, err := svc.Register(ctx, email, "Ada", password)

		req.ErrorIs(err, errors.ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIUserRepository(ctrl)
	tokens := newTestTokens()
	svc := NewAuthService(mockRepo, tokens)
	ctx := context.Background()

	t.Run("should login successfully with correct credentials", func(t *testing.T) {
		req := require.New(t)
		email := "user@example.com"
		password := "Secret123456!"

		hashedPassword, _ := auth.HashPassword(password)
		storedUser := domain.User{
			ID:           "uuid-123",
			Email:        email,
			Name:         "Ada",
			PasswordHash: hashedPassword,
		}

		mockRepo.EXPECT().
			GetUserByEmail(ctx, email).
			Return(storedUser, nil).
			Times(1)

		token, err := svc.Login(ctx, email, password)

		req.NoError(err)
		req.NotEmpty(token)

		// Optional: validate token claims
		identity, err := tokens.Verify(string(token))
		req.NoError(err)
		req.Equal(storedUser.ID, identity.UserID)
		req.Equal(storedUser.Email, identity.Email)
	})

	t.Run("should return invalid credentials when password matches nothing", func(t *testing.T) {
		req := require.New(t)
		email := "user@example.com"

		hashedPassword, _ := auth.HashPassword("CorrectPassword123!")
		storedUser := domain.User{
			Email:        email,
			PasswordHash: hashedPassword,
		}

		mockRepo.EXPECT().
			GetUserByEmail(ctx, email).
			Return(storedUser, nil).
			Times(1)

		_, err := svc.Login(ctx, email, "WrongPassword123!")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should return invalid credentials when user is not found", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			GetUserByEmail(ctx, "unknown@example.com").
			Return(domain.User{}, errors.ErrNotFound).
			Times(1)

		_, err := svc.Login(ctx, "unknown@example.com", "anyPassword")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})
}
