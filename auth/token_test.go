package auth

import (
	"errors"
	"testing"
	"time"

	apperrors "taskhub/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-bytes-long"

func TestTokenService_Generate_And_Verify(t *testing.T) {
	req := require.New(t)
	service := NewTokenService(testSecret, "taskhub", time.Hour)
	userID := uuid.NewString()

	// When a token is generated and verified
	token, err := service.Generate(userID, "ada@example.com")
	req.NoError(err)

	identity, err := service.Verify(token)

	// Then the identity round-trips
	req.NoError(err)
	req.Equal(userID, identity.UserID)
	req.Equal("ada@example.com", identity.Email)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	req := require.New(t)

	// Given a token that expired one hour ago
	expired := NewTokenService(testSecret, "taskhub", -time.Hour)
	token, err := expired.Generate(uuid.NewString(), "ada@example.com")
	req.NoError(err)

	// When it is verified
	_, err = NewTokenService(testSecret, "taskhub", time.Hour).Verify(token)

	// Then the expiry is distinguishable from other failures
	req.Error(err)
	req.True(errors.Is(err, apperrors.ErrExpiredToken))
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	req := require.New(t)
	service := NewTokenService(testSecret, "taskhub", time.Hour)

	_, err := service.Verify("definitely.not.ajwt")

	req.Error(err)
	req.True(errors.Is(err, apperrors.ErrInvalidToken))
}

func TestTokenService_Verify_Wrong_Key(t *testing.T) {
	req := require.New(t)

	// Given a token signed with another key
	other := NewTokenService("another-secret-also-32-bytes-long!", "taskhub", time.Hour)
	token, err := other.Generate(uuid.NewString(), "ada@example.com")
	req.NoError(err)

	// When verified against our key
	_, err = NewTokenService(testSecret, "taskhub", time.Hour).Verify(token)

	// Then the signature mismatch is an invalid token
	req.Error(err)
	req.True(errors.Is(err, apperrors.ErrInvalidToken))
}
