package auth

import (
	"errors"
	"fmt"
	"time"

	apperrors "taskhub/errors"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the result of a successful token verification.
type Identity struct {
	UserID string
	Email  string
}

// TokenService signs and verifies the JWTs used by both the HTTP
// bearer middleware and the realtime authentication handler. A single
// instance is shared between the two layers so that the same credential
// always resolves to the same identity.
type TokenService struct {
	key      []byte
	issuer   string
	duration time.Duration
}

func NewTokenService(secret, issuer string, duration time.Duration) *TokenService {
	return &TokenService{key: []byte(secret), issuer: issuer, duration: duration}
}

// Generate creates a signed JWT for a specific user.
func (s *TokenService) Generate(userID, email string) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	// HS256 (HMAC with SHA256), signed with the server's secret key.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Verify parses and validates the signature and expiration of a JWT
// string. Expired tokens are reported as ErrExpiredToken; every other
// failure (malformed, tampered, wrong algorithm) as ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("%w: %v", apperrors.ErrExpiredToken, err)
		}
		return Identity{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return Identity{}, apperrors.ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
