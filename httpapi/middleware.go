package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "taskhub/errors"
)

type ctxKey string

const (
	ctxUserID ctxKey = "user_id"
	ctxEmail  ctxKey = "email"
)

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// authMiddleware validates the bearer JWT with the same TokenService
// the realtime layer uses, so both surfaces resolve a credential to the
// same identity.
func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		identity, err := s.tokens.Verify(token)
		if err != nil {
			if errors.Is(err, apperrors.ErrExpiredToken) {
				writeError(w, http.StatusUnauthorized, "authentication token expired")
				return
			}
			writeError(w, http.StatusUnauthorized, "invalid authentication token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserID, identity.UserID)
		ctx = context.WithValue(ctx, ctxEmail, identity.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(ctx context.Context) string {
	id, _ := ctx.Value(ctxUserID).(string)
	return id
}
