package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskhub/auth"
	"taskhub/domain"
	apperrors "taskhub/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func postJSON(target, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestRegister_Returns_A_Usable_Token(t *testing.T) {
	req := require.New(t)
	handler, m, tokens := newTestAPI(t)

	userID := uuid.NewString()
	m.users.EXPECT().
		CreateUser(gomock.Any(), "ada@example.com", "Ada", gomock.Any()).
		Return(userID, nil).Times(1)

	// When a valid registration is posted
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postJSON("/api/auth/register",
		`{"email":"ada@example.com","name":"Ada","password":"ComplexPass123!"}`))

	// Then the returned token resolves to the new user
	req.Equal(http.StatusCreated, rec.Code)
	var body map[string]string
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	identity, err := tokens.Verify(body["token"])
	req.NoError(err)
	req.Equal(userID, identity.UserID)
}

func TestRegister_Duplicate_Email_Conflicts(t *testing.T) {
	req := require.New(t)
	handler, m, _ := newTestAPI(t)

	m.users.EXPECT().
		CreateUser(gomock.Any(), "ada@example.com", "Ada", gomock.Any()).
		Return("", apperrors.ErrUserAlreadyExists).Times(1)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postJSON("/api/auth/register",
		`{"email":"ada@example.com","name":"Ada","password":"ComplexPass123!"}`))

	req.Equal(http.StatusConflict, rec.Code)
}

func TestRegister_Weak_Password_Is_Rejected(t *testing.T) {
	req := require.New(t)
	handler, _, _ := newTestAPI(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postJSON("/api/auth/register",
		`{"email":"ada@example.com","name":"Ada","password":"weak"}`))

	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestLogin_Succeeds_With_Correct_Credentials(t *testing.T) {
	req := require.New(t)
	handler, m, _ := newTestAPI(t)

	password := "ComplexPass123!"
	hash, err := auth.HashPassword(password)
	req.NoError(err)
	stored := domain.User{
		ID:           uuid.NewString(),
		Email:        "ada@example.com",
		Name:         "Ada",
		PasswordHash: hash,
	}

	m.users.EXPECT().GetUserByEmail(gomock.Any(), stored.Email).
		Return(stored, nil).Times(1)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postJSON("/api/auth/login",
		`{"email":"ada@example.com","password":"ComplexPass123!"}`))

	req.Equal(http.StatusOK, rec.Code)
	var body map[string]string
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	req.NotEmpty(body["token"])
}

func TestLogin_Wrong_Password_Is_Unauthorized(t *testing.T) {
	req := require.New(t)
	handler, m, _ := newTestAPI(t)

	hash, err := auth.HashPassword("TheRealPassword123!")
	req.NoError(err)
	stored := domain.User{ID: uuid.NewString(), Email: "ada@example.com", PasswordHash: hash}

	m.users.EXPECT().GetUserByEmail(gomock.Any(), stored.Email).
		Return(stored, nil).Times(1)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postJSON("/api/auth/login",
		`{"email":"ada@example.com","password":"WrongPassword123!"}`))

	req.Equal(http.StatusUnauthorized, rec.Code)
}
