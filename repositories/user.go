//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"time"

	"taskhub/domain"
	"taskhub/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, email, name, hashedPassword string) (string, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	FindUserByID(ctx context.Context, id string) (domain.PublicUser, error)
	FindUsersByNames(ctx context.Context, names []string) ([]domain.PublicUser, error)
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) IUserRepository {
	return &UserRepository{db: db}
}

// CreateUser persists a new account and returns the generated user ID.
// The email uniqueness check and the insert run in one statement so two
// concurrent registrations cannot both succeed.
func (r *UserRepository) CreateUser(ctx context.Context, email, name, hashedPassword string) (string, error) {
	newID := uuid.NewString()
	tag, err := r.db.Exec(ctx, `
		insert into users (id, email, name, password_hash, created_at)
		values ($1, $2, $3, $4, $5)
		on conflict (email) do nothing
	`, newID, email, name, hashedPassword, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return "", errors.ErrUserAlreadyExists
	}
	return newID, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `
		select id, email, name, coalesce(avatar_url, ''), password_hash, created_at
		from users
		where email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.PasswordHash, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return domain.User{}, errors.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("query user by email: %w", err)
	}
	return u, nil
}

// FindUserByID resolves the public profile broadcast in presence events.
func (r *UserRepository) FindUserByID(ctx context.Context, id string) (domain.PublicUser, error) {
	var u domain.PublicUser
	err := r.db.QueryRow(ctx, `
		select id, email, name, coalesce(avatar_url, '')
		from users
		where id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL)
	if err == pgx.ErrNoRows {
		return domain.PublicUser{}, errors.ErrNotFound
	}
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("query user by id: %w", err)
	}
	return u, nil
}

// FindUsersByNames resolves @mentions. Unknown names are silently
// absent from the result.
func (r *UserRepository) FindUsersByNames(ctx context.Context, names []string) ([]domain.PublicUser, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
		select id, email, name, coalesce(avatar_url, '')
		from users
		where name = any($1)
	`, names)
	if err != nil {
		return nil, fmt.Errorf("query users by names: %w", err)
	}
	defer rows.Close()

	var users []domain.PublicUser
	for rows.Next() {
		var u domain.PublicUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
