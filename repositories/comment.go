//go:generate go run go.uber.org/mock/mockgen -source=comment.go -destination=../mocks/mock_comment_repository.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"time"

	"taskhub/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ICommentRepository interface {
	CreateComment(ctx context.Context, taskID, userID, content string) (domain.Comment, error)
	ListComments(ctx context.Context, taskID string) ([]domain.Comment, error)
}

type CommentRepository struct {
	db *pgxpool.Pool
}

func NewCommentRepository(db *pgxpool.Pool) ICommentRepository {
	return &CommentRepository{db: db}
}

// CreateComment persists the comment and returns it with the author's
// public profile resolved, as broadcast in comment:added events.
func (r *CommentRepository) CreateComment(ctx context.Context, taskID, userID, content string) (domain.Comment, error) {
	c := domain.Comment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.db.Exec(ctx, `
		insert into comments (id, task_id, user_id, content, created_at)
		values ($1, $2, $3, $4, $5)
	`, c.ID, c.TaskID, c.UserID, c.Content, c.CreatedAt); err != nil {
		return domain.Comment{}, fmt.Errorf("insert comment: %w", err)
	}

	err := r.db.QueryRow(ctx, `
		select id, email, name, coalesce(avatar_url, '')
		from users where id = $1
	`, userID).Scan(&c.Author.ID, &c.Author.Email, &c.Author.Name, &c.Author.AvatarURL)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("resolve comment author: %w", err)
	}
	return c, nil
}

func (r *CommentRepository) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	rows, err := r.db.Query(ctx, `
		select c.id, c.task_id, c.user_id, c.content, c.created_at,
			u.id, u.email, u.name, coalesce(u.avatar_url, '')
		from comments c
		join users u on u.id = c.user_id
		where c.task_id = $1
		order by c.created_at
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Content, &c.CreatedAt,
			&c.Author.ID, &c.Author.Email, &c.Author.Name, &c.Author.AvatarURL); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
