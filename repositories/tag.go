//go:generate go run go.uber.org/mock/mockgen -source=tag.go -destination=../mocks/mock_tag_repository.go -package=mocks
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

type ITagRepository interface {
	CreateTag(ctx context.Context, name, color, teamID string) (domain.Tag, error)
	GetTag(ctx context.Context, id string) (domain.Tag, error)

	// ListTags returns one team's tags when teamIDs holds a single id,
	// or the tags of every given team (newest first) for the
	// no-filter listing across the caller's memberships.
	ListTags(ctx context.Context, teamIDs []string) ([]domain.Tag, error)

	UpdateTag(ctx context.Context, tag domain.Tag) (domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

type TagRepository struct {
	db *pgxpool.Pool
}

func NewTagRepository(db *pgxpool.Pool) ITagRepository {
	return &TagRepository{db: db}
}

// CreateTag inserts the tag; a duplicate name within the same team is
// rejected by the partial unique index and surfaces as
// ErrTagAlreadyExists. Team-less tags may share names freely.
func (r *TagRepository) CreateTag(ctx context.Context, name, color, teamID string) (domain.Tag, error) {
	tag := domain.Tag{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		TeamID:    teamID,
		CreatedAt: time.Now().UTC(),
	}

	tagsCount, err := r.db.Exec(ctx, `
		insert into tags (id, name, color, team_id, created_at)
		values ($1, $2, $3, $4, $5)
		on conflict (team_id, name) where team_id is not null do nothing
	`, tag.ID, tag.Name, nullable(tag.Color), nullable(tag.TeamID), tag.CreatedAt)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("insert tag: %w", err)
	}
	if tagsCount.RowsAffected() == 0 {
		return domain.Tag{}, errors.ErrTagAlreadyExists
	}
	return tag, nil
}

func (r *TagRepository) GetTag(ctx context.Context, id string) (domain.Tag, error) {
	var t domain.Tag
	err := r.db.QueryRow(ctx, `
		select id, name, coalesce(color, ''), coalesce(team_id::text, ''), created_at
		from tags
		where id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Color, &t.TeamID, &t.CreatedAt)
	if err == pgx.ErrNoRows {
		return domain.Tag{}, errors.ErrNotFound
	}
	if err != nil {
		return domain.Tag{}, fmt.Errorf("query tag: %w", err)
	}
	return t, nil
}

func (r *TagRepository) ListTags(ctx context.Context, teamIDs []string) ([]domain.Tag, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
		select id, name, coalesce(color, ''), coalesce(team_id::text, ''), created_at
		from tags
		where team_id = any($1::uuid[])
		order by created_at desc
	`, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.TeamID, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *TagRepository) UpdateTag(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	tagsCount, err := r.db.Exec(ctx, `
		update tags
		set name = $2, color = $3
		where id = $1
	`, tag.ID, tag.Name, nullable(tag.Color))
	if err != nil {
		return domain.Tag{}, fmt.Errorf("update tag: %w", err)
	}
	if tagsCount.RowsAffected() == 0 {
		return domain.Tag{}, errors.ErrNotFound
	}
	return tag, nil
}

func (r *TagRepository) DeleteTag(ctx context.Context, id string) error {
	tagsCount, err := r.db.Exec(ctx, `
		delete from tags where id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if tagsCount.RowsAffected() == 0 {
		return errors.ErrNotFound
	}
	return nil
}
