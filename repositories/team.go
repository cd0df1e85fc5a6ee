//go:generate go run go.uber.org/mock/mockgen -source=team.go -destination=../mocks/mock_team_repository.go -package=mocks
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

type ITeamRepository interface {
	CreateTeam(ctx context.Context, name, description, ownerID string) (domain.Team, error)
	ListTeamsForUser(ctx context.Context, userID string) ([]domain.Team, error)

	// FindTeamsForUser is the membership resolver consulted by the
	// realtime layer on every authentication, every explicit room join
	// and every presence broadcast. Always a fresh query, never cached.
	FindTeamsForUser(ctx context.Context, userID string) ([]string, error)

	GetMember(ctx context.Context, teamID, userID string) (domain.TeamMember, error)
	AddMember(ctx context.Context, teamID, userID string, role domain.TeamRole) error
	RemoveMember(ctx context.Context, teamID, userID string) error
	ListMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error)
}

type TeamRepository struct {
	db *pgxpool.Pool
}

func NewTeamRepository(db *pgxpool.Pool) ITeamRepository {
	return &TeamRepository{db: db}
}

// CreateTeam inserts the team and its owner membership in one
// transaction, so a team can never exist without an owner.
func (r *TeamRepository) CreateTeam(ctx context.Context, name, description, ownerID string) (domain.Team, error) {
	team := domain.Team{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Team{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `
		insert into teams (id, name, description, created_at)
		values ($1, $2, $3, $4)
	`, team.ID, team.Name, team.Description, team.CreatedAt); err != nil {
		return domain.Team{}, fmt.Errorf("insert team: %w", err)
	}

	if _, err = tx.Exec(ctx, `
		insert into team_members (team_id, user_id, role, joined_at)
		values ($1, $2, $3, $4)
	`, team.ID, ownerID, domain.RoleOwner, team.CreatedAt); err != nil {
		return domain.Team{}, fmt.Errorf("insert owner membership: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return domain.Team{}, fmt.Errorf("commit: %w", err)
	}
	return team, nil
}

func (r *TeamRepository) ListTeamsForUser(ctx context.Context, userID string) ([]domain.Team, error) {
	rows, err := r.db.Query(ctx, `
		select t.id, t.name, t.description, t.created_at
		from teams t
		join team_members tm on tm.team_id = t.id
		where tm.user_id = $1
		order by t.created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query teams for user: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *TeamRepository) FindTeamsForUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		select team_id from team_members where user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query memberships: %w", err)
	}
	defer rows.Close()

	var teamIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		teamIDs = append(teamIDs, id)
	}
	return teamIDs, rows.Err()
}

// GetMember returns ErrNotTeamMember when the pair does not exist; the
// realtime router and the HTTP handlers both rely on that sentinel.
func (r *TeamRepository) GetMember(ctx context.Context, teamID, userID string) (domain.TeamMember, error) {
	var m domain.TeamMember
	err := r.db.QueryRow(ctx, `
		select team_id, user_id, role, joined_at
		from team_members
		where team_id = $1 and user_id = $2
	`, teamID, userID).Scan(&m.TeamID, &m.UserID, &m.Role, &m.JoinedAt)
	if err == pgx.ErrNoRows {
		return domain.TeamMember{}, errors.ErrNotTeamMember
	}
	if err != nil {
		return domain.TeamMember{}, fmt.Errorf("query membership: %w", err)
	}
	return m, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID string, role domain.TeamRole) error {
	_, err := r.db.Exec(ctx, `
		insert into team_members (team_id, user_id, role, joined_at)
		values ($1, $2, $3, $4)
		on conflict (team_id, user_id) do update set role = excluded.role
	`, teamID, userID, role, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	tag, err := r.db.Exec(ctx, `
		delete from team_members where team_id = $1 and user_id = $2
	`, teamID, userID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.ErrNotTeamMember
	}
	return nil
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	rows, err := r.db.Query(ctx, `
		select team_id, user_id, role, joined_at
		from team_members
		where team_id = $1
		order by joined_at
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
