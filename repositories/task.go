//go:generate go run go.uber.org/mock/mockgen -source=task.go -destination=../mocks/mock_task_repository.go -package=mocks
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

// TaskFilter narrows ListTasks. Zero values mean "no constraint".
type TaskFilter struct {
	Status     domain.TaskStatus
	Priority   domain.TaskPriority
	AssigneeID string
	CreatorID  string
	TeamID     string
}

type ITaskRepository interface {
	CreateTask(ctx context.Context, task domain.Task) (domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	ListTasksForUser(ctx context.Context, userID string, filter TaskFilter) ([]domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) ITaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, title, description, status, priority, due_date,
	creator_id, coalesce(assignee_id, ''), coalesce(team_id, ''), created_at, updated_at`

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate,
		&t.CreatorID, &t.AssigneeID, &t.TeamID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// nullable maps the domain's empty-string convention to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *TaskRepository) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.ID = uuid.NewString()
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := r.db.Exec(ctx, `
		insert into tasks (id, title, description, status, priority, due_date,
			creator_id, assignee_id, team_id, created_at, updated_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, task.ID, task.Title, task.Description, task.Status, task.Priority, task.DueDate,
		task.CreatorID, nullable(task.AssigneeID), nullable(task.TeamID),
		task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, id string) (domain.Task, error) {
	task, err := scanTask(r.db.QueryRow(ctx,
		`select `+taskColumns+` from tasks where id = $1`, id))
	if err == pgx.ErrNoRows {
		return domain.Task{}, errors.ErrNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("query task: %w", err)
	}
	return task, nil
}

// ListTasksForUser returns the tasks visible to a user: tasks they
// created, tasks assigned to them, and tasks of teams they belong to.
func (r *TaskRepository) ListTasksForUser(ctx context.Context, userID string, filter TaskFilter) ([]domain.Task, error) {
	query := `select ` + taskColumns + ` from tasks
		where (creator_id = $1 or assignee_id = $1
			or team_id in (select team_id from team_members where user_id = $1))`
	args := []any{userID}

	add := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(" and %s = $%d", column, len(args))
	}
	if filter.Status != "" {
		add("status", filter.Status)
	}
	if filter.Priority != "" {
		add("priority", filter.Priority)
	}
	if filter.AssigneeID != "" {
		add("assignee_id", filter.AssigneeID)
	}
	if filter.CreatorID != "" {
		add("creator_id", filter.CreatorID)
	}
	if filter.TeamID != "" {
		add("team_id", filter.TeamID)
	}
	query += " order by created_at desc"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.UpdatedAt = time.Now().UTC()
	tag, err := r.db.Exec(ctx, `
		update tasks
		set title = $2, description = $3, status = $4, priority = $5,
			due_date = $6, assignee_id = $7, team_id = $8, updated_at = $9
		where id = $1
	`, task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, nullable(task.AssigneeID), nullable(task.TeamID), task.UpdatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Task{}, errors.ErrNotFound
	}
	return task, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `delete from tasks where id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.ErrNotFound
	}
	return nil
}
