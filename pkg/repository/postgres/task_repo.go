package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ogaworks/taskboard/pkg/task"
)

// TaskRepository implements task.Repository backed by PostgreSQL (pgx).
// The unique index on title enforces global title uniqueness across owners.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) (*TaskRepository, error) {
	repo := &TaskRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *TaskRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			title TEXT NOT NULL UNIQUE,
			content TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL CHECK (status IN ('todo', 'doing', 'done')),
			deadline TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id);
	`)
	return err
}

func (r *TaskRepository) Create(ctx context.Context, t task.Task) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tasks (id, owner_id, title, content, status, deadline, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID, t.OwnerID, t.Title, t.Content, string(t.Status), t.Deadline, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return task.ErrTitleTaken
		}
		return err
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, content, status, deadline, created_at
		FROM tasks WHERE id = $1
	`, id)
	return scanTask(row)
}

func (r *TaskRepository) Update(ctx context.Context, t task.Task) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $2, content = $3, status = $4, deadline = $5
		WHERE id = $1
	`, t.ID, t.Title, t.Content, string(t.Status), t.Deadline)
	if err != nil {
		if isUniqueViolation(err) {
			return task.ErrTitleTaken
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return task.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return task.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context) ([]task.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, title, content, status, deadline, created_at
		FROM tasks ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]task.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, title, content, status, deadline, created_at
		FROM tasks WHERE owner_id = $1 ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *TaskRepository) TitleTaken(ctx context.Context, title string, excludeID uuid.UUID) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM tasks WHERE title = $1 AND id <> $2)
	`, title, excludeID).Scan(&taken)
	return taken, err
}

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	var status string
	var createdAt time.Time
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Content, &status, &t.Deadline, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}
	t.Status = task.Status(status)
	t.CreatedAt = createdAt.UTC()
	return t, nil
}

func collectTasks(rows pgx.Rows) ([]task.Task, error) {
	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
