package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cat-health-api/internal/domain/todos"
)

type TodosRepo struct {
	db *sql.DB
}

func NewTodosRepo(db *sql.DB) *TodosRepo {
	return &TodosRepo{db: db}
}

func (r *TodosRepo) Create(ctx context.Context, t todos.Todo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (
			id, user_id, title, done, due_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		t.ID,
		t.UserID,
		t.Title,
		t.Done,
		toNullTime(t.DueDate),
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *TodosRepo) GetByID(ctx context.Context, id string) (todos.Todo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return todos.Todo{}, todos.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, done, due_date, created_at, updated_at
		FROM todos
		WHERE id = $1
	`, id)

	t, err := scanTodo(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return todos.Todo{}, todos.ErrNotFound
		}
		return todos.Todo{}, err
	}
	return t, nil
}

func (r *TodosRepo) ListByUser(ctx context.Context, userID string) ([]todos.Todo, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, done, due_date, created_at, updated_at
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]todos.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

func (r *TodosRepo) Update(ctx context.Context, t todos.Todo) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE todos
		SET title = $2, done = $3, due_date = $4, updated_at = $5
		WHERE id = $1
	`,
		t.ID,
		t.Title,
		t.Done,
		toNullTime(t.DueDate),
		t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return todos.ErrNotFound
	}
	return nil
}

func (r *TodosRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return todos.ErrNotFound
	}
	return nil
}

func scanTodo(scan func(dest ...any) error) (todos.Todo, error) {
	var t todos.Todo
	var due sql.NullTime

	if err := scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Done,
		&due,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return todos.Todo{}, err
	}

	if due.Valid {
		v := due.Time
		t.DueDate = &v
	}

	return t, nil
}
