package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/sandeepkv93/taskapi/internal/model"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &PostgresRepository{db: db}, nil
}

func OpenPostgres(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgresRepository(db)
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) CreateTask(ctx context.Context, in model.Task) (model.Task, error) {
	in.DueDate = in.DueDate.UTC()
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks (title, description, due_date, completed)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		in.Title, in.Description, in.DueDate, in.Completed,
	).Scan(&in.ID)
	if err != nil {
		return model.Task{}, err
	}
	return in, nil
}

func (r *PostgresRepository) GetTask(ctx context.Context, id int64) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, due_date, completed
		FROM tasks WHERE id = $1`, id)
	task, err := scanPostgresTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *PostgresRepository) UpdateTask(ctx context.Context, in model.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, completed = $4
		WHERE id = $5`,
		in.Title, in.Description, in.DueDate.UTC(), in.Completed, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *PostgresRepository) DeleteTask(ctx context.Context, id int64) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM tasks WHERE id = $1
		RETURNING id, title, description, due_date, completed`, id)
	task, err := scanPostgresTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *PostgresRepository) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, due_date, completed
		FROM tasks ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanPostgresTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func scanPostgresTask(s scanner) (model.Task, error) {
	var out model.Task
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &out.DueDate, &out.Completed); err != nil {
		return model.Task{}, err
	}
	out.DueDate = out.DueDate.UTC()
	return out, nil
}
