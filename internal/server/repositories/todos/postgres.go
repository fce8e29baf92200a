// Package todos provides the PostgreSQL-backed repository for tasks,
// including their inline or object-store attachment references.
package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/toolly/toolly/internal/common"
	"github.com/toolly/toolly/internal/dbx"
	"github.com/toolly/toolly/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const todoColumns = `id, title, description, deadline, link, done, user_id, folder_id, file_name, file_key`

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query := `
		INSERT INTO todos (title, description, deadline, link, user_id, folder_id, file_name, file_data, file_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		todo.Title, todo.Description, todo.Deadline, todo.Link,
		todo.UserID, todo.FolderID, todo.FileName, todo.FileData, todo.FileKey).Scan(&todo.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Todo, error) {
	query := `
		SELECT ` + todoColumns + ` FROM todos
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanTodos(rows)
}

func (r *PostgresRepository) ListByFolder(ctx context.Context, userID, folderID int64) ([]*models.Todo, error) {
	query := `
		SELECT ` + todoColumns + ` FROM todos
		WHERE user_id = $1 AND folder_id = $2
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanTodos(rows)
}

// GetByID loads a single todo including its inline file payload. Owner
// mismatch behaves like a missing row.
func (r *PostgresRepository) GetByID(ctx context.Context, id, userID int64) (*models.Todo, error) {
	query := `
		SELECT ` + todoColumns + `, file_data FROM todos
		WHERE id = $1 AND user_id = $2
	`
	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&todo.ID, &todo.Title, &todo.Description, &todo.Deadline, &todo.Link, &todo.Done,
		&todo.UserID, &todo.FolderID, &todo.FileName, &todo.FileKey, &todo.FileData)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}

func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) error {
	query := `
		UPDATE todos
		SET title = $1, description = $2, deadline = $3, link = $4, file_name = $5, file_data = $6, file_key = $7
		WHERE id = $8 AND user_id = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		todo.Title, todo.Description, todo.Deadline, todo.Link,
		todo.FileName, todo.FileData, todo.FileKey, todo.ID, todo.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) SetDone(ctx context.Context, id, userID int64, done bool) error {
	query := `
		UPDATE todos SET done = $1
		WHERE id = $2 AND user_id = $3
	`
	res, err := r.db.ExecContext(ctx, query, done, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `
		DELETE FROM todos
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

// DeleteByFolder removes every todo of the folder. Zero rows is fine here:
// an empty folder still cascades cleanly.
func (r *PostgresRepository) DeleteByFolder(ctx context.Context, folderID, userID int64) error {
	query := `
		DELETE FROM todos
		WHERE folder_id = $1 AND user_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, folderID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanTodos(rows *sql.Rows) ([]*models.Todo, error) {
	result := []*models.Todo{}
	for rows.Next() {
		var item models.Todo
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.Deadline, &item.Link, &item.Done,
			&item.UserID, &item.FolderID, &item.FileName, &item.FileKey,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
