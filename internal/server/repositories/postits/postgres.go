// Package postits provides the PostgreSQL-backed repository for board notes.
package postits

import (
	"context"
	"database/sql"
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

func (r *PostgresRepository) Create(ctx context.Context, postit *models.Postit) (*models.Postit, error) {
	query := `
		INSERT INTO postits (text, x, y, folder_id, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		postit.Text, postit.X, postit.Y, postit.FolderID, postit.UserID).Scan(&postit.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return postit, nil
}

func (r *PostgresRepository) ListByFolder(ctx context.Context, userID, folderID int64) ([]*models.Postit, error) {
	query := `
		SELECT id, text, x, y, folder_id, user_id FROM postits
		WHERE folder_id = $1 AND user_id = $2
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, folderID, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Postit{}
	for rows.Next() {
		var item models.Postit
		if err := rows.Scan(&item.ID, &item.Text, &item.X, &item.Y, &item.FolderID, &item.UserID); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites text and position. Last write wins; owner mismatch behaves
// like a missing row.
func (r *PostgresRepository) Update(ctx context.Context, postit *models.Postit) error {
	query := `
		UPDATE postits SET text = $1, x = $2, y = $3
		WHERE id = $4 AND user_id = $5
	`
	res, err := r.db.ExecContext(ctx, query, postit.Text, postit.X, postit.Y, postit.ID, postit.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `
		DELETE FROM postits
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

// DeleteByFolder removes every note of the folder inside the cascade
// transaction. Zero rows is fine.
func (r *PostgresRepository) DeleteByFolder(ctx context.Context, folderID, userID int64) error {
	query := `
		DELETE FROM postits
		WHERE folder_id = $1 AND user_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, folderID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
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
