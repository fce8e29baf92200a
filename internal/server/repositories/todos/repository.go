package todos

import (
	"context"

	"github.com/toolly/toolly/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Todo, error)
	ListByFolder(ctx context.Context, userID, folderID int64) ([]*models.Todo, error)
	GetByID(ctx context.Context, id, userID int64) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	SetDone(ctx context.Context, id, userID int64, done bool) error
	Delete(ctx context.Context, id, userID int64) error
	DeleteByFolder(ctx context.Context, folderID, userID int64) error
}
