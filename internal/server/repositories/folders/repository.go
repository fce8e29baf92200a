package folders

import (
	"context"

	"github.com/toolly/toolly/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, folder *models.Folder) (*models.Folder, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Folder, error)
	Rename(ctx context.Context, id, userID int64, newName string) error
	Delete(ctx context.Context, id, userID int64) error
}
