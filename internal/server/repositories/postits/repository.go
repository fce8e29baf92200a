package postits

import (
	"context"

	"github.com/toolly/toolly/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, postit *models.Postit) (*models.Postit, error)
	ListByFolder(ctx context.Context, userID, folderID int64) ([]*models.Postit, error)
	Update(ctx context.Context, postit *models.Postit) error
	Delete(ctx context.Context, id, userID int64) error
	DeleteByFolder(ctx context.Context, folderID, userID int64) error
}
