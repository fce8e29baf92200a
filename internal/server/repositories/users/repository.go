package users

import (
	"context"

	"github.com/toolly/toolly/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdatePasswordHash(ctx context.Context, username string, passwordHash string) error
	EnableTOTP(ctx context.Context, userID int64, secret string) error
}
