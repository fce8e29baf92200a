package services

import (
	"context"
	"database/sql"

	"github.com/toolly/toolly/internal/server/config"
	"github.com/toolly/toolly/internal/dbx"
	"github.com/toolly/toolly/internal/server/models"
	"github.com/toolly/toolly/internal/server/repositories/repomanager"
)

const maxFolderNameLength = 255

// FolderService manages a user's folders, including the transactional
// cascade that removes a folder together with its contents.
type FolderService struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	cfg *config.Config
}

func NewFolderService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *FolderService {
	return &FolderService{db: db, rm: rm, cfg: cfg}
}

func validateFolderName(name string) error {
	ve := &ValidationError{}
	if name == "" {
		ve.add("name", "is required")
	} else if len(name) > maxFolderNameLength {
		ve.add("name", "must be at most 255 characters long")
	}
	return ve.orNil()
}

func (s *FolderService) Create(ctx context.Context, userID int64, name string) (*models.Folder, error) {
	if err := validateFolderName(name); err != nil {
		return nil, err
	}
	folder := &models.Folder{Name: name, UserID: userID}
	return s.rm.Folders(s.db).Create(ctx, folder)
}

func (s *FolderService) List(ctx context.Context, userID int64) ([]*models.Folder, error) {
	return s.rm.Folders(s.db).ListByUser(ctx, userID)
}

func (s *FolderService) Rename(ctx context.Context, id int64, userID int64, newName string) error {
	if err := validateFolderName(newName); err != nil {
		return err
	}
	return s.rm.Folders(s.db).Rename(ctx, id, userID, newName)
}

// Delete removes a folder and everything inside it in one transaction. If the
// folder does not exist or belongs to another user, the whole operation rolls
// back and nothing is touched.
func (s *FolderService) Delete(ctx context.Context, id int64, userID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Todos(tx).DeleteByFolder(ctx, id, userID); err != nil {
			return err
		}
		if err := s.rm.Postits(tx).DeleteByFolder(ctx, id, userID); err != nil {
			return err
		}
		return s.rm.Folders(tx).Delete(ctx, id, userID)
	})
}
