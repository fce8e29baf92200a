package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/toolly/toolly/internal/server/config"
	"github.com/toolly/toolly/internal/server/models"
	"github.com/toolly/toolly/internal/server/repositories/repomanager"
)

// Limits chosen so a note always fits its rendered card.
const (
	maxPostitTextLength = 112
	maxPostitLines      = 7
)

// PostitService manages the draggable notes on a folder board.
type PostitService struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	cfg *config.Config
}

func NewPostitService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *PostitService {
	return &PostitService{db: db, rm: rm, cfg: cfg}
}

func validatePostitText(text string) error {
	ve := &ValidationError{}
	if len(text) > maxPostitTextLength {
		ve.add("text", "must be at most 112 characters long")
	}
	if strings.Count(text, "\n") >= maxPostitLines {
		ve.add("text", "must be at most 7 lines long")
	}
	return ve.orNil()
}

func (s *PostitService) Create(ctx context.Context, userID int64, text string, x, y float64, folderID int64) (*models.Postit, error) {
	if err := validatePostitText(text); err != nil {
		return nil, err
	}
	if folderID <= 0 {
		ve := &ValidationError{}
		ve.add("folderId", "is required")
		return nil, ve
	}
	postit := &models.Postit{Text: text, X: x, Y: y, FolderID: folderID, UserID: userID}
	return s.rm.Postits(s.db).Create(ctx, postit)
}

func (s *PostitService) ListByFolder(ctx context.Context, userID, folderID int64) ([]*models.Postit, error) {
	return s.rm.Postits(s.db).ListByFolder(ctx, userID, folderID)
}

func (s *PostitService) Update(ctx context.Context, id, userID int64, text string, x, y float64) error {
	if err := validatePostitText(text); err != nil {
		return err
	}
	postit := &models.Postit{ID: id, UserID: userID, Text: text, X: x, Y: y}
	return s.rm.Postits(s.db).Update(ctx, postit)
}

func (s *PostitService) Delete(ctx context.Context, id, userID int64) error {
	return s.rm.Postits(s.db).Delete(ctx, id, userID)
}
