package services

import (
	"context"
	"database/sql"
	"net/url"
	"time"

	"github.com/toolly/toolly/internal/common"
	"github.com/toolly/toolly/internal/logging"
	"github.com/toolly/toolly/internal/server/blob"
	"github.com/toolly/toolly/internal/server/config"
	"github.com/toolly/toolly/internal/server/models"
	"github.com/toolly/toolly/internal/server/repositories/repomanager"
)

const maxTodoTitleLength = 255

// TodoInput carries the client-supplied fields for creating or updating a
// todo. File is nil when the request has no attachment; on update a nil File
// leaves the existing attachment alone.
type TodoInput struct {
	Title       string
	Description string
	Deadline    *time.Time
	Link        string
	FolderID    int64
	File        *models.Attachment
}

// TodoService manages todos and their attachments. When the deployment has an
// object store configured, attachment payloads flow through it and only the
// key lands in the row.
type TodoService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	cfg    *config.Config
	store  blob.Store
	logger logging.Logger
}

func NewTodoService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config, store blob.Store, logger logging.Logger) *TodoService {
	return &TodoService{db: db, rm: rm, cfg: cfg, store: store, logger: logger}
}

func validateTodoInput(in *TodoInput) error {
	ve := &ValidationError{}
	if in.Title == "" {
		ve.add("title", "is required")
	} else if len(in.Title) > maxTodoTitleLength {
		ve.add("title", "must be at most 255 characters long")
	}
	if in.Link != "" {
		u, err := url.Parse(in.Link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			ve.add("link", "must be an http or https URL")
		}
	}
	if in.FolderID <= 0 {
		ve.add("folderId", "is required")
	}
	return ve.orNil()
}

// storeAttachment routes the payload either inline or to the object store,
// filling the todo's file columns accordingly.
func (s *TodoService) storeAttachment(ctx context.Context, todo *models.Todo, file *models.Attachment) error {
	todo.FileName = file.Name
	if s.store == nil {
		todo.FileData = file.Data
		todo.FileKey = ""
		return nil
	}
	key := blob.NewStorageKey()
	if err := s.store.Put(ctx, key, file.Data); err != nil {
		return err
	}
	todo.FileData = nil
	todo.FileKey = key
	return nil
}

// dropObject removes an orphaned attachment object. Failures are logged and
// swallowed: the row is already consistent and the object is unreachable.
func (s *TodoService) dropObject(ctx context.Context, key string) {
	if s.store == nil || key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn(ctx, "deleting attachment object", "key", key, "error", err)
	}
}

func (s *TodoService) Create(ctx context.Context, userID int64, in *TodoInput) (*models.Todo, error) {
	if err := validateTodoInput(in); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		Link:        in.Link,
		UserID:      userID,
		FolderID:    in.FolderID,
	}
	if in.File != nil {
		if err := s.storeAttachment(ctx, todo, in.File); err != nil {
			return nil, err
		}
	}

	created, err := s.rm.Todos(s.db).Create(ctx, todo)
	if err != nil {
		s.dropObject(ctx, todo.FileKey)
		return nil, err
	}
	return created, nil
}

func (s *TodoService) List(ctx context.Context, userID int64) ([]*models.Todo, error) {
	return s.rm.Todos(s.db).ListByUser(ctx, userID)
}

func (s *TodoService) ListByFolder(ctx context.Context, userID, folderID int64) ([]*models.Todo, error) {
	return s.rm.Todos(s.db).ListByFolder(ctx, userID, folderID)
}

// Update replaces a todo's fields. A new attachment supersedes the old one;
// the previous object is removed after the row commits.
func (s *TodoService) Update(ctx context.Context, id, userID int64, in *TodoInput) (*models.Todo, error) {
	if err := validateTodoInput(in); err != nil {
		return nil, err
	}

	current, err := s.rm.Todos(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	oldKey := current.FileKey
	current.Title = in.Title
	current.Description = in.Description
	current.Deadline = in.Deadline
	current.Link = in.Link
	current.FolderID = in.FolderID
	if in.File != nil {
		if err := s.storeAttachment(ctx, current, in.File); err != nil {
			return nil, err
		}
	}

	if err := s.rm.Todos(s.db).Update(ctx, current); err != nil {
		if in.File != nil {
			s.dropObject(ctx, current.FileKey)
		}
		return nil, err
	}
	if in.File != nil && oldKey != "" && oldKey != current.FileKey {
		s.dropObject(ctx, oldKey)
	}
	return current, nil
}

func (s *TodoService) SetDone(ctx context.Context, id, userID int64, done bool) error {
	return s.rm.Todos(s.db).SetDone(ctx, id, userID, done)
}

func (s *TodoService) Delete(ctx context.Context, id, userID int64) error {
	todo, err := s.rm.Todos(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.rm.Todos(s.db).Delete(ctx, id, userID); err != nil {
		return err
	}
	s.dropObject(ctx, todo.FileKey)
	return nil
}

// GetAttachment returns a todo's file contents, fetching from the object
// store when the row holds a key instead of bytes.
func (s *TodoService) GetAttachment(ctx context.Context, id, userID int64) (*models.Attachment, error) {
	todo, err := s.rm.Todos(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if todo.FileName == "" {
		return nil, common.ErrorNotFound
	}
	data := todo.FileData
	if todo.FileKey != "" {
		if s.store == nil {
			return nil, common.ErrorInternal
		}
		data, err = s.store.Get(ctx, todo.FileKey)
		if err != nil {
			return nil, err
		}
	}
	return &models.Attachment{Name: todo.FileName, Data: data}, nil
}
