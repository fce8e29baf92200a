package repomanager

import (
	"context"
	"database/sql"

	"github.com/toolly/toolly/internal/dbx"
	"github.com/toolly/toolly/internal/server/repositories/folders"
	"github.com/toolly/toolly/internal/server/repositories/postits"
	"github.com/toolly/toolly/internal/server/repositories/todos"
	"github.com/toolly/toolly/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to an arbitrary DBTX, so the
// same repository code runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Folders(db dbx.DBTX) folders.Repository
	Todos(db dbx.DBTX) todos.Repository
	Postits(db dbx.DBTX) postits.Repository
}
