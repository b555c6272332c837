package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/yogastudio/internal/dbx"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/teachers"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a database handle, which may
// be the pool or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Teachers(db dbx.DBTX) teachers.Repository
}
