package httpapi

import (
	"context"

	"github.com/dmitrijs2005/yogastudio/internal/logging"
	"github.com/dmitrijs2005/yogastudio/internal/server/models"
	"github.com/dmitrijs2005/yogastudio/internal/server/services"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Register(ctx context.Context, email, firstName, lastName, password string) (*models.User, error)
}

type SessionStore interface {
	FindAll(ctx context.Context) ([]*models.Session, error)
	FindByID(ctx context.Context, id int64) (*models.Session, error)
	Create(ctx context.Context, s *models.Session) (*models.Session, error)
	Update(ctx context.Context, id int64, s *models.Session) (*models.Session, error)
	Delete(ctx context.Context, id int64) error
}

type Ledger interface {
	Participate(ctx context.Context, sessionID, userID int64) error
	NoLongerParticipate(ctx context.Context, sessionID, userID int64) error
}

type TeacherStore interface {
	FindAll(ctx context.Context) ([]*models.Teacher, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, p *services.Principal, id int64) error
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the studio API. Every field except Health must be set.
type Handler struct {
	Auth     Authenticator
	Sessions SessionStore
	Ledger   Ledger
	Teachers TeacherStore
	Users    UserStore
	Health   Pinger

	log logging.Logger
}
