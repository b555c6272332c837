// Package sessions is the session store: scheduled classes and their rosters.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/yogastudio/internal/server/models"
)

type Repository interface {
	FindAll(ctx context.Context) ([]*models.Session, error)
	// FindByID returns the session with its roster loaded.
	FindByID(ctx context.Context, id int64) (*models.Session, error)
	Create(ctx context.Context, s *models.Session) (*models.Session, error)
	// Update rewrites the session fields. The roster is left as is.
	Update(ctx context.Context, s *models.Session) (*models.Session, error)
	Delete(ctx context.Context, id int64) error

	AddParticipant(ctx context.Context, sessionID, userID int64) error
	RemoveParticipant(ctx context.Context, sessionID, userID int64) error
}
