package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/yogastudio/internal/server/models"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/repomanager"
)

// SessionService is the CRUD surface for sessions. Rosters are changed only
// through ParticipationService.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager) *SessionService {
	return &SessionService{db: db, repomanager: m}
}

func (s *SessionService) FindAll(ctx context.Context) ([]*models.Session, error) {
	list, err := s.repomanager.Sessions(s.db).FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return list, nil
}

func (s *SessionService) FindByID(ctx context.Context, id int64) (*models.Session, error) {
	session, err := s.repomanager.Sessions(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find session %d: %w", id, err)
	}
	return session, nil
}

func (s *SessionService) Create(ctx context.Context, session *models.Session) (*models.Session, error) {
	session.ID = 0
	created, err := s.repomanager.Sessions(s.db).Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return created, nil
}

// Update replaces the fields of session id with those of session.
func (s *SessionService) Update(ctx context.Context, id int64, session *models.Session) (*models.Session, error) {
	session.ID = id
	updated, err := s.repomanager.Sessions(s.db).Update(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("update session %d: %w", id, err)
	}
	return updated, nil
}

func (s *SessionService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Sessions(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	return nil
}
