package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/yogastudio/internal/common"
	"github.com/dmitrijs2005/yogastudio/internal/dbx"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/repomanager"
)

// ParticipationService keeps session rosters free of duplicates.
//
// Each call checks and writes inside one transaction. Two concurrent adds of
// the same pair can both pass the check; the roster primary key then fails
// the second insert, which surfaces as common.ErrAlreadyParticipating.
type ParticipationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewParticipationService constructs a ParticipationService.
func NewParticipationService(db *sql.DB, m repomanager.RepositoryManager) *ParticipationService {
	return &ParticipationService{db: db, repomanager: m}
}

// Participate adds userID to the roster of sessionID.
func (s *ParticipationService) Participate(ctx context.Context, sessionID, userID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sessions := s.repomanager.Sessions(tx)

		session, err := sessions.FindByID(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("find session %d: %w", sessionID, err)
		}
		if _, err := s.repomanager.Users(tx).FindByID(ctx, userID); err != nil {
			return fmt.Errorf("find user %d: %w", userID, err)
		}
		if session.HasParticipant(userID) {
			return common.ErrAlreadyParticipating
		}
		return sessions.AddParticipant(ctx, sessionID, userID)
	})
}

// NoLongerParticipate removes userID from the roster of sessionID.
func (s *ParticipationService) NoLongerParticipate(ctx context.Context, sessionID, userID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sessions := s.repomanager.Sessions(tx)

		session, err := sessions.FindByID(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("find session %d: %w", sessionID, err)
		}
		if !session.HasParticipant(userID) {
			return common.ErrNotParticipating
		}
		return sessions.RemoveParticipant(ctx, sessionID, userID)
	})
}
