package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/yogastudio/internal/server/models"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/repomanager"
)

type TeacherService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTeacherService(db *sql.DB, m repomanager.RepositoryManager) *TeacherService {
	return &TeacherService{db: db, repomanager: m}
}

func (s *TeacherService) FindAll(ctx context.Context) ([]*models.Teacher, error) {
	list, err := s.repomanager.Teachers(s.db).FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return list, nil
}

func (s *TeacherService) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	t, err := s.repomanager.Teachers(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find teacher %d: %w", id, err)
	}
	return t, nil
}
