package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/yogastudio/internal/common"
	"github.com/dmitrijs2005/yogastudio/internal/dbx"
	"github.com/dmitrijs2005/yogastudio/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.Session, error) {
	query :=
		`SELECT id, name, date, teacher_id, description, created_at, updated_at FROM sessions
		 ORDER BY date, id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Session, 0)
	byID := make(map[int64]*models.Session)
	for rows.Next() {
		s := &models.Session{Users: []int64{}}
		if err := rows.Scan(&s.ID, &s.Name, &s.Date, &s.TeacherID, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
		byID[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if len(result) == 0 {
		return result, nil
	}

	roster, err := r.db.QueryContext(ctx, `SELECT session_id, user_id FROM participate ORDER BY session_id, user_id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer roster.Close()

	for roster.Next() {
		var sessionID, userID int64
		if err := roster.Scan(&sessionID, &userID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if s, ok := byID[sessionID]; ok {
			s.Users = append(s.Users, userID)
		}
	}
	if err := roster.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Session, error) {
	query :=
		`SELECT id, name, date, teacher_id, description, created_at, updated_at FROM sessions
		 WHERE id = $1
		 `

	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.Name, &s.Date, &s.TeacherID, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	users, err := r.participants(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Users = users

	return s, nil
}

func (r *PostgresRepository) participants(ctx context.Context, sessionID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM participate WHERE session_id = $1 ORDER BY user_id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) (*models.Session, error) {
	query :=
		`INSERT INTO sessions (name, date, teacher_id, description)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, s.Name, s.Date, s.TeacherID, s.Description).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrInvalidReference
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	s.Users = []int64{}
	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.Session) (*models.Session, error) {
	query :=
		`UPDATE sessions SET name = $1, date = $2, teacher_id = $3, description = $4, updated_at = now()
		 WHERE id = $5
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, s.Name, s.Date, s.TeacherID, s.Description, s.ID).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrorNotFound
		case dbx.IsForeignKeyViolation(err):
			return nil, common.ErrInvalidReference
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	users, err := r.participants(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Users = users

	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res, common.ErrorNotFound)
}

func (r *PostgresRepository) AddParticipant(ctx context.Context, sessionID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO participate (session_id, user_id) VALUES ($1, $2)`, sessionID, userID)
	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err):
			return common.ErrAlreadyParticipating
		case dbx.IsForeignKeyViolation(err):
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RemoveParticipant(ctx context.Context, sessionID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM participate WHERE session_id = $1 AND user_id = $2`, sessionID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res, common.ErrNotParticipating)
}

func requireAffected(res sql.Result, none error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return none
	}
	return nil
}
