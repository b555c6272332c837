package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/yogastudio/internal/common"
	"github.com/dmitrijs2005/yogastudio/internal/dbx"
	"github.com/dmitrijs2005/yogastudio/internal/server/models"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/repomanager"
)

// UserService exposes account lookup, owner-gated deletion and admin
// bootstrapping.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher) *UserService {
	return &UserService{db: db, repomanager: m, hasher: h}
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return u, nil
}

// Delete removes account id on behalf of p. Only the account owner or an
// admin may do so; anyone else gets common.ErrForbidden and nothing is
// deleted.
func (s *UserService) Delete(ctx context.Context, p *Principal, id int64) error {
	repo := s.repomanager.Users(s.db)

	target, err := repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find user %d: %w", id, err)
	}
	if err := AuthorizeOwnerOrAdmin(p, target.Email); err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

// EnsureAdmin creates an admin account, or promotes and re-keys an existing
// one with the same email. created reports which of the two happened.
func (s *UserService) EnsureAdmin(ctx context.Context, email, firstName, lastName, password string) (user *models.User, created bool, err error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		existing, err := repo.FindByEmail(ctx, email)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			created = true
			user, err = repo.Save(ctx, &models.User{
				Email:     email,
				FirstName: firstName,
				LastName:  lastName,
				Password:  hash,
				Admin:     true,
			})
			return err
		case err != nil:
			return err
		}

		existing.Admin = true
		existing.Password = hash
		user, err = repo.Save(ctx, existing)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("ensure admin %s: %w", email, err)
	}

	return user, created, nil
}
