// Package services contains server-side business logic: authentication,
// request authorization, roster bookkeeping and the CRUD services behind the
// HTTP handlers. Services reach storage only through a RepositoryManager.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/yogastudio/internal/common"
	"github.com/dmitrijs2005/yogastudio/internal/server/models"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/repomanager"
)

// PasswordHasher hashes passwords and checks them against stored hashes.
// Compare returns common.ErrInvalidCredentials on mismatch.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer mints a signed token for a subject.
type TokenIssuer interface {
	Issue(subject string, now time.Time) (string, error)
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token     string
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Admin     bool
}

// AuthService handles login and self-registration.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	now         func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher, t TokenIssuer) *AuthService {
	return &AuthService{db: db, repomanager: m, hasher: h, tokens: t, now: time.Now}
}

// Login checks email and password and issues a token whose subject is the
// email. An unknown email and a wrong password both yield
// common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnCompare(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: find user: %w", common.ErrorInternal, err)
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: compare password: %w", common.ErrorInternal, err)
	}

	token, err := s.tokens.Issue(user.Email, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %w", common.ErrorInternal, err)
	}

	return &LoginResult{
		Token:     token,
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Admin:     user.Admin,
	}, nil
}

// burnCompare spends one hash comparison so that an unknown email costs
// about as much as a wrong password.
func (s *AuthService) burnCompare(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("not-a-real-password")
	})
	if s.dummyHash != "" {
		_ = s.hasher.Compare(s.dummyHash, password)
	}
}

// Register creates a non-admin account. It fails with common.ErrEmailTaken
// if the email is already registered and writes nothing in that case.
func (s *AuthService) Register(ctx context.Context, email, firstName, lastName, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: check email: %w", common.ErrorInternal, err)
	}
	if exists {
		return nil, common.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrBadRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: hash password: %w", common.ErrorInternal, err)
	}

	user, err := repo.Save(ctx, &models.User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  hash,
		Admin:     false,
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: save user: %w", common.ErrorInternal, err)
	}

	return user, nil
}
