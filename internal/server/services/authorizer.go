package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/yogastudio/internal/common"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/repomanager"
)

// TokenVerifier validates a token as of now and returns its subject.
type TokenVerifier interface {
	Verify(token string, now time.Time) (string, error)
}

// Principal is the authenticated caller of one request.
type Principal struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Admin     bool
}

// Authorizer turns an Authorization header into a Principal.
type Authorizer struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenVerifier
	now         func() time.Time
}

// NewAuthorizer constructs an Authorizer.
func NewAuthorizer(db *sql.DB, m repomanager.RepositoryManager, t TokenVerifier) *Authorizer {
	return &Authorizer{db: db, repomanager: m, tokens: t, now: time.Now}
}

// Authorize validates header, which must be "Bearer <token>", and resolves
// the token subject to a stored user. Every token problem, and a subject
// with no matching user, yields common.ErrorUnauthorized.
func (a *Authorizer) Authorize(ctx context.Context, header string) (*Principal, error) {
	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok || token == "" {
		return nil, common.ErrorUnauthorized
	}

	email, err := a.tokens.Verify(token, a.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}

	user, err := a.repomanager.Users(a.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", common.ErrorUnauthorized)
		}
		return nil, fmt.Errorf("%w: resolve principal: %w", common.ErrorInternal, err)
	}

	return &Principal{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Admin:     user.Admin,
	}, nil
}

// AuthorizeOwnerOrAdmin allows p to act on a resource owned by ownerEmail
// when p is that owner or an admin.
func AuthorizeOwnerOrAdmin(p *Principal, ownerEmail string) error {
	if p == nil {
		return common.ErrorUnauthorized
	}
	if p.Email == ownerEmail || p.Admin {
		return nil
	}
	return common.ErrForbidden
}
