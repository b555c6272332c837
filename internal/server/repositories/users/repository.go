// Package users is the credential store: user accounts with their password
// hash and admin flag.
package users

import (
	"context"

	"github.com/dmitrijs2005/yogastudio/internal/server/models"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	// Save inserts user when its ID is zero and updates it otherwise.
	Save(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}
