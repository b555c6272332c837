// Package teachers is the read-only store of studio teachers.
package teachers

import (
	"context"

	"github.com/dmitrijs2005/yogastudio/internal/server/models"
)

type Repository interface {
	FindAll(ctx context.Context) ([]*models.Teacher, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
}
