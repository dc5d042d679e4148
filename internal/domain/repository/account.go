package repository

import (
	"context"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

// AccountRepository describes persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.Account, error)
	GetByLogin(ctx context.Context, login string) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
}
