package repository

import (
	"context"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

// ReviewRepository persists reviews. At most one review exists per order.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) (*model.Review, error)
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	ListByTarget(ctx context.Context, farmerID int64) ([]model.Review, error)
	// SetReply stores reply only when none exists yet, else ErrAlreadyReplied.
	SetReply(ctx context.Context, id int64, reply string) (*model.Review, error)
}
