package memory

import (
	"context"
	"sort"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

type reviewRepository struct{ store *Store }

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	if _, exists := r.store.state.reviewByOrd[review.OrderID]; exists {
		return nil, domainErrors.ErrDuplicateReview
	}
	rv := *review
	rv.ID = r.store.id("review")
	rv.CreatedAt = r.store.now()
	r.store.state.reviews[rv.ID] = rv
	r.store.state.reviewByOrd[rv.OrderID] = rv.ID
	return &rv, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	rv, ok := r.store.state.reviews[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &rv, nil
}

func (r *reviewRepository) ListByTarget(ctx context.Context, farmerID int64) ([]model.Review, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	out := make([]model.Review, 0)
	for _, rv := range r.store.state.reviews {
		if rv.TargetID == farmerID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *reviewRepository) SetReply(ctx context.Context, id int64, reply string) (*model.Review, error) {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	rv, ok := r.store.state.reviews[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if rv.Reply != nil {
		return nil, domainErrors.ErrAlreadyReplied
	}
	text := reply
	at := r.store.now()
	rv.Reply = &text
	rv.RepliedAt = &at
	r.store.state.reviews[id] = rv
	return &rv, nil
}
