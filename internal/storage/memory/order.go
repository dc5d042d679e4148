package memory

import (
	"context"
	"sort"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

type orderRepository struct{ store *Store }

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	o := *order
	o.ID = r.store.id("order")
	o.Lines = append([]model.OrderLine(nil), order.Lines...)
	o.CreatedAt = r.store.now()
	o.UpdatedAt = o.CreatedAt
	r.store.state.orders[o.ID] = o
	return cloneOrder(o), nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	o, ok := r.store.state.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *orderRepository) List(ctx context.Context, f model.OrderFilter) ([]model.Order, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	out := make([]model.Order, 0)
	for _, o := range r.store.state.orders {
		if f.BuyerID != 0 && o.BuyerID != f.BuyerID {
			continue
		}
		if f.FarmerID != 0 && o.FarmerID != f.FarmerID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, *cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) (*model.Order, error) {
	return r.mutate(ctx, id, func(o *model.Order) error {
		if o.Status != from {
			return domainErrors.ErrConflict
		}
		o.Status = to
		return nil
	})
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id int64, from, to model.PaymentStatus) (*model.Order, error) {
	return r.mutate(ctx, id, func(o *model.Order) error {
		if o.PaymentStatus != from {
			return domainErrors.ErrConflict
		}
		o.PaymentStatus = to
		return nil
	})
}

func (r *orderRepository) UpdateShippingAddress(ctx context.Context, id int64, address string) (*model.Order, error) {
	return r.mutate(ctx, id, func(o *model.Order) error {
		if o.Status.Terminal() {
			return domainErrors.ErrAlreadyFinalized
		}
		o.ShippingAddress = address
		return nil
	})
}

func (r *orderRepository) mutate(ctx context.Context, id int64, fn func(*model.Order) error) (*model.Order, error) {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	o, ok := r.store.state.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if err := fn(&o); err != nil {
		return nil, err
	}
	o.UpdatedAt = r.store.now()
	r.store.state.orders[id] = o
	return cloneOrder(o), nil
}

func cloneOrder(o model.Order) *model.Order {
	o.Lines = append([]model.OrderLine(nil), o.Lines...)
	return &o
}
