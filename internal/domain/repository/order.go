package repository

import (
	"context"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// UpdateStatus is a compare-and-swap on the stored status.
	UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) (*model.Order, error)
	// UpdatePaymentStatus is a compare-and-swap on the stored payment status.
	UpdatePaymentStatus(ctx context.Context, id int64, from, to model.PaymentStatus) (*model.Order, error)
	// UpdateShippingAddress fails with ErrAlreadyFinalized on terminal orders.
	UpdateShippingAddress(ctx context.Context, id int64, address string) (*model.Order, error)
}
