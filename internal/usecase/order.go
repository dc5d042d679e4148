package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/policy"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/repository"
)

// LineRequest is one requested order line. NegotiationID cites an accepted
// session whose agreed price replaces the listed price.
type LineRequest struct {
	ListingID     int64
	Quantity      int64
	NegotiationID *int64
}

// CreateOrderRequest carries the buyer's cart.
type CreateOrderRequest struct {
	Lines           []LineRequest
	ShippingAddress string
}

// OrderPatch holds the mutable order fields. Nil fields are left untouched.
type OrderPatch struct {
	Status          *model.OrderStatus
	PaymentStatus   *model.PaymentStatus
	ShippingAddress *string
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	tx       repository.Transactor
	listings repository.ListingRepository
	sessions repository.NegotiationRepository
	orders   repository.OrderRepository
	events   EventPublisher
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	tx repository.Transactor,
	listings repository.ListingRepository,
	sessions repository.NegotiationRepository,
	orders repository.OrderRepository,
	events EventPublisher,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		tx:       tx,
		listings: listings,
		sessions: sessions,
		orders:   orders,
		events:   events,
		logger:   logger,
	}
}

type pricedLine struct {
	line         model.OrderLine
	listingPrice decimal.Decimal
}

// Create places an order at listed or negotiated prices. Stock reservation,
// order insertion and consumption of negotiated prices commit together.
func (u *OrderUseCase) Create(ctx context.Context, actor policy.Actor, req CreateOrderRequest) (*model.Order, error) {
	if !policy.CanPerform(actor, policy.CreateOrder, policy.Resource{}) {
		return nil, domainErrors.ErrForbidden
	}
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("order has no lines: %w", domainErrors.ErrInvalidLineItem)
	}
	address := strings.TrimSpace(req.ShippingAddress)

	var created *model.Order
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		priced, farmerID, err := u.resolveLines(ctx, req.Lines)
		if err != nil {
			return err
		}
		if address == "" {
			return fmt.Errorf("shipping address is required: %w", domainErrors.ErrInvalidInput)
		}

		lines := make([]model.OrderLine, len(priced))
		for i, p := range priced {
			if p.line.NegotiationID != nil {
				agreed, err := u.negotiatedPrice(ctx, actor, p.line.ListingID, p.listingPrice, *p.line.NegotiationID)
				if err != nil {
					return err
				}
				p.line.UnitPrice = agreed
			}
			lines[i] = p.line
		}

		for _, p := range priced {
			err := u.listings.Reserve(ctx, model.Reservation{
				ListingID:     p.line.ListingID,
				Quantity:      p.line.Quantity,
				ExpectedPrice: p.listingPrice,
			})
			if err != nil {
				return fmt.Errorf("reserve listing %d: %w", p.line.ListingID, err)
			}
		}

		created, err = u.orders.Create(ctx, &model.Order{
			BuyerID:         actor.ID,
			FarmerID:        farmerID,
			Lines:           lines,
			Total:           model.OrderTotal(lines),
			Status:          model.OrderStatusPending,
			PaymentStatus:   model.PaymentStatusPending,
			ShippingAddress: address,
		})
		if err != nil {
			return err
		}

		for _, line := range lines {
			if line.NegotiationID == nil {
				continue
			}
			if err := u.sessions.MarkConsumed(ctx, *line.NegotiationID, created.ID); err != nil {
				return fmt.Errorf("consume negotiation %d: %w", *line.NegotiationID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("order created",
		slog.Int64("order_id", created.ID),
		slog.Int64("buyer_id", created.BuyerID),
		slog.Int64("farmer_id", created.FarmerID),
		slog.String("total", created.Total.String()),
	)
	u.events.Publish(newEvent(model.EventOrderCreated, actor.ID, created.ID, map[string]any{
		"buyer_id":  created.BuyerID,
		"farmer_id": created.FarmerID,
		"total":     created.Total.String(),
	}))
	return created, nil
}

// resolveLines validates requested lines against the catalog and prices them
// at the current listed price.
func (u *OrderUseCase) resolveLines(ctx context.Context, requested []LineRequest) ([]pricedLine, int64, error) {
	var farmerID int64
	priced := make([]pricedLine, 0, len(requested))
	for i, item := range requested {
		if item.Quantity <= 0 {
			return nil, 0, fmt.Errorf("line %d: quantity must be positive: %w", i, domainErrors.ErrInvalidLineItem)
		}
		listing, err := u.listings.GetByID(ctx, item.ListingID)
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, 0, fmt.Errorf("line %d: listing %d not found: %w", i, item.ListingID, domainErrors.ErrInvalidLineItem)
		}
		if err != nil {
			return nil, 0, err
		}
		if listing.Status == model.ListingStatusHidden {
			return nil, 0, fmt.Errorf("line %d: listing %d is hidden: %w", i, listing.ID, domainErrors.ErrInvalidLineItem)
		}
		if farmerID == 0 {
			farmerID = listing.FarmerID
		} else if listing.FarmerID != farmerID {
			return nil, 0, fmt.Errorf("line %d: listing %d belongs to another farmer: %w", i, listing.ID, domainErrors.ErrInvalidLineItem)
		}

		priced = append(priced, pricedLine{
			line: model.OrderLine{
				ListingID:     listing.ID,
				Quantity:      item.Quantity,
				UnitPrice:     listing.Price,
				NegotiationID: item.NegotiationID,
			},
			listingPrice: listing.Price,
		})
	}
	return priced, farmerID, nil
}

// negotiatedPrice returns the agreed price of an accepted session owned by
// the buyer for the listing. A consumed session, or one accepted against a
// listing price that has since changed, is closed.
func (u *OrderUseCase) negotiatedPrice(ctx context.Context, actor policy.Actor, listingID int64, listingPrice decimal.Decimal, sessionID int64) (decimal.Decimal, error) {
	session, err := u.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("negotiation %d not found: %w", sessionID, domainErrors.ErrInvalidLineItem)
	}
	if err != nil {
		return decimal.Zero, err
	}
	if session.BuyerID != actor.ID || session.ListingID != listingID {
		return decimal.Zero, fmt.Errorf("negotiation %d does not cover this line: %w", sessionID, domainErrors.ErrInvalidLineItem)
	}
	if session.Status != model.NegotiationAccepted || session.AgreedPrice == nil {
		return decimal.Zero, fmt.Errorf("negotiation %d is not accepted: %w", sessionID, domainErrors.ErrInvalidLineItem)
	}
	if session.ConsumedByOrder != nil {
		return decimal.Zero, fmt.Errorf("negotiation %d already used by order %d: %w", sessionID, *session.ConsumedByOrder, domainErrors.ErrSessionClosed)
	}
	if session.ListingPriceAtAccept == nil || !session.ListingPriceAtAccept.Equal(listingPrice) {
		return decimal.Zero, fmt.Errorf("listing price changed since negotiation %d was accepted: %w", sessionID, domainErrors.ErrSessionClosed)
	}
	return *session.AgreedPrice, nil
}

// Get returns an order visible to its parties and admins.
func (u *OrderUseCase) Get(ctx context.Context, actor policy.Actor, id int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(actor, policy.ViewOrder, policy.OrderResource(order)) {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// List returns orders scoped by role: buyers see their purchases, farmers
// the orders addressed to them, admins everything.
func (u *OrderUseCase) List(ctx context.Context, actor policy.Actor, status model.OrderStatus) ([]model.Order, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown order status %q: %w", status, domainErrors.ErrInvalidInput)
	}

	filter := model.OrderFilter{Status: status}
	switch actor.Role {
	case model.RoleBuyer:
		filter.BuyerID = actor.ID
	case model.RoleFarmer:
		filter.FarmerID = actor.ID
	case model.RoleAdmin:
	default:
		return nil, domainErrors.ErrForbidden
	}
	return u.orders.List(ctx, filter)
}

// UpdateStatus moves an order along its lifecycle. Moving to cancelled
// restocks the ordered quantities.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, actor policy.Actor, id int64, next model.OrderStatus) (*model.Order, error) {
	var (
		updated *model.Order
		prev    model.OrderStatus
	)
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := u.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !policy.CanPerform(actor, policy.UpdateOrderStatus, policy.OrderResource(order)) {
			return domainErrors.ErrForbidden
		}
		if !next.Valid() {
			return fmt.Errorf("unknown order status %q: %w", next, domainErrors.ErrInvalidInput)
		}
		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%s -> %s: %w", order.Status, next, domainErrors.ErrInvalidTransition)
		}

		prev = order.Status
		updated, err = u.transition(ctx, order, next)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.statusChanged(actor, updated, prev)
	return updated, nil
}

// Cancel cancels a non-terminal order on behalf of its buyer or an admin.
func (u *OrderUseCase) Cancel(ctx context.Context, actor policy.Actor, id int64) (*model.Order, error) {
	var (
		updated *model.Order
		prev    model.OrderStatus
	)
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := u.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !policy.CanPerform(actor, policy.CancelOrder, policy.OrderResource(order)) {
			return domainErrors.ErrForbidden
		}
		if order.Status.Terminal() {
			return domainErrors.ErrAlreadyFinalized
		}

		prev = order.Status
		updated, err = u.transition(ctx, order, model.OrderStatusCancelled)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.statusChanged(actor, updated, prev)
	return updated, nil
}

// transition writes the new status with a compare-and-swap on the status
// just read, releasing stock when the order is cancelled.
func (u *OrderUseCase) transition(ctx context.Context, order *model.Order, next model.OrderStatus) (*model.Order, error) {
	updated, err := u.orders.UpdateStatus(ctx, order.ID, order.Status, next)
	if err != nil {
		return nil, err
	}
	if next != model.OrderStatusCancelled {
		return updated, nil
	}
	for _, line := range order.Lines {
		if err := u.listings.Release(ctx, line.ListingID, line.Quantity); err != nil {
			return nil, fmt.Errorf("release listing %d: %w", line.ListingID, err)
		}
	}
	return updated, nil
}

func (u *OrderUseCase) statusChanged(actor policy.Actor, order *model.Order, prev model.OrderStatus) {
	u.logger.Info("order status changed",
		slog.Int64("order_id", order.ID),
		slog.String("from", string(prev)),
		slog.String("to", string(order.Status)),
		slog.Int64("actor_id", actor.ID),
	)
	kind := model.EventOrderStatusChanged
	if order.Status == model.OrderStatusCancelled {
		kind = model.EventOrderCancelled
	}
	u.events.Publish(newEvent(kind, actor.ID, order.ID, map[string]any{
		"buyer_id":  order.BuyerID,
		"farmer_id": order.FarmerID,
		"from":      string(prev),
		"to":        string(order.Status),
	}))
}

// UpdatePaymentStatus records the payment state. Only admins may do so.
func (u *OrderUseCase) UpdatePaymentStatus(ctx context.Context, actor policy.Actor, id int64, next model.PaymentStatus) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(actor, policy.UpdatePaymentStatus, policy.OrderResource(order)) {
		return nil, domainErrors.ErrForbidden
	}
	if !next.Valid() {
		return nil, fmt.Errorf("unknown payment status %q: %w", next, domainErrors.ErrInvalidInput)
	}
	if order.PaymentStatus == next {
		return order, nil
	}

	updated, err := u.orders.UpdatePaymentStatus(ctx, id, order.PaymentStatus, next)
	if err != nil {
		return nil, err
	}

	u.events.Publish(newEvent(model.EventOrderPaymentChanged, actor.ID, updated.ID, map[string]any{
		"buyer_id":  updated.BuyerID,
		"farmer_id": updated.FarmerID,
		"from":      string(order.PaymentStatus),
		"to":        string(updated.PaymentStatus),
	}))
	return updated, nil
}

// UpdateShippingAddress changes where a non-terminal order is delivered.
func (u *OrderUseCase) UpdateShippingAddress(ctx context.Context, actor policy.Actor, id int64, address string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(actor, policy.UpdateShippingAddress, policy.OrderResource(order)) {
		return nil, domainErrors.ErrForbidden
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("shipping address is required: %w", domainErrors.ErrInvalidInput)
	}
	if order.Status.Terminal() {
		return nil, domainErrors.ErrAlreadyFinalized
	}
	return u.orders.UpdateShippingAddress(ctx, id, address)
}

// Patch applies status, payment status and shipping address changes in that
// order. Each change is authorized on its own; the first failure stops the
// remaining ones.
func (u *OrderUseCase) Patch(ctx context.Context, actor policy.Actor, id int64, patch OrderPatch) (*model.Order, error) {
	if patch.Status == nil && patch.PaymentStatus == nil && patch.ShippingAddress == nil {
		return nil, fmt.Errorf("nothing to update: %w", domainErrors.ErrInvalidInput)
	}

	var (
		order *model.Order
		err   error
	)
	if patch.Status != nil {
		if order, err = u.UpdateStatus(ctx, actor, id, *patch.Status); err != nil {
			return nil, err
		}
	}
	if patch.PaymentStatus != nil {
		if order, err = u.UpdatePaymentStatus(ctx, actor, id, *patch.PaymentStatus); err != nil {
			return nil, err
		}
	}
	if patch.ShippingAddress != nil {
		if order, err = u.UpdateShippingAddress(ctx, actor, id, *patch.ShippingAddress); err != nil {
			return nil, err
		}
	}
	return order, nil
}
