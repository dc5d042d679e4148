package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/policy"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/repository"
)

// CreateReviewRequest describes a buyer's review. ListingID defaults to the
// first line of the order.
type CreateReviewRequest struct {
	OrderID   int64
	ListingID int64
	Rating    int
	Comment   string
}

// ReviewUseCase gates reviews on delivered orders.
type ReviewUseCase struct {
	orders  repository.OrderRepository
	reviews repository.ReviewRepository
	events  EventPublisher
}

// NewReviewUseCase constructs ReviewUseCase.
func NewReviewUseCase(orders repository.OrderRepository, reviews repository.ReviewRepository, events EventPublisher) *ReviewUseCase {
	return &ReviewUseCase{orders: orders, reviews: reviews, events: events}
}

// Create stores the single review of a delivered order by its buyer.
func (u *ReviewUseCase) Create(ctx context.Context, actor policy.Actor, req CreateReviewRequest) (*model.Review, error) {
	order, err := u.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(actor, policy.CreateReview, policy.OrderResource(order)) {
		return nil, domainErrors.ErrForbidden
	}

	comment := strings.TrimSpace(req.Comment)
	if req.Rating < model.MinRating || req.Rating > model.MaxRating {
		return nil, fmt.Errorf("rating must be between %d and %d: %w", model.MinRating, model.MaxRating, domainErrors.ErrInvalidInput)
	}
	if comment == "" {
		return nil, fmt.Errorf("comment is required: %w", domainErrors.ErrInvalidInput)
	}
	listingID := req.ListingID
	switch {
	case listingID == 0 && len(order.Lines) > 0:
		listingID = order.Lines[0].ListingID
	case listingID != 0 && !order.HasListing(listingID):
		return nil, fmt.Errorf("listing %d is not part of order %d: %w", listingID, order.ID, domainErrors.ErrInvalidInput)
	}

	if order.Status != model.OrderStatusDelivered {
		return nil, domainErrors.ErrOrderNotDelivered
	}

	review, err := u.reviews.Create(ctx, &model.Review{
		OrderID:    order.ID,
		ListingID:  listingID,
		ReviewerID: actor.ID,
		TargetID:   order.FarmerID,
		Rating:     req.Rating,
		Comment:    comment,
	})
	if err != nil {
		return nil, err
	}

	u.events.Publish(newEvent(model.EventReviewCreated, actor.ID, review.ID, map[string]any{
		"order_id":  review.OrderID,
		"target_id": review.TargetID,
		"rating":    review.Rating,
	}))
	return review, nil
}

// Reply sets the one-time answer of the reviewed farmer or an admin.
func (u *ReviewUseCase) Reply(ctx context.Context, actor policy.Actor, reviewID int64, text string) (*model.Review, error) {
	review, err := u.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(actor, policy.ReplyToReview, policy.Resource{TargetID: review.TargetID}) {
		return nil, domainErrors.ErrForbidden
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("reply text is required: %w", domainErrors.ErrInvalidInput)
	}
	if review.Reply != nil {
		return nil, domainErrors.ErrAlreadyReplied
	}

	updated, err := u.reviews.SetReply(ctx, reviewID, text)
	if err != nil {
		return nil, err
	}

	u.events.Publish(newEvent(model.EventReviewReplied, actor.ID, updated.ID, map[string]any{
		"order_id":    updated.OrderID,
		"reviewer_id": updated.ReviewerID,
	}))
	return updated, nil
}

// ListForFarmer returns the public reviews of a farmer, newest first.
func (u *ReviewUseCase) ListForFarmer(ctx context.Context, farmerID int64) ([]model.Review, error) {
	return u.reviews.ListByTarget(ctx, farmerID)
}
