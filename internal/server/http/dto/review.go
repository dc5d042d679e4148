package dto

import "time"

// CreateReviewRequest describes a review of a delivered order.
type CreateReviewRequest struct {
	OrderID   int64  `json:"order_id" binding:"required"`
	ListingID int64  `json:"listing_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// ReplyRequest carries the farmer's answer to a review.
type ReplyRequest struct {
	Text string `json:"text" binding:"required"`
}

// ReviewResponse describes a review.
type ReviewResponse struct {
	ID         int64      `json:"id"`
	OrderID    int64      `json:"order_id"`
	ListingID  int64      `json:"listing_id"`
	ReviewerID int64      `json:"reviewer_id"`
	TargetID   int64      `json:"target_id"`
	Rating     int        `json:"rating"`
	Comment    string     `json:"comment"`
	Reply      *string    `json:"reply,omitempty"`
	RepliedAt  *time.Time `json:"replied_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
