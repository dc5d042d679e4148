package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is the buyer's single post-delivery review of an order.
type Review struct {
	ID         int64
	OrderID    int64
	ListingID  int64
	ReviewerID int64
	TargetID   int64
	Rating     int
	Comment    string
	Reply      *string
	RepliedAt  *time.Time
	CreatedAt  time.Time
}
