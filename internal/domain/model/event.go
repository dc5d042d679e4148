package model

import "time"

// EventType names a notification emitted by the core.
type EventType string

const (
	EventOrderCreated        EventType = "order.created"
	EventOrderStatusChanged  EventType = "order.status_changed"
	EventOrderCancelled      EventType = "order.cancelled"
	EventOrderPaymentChanged EventType = "order.payment_changed"
	EventNegotiationOffer    EventType = "negotiation.offer"
	EventNegotiationAccepted EventType = "negotiation.accepted"
	EventNegotiationRejected EventType = "negotiation.rejected"
	EventReviewCreated       EventType = "review.created"
	EventReviewReplied       EventType = "review.replied"
)

// Event is a fire-and-forget notification about a state change.
type Event struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	ActorID    int64          `json:"actor_id"`
	Subject    int64          `json:"subject"`
	Payload    map[string]any `json:"payload,omitempty"`
}
