package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

// EventPublisher accepts notifications without blocking the caller.
// Delivery is best effort.
type EventPublisher interface {
	Publish(event model.Event)
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(model.Event) {}

func newEvent(kind model.EventType, actorID, subject int64, payload map[string]any) model.Event {
	return model.Event{
		ID:         uuid.NewString(),
		Type:       kind,
		OccurredAt: time.Now().UTC(),
		ActorID:    actorID,
		Subject:    subject,
		Payload:    payload,
	}
}
