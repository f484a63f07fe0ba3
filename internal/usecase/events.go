package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Routing keys of the domain events.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventGuideRated           = "guide.rated"
	EventTourDeleted          = "tour.deleted"
)

// EventPublisher delivers a domain event. *rabbitmq.Publisher implements it.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// events publishes best effort: a failed publish is logged and never fails
// the request. A nil publisher disables events.
type events struct {
	pub EventPublisher
	log *zap.Logger
}

func (e events) emit(ctx context.Context, routingKey string, data any) {
	if e.pub == nil {
		return
	}

	event := Event{Type: routingKey, OccurredAt: time.Now().UTC(), Data: data}
	if err := e.pub.Publish(ctx, routingKey, event); err != nil {
		e.log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
		)
	}
}
