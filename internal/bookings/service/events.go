package service

import (
	"context"
	"time"

	"roomhub/pkg/kafka"
	"roomhub/pkg/logger"
	"roomhub/pkg/model"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"

	eventSource = "bookings-service"
)

type bookingCreatedEvent struct {
	BookingID   string    `json:"booking_id"`
	RoomID      string    `json:"room_id"`
	RoomName    string    `json:"room_name"`
	RequesterID string    `json:"requester_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
}

type bookingStatusChangedEvent struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
	ActorID   string `json:"actor_id"`
}

// EventPublisher emits booking lifecycle events to the stream. Publishing is
// best-effort: the booking record is the source of truth, so a failed publish
// is logged and never fails the operation that produced it. A nil producer
// disables the stream entirely.
type EventPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewEventPublisher(producer *kafka.Producer, log *logger.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, log: log}
}

func (p *EventPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	if p == nil || p.producer == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithEventType(EventBookingCreated).
		WithSource(eventSource).
		WithValue(bookingCreatedEvent{
			BookingID:   booking.ID,
			RoomID:      booking.RoomID,
			RoomName:    booking.RoomName,
			RequesterID: booking.RequesterID,
			StartTime:   booking.StartTime,
			EndTime:     booking.EndTime,
			Status:      string(booking.Status),
		}).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish booking created event", "booking_id", booking.ID, "error", err)
	}
}

func (p *EventPublisher) BookingStatusChanged(ctx context.Context, bookingID string, status model.BookingStatus, actorID string) {
	if p == nil || p.producer == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(bookingID).
		WithEventType(EventBookingStatusChanged).
		WithSource(eventSource).
		WithValue(bookingStatusChangedEvent{
			BookingID: bookingID,
			Status:    string(status),
			ActorID:   actorID,
		}).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish booking status event", "booking_id", bookingID, "error", err)
	}
}
