// Package events publishes domain events to Kafka. Publishing is
// best-effort: the HTTP flow never fails because an event could not be
// written.
package events

import (
	"context"
	"encoding/json"
	"time"
)

const (
	TypeUserSignedUp        = "user.signed_up"
	TypeBookingCreated      = "booking.created"
	TypeApplicationReceived = "booking.application_received"
	TypePerformerSelected   = "performer.selected"
)

type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	Username   string    `json:"username,omitempty"`
	Usertype   string    `json:"usertype,omitempty"`
	BookingID  string    `json:"booking_id,omitempty"`
	VenueName  string    `json:"venuename,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

// NoopPublisher is used when no Kafka brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) {}
func (NoopPublisher) Close() error                   { return nil }
