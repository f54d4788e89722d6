package events

import (
	"context"
	"errors"
	"time"
)

// Event names published after a successful write.
const (
	ReservationCreated   = "reservation.created"
	ReservationUpdated   = "reservation.updated"
	ReservationCancelled = "reservation.cancelled"
	ReservationDeleted   = "reservation.deleted"

	TableCreated = "table.created"
	TableUpdated = "table.updated"
	TableDeleted = "table.deleted"

	CustomerCreated = "customer.created"
	CustomerUpdated = "customer.updated"
	CustomerDeleted = "customer.deleted"
)

// Message is the payload every sink receives.
type Message struct {
	Event      string      `json:"event"`
	Data       interface{} `json:"data"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewMessage(event string, data interface{}) Message {
	return Message{Event: event, Data: data, OccurredAt: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Multi fans a message out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, msg Message) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Publish(context.Context, Message) error { return nil }

// Recorder keeps every published message in memory.
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Publish(_ context.Context, msg Message) error {
	r.Messages = append(r.Messages, msg)
	return nil
}

// Names returns the recorded event names in publish order.
func (r *Recorder) Names() []string {
	names := make([]string, 0, len(r.Messages))
	for _, m := range r.Messages {
		names = append(names, m.Event)
	}
	return names
}
