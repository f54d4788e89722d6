package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-reservations/events"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
)

const (
	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 200
)

// NotificationService keeps the staff activity feed. It is an
// events.Publisher: every published event becomes one notification.
type NotificationService struct {
	base
}

func NewNotificationService(store *repository.Store, rules Rules) *NotificationService {
	return &NotificationService{base: newBase(store, rules, nil)}
}

func (s *NotificationService) Publish(ctx context.Context, msg events.Message) error {
	payload, err := json.Marshal(msg.Data)
	if err != nil {
		return fmt.Errorf("encode notification payload: %w", err)
	}
	n := &models.Notification{
		Event:     msg.Event,
		Message:   s.describe(msg),
		Payload:   string(payload),
		CreatedAt: msg.OccurredAt,
	}
	return s.store.Notifications.Create(ctx, n)
}

// Recent lists the newest notifications. limit 0 means the default.
func (s *NotificationService) Recent(ctx context.Context, event string, limit int) ([]models.Notification, error) {
	if limit == 0 {
		limit = DefaultNotificationLimit
	}
	if limit > MaxNotificationLimit {
		limit = MaxNotificationLimit
	}
	return s.store.Notifications.Recent(ctx, event, limit)
}

func (s *NotificationService) describe(msg events.Message) string {
	subject, verb, ok := strings.Cut(msg.Event, ".")
	if !ok {
		return msg.Event
	}
	loc := s.rules.location()

	switch v := msg.Data.(type) {
	case *models.Reservation:
		line := fmt.Sprintf("Reservation #%d %s: table %d, %d guests, %s",
			v.ID, verb, v.TableNumber, v.PartySize, v.DateTime.In(loc).Format("2006-01-02 15:04"))
		if v.Customer != nil {
			line += " for " + v.Customer.FullName()
		}
		return line
	case *models.Table:
		return fmt.Sprintf("Table %d %s: %d seats, %s", v.Number, verb, v.Capacity, v.Location)
	case *models.Customer:
		return fmt.Sprintf("Customer %s %s", v.FullName(), verb)
	case map[string]uint:
		if id, ok := v["id"]; ok {
			return fmt.Sprintf("%s #%d %s", capitalize(subject), id, verb)
		}
		if number, ok := v["number"]; ok {
			return fmt.Sprintf("%s %d %s", capitalize(subject), number, verb)
		}
	}
	return msg.Event
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
