package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-reservations/events"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// base carries what every service needs: the store, the rules, an event
// sink and a clock.
type base struct {
	store  *repository.Store
	rules  Rules
	events events.Publisher

	// Now is the clock. Tests replace it.
	Now func() time.Time
}

func newBase(store *repository.Store, rules Rules, pub events.Publisher) base {
	if pub == nil {
		pub = events.Nop{}
	}
	return base{store: store, rules: rules, events: pub, Now: time.Now}
}

func (b *base) now() time.Time {
	return b.Now()
}

// publish never fails the caller; a lost event is only logged.
func (b *base) publish(ctx context.Context, event string, data interface{}) {
	if err := b.events.Publish(ctx, events.NewMessage(event, data)); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{"event": event}).Warnf("Failed to publish event: %v", err)
	}
}
