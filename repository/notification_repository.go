package repository

import (
	"context"
	"fmt"

	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first, optionally only those
// for one event name.
func (r *NotificationRepository) Recent(ctx context.Context, event string, limit int) ([]models.Notification, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit)
	if event != "" {
		q = q.Where("event = ?", event)
	}
	var out []models.Notification
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}
