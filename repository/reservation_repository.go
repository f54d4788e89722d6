package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository struct {
	db *gorm.DB
}

// ReservationFilter narrows List. Zero values mean no restriction; From is
// inclusive and To exclusive.
type ReservationFilter struct {
	From        time.Time
	To          time.Time
	TableNumber uint
	CustomerID  uint
	Statuses    []models.ReservationStatus
	Ascending   bool
}

func (r *ReservationRepository) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).Preload("Table").Preload("Customer").First(&reservation, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("reservation %d not found", id)
		}
		return nil, fmt.Errorf("get reservation %d: %w", id, err)
	}
	return &reservation, nil
}

func (r *ReservationRepository) List(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	q := r.db.WithContext(ctx).Preload("Table").Preload("Customer")
	if !f.From.IsZero() {
		q = q.Where("date_time >= ?", f.From.UTC().Truncate(time.Second))
	}
	if !f.To.IsZero() {
		q = q.Where("date_time < ?", f.To.UTC().Truncate(time.Second))
	}
	if f.TableNumber != 0 {
		q = q.Where("table_number = ?", f.TableNumber)
	}
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.Ascending {
		q = q.Order("date_time ASC").Order("id ASC")
	} else {
		q = q.Order("date_time DESC").Order("id DESC")
	}

	var reservations []models.Reservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

// FindConflict returns the first non-cancelled reservation on table whose
// date-time lies within window of at (bounds inclusive), or nil. excludeID
// keeps a reservation from colliding with itself on update.
func (r *ReservationRepository) FindConflict(ctx context.Context, table uint, at time.Time, window time.Duration, excludeID uint) (*models.Reservation, error) {
	at = at.UTC().Truncate(time.Second)
	q := r.db.WithContext(ctx).
		Where("table_number = ?", table).
		Where("date_time BETWEEN ? AND ?", at.Add(-window), at.Add(window)).
		Where("status <> ?", models.StatusCancelled)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var found []models.Reservation
	if err := q.Order("date_time ASC").Limit(1).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("find conflicting reservation: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// ConfirmedAt lists confirmed reservations booked at exactly at.
func (r *ReservationRepository) ConfirmedAt(ctx context.Context, at time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).Preload("Customer").
		Where("date_time = ? AND status = ?", at.UTC().Truncate(time.Second), models.StatusConfirmed).
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("list confirmed reservations: %w", err)
	}
	return reservations, nil
}

func (r *ReservationRepository) CountUpcomingForTable(ctx context.Context, table uint, from time.Time) (int64, error) {
	return r.countUpcoming(ctx, "table_number = ?", table, from)
}

func (r *ReservationRepository) CountUpcomingForCustomer(ctx context.Context, customerID uint, from time.Time) (int64, error) {
	return r.countUpcoming(ctx, "customer_id = ?", customerID, from)
}

func (r *ReservationRepository) countUpcoming(ctx context.Context, cond string, arg interface{}, from time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where(cond, arg).
		Where("status <> ? AND date_time >= ?", models.StatusCancelled, from.UTC().Truncate(time.Second)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count upcoming reservations: %w", err)
	}
	return count, nil
}

func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(reservation).Error
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// Save writes every column except status, which only moves through
// TransitionStatus.
func (r *ReservationRepository) Save(ctx context.Context, reservation *models.Reservation) error {
	err := r.db.WithContext(ctx).Model(reservation).
		Updates(map[string]interface{}{
			"date_time":    reservation.DateTime.UTC().Truncate(time.Second),
			"party_size":   reservation.PartySize,
			"notes":        reservation.Notes,
			"table_number": reservation.TableNumber,
			"customer_id":  reservation.CustomerID,
			"updated_at":   time.Now().UTC().Truncate(time.Second),
		}).Error
	if err != nil {
		return fmt.Errorf("save reservation %d: %w", reservation.ID, err)
	}
	return nil
}

// TransitionStatus moves the reservation from one status to another and
// reports whether this call made the change. A concurrent writer that got
// there first leaves the row untouched and yields false.
func (r *ReservationRepository) TransitionStatus(ctx context.Context, id uint, from, to models.ReservationStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().UTC().Truncate(time.Second),
		})
	if res.Error != nil {
		return false, fmt.Errorf("transition reservation %d: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Reservation{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete reservation %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("reservation %d not found", id)
	}
	return nil
}

// TableUsage is one row of the per-table aggregate.
type TableUsage struct {
	TableNumber      uint    `json:"table_number"`
	Reservations     int64   `json:"reservations"`
	AveragePartySize float64 `json:"average_party_size"`
}

// UsageByTable aggregates non-cancelled reservations in [from, to) per table,
// busiest first. Ties go to the table booked earliest in the range.
func (r *ReservationRepository) UsageByTable(ctx context.Context, from, to time.Time) ([]TableUsage, error) {
	var rows []TableUsage
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Select("table_number, COUNT(*) AS reservations, AVG(party_size) AS average_party_size").
		Where("date_time >= ? AND date_time < ?", from.UTC().Truncate(time.Second), to.UTC().Truncate(time.Second)).
		Where("status <> ?", models.StatusCancelled).
		Group("table_number").
		Order("reservations DESC").
		Order("MIN(date_time) ASC").
		Order("table_number ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate table usage: %w", err)
	}
	return rows, nil
}
