package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/events"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type ReservationService struct {
	base
}

func NewReservationService(store *repository.Store, rules Rules, pub events.Publisher) *ReservationService {
	return &ReservationService{base: newBase(store, rules, pub)}
}

type CreateReservationInput struct {
	DateTime    time.Time
	PartySize   int
	TableNumber uint
	CustomerID  uint
	Status      models.ReservationStatus
	Notes       *string
}

// UpdateReservationInput is a partial update; nil fields are left unchanged.
type UpdateReservationInput struct {
	DateTime    *time.Time
	PartySize   *int
	Status      *models.ReservationStatus
	Notes       *string
	TableNumber *uint
	CustomerID  *uint
}

// IsCancel reports whether the patch is a cancellation, which skips every
// other field and all validation.
func (in UpdateReservationInput) IsCancel() bool {
	return in.Status != nil && *in.Status == models.StatusCancelled
}

func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	if in.Status == "" {
		in.Status = models.StatusPending
	}
	if !in.Status.Valid() {
		return nil, apperrors.Invalid("unknown reservation status %q", in.Status)
	}
	if in.PartySize < 1 {
		return nil, apperrors.Invalid("party size must be at least 1")
	}
	at := normalize(in.DateTime)
	if err := s.rules.CheckTiming(at, s.now()); err != nil {
		return nil, err
	}

	table, err := s.store.Tables.Get(ctx, in.TableNumber)
	if err != nil {
		return nil, err
	}
	if in.PartySize > table.Capacity {
		return nil, capacityExceeded(in.PartySize, table)
	}
	if _, err := s.store.Customers.Get(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		DateTime:    at,
		PartySize:   in.PartySize,
		Status:      in.Status,
		Notes:       in.Notes,
		TableNumber: in.TableNumber,
		CustomerID:  in.CustomerID,
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Tables.GetForUpdate(ctx, in.TableNumber); err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, tx, in.TableNumber, at, 0); err != nil {
			return err
		}
		if err := tx.Reservations.Create(ctx, reservation); err != nil {
			return err
		}
		if reservation.Status == models.StatusConfirmed {
			return s.award(ctx, tx, reservation.CustomerID, s.rules.ConfirmAward)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"table":          reservation.TableNumber,
		"customer_id":    reservation.CustomerID,
		"status":         reservation.Status,
	}).Info("Reservation created")

	created, err := s.store.Reservations.Get(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.ReservationCreated, created)
	return created, nil
}

func (s *ReservationService) Update(ctx context.Context, id uint, in UpdateReservationInput) (*models.Reservation, error) {
	if in.IsCancel() {
		return s.forceCancel(ctx, id)
	}

	current, err := s.store.Reservations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := *current
	next.Table, next.Customer = nil, nil

	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperrors.Invalid("unknown reservation status %q", *in.Status)
		}
		next.Status = *in.Status
	}
	if in.Notes != nil {
		next.Notes = in.Notes
	}

	dateChanged := false
	if in.DateTime != nil {
		at := normalize(*in.DateTime)
		if !at.Equal(current.DateTime) {
			if err := s.rules.CheckTiming(at, s.now()); err != nil {
				return nil, err
			}
			next.DateTime = at
			dateChanged = true
		}
	}

	sizeChanged := false
	if in.PartySize != nil {
		if *in.PartySize < 1 {
			return nil, apperrors.Invalid("party size must be at least 1")
		}
		sizeChanged = *in.PartySize != current.PartySize
		next.PartySize = *in.PartySize
	}

	tableChanged := in.TableNumber != nil && *in.TableNumber != current.TableNumber
	if tableChanged {
		next.TableNumber = *in.TableNumber
	}
	if tableChanged || sizeChanged {
		table, err := s.store.Tables.Get(ctx, next.TableNumber)
		if err != nil {
			return nil, err
		}
		if next.PartySize > table.Capacity {
			return nil, capacityExceeded(next.PartySize, table)
		}
	}

	if in.CustomerID != nil && *in.CustomerID != current.CustomerID {
		if _, err := s.store.Customers.Get(ctx, *in.CustomerID); err != nil {
			return nil, err
		}
		next.CustomerID = *in.CustomerID
	}

	reactivated := current.Status == models.StatusCancelled && next.Status != models.StatusCancelled
	needsOverlap := dateChanged || tableChanged || reactivated

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if needsOverlap {
			if _, err := tx.Tables.GetForUpdate(ctx, next.TableNumber); err != nil {
				return err
			}
			if err := s.checkOverlap(ctx, tx, next.TableNumber, next.DateTime, id); err != nil {
				return err
			}
		}
		if err := tx.Reservations.Save(ctx, &next); err != nil {
			return err
		}
		if next.Status == current.Status {
			return nil
		}
		changed, err := tx.Reservations.TransitionStatus(ctx, id, current.Status, next.Status)
		if err != nil {
			return err
		}
		if !changed {
			return apperrors.New(apperrors.KindSlotConflict,
				"reservation %d changed status while being updated, reload and retry", id)
		}
		// Points go to the customer who held the reservation before this patch.
		switch next.Status {
		case models.StatusConfirmed:
			return s.award(ctx, tx, current.CustomerID, s.rules.ConfirmAward)
		case models.StatusCompleted:
			return s.award(ctx, tx, current.CustomerID, s.rules.CompleteAward)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": id,
		"from_status":    current.Status,
		"to_status":      next.Status,
	}).Info("Reservation updated")

	updated, err := s.store.Reservations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.ReservationUpdated, updated)
	return updated, nil
}

// forceCancel is the cancellation carried inside an update: it marks the
// reservation cancelled whatever its current status.
func (s *ReservationService) forceCancel(ctx context.Context, id uint) (*models.Reservation, error) {
	current, err := s.store.Reservations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != models.StatusCancelled {
		if _, err := s.store.Reservations.TransitionStatus(ctx, id, current.Status, models.StatusCancelled); err != nil {
			return nil, err
		}
	}
	return s.cancelled(ctx, id)
}

// cancelAttempts bounds retries when the status moves under a cancel.
const cancelAttempts = 3

func (s *ReservationService) Cancel(ctx context.Context, id uint) (*models.Reservation, error) {
	for i := 0; i < cancelAttempts; i++ {
		current, err := s.store.Reservations.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		switch current.Status {
		case models.StatusCancelled:
			return nil, apperrors.New(apperrors.KindAlreadyCancelled, "reservation %d is already cancelled", id)
		case models.StatusCompleted:
			return nil, apperrors.New(apperrors.KindTerminalStateViolation, "reservation %d is completed and cannot be cancelled", id)
		}
		changed, err := s.store.Reservations.TransitionStatus(ctx, id, current.Status, models.StatusCancelled)
		if err != nil {
			return nil, err
		}
		if changed {
			return s.cancelled(ctx, id)
		}
	}
	return nil, fmt.Errorf("cancel reservation %d: status kept changing", id)
}

func (s *ReservationService) cancelled(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.store.Reservations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithField("reservation_id", id).Info("Reservation cancelled")
	s.publish(ctx, events.ReservationCancelled, reservation)
	return reservation, nil
}

// Delete removes the reservation row for good.
func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Reservations.Delete(ctx, id); err != nil {
		return err
	}
	utils.InfoLogger.WithField("reservation_id", id).Info("Reservation deleted")
	s.publish(ctx, events.ReservationDeleted, map[string]uint{"id": id})
	return nil
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.store.Reservations.Get(ctx, id)
}

func (s *ReservationService) List(ctx context.Context, filter repository.ReservationFilter) ([]models.Reservation, error) {
	return s.store.Reservations.List(ctx, filter)
}

func (s *ReservationService) checkOverlap(ctx context.Context, tx *repository.Store, table uint, at time.Time, excludeID uint) error {
	conflict, err := tx.Reservations.FindConflict(ctx, table, at, s.rules.OverlapWindow, excludeID)
	if err != nil {
		return err
	}
	if conflict != nil {
		return apperrors.New(apperrors.KindSlotConflict,
			"table %d already has reservation %d at %s", table, conflict.ID,
			conflict.DateTime.In(s.rules.location()).Format("2006-01-02 15:04"))
	}
	return nil
}

func (s *ReservationService) award(ctx context.Context, tx *repository.Store, customerID uint, points int) error {
	if points <= 0 {
		return nil
	}
	if err := tx.Customers.AddPoints(ctx, customerID, points); err != nil {
		return err
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"customer_id": customerID,
		"points":      points,
	}).Info("Loyalty points awarded")
	return nil
}

func capacityExceeded(partySize int, table *models.Table) error {
	return apperrors.New(apperrors.KindCapacityExceeded,
		"party of %d exceeds table %d capacity of %d", partySize, table.Number, table.Capacity)
}
