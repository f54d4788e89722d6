package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/events"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type TableService struct {
	base
}

func NewTableService(store *repository.Store, rules Rules, pub events.Publisher) *TableService {
	return &TableService{base: newBase(store, rules, pub)}
}

type CreateTableInput struct {
	Number   uint
	Capacity int
	Location string
	Active   *bool
}

type UpdateTableInput struct {
	Number   *uint
	Capacity *int
	Location *string
	Active   *bool
}

func validateTable(t *models.Table) error {
	if t.Number < 1 {
		return apperrors.Invalid("table number must be at least 1")
	}
	if t.Capacity < 1 {
		return apperrors.Invalid("table capacity must be at least 1")
	}
	if strings.TrimSpace(t.Location) == "" {
		return apperrors.Invalid("table location is required")
	}
	return nil
}

func (s *TableService) Create(ctx context.Context, in CreateTableInput) (*models.Table, error) {
	table := &models.Table{
		Number:   in.Number,
		Capacity: in.Capacity,
		Location: strings.TrimSpace(in.Location),
		Active:   true,
	}
	if in.Active != nil {
		table.Active = *in.Active
	}
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if err := s.store.Tables.Create(ctx, table); err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"table": table.Number, "capacity": table.Capacity}).Info("Table created")
	s.publish(ctx, events.TableCreated, table)
	return table, nil
}

func (s *TableService) List(ctx context.Context, activeOnly bool) ([]models.Table, error) {
	return s.store.Tables.List(ctx, activeOnly)
}

// ByCapacity lists active tables seating exactly capacity guests.
func (s *TableService) ByCapacity(ctx context.Context, capacity int) ([]models.Table, error) {
	if capacity < 1 {
		return nil, apperrors.Invalid("capacity must be at least 1")
	}
	return s.store.Tables.ListByCapacity(ctx, capacity)
}

func (s *TableService) Get(ctx context.Context, number uint) (*models.Table, error) {
	return s.store.Tables.Get(ctx, number)
}

func (s *TableService) Update(ctx context.Context, number uint, in UpdateTableInput) (*models.Table, error) {
	var updated *models.Table
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		table, err := tx.Tables.GetForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if in.Number != nil && *in.Number != number {
			taken, err := tx.Tables.Exists(ctx, *in.Number)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.New(apperrors.KindDuplicateKey, "a table with number %d already exists", *in.Number)
			}
			table.Number = *in.Number
		}
		if in.Capacity != nil {
			table.Capacity = *in.Capacity
		}
		if in.Location != nil {
			table.Location = strings.TrimSpace(*in.Location)
		}
		if in.Active != nil {
			table.Active = *in.Active
		}
		if err := validateTable(table); err != nil {
			return err
		}
		if err := tx.Tables.Update(ctx, number, table); err != nil {
			return err
		}
		updated, err = tx.Tables.Get(ctx, table.Number)
		return err
	})
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"table": number, "new_number": updated.Number}).Info("Table updated")
	s.publish(ctx, events.TableUpdated, updated)
	return updated, nil
}

// Delete refuses while the table holds non-cancelled reservations from now on.
func (s *TableService) Delete(ctx context.Context, number uint) error {
	if _, err := s.store.Tables.Get(ctx, number); err != nil {
		return err
	}
	upcoming, err := s.store.Reservations.CountUpcomingForTable(ctx, number, s.now())
	if err != nil {
		return err
	}
	if upcoming > 0 {
		return apperrors.New(apperrors.KindHasActiveReservations,
			"table %d has %d upcoming reservations", number, upcoming)
	}
	if err := s.store.Tables.Delete(ctx, number); err != nil {
		return err
	}
	utils.InfoLogger.WithField("table", number).Info("Table deleted")
	s.publish(ctx, events.TableDeleted, map[string]uint{"number": number})
	return nil
}
