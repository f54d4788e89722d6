package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store groups the repositories over one connection or transaction.
type Store struct {
	db           *gorm.DB
	Tables       *TableRepository
	Customers    *CustomerRepository
	Reservations *ReservationRepository
	Users        *UserRepository

	Notifications *NotificationRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		Tables:       &TableRepository{db: db},
		Customers:    &CustomerRepository{db: db},
		Reservations: &ReservationRepository{db: db},
		Users:        &UserRepository{db: db},

		Notifications: &NotificationRepository{db: db},
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a Store bound to a single database transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// forUpdate adds a row lock where the dialect supports one. SQLite has no
// SELECT ... FOR UPDATE; its single-writer lock already serializes writers.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKey(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func duplicate(format string, args ...interface{}) error {
	return apperrors.New(apperrors.KindDuplicateKey, format, args...)
}
