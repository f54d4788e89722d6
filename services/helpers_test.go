package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-reservations/events"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
)

// Monday 7 January 2030, 10:00 UTC.
var testNow = time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)

func testRules() Rules {
	r := DefaultRules()
	r.Location = time.UTC
	return r
}

func fixedClock() time.Time { return testNow }

func setupTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")+"?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Table{}, &models.Customer{}, &models.Reservation{}, &models.User{}, &models.Notification{}))
	return repository.NewStore(db)
}

type fixture struct {
	store        *repository.Store
	events       *events.Recorder
	reservations *ReservationService
	tables       *TableService
	customers    *CustomerService
	queries      *QueryService
	reports      *ReportService
	customer     *models.Customer
}

// newFixture seeds table 5 (4 seats, Terrace), table 2 (2 seats, Hall) and
// one customer.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := setupTestStore(t)
	rec := &events.Recorder{}
	f := &fixture{
		store:        store,
		events:       rec,
		reservations: NewReservationService(store, testRules(), rec),
		tables:       NewTableService(store, testRules(), rec),
		customers:    NewCustomerService(store, testRules(), rec),
		queries:      NewQueryService(store, testRules()),
		reports:      NewReportService(store, testRules()),
	}
	f.reservations.Now = fixedClock
	f.tables.Now = fixedClock
	f.customers.Now = fixedClock
	f.queries.Now = fixedClock
	f.reports.Now = fixedClock

	ctx := context.Background()
	require.NoError(t, store.Tables.Create(ctx, &models.Table{Number: 5, Capacity: 4, Location: "Terrace", Active: true}))
	require.NoError(t, store.Tables.Create(ctx, &models.Table{Number: 2, Capacity: 2, Location: "Hall", Active: true}))
	f.customer = &models.Customer{Name: "Ana", Surname: "Lopez", Email: "ana@example.com", Phone: "555-0101", Active: true}
	require.NoError(t, store.Customers.Create(ctx, f.customer))
	return f
}

// at returns the given clock time on day offset from testNow's date.
func at(dayOffset, hour, minute int) time.Time {
	return time.Date(2030, 1, 7+dayOffset, hour, minute, 0, 0, time.UTC)
}

func (f *fixture) book(t *testing.T, table uint, when time.Time, status models.ReservationStatus) *models.Reservation {
	t.Helper()
	r, err := f.reservations.Create(context.Background(), CreateReservationInput{
		DateTime:    when,
		PartySize:   2,
		TableNumber: table,
		CustomerID:  f.customer.ID,
		Status:      status,
	})
	require.NoError(t, err)
	return r
}

// insert writes a reservation directly, bypassing validation, for history
// in the past.
func (f *fixture) insert(t *testing.T, table uint, when time.Time, size int, status models.ReservationStatus) *models.Reservation {
	t.Helper()
	r := &models.Reservation{DateTime: when.UTC(), PartySize: size, Status: status, TableNumber: table, CustomerID: f.customer.ID}
	require.NoError(t, f.store.Reservations.Create(context.Background(), r))
	return r
}

func (f *fixture) points(t *testing.T) int {
	t.Helper()
	c, err := f.store.Customers.Get(context.Background(), f.customer.ID)
	require.NoError(t, err)
	return c.Points
}

func ptr[T any](v T) *T { return &v }

var emptyFilter = repository.ReservationFilter{}
