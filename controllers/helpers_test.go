package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/events"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// Monday 7 January 2030, 10:00 UTC.
var testNow = time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)

type response struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testEnv struct {
	store    *repository.Store
	router   *gin.Engine
	customer *models.Customer
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")+"?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Table{}, &models.Customer{}, &models.Reservation{}, &models.User{}, &models.Notification{}))
	return db
}

// newTestEnv mounts every reservation-facing controller on a bare engine,
// with table 5 (4 seats) and one customer in place.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger("panic")

	store := repository.NewStore(setupTestDB(t))
	rules := services.DefaultRules()
	rules.Location = time.UTC
	clock := func() time.Time { return testNow }
	pub := &events.Recorder{}

	reservations := services.NewReservationService(store, rules, pub)
	tables := services.NewTableService(store, rules, pub)
	customers := services.NewCustomerService(store, rules, pub)
	queries := services.NewQueryService(store, rules)
	reports := services.NewReportService(store, rules)
	reservations.Now, tables.Now, customers.Now, queries.Now, reports.Now = clock, clock, clock, clock, clock

	tableCtrl := controllers.NewTableController(tables)
	customerCtrl := controllers.NewCustomerController(customers)
	reservationCtrl := controllers.NewReservationController(reservations, queries, time.UTC)
	queryCtrl := controllers.NewQueryController(queries, time.UTC)
	reportCtrl := controllers.NewReportController(reports, queries, time.UTC)

	r := gin.New()
	r.POST("/tables", tableCtrl.CreateTable)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/capacity/:capacity", tableCtrl.GetTablesByCapacity)
	r.GET("/tables/:number", tableCtrl.GetTable)
	r.PATCH("/tables/:number", tableCtrl.UpdateTable)
	r.DELETE("/tables/:number", tableCtrl.DeleteTable)

	r.POST("/customers", customerCtrl.CreateCustomer)
	r.GET("/customers", customerCtrl.GetAllCustomers)
	r.GET("/customers/search", customerCtrl.SearchCustomers)
	r.GET("/customers/email/:email", customerCtrl.GetCustomerByEmail)
	r.GET("/customers/:id", customerCtrl.GetCustomer)
	r.GET("/customers/:id/history", customerCtrl.GetCustomerHistory)
	r.PATCH("/customers/:id", customerCtrl.UpdateCustomer)
	r.DELETE("/customers/:id", customerCtrl.DeleteCustomer)

	r.POST("/reservations", reservationCtrl.CreateReservation)
	r.GET("/reservations", reservationCtrl.GetAllReservations)
	r.GET("/reservations/day", reservationCtrl.GetReservationsForDay)
	r.GET("/reservations/availability", reservationCtrl.CheckAvailability)
	r.GET("/reservations/:id", reservationCtrl.GetReservation)
	r.PATCH("/reservations/:id", reservationCtrl.UpdateReservation)
	r.PATCH("/reservations/:id/cancel", reservationCtrl.CancelReservation)
	r.DELETE("/reservations/:id", reservationCtrl.DeleteReservation)

	r.GET("/queries/availability", queryCtrl.Availability)
	r.GET("/queries/day-summary", queryCtrl.DaySummary)
	r.GET("/queries/customer-history", queryCtrl.CustomerHistory)
	r.GET("/queries/hourly-occupancy", queryCtrl.HourlyOccupancy)
	r.GET("/queries/popular-tables", queryCtrl.PopularTables)

	r.GET("/reports/occupancy", reportCtrl.Occupancy)
	r.GET("/reports/occupancy.csv", reportCtrl.OccupancyCSV)
	r.GET("/reports/occupancy.pdf", reportCtrl.OccupancyPDF)

	ctx := context.Background()
	require.NoError(t, store.Tables.Create(ctx, &models.Table{Number: 5, Capacity: 4, Location: "Terrace", Active: true}))
	customer := &models.Customer{Name: "Ana", Surname: "Lopez", Email: "ana@example.com", Phone: "555-0101", Active: true}
	require.NoError(t, store.Customers.Create(ctx, customer))

	return &testEnv{store: store, router: r, customer: customer}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp response
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// book creates a reservation on table 5 for the seeded customer through the
// HTTP surface and returns its id.
func (e *testEnv) book(t *testing.T, when, status string) uint {
	t.Helper()
	w, resp := e.do(t, http.MethodPost, "/reservations", gin.H{
		"date_time":    when,
		"party_size":   2,
		"table_number": 5,
		"customer_id":  e.customer.ID,
		"status":       status,
	})
	require.Equal(t, http.StatusCreated, w.Code, resp.Message)
	return decode[models.Reservation](t, resp.Data).ID
}
