package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-reservations/config"
	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/events"
	"github.com/yeremiapane/restaurant-reservations/hub"
	"github.com/yeremiapane/restaurant-reservations/middlewares"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/services"
)

// Deps is everything the HTTP surface is built from.
type Deps struct {
	Config *config.Config
	Store  *repository.Store
	Rules  services.Rules
	Hub    *hub.Hub
	// Events receives every domain event; the hub is added automatically.
	Events events.Publisher
	// Now overrides the service clock when set.
	Now func() time.Time
}

// Services are the wired services behind the router, exposed for callers
// that need them outside HTTP.
type Services struct {
	Reservations *services.ReservationService
	Tables       *services.TableService
	Customers    *services.CustomerService
	Queries      *services.QueryService
	Reports      *services.ReportService
	Auth         *services.AuthService
	Activity     *services.NotificationService
}

func NewServices(d Deps) *Services {
	activity := services.NewNotificationService(d.Store, d.Rules)
	pub := events.Multi{activity, d.Events}
	if d.Hub != nil {
		pub = append(pub, d.Hub)
	}
	s := &Services{
		Activity:     activity,
		Reservations: services.NewReservationService(d.Store, d.Rules, pub),
		Tables:       services.NewTableService(d.Store, d.Rules, pub),
		Customers:    services.NewCustomerService(d.Store, d.Rules, pub),
		Queries:      services.NewQueryService(d.Store, d.Rules),
		Reports:      services.NewReportService(d.Store, d.Rules),
		Auth:         services.NewAuthService(d.Store),
	}
	if d.Now != nil {
		s.Reservations.Now = d.Now
		s.Tables.Now = d.Now
		s.Customers.Now = d.Now
		s.Queries.Now = d.Now
		s.Reports.Now = d.Now
	}
	return s
}

func SetupRouter(d Deps) *gin.Engine {
	cfg := d.Config
	if d.Hub == nil {
		d.Hub = hub.New()
	}
	svc := NewServices(d)
	loc := d.Rules.Location
	if loc == nil {
		loc = time.Local
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).RateLimit())

	userCtrl := controllers.NewUserController(svc.Auth)
	tableCtrl := controllers.NewTableController(svc.Tables)
	customerCtrl := controllers.NewCustomerController(svc.Customers)
	reservationCtrl := controllers.NewReservationController(svc.Reservations, svc.Queries, loc)
	queryCtrl := controllers.NewQueryController(svc.Queries, loc)
	reportCtrl := controllers.NewReportController(svc.Reports, svc.Queries, loc)
	notificationCtrl := controllers.NewNotificationController(svc.Activity)
	dashboardCtrl := controllers.NewDashboardController(d.Hub, cfg.CORSOrigin)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// Login and register get their own, stricter budget.
	public := api.Group("/auth")
	public.Use(middlewares.NewRateLimiter(0.2, 5).RateLimit())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	auth := api.Group("")
	admin := []gin.HandlerFunc{}
	if cfg.AuthEnabled {
		auth.Use(middlewares.AuthMiddleware())
		admin = append(admin, middlewares.RequireRole(models.RoleAdmin))
	}

	auth.GET("/auth/profile", userCtrl.GetProfile)

	// Tables
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.GET("/tables/capacity/:capacity", tableCtrl.GetTablesByCapacity)
	auth.GET("/tables/:number", tableCtrl.GetTable)
	auth.PATCH("/tables/:number", tableCtrl.UpdateTable)
	auth.DELETE("/tables/:number", tableCtrl.DeleteTable)

	// Customers
	auth.POST("/customers", customerCtrl.CreateCustomer)
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.GET("/customers/search", customerCtrl.SearchCustomers)
	auth.GET("/customers/email/:email", customerCtrl.GetCustomerByEmail)
	auth.GET("/customers/:id", customerCtrl.GetCustomer)
	auth.GET("/customers/:id/history", customerCtrl.GetCustomerHistory)
	auth.PATCH("/customers/:id", customerCtrl.UpdateCustomer)
	auth.DELETE("/customers/:id", customerCtrl.DeleteCustomer)

	// Reservations
	auth.POST("/reservations", reservationCtrl.CreateReservation)
	auth.GET("/reservations", reservationCtrl.GetAllReservations)
	auth.GET("/reservations/day", reservationCtrl.GetReservationsForDay)
	auth.GET("/reservations/availability", reservationCtrl.CheckAvailability)
	auth.GET("/reservations/:id", reservationCtrl.GetReservation)
	auth.PATCH("/reservations/:id", reservationCtrl.UpdateReservation)
	auth.PATCH("/reservations/:id/cancel", reservationCtrl.CancelReservation)
	auth.DELETE("/reservations/:id", append(admin, reservationCtrl.DeleteReservation)...)

	// Queries
	auth.GET("/queries/availability", queryCtrl.Availability)
	auth.GET("/queries/day-summary", queryCtrl.DaySummary)
	auth.GET("/queries/customer-history", queryCtrl.CustomerHistory)
	auth.GET("/queries/hourly-occupancy", queryCtrl.HourlyOccupancy)
	auth.GET("/queries/popular-tables", queryCtrl.PopularTables)

	// Reports
	auth.GET("/reports/occupancy", reportCtrl.Occupancy)
	auth.GET("/reports/occupancy.csv", reportCtrl.OccupancyCSV)
	auth.GET("/reports/occupancy.pdf", reportCtrl.OccupancyPDF)

	// Activity feed and live dashboard
	auth.GET("/notifications", notificationCtrl.GetNotifications)
	auth.GET("/ws/dashboard", dashboardCtrl.Stream)

	return r
}
