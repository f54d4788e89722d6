package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN    string `envconfig:"DB_DSN" default:"reservations.db"`

	JWTSecret   string        `envconfig:"JWT_SECRET" default:"change-me"`
	JWTTTL      time.Duration `envconfig:"JWT_TTL" default:"24h"`
	AuthEnabled bool          `envconfig:"AUTH_ENABLED" default:"true"`

	CORSOrigin     string  `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"40"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	SeedDemo      bool   `envconfig:"SEED_DEMO" default:"false"`

	RabbitURL      string `envconfig:"RABBIT_URL"`
	EventsExchange string `envconfig:"EVENTS_EXCHANGE" default:"reservations.events"`

	Business
}

// Business holds the booking rules that used to be inline literals.
type Business struct {
	OpenHour      int           `envconfig:"OPEN_HOUR" default:"8"`
	CloseHour     int           `envconfig:"CLOSE_HOUR" default:"22"`
	ClosedWeekday string        `envconfig:"CLOSED_WEEKDAY" default:"sunday"`
	ConfirmAward  int           `envconfig:"CONFIRM_AWARD" default:"100"`
	CompleteAward int           `envconfig:"COMPLETE_AWARD" default:"10"`
	OverlapWindow time.Duration `envconfig:"OVERLAP_WINDOW" default:"1h"`
	Timezone      string        `envconfig:"TIMEZONE" default:"Local"`
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	return FromEnv()
}

// FromEnv processes the environment without touching .env files.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	b := c.Business
	if b.OpenHour < 0 || b.CloseHour > 24 || b.OpenHour >= b.CloseHour {
		return fmt.Errorf("invalid business hours %d-%d", b.OpenHour, b.CloseHour)
	}
	if b.ConfirmAward < 0 || b.CompleteAward < 0 {
		return fmt.Errorf("loyalty awards must not be negative")
	}
	if b.OverlapWindow < 0 {
		return fmt.Errorf("OVERLAP_WINDOW must not be negative")
	}
	if _, err := b.Weekday(); err != nil {
		return err
	}
	if _, err := b.Location(); err != nil {
		return err
	}
	return nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (b Business) Weekday() (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(b.ClosedWeekday))]
	if !ok {
		return 0, fmt.Errorf("invalid CLOSED_WEEKDAY %q", b.ClosedWeekday)
	}
	return d, nil
}

func (b Business) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", b.Timezone, err)
	}
	return loc, nil
}
