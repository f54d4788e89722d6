package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/events"
	"github.com/yeremiapane/restaurant-reservations/hub"
	"github.com/yeremiapane/restaurant-reservations/mq"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/router"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the live dashboard feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.GinMode == gin.ReleaseMode {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if migrateUp {
				if err := database.Migrate(db); err != nil {
					return err
				}
				if err := database.SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
					return err
				}
			}

			rules, err := services.RulesFromConfig(cfg.Business)
			if err != nil {
				return err
			}

			var sink events.Publisher = events.Nop{}
			if cfg.RabbitURL != "" {
				pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.EventsExchange)
				if err != nil {
					return err
				}
				defer pub.Close()
				sink = pub
				utils.InfoLogger.Infof("Publishing events to exchange %s", cfg.EventsExchange)
			}

			if !cfg.AuthEnabled {
				utils.InfoLogger.Warn("Authentication is disabled; every endpoint is public")
			}

			r := router.SetupRouter(router.Deps{
				Config: cfg,
				Store:  repository.NewStore(db),
				Rules:  rules,
				Hub:    hub.New(),
				Events: sink,
			})
			return listen(ctx, ":"+cfg.Port, r)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}

// listen serves until ctx is done, then drains in-flight requests.
func listen(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.InfoLogger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.InfoLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
