// Package backoffice собирает HTTP-приложение бэк-офиса автопарка:
// хранилище, кэш, миграции, сервисы и маршрутизатор.
package backoffice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/ayoubkcm/fleet-backoffice/internal/cache"
	"github.com/ayoubkcm/fleet-backoffice/internal/config"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/jwt"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/timezone"
	"github.com/ayoubkcm/fleet-backoffice/internal/migrations"
	authservice "github.com/ayoubkcm/fleet-backoffice/internal/services/auth"
	carservice "github.com/ayoubkcm/fleet-backoffice/internal/services/car"
	clientservice "github.com/ayoubkcm/fleet-backoffice/internal/services/client"
	dashboardservice "github.com/ayoubkcm/fleet-backoffice/internal/services/dashboard"
	documentservice "github.com/ayoubkcm/fleet-backoffice/internal/services/document"
	expenseservice "github.com/ayoubkcm/fleet-backoffice/internal/services/expense"
	notificationservice "github.com/ayoubkcm/fleet-backoffice/internal/services/notification"
	rentalservice "github.com/ayoubkcm/fleet-backoffice/internal/services/rental"
	"github.com/ayoubkcm/fleet-backoffice/internal/storage/repository"
)

// App HTTP-приложение бэк-офиса.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New собирает приложение: подключает PostgreSQL и Redis, накатывает
// миграции, создает сервисы и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	tz, err := businessTimezone(cfg)
	if err != nil {
		return nil, err
	}
	clock := timezone.SystemClock{}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	deps := Services{
		Auth:         authservice.NewAuthService(db, jwtMaker),
		Rental:       rentalservice.NewRentalService(db, cacheRedis, tz, clock, logger),
		Car:          carservice.NewCarService(db, clock, logger),
		Client:       clientservice.NewClientService(db, logger),
		Expense:      expenseservice.NewExpenseService(db, tz, logger),
		Document:     documentservice.NewDocumentService(db, tz, logger),
		Dashboard:    dashboardservice.NewDashboardService(db, tz, clock, logger),
		Notification: notificationservice.NewNotificationService(db, tz, clock, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, deps)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// businessTimezone выбирает бизнес-зону: env=local живёт на системной
// зоне процесса, остальные окружения на фиксированной зоне из конфига.
func businessTimezone(cfg *config.Config) (*timezone.Timezone, error) {
	if cfg.Env == "local" {
		return timezone.Local(), nil
	}
	return timezone.New(cfg.BusinessTimezone)
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
