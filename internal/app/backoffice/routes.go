// Package backoffice предоставляет маршруты HTTP-приложения.
package backoffice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/auth/login"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/auth/register"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/car/carcreate"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/car/carlist"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/car/carread"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/car/carremove"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/car/carstatus"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/car/carupdate"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/client/clientcreate"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/client/clientlist"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/client/clientread"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/client/clientremove"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/client/clientupdate"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/dashboard"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/document/documentcreate"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/document/documentlist"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/document/documentremove"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/expense/expensecreate"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/expense/expenselist"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/expense/expenseremove"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/expense/expenseupdate"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/health"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/notifications"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/rental/rentalavailability"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/rental/rentalcreate"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/rental/rentallist"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/rental/rentalread"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/rental/rentalremove"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/rental/rentalstatus"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/handlers/rental/rentalupdate"
	"github.com/ayoubkcm/fleet-backoffice/internal/http/middlewarectx"
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

// Services собирает сервисы бэк-офиса, которые нужны маршрутам.
type Services struct {
	Auth         *authservice.AuthService
	Rental       *rentalservice.RentalService
	Car          *carservice.CarService
	Client       *clientservice.ClientService
	Expense      *expenseservice.ExpenseService
	Document     *documentservice.DocumentService
	Dashboard    *dashboardservice.DashboardService
	Notification *notificationservice.NotificationService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/cars", carcreate.New(logger, s.Car).ServeHTTP)
			r.Get("/cars", carlist.New(logger, s.Car).ServeHTTP)
			r.Get("/cars/{id}", carread.New(logger, s.Car).ServeHTTP)
			r.Put("/cars/{id}", carupdate.New(logger, s.Car).ServeHTTP)
			r.Patch("/cars/{id}/status", carstatus.New(logger, s.Car).ServeHTTP)
			r.Delete("/cars/{id}", carremove.New(logger, s.Car).ServeHTTP)

			r.Post("/clients", clientcreate.New(logger, s.Client).ServeHTTP)
			r.Get("/clients", clientlist.New(logger, s.Client).ServeHTTP)
			r.Get("/clients/{id}", clientread.New(logger, s.Client).ServeHTTP)
			r.Put("/clients/{id}", clientupdate.New(logger, s.Client).ServeHTTP)
			r.Delete("/clients/{id}", clientremove.New(logger, s.Client).ServeHTTP)

			r.Post("/rentals", rentalcreate.New(logger, s.Rental).ServeHTTP)
			r.Get("/rentals", rentallist.New(logger, s.Rental).ServeHTTP)
			r.Post("/rentals/availability", rentalavailability.New(logger, s.Rental).ServeHTTP)
			r.Get("/rentals/{id}", rentalread.New(logger, s.Rental).ServeHTTP)
			r.Put("/rentals/{id}", rentalupdate.New(logger, s.Rental).ServeHTTP)
			r.Patch("/rentals/{id}/status", rentalstatus.New(logger, s.Rental).ServeHTTP)
			r.Delete("/rentals/{id}", rentalremove.New(logger, s.Rental).ServeHTTP)

			r.Post("/documents", documentcreate.New(logger, s.Document).ServeHTTP)
			r.Get("/documents", documentlist.New(logger, s.Document).ServeHTTP)
			r.Delete("/documents/{id}", documentremove.New(logger, s.Document).ServeHTTP)

			r.Post("/expenses", expensecreate.New(logger, s.Expense).ServeHTTP)
			r.Get("/expenses", expenselist.New(logger, s.Expense).ServeHTTP)
			r.Put("/expenses/{id}", expenseupdate.New(logger, s.Expense).ServeHTTP)
			r.Delete("/expenses/{id}", expenseremove.New(logger, s.Expense).ServeHTTP)

			r.Get("/dashboard", dashboard.New(logger, s.Dashboard).ServeHTTP)
			r.Get("/notifications", notifications.New(logger, s.Notification).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
