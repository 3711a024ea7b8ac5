// Package routes defines the API routing configuration.
package routes

import (
	"orus-accounts/internal/handlers"
	"orus-accounts/internal/services/account"
	"orus-accounts/internal/services/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the services the routes are served from.
type Dependencies struct {
	AccountService  account.Service
	TransferService transfer.Service
	Gatherer        prometheus.Gatherer
	HealthChecks    map[string]handlers.HealthCheckFunc
	// EnableReset exposes DELETE /v1/accounts.
	EnableReset bool
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	accountHandler := handlers.NewAccountHandler(deps.AccountService)
	transferHandler := handlers.NewTransferHandler(deps.TransferService)
	healthHandler := handlers.NewHealthHandler(deps.AccountService, deps.HealthChecks)

	app.Get("/health", healthHandler.HealthCheck)
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	accounts := app.Group("/v1/accounts")
	accounts.Post("/", accountHandler.CreateAccount)
	accounts.Post("/transfer", transferHandler.Transfer)
	accounts.Get("/:accountId", accountHandler.GetAccount)
	if deps.EnableReset {
		accounts.Delete("/", accountHandler.ClearAccounts)
	}
}
