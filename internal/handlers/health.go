package handlers

import (
	"context"
	"time"

	"orus-accounts/internal/services/account"

	"github.com/gofiber/fiber/v2"
)

// HealthCheckFunc reports whether a dependency is reachable.
type HealthCheckFunc func(ctx context.Context) error

// HealthHandler reports service and dependency status.
type HealthHandler struct {
	accounts account.Service
	checks   map[string]HealthCheckFunc
}

func NewHealthHandler(accounts account.Service, checks map[string]HealthCheckFunc) *HealthHandler {
	return &HealthHandler{accounts: accounts, checks: checks}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	services := fiber.Map{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			services[name] = err.Error()
			status = fiber.StatusServiceUnavailable
			continue
		}
		services[name] = "connected"
	}

	state := "ok"
	if status != fiber.StatusOK {
		state = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   state,
		"version":  "1.0.0",
		"accounts": h.accounts.CountAccounts(ctx),
		"services": services,
	})
}
