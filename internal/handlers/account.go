package handlers

import (
	"orus-accounts/internal/models"
	"orus-accounts/internal/services/account"
	"orus-accounts/internal/utils/response"
	"orus-accounts/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler exposes account endpoints.
type AccountHandler struct {
	service account.Service
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(s account.Service) *AccountHandler { return &AccountHandler{service: s} }

// CreateAccount handles POST /v1/accounts.
func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var req models.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	if err := validation.ValidateCreateAccount(req); err != nil {
		return response.FromError(c, err)
	}

	acc := models.NewAccount(*req.AccountID, *req.Balance)
	if err := h.service.CreateAccount(c.UserContext(), acc); err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, acc)
}

// GetAccount handles GET /v1/accounts/:accountId.
func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	acc, err := h.service.GetAccount(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, acc)
}

// ClearAccounts handles DELETE /v1/accounts.
func (h *AccountHandler) ClearAccounts(c *fiber.Ctx) error {
	h.service.ClearAccounts(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}
