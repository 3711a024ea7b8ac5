package handlers

import (
	"errors"

	apperrors "orus-accounts/internal/errors"
	"orus-accounts/internal/models"
	"orus-accounts/internal/services/transfer"
	"orus-accounts/internal/utils/response"
	"orus-accounts/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes the transfer endpoint.
type TransferHandler struct {
	service transfer.Service
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service) *TransferHandler { return &TransferHandler{service: s} }

// Transfer handles POST /v1/accounts/transfer requests.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var req models.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	if err := validation.ValidateTransferRequest(req); err != nil {
		return response.FromError(c, err)
	}

	result, err := h.service.Transfer(c.UserContext(), req)
	if err != nil {
		// An unknown account in a transfer body is a bad request, not a missing resource.
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return response.Error(c, fiber.StatusBadRequest, apperrors.ErrAccountNotFound.Code, err.Error())
		}
		return response.FromError(c, err)
	}
	return response.Success(c, result)
}
