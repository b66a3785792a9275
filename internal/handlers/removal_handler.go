package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RemovalHandler struct {
	removalService *services.RemovalService
}

func NewRemovalHandler(removalService *services.RemovalService) *RemovalHandler {
	return &RemovalHandler{removalService: removalService}
}

func (h *RemovalHandler) SubmitRequest(c *fiber.Ctx) error {
	var req dto.RemovalRequestInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.removalService.Submit(req.Contact, req.Reason); err != nil {
		if errors.Is(err, services.ErrMissingContact) || errors.Is(err, services.ErrMissingReason) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("removal request failed", "action", "removal_request", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to submit request",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Request submitted"})
}
