package handlers

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	moderationService *services.ModerationService
	contactService    *services.ContactService
	authService       *services.AdminAuthService
}

func NewAdminHandler(
	moderationService *services.ModerationService,
	contactService *services.ContactService,
	authService *services.AdminAuthService,
) *AdminHandler {
	return &AdminHandler{
		moderationService: moderationService,
		contactService:    contactService,
		authService:       authService,
	}
}

// MintToken exchanges the shared admin secret for a short-lived bearer token.
// Sits outside the AdminRequired group but performs the same credential check.
func (h *AdminHandler) MintToken(c *fiber.Ctx) error {
	var req dto.AdminTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if !h.authService.IsAuthorizedSecret(req.Secret) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	token, expiresAt, err := h.authService.MintToken()
	if err != nil {
		if errors.Is(err, services.ErrTokensDisabled) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("token mint failed", "action", "admin_token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to mint token",
		})
	}

	return c.JSON(dto.AdminTokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *AdminHandler) ListReports(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, total, err := h.moderationService.ListReports(limit, offset)
	if err != nil {
		slog.Error("report feed failed", "action", "admin_list_reports", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}

	return c.JSON(fiber.Map{
		"reports": rows,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *AdminHandler) SetContactStatus(c *fiber.Ctx) error {
	contactID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid contact ID",
		})
	}

	var req dto.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.contactService.SetStatus(contactID, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrContactNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("status override failed", "action", "admin_set_status", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update status",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Status updated"})
}

func (h *AdminHandler) DeleteReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	if err := h.moderationService.DeleteReport(reportID); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("report delete failed", "action", "admin_delete_report", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete report",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Report deleted"})
}

// RevealContact answers with the original raw contact, or the explicit
// cannot-decrypt outcome for rows stored one-way only.
func (h *AdminHandler) RevealContact(c *fiber.Ctx) error {
	contactID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid contact ID",
		})
	}

	original, err := h.moderationService.RevealContact(contactID)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrCannotDecrypt):
			return c.JSON(dto.RevealResponse{CannotDecrypt: true})
		case errors.Is(err, services.ErrContactNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("reveal failed", "action", "admin_reveal", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to reveal contact",
		})
	}

	return c.JSON(dto.RevealResponse{Original: original})
}
