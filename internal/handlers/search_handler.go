package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	contactService *services.ContactService
}

func NewSearchHandler(contactService *services.ContactService) *SearchHandler {
	return &SearchHandler{contactService: contactService}
}

// Search resolves GET /api/search?q=<raw contact>. Unknown contacts are a
// normal "Not Reported" response, never a 404.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Query parameter required",
		})
	}

	result, err := h.contactService.Search(query)
	if err != nil {
		slog.Error("search failed", "action", "search", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search contact",
		})
	}
	return c.JSON(result)
}
