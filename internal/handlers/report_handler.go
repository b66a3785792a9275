package handlers

import (
	"errors"
	"io"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SubmitReport handles POST /api/report: multipart form with contact, kind,
// category, description and an optional "evidence" file part.
func (h *ReportHandler) SubmitReport(c *fiber.Ctx) error {
	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	evidence, err := readEvidence(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid evidence upload",
		})
	}

	report, err := h.reportService.Submit(c.Context(), &req, evidence)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingContact),
			errors.Is(err, services.ErrMissingCategory),
			errors.Is(err, services.ErrInvalidKind):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrEvidenceUpload):
			slog.Error("evidence upload failed", "action", "submit_report", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to upload evidence",
			})
		}
		slog.Error("report submission failed", "action", "submit_report", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to submit report",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Report submitted successfully",
		"report_id": report.ID,
	})
}

func readEvidence(c *fiber.Ctx) (*services.Evidence, error) {
	fileHeader, err := c.FormFile("evidence")
	if err != nil {
		// Evidence is optional: no file part, or a non-multipart (JSON) body,
		// is fine. Anything else is a broken upload and must not submit.
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &services.Evidence{
		Data:        data,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Filename:    fileHeader.Filename,
	}, nil
}
