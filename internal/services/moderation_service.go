package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("report not found")

// ModerationService backs the privileged operator surface: the joined report
// feed, status overrides, report deletion and contact reveal.
type ModerationService struct {
	db     *gorm.DB
	sealer *identity.Sealer
}

func NewModerationService(db *gorm.DB, sealer *identity.Sealer) *ModerationService {
	return &ModerationService{db: db, sealer: sealer}
}

// ListReports returns the moderation feed, newest first: every report joined
// with its ledger entry's hash, cumulative count and current status.
func (s *ModerationService) ListReports(limit, offset int) ([]dto.AdminReportRow, int64, error) {
	var total int64
	if err := s.db.Model(&models.Report{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	var rows []dto.AdminReportRow
	err := s.db.Model(&models.Report{}).
		Select("reports.id, reports.contact_id, reports.category, reports.description, reports.evidence_url, reports.evidence_meta, reports.created_at, contacts.hashed_contact, contacts.report_count, contacts.status AS contact_status").
		Joins("JOIN contacts ON contacts.id = reports.contact_id").
		Order("reports.created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load report feed: %w", err)
	}
	return rows, total, nil
}

// DeleteReport removes a single report. The owning ledger's ReportCount is
// deliberately left alone: it counts reports ever received, not rows
// currently in the log. When the deleted report was the contact's last one,
// the ledger row goes with it.
func (s *ModerationService) DeleteReport(reportID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.Where("id = ?", reportID).First(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return fmt.Errorf("failed to look up report: %w", err)
		}

		if err := tx.Delete(&models.Report{}, "id = ?", reportID).Error; err != nil {
			return fmt.Errorf("failed to delete report: %w", err)
		}

		var remaining int64
		if err := tx.Model(&models.Report{}).Where("contact_id = ?", report.ContactID).Count(&remaining).Error; err != nil {
			return fmt.Errorf("failed to count remaining reports: %w", err)
		}
		if remaining == 0 {
			if err := tx.Delete(&models.Contact{}, "id = ?", report.ContactID).Error; err != nil {
				return fmt.Errorf("failed to delete orphaned contact: %w", err)
			}
		}
		return nil
	})
}

// RevealContact recovers the original raw contact for a ledger entry stored
// under the reversible scheme. Rows without a sealed copy report
// identity.ErrCannotDecrypt rather than failing silently.
func (s *ModerationService) RevealContact(contactID uuid.UUID) (string, error) {
	var contact models.Contact
	err := s.db.Where("id = ?", contactID).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrContactNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up contact: %w", err)
	}
	return s.sealer.Open(contact.SealedContact)
}
