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

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrInvalidStatus   = errors.New("invalid status: must be safe, under_review or flagged")
)

// ContactService owns the ledger read side and moderation status overrides.
// Ledger writes from report submissions go through ReportService, which holds
// the transaction boundary.
type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// FindByIdentity returns the ledger entry for a hashed identity, or nil when
// the contact was never reported. Absence is not an error here.
func (s *ContactService) FindByIdentity(hashed string) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.Where("hashed_contact = ?", hashed).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up contact: %w", err)
	}
	return &contact, nil
}

// Search resolves a raw contact string to its public verdict.
func (s *ContactService) Search(raw string) (*dto.SearchResponse, error) {
	contact, err := s.FindByIdentity(identity.Hash(raw))
	if err != nil {
		return nil, err
	}

	if contact == nil {
		verdict := Classify(nil)
		return &dto.SearchResponse{
			Status:            string(verdict),
			ReportCount:       0,
			TrustScore:        TrustScore(verdict),
			FraudCategory:     "None",
			CategoryBreakdown: []dto.CategoryCount{},
		}, nil
	}

	var reports []models.Report
	if err := s.db.Where("contact_id = ?", contact.ID).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	verdict := Classify(contact)
	last := contact.LastReportedAt
	return &dto.SearchResponse{
		Status:            string(verdict),
		ReportCount:       contact.ReportCount,
		TrustScore:        TrustScore(verdict),
		FraudCategory:     PrimaryCategory(reports),
		CategoryBreakdown: CategoryBreakdown(reports),
		LastReportedAt:    &last,
	}, nil
}

// SetStatus is the unconditional moderation override. It never touches
// ReportCount, so the transition rule sees the manual status on the next
// report.
func (s *ContactService) SetStatus(contactID uuid.UUID, status string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}
	result := s.db.Model(&models.Contact{}).Where("id = ?", contactID).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}
