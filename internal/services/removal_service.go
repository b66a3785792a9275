package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrMissingReason = errors.New("reason is required")

// RemovalService is the write-only dispute intake. No state machine, no
// processing; operators read the queue out of band.
type RemovalService struct {
	db *gorm.DB
}

func NewRemovalService(db *gorm.DB) *RemovalService {
	return &RemovalService{db: db}
}

func (s *RemovalService) Submit(contact, reason string) error {
	if strings.TrimSpace(contact) == "" {
		return ErrMissingContact
	}
	if strings.TrimSpace(reason) == "" {
		return ErrMissingReason
	}

	request := models.RemovalRequest{
		ID:              uuid.New(),
		ContactIdentity: identity.Hash(contact),
		Reason:          strings.TrimSpace(reason),
	}
	if err := s.db.Create(&request).Error; err != nil {
		return fmt.Errorf("failed to create removal request: %w", err)
	}
	return nil
}
