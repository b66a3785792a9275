package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdminReportRow is one row of the moderation feed: a report joined with its
// owning ledger entry.
type AdminReportRow struct {
	ID            uuid.UUID      `json:"id"`
	ContactID     uuid.UUID      `json:"contact_id"`
	Category      string         `json:"category"`
	Description   string         `json:"description"`
	EvidenceURL   string         `json:"evidence_url,omitempty"`
	EvidenceMeta  datatypes.JSON `json:"evidence_meta,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	HashedContact string         `json:"hashed_contact"`
	ReportCount   int            `json:"report_count"`
	ContactStatus string         `json:"contact_status"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type AdminTokenRequest struct {
	Secret string `json:"secret"`
}

type AdminTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// RevealResponse carries either the recovered contact or the explicit
// cannot-decrypt outcome, never both.
type RevealResponse struct {
	Original      string `json:"original,omitempty"`
	CannotDecrypt bool   `json:"cannot_decrypt,omitempty"`
}
