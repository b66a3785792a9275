package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Report is one append-only fraud report against a contact. Mutable only by
// moderation delete.
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContactID   uuid.UUID `gorm:"type:uuid;not null;index" json:"contact_id"`
	Category    string    `gorm:"size:100;not null" json:"category"`
	Description string    `gorm:"size:2000" json:"description"`
	EvidenceURL string    `gorm:"size:500" json:"evidence_url,omitempty"`
	// EvidenceMeta carries original filename, content type and size of the
	// uploaded proof, when one was attached.
	EvidenceMeta datatypes.JSON `gorm:"type:jsonb" json:"evidence_meta,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
}
