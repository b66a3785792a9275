package models

import (
	"time"

	"github.com/google/uuid"
)

// RemovalRequest is a write-only dispute/removal intake row. No state machine;
// operators read the table out of band.
type RemovalRequest struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContactIdentity string    `gorm:"size:64;not null;index" json:"contact_identity"`
	Reason          string    `gorm:"size:2000;not null" json:"reason"`
	CreatedAt       time.Time `json:"created_at"`
}
