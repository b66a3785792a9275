package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact kinds.
const (
	KindPhone = "phone"
	KindEmail = "email"
)

// Contact statuses.
const (
	StatusSafe        = "safe"
	StatusUnderReview = "under_review"
	StatusFlagged     = "flagged"
)

// Contact is the ledger entry for one hashed identity. ReportCount is
// cumulative: it counts every report ever received and is never decremented
// by report deletion (only a moderation status override touches it indirectly
// via NextStatus on the next report).
type Contact struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	HashedContact  string    `gorm:"size:64;not null;uniqueIndex" json:"hashed_contact"`
	Kind           string    `gorm:"size:10;not null" json:"kind"`
	ReportCount    int       `gorm:"not null;default:0" json:"report_count"`
	Status         string    `gorm:"size:20;not null;default:'under_review'" json:"status"`
	LastReportedAt time.Time `json:"last_reported_at"`
	// SealedContact holds the AES-GCM sealed raw contact when a seal key was
	// configured at report time. Rows written without a key stay one-way only
	// and can never be revealed.
	SealedContact []byte    `gorm:"type:bytea" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidKind reports whether k is a supported contact kind.
func ValidKind(k string) bool {
	return k == KindPhone || k == KindEmail
}

// ValidStatus reports whether s is a supported ledger status.
func ValidStatus(s string) bool {
	return s == StatusSafe || s == StatusUnderReview || s == StatusFlagged
}

// NextStatus applies the ledger transition rule against the post-increment
// report count. Flagged is sticky: it survives any number of further reports
// and only a moderation override clears it. A contact manually reset to safe
// re-enters review on the next report regardless of its cumulative count and
// is re-flagged on the one after, so a moderator's judgment is not undone by
// a single fresh report.
func NextStatus(previous string, newCount int) string {
	switch previous {
	case StatusFlagged:
		return StatusFlagged
	case StatusSafe:
		return StatusUnderReview
	}
	if newCount >= 2 {
		return StatusFlagged
	}
	return StatusUnderReview
}
