package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrMissingContact  = errors.New("contact is required")
	ErrMissingCategory = errors.New("category is required")
	ErrInvalidKind     = errors.New("kind must be phone or email")
	ErrEvidenceUpload  = errors.New("failed to store evidence")
)

const maxDescriptionLen = 2000

// Evidence is an uploaded proof file attached to a report.
type Evidence struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ReportService owns report submission end to end: validation, evidence
// upload, and the single transaction that moves the ledger and appends the
// report. The evidence upload happens before any DB write so a storage
// failure never advances a counter.
type ReportService struct {
	db     *gorm.DB
	sealer *identity.Sealer
	blobs  storage.BlobStore
}

func NewReportService(db *gorm.DB, sealer *identity.Sealer, blobs storage.BlobStore) *ReportService {
	return &ReportService{db: db, sealer: sealer, blobs: blobs}
}

// Submit validates and persists one report. The contact row is locked with
// SELECT ... FOR UPDATE for the read-modify-write, so two concurrent reports
// for the same identity serialize and both increments land.
func (s *ReportService) Submit(ctx context.Context, req *dto.SubmitReportRequest, evidence *Evidence) (*models.Report, error) {
	if strings.TrimSpace(req.Contact) == "" {
		return nil, ErrMissingContact
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, ErrMissingCategory
	}
	if !models.ValidKind(req.Kind) {
		return nil, ErrInvalidKind
	}

	description := clampDescription(req.Description)

	evidenceURL, evidenceMeta, err := s.storeEvidence(ctx, evidence)
	if err != nil {
		return nil, err
	}

	hashed := identity.Hash(req.Contact)
	now := time.Now().UTC()

	report := models.Report{
		ID:           uuid.New(),
		Category:     strings.TrimSpace(req.Category),
		Description:  description,
		EvidenceURL:  evidenceURL,
		EvidenceMeta: evidenceMeta,
		CreatedAt:    now,
	}

	submit := func(tx *gorm.DB) error {
		var contact models.Contact
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("hashed_contact = ?", hashed).
			First(&contact).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			contact = models.Contact{
				ID:             uuid.New(),
				HashedContact:  hashed,
				Kind:           req.Kind,
				ReportCount:    1,
				Status:         models.StatusUnderReview,
				LastReportedAt: now,
			}
			if s.sealer.Enabled() {
				sealed, sealErr := s.sealer.Seal(strings.TrimSpace(req.Contact))
				if sealErr != nil {
					return fmt.Errorf("failed to seal contact: %w", sealErr)
				}
				contact.SealedContact = sealed
			}
			if err := tx.Create(&contact).Error; err != nil {
				return fmt.Errorf("failed to create contact: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to lock contact: %w", err)
		default:
			newCount := contact.ReportCount + 1
			updates := map[string]interface{}{
				"report_count":     newCount,
				"status":           models.NextStatus(contact.Status, newCount),
				"last_reported_at": now,
			}
			if err := tx.Model(&models.Contact{}).Where("id = ?", contact.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update contact: %w", err)
			}
		}

		report.ContactID = contact.ID
		if err := tx.Create(&report).Error; err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		return nil
	}

	err = s.db.WithContext(ctx).Transaction(submit)
	if isUniqueViolation(err) {
		// FOR UPDATE cannot lock a row that does not exist yet, so two first
		// reports for the same identity can both take the create path. The
		// loser hits the hashed_contact unique index; rerun the transaction so
		// its read now finds (and locks) the winner's row.
		err = s.db.WithContext(ctx).Transaction(submit)
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// clampDescription bounds a description to maxDescriptionLen bytes without
// splitting a multi-byte rune, which Postgres would reject as invalid UTF-8.
func clampDescription(s string) string {
	if len(s) <= maxDescriptionLen {
		return s
	}
	cut := maxDescriptionLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// ListByContact returns a contact's reports, newest first.
func (s *ReportService) ListByContact(hashed string) ([]models.Report, error) {
	var contact models.Contact
	err := s.db.Where("hashed_contact = ?", hashed).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up contact: %w", err)
	}

	var reports []models.Report
	if err := s.db.Where("contact_id = ?", contact.ID).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}
	return reports, nil
}

func (s *ReportService) storeEvidence(ctx context.Context, evidence *Evidence) (string, datatypes.JSON, error) {
	if evidence == nil || len(evidence.Data) == 0 {
		return "", nil, nil
	}

	url, err := s.blobs.Store(ctx, evidence.Data, evidence.ContentType, storage.ObjectName(evidence.Filename))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrEvidenceUpload, err)
	}

	meta, _ := json.Marshal(map[string]interface{}{
		"filename":     evidence.Filename,
		"content_type": evidence.ContentType,
		"size":         len(evidence.Data),
	})
	return url, datatypes.JSON(meta), nil
}
