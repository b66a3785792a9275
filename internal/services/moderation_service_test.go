package services

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSealer(t *testing.T) *identity.Sealer {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = 0x5a
	}
	sealer, err := identity.NewSealer(hex.EncodeToString(key))
	require.NoError(t, err)
	return sealer
}

func TestListReports(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewModerationService(db, nil)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT reports\.id.*JOIN contacts ON contacts\.id = reports\.contact_id.*ORDER BY reports\.created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "contact_id", "category", "description", "evidence_url",
			"evidence_meta", "created_at", "hashed_contact", "report_count", "contact_status",
		}).
			AddRow(uuid.New().String(), uuid.New().String(), "Phishing", "newer", "", nil, time.Now(), "hash-a", 2, models.StatusFlagged).
			AddRow(uuid.New().String(), uuid.New().String(), "Fake Shop", "older", "", nil, time.Now().Add(-time.Hour), "hash-b", 1, models.StatusUnderReview))

	rows, total, err := svc.ListReports(50, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Phishing", rows[0].Category)
	assert.Equal(t, "hash-a", rows[0].HashedContact)
	assert.Equal(t, models.StatusFlagged, rows[0].ContactStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReportNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewModerationService(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "reports" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(reportColumns))
	mock.ExpectRollback()

	err := svc.DeleteReport(uuid.New())
	assert.ErrorIs(t, err, ErrReportNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReportKeepsContactWithRemainingReports(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewModerationService(db, nil)

	reportID := uuid.New()
	contactID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "reports" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(reportColumns).
			AddRow(reportID.String(), contactID.String(), "Phishing", "", "", nil, time.Now()))
	mock.ExpectExec(`DELETE FROM "reports"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reports" WHERE contact_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	err := svc.DeleteReport(reportID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLastReportRemovesLedgerEntry(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewModerationService(db, nil)

	reportID := uuid.New()
	contactID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "reports" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(reportColumns).
			AddRow(reportID.String(), contactID.String(), "Phishing", "", "", nil, time.Now()))
	mock.ExpectExec(`DELETE FROM "reports"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reports" WHERE contact_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM "contacts"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.DeleteReport(reportID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevealContact(t *testing.T) {
	db, mock := newMockDB(t)
	sealer := newTestSealer(t)
	svc := NewModerationService(db, sealer)

	sealed, err := sealer.Seal("+905551234567")
	require.NoError(t, err)

	contactID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(contactColumns).AddRow(
			contactID.String(), "abc", models.KindPhone, 1, models.StatusUnderReview,
			time.Now(), sealed, time.Now(), time.Now(),
		))

	original, err := svc.RevealContact(contactID)
	require.NoError(t, err)
	assert.Equal(t, "+905551234567", original)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevealContactLegacyRow(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewModerationService(db, newTestSealer(t))

	contactID := uuid.New()
	// Row written before sealing existed: no sealed copy, distinct outcome.
	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(contactColumns).AddRow(
			contactID.String(), "abc", models.KindPhone, 1, models.StatusUnderReview,
			time.Now(), nil, time.Now(), time.Now(),
		))

	_, err := svc.RevealContact(contactID)
	assert.ErrorIs(t, err, identity.ErrCannotDecrypt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevealContactNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewModerationService(db, newTestSealer(t))

	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(contactColumns))

	_, err := svc.RevealContact(uuid.New())
	assert.ErrorIs(t, err, ErrContactNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
