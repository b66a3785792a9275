package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func reportApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	handler := NewReportHandler(services.NewReportService(db, nil, nil))
	app := fiber.New()
	app.Post("/api/report", handler.SubmitReport)
	return app, mock
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestSubmitReportMissingFields(t *testing.T) {
	app, mock := reportApp(t)

	body, contentType := multipartBody(t, map[string]string{
		"contact": "+905551234567",
		"kind":    "phone",
		// category missing
	})
	req := httptest.NewRequest("POST", "/api/report", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	// Validation failures never reach the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitReportFirstReport(t *testing.T) {
	app, mock := reportApp(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE hashed_contact = \$1.*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "hashed_contact", "kind", "report_count", "status",
			"last_reported_at", "sealed_contact", "created_at", "updated_at",
		}))
	// DB-defaulted id columns make gorm run the inserts as RETURNING queries.
	mock.ExpectQuery(`INSERT INTO "contacts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectQuery(`INSERT INTO "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	body, contentType := multipartBody(t, map[string]string{
		"contact":     "+905551234567",
		"kind":        "phone",
		"category":    "Phishing",
		"description": "SMS asking for card details",
	})
	req := httptest.NewRequest("POST", "/api/report", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitReportJSONBodyWithoutEvidence(t *testing.T) {
	app, mock := reportApp(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE hashed_contact = \$1.*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "hashed_contact", "kind", "report_count", "status",
			"last_reported_at", "sealed_contact", "created_at", "updated_at",
		}))
	mock.ExpectQuery(`INSERT INTO "contacts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectQuery(`INSERT INTO "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	body := strings.NewReader(`{"contact":"scam@example.com","kind":"email","category":"Phishing"}`)
	req := httptest.NewRequest("POST", "/api/report", body)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitReportMalformedMultipartRejected(t *testing.T) {
	app, mock := reportApp(t)

	// Declared boundary, truncated body: the upload must fail loudly instead
	// of submitting the report without its attachment.
	req := httptest.NewRequest("POST", "/api/report",
		strings.NewReader("--broken\r\nContent-Disposition: form-data; name=\"evidence\"; filename=\"p.png\"\r\n"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=broken")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
