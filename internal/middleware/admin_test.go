package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminApp(cfg *config.Config) (*fiber.App, *services.AdminAuthService) {
	auth := services.NewAdminAuthService(cfg)
	app := fiber.New()
	app.Get("/admin/ping", AdminRequired(auth), func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app, auth
}

func TestAdminRequiredRejectsMissingCredential(t *testing.T) {
	app, _ := adminApp(&config.Config{AdminSecret: "s3cret"})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequiredRejectsWrongSecret(t *testing.T) {
	app, _ := adminApp(&config.Config{AdminSecret: "s3cret"})

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("X-Admin-Secret", "nope")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequiredAcceptsSecret(t *testing.T) {
	app, _ := adminApp(&config.Config{AdminSecret: "s3cret"})

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("X-Admin-Secret", "s3cret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminRequiredAcceptsMintedToken(t *testing.T) {
	cfg := &config.Config{AdminSecret: "s3cret", JWTSecret: "jwt-key", AdminTokenTTL: time.Hour}
	app, auth := adminApp(cfg)

	token, _, err := auth.MintToken()
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminRequiredRejectsMalformedBearer(t *testing.T) {
	app, _ := adminApp(&config.Config{AdminSecret: "s3cret", JWTSecret: "jwt-key"})

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequiredFailsClosedWithoutConfig(t *testing.T) {
	app, _ := adminApp(&config.Config{})

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("X-Admin-Secret", "anything")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
