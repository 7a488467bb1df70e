package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// asUser injects the locals the JWT middleware chain would set.
func asUser(userID uuid.UUID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userId", userID.String())
		c.Locals("role", role)
		return c.Next()
	}
}

func TestCreateGigRejectsMalformedDeadline(t *testing.T) {
	h := NewGigHandler(nil, zap.NewNop())
	app := fiber.New()
	app.Post("/gigs", asUser(uuid.New(), "client"), h.CreateGig)

	body := `{"title":"Build a landing page","budget":1000,"deadline":"03-01-2026"}`
	req := httptest.NewRequest("POST", "/gigs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
