package middlewares_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/middlewares"
)

func TestRequestIDGeneratesUUIDv4(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Use(middlewares.RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		id, _ := c.Locals(middlewares.RequestIDKey).(string)
		return c.SendString(id)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	got := resp.Header.Get(fiber.HeaderXRequestID)
	id, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), id.Version())

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "dari-klien")
	resp2, err := app.Test(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, "dari-klien", resp2.Header.Get(fiber.HeaderXRequestID))
}

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Use(middlewares.RequestTimeout(time.Minute))
	app.Get("/", func(c *fiber.Ctx) error {
		if _, ok := c.UserContext().Deadline(); !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
