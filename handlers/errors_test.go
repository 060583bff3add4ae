package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker-go-be/apperror"
	"expense-tracker-go-be/logging"
)

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logging.Nop())})
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("disk on fire") })
	app.Get("/wrapped", func(c *fiber.Ctx) error {
		return fmt.Errorf("loading: %w", apperror.ErrForbidden)
	})
	app.Get("/body", func(c *fiber.Ctx) error {
		return apperror.ErrInvalidBody.Wrap(fiber.ErrUnprocessableEntity)
	})
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrMethodNotAllowed })

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/plain", http.StatusInternalServerError, "Internal server error"},
		{"/wrapped", http.StatusForbidden, "Access denied!"},
		{"/body", http.StatusBadRequest, "Invalid request body!"},
		{"/fiber", http.StatusMethodNotAllowed, "Method Not Allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}
