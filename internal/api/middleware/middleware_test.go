package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/faceid/internal/audit"
	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
)

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newApp(logger *slog.Logger, h fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	app.Use(requestid.New())
	app.Use(RequestContext())
	app.Use(Logger(logger))
	app.Use(Recover(logger))
	app.Get("/", h)
	return app
}

func TestErrorHandler(t *testing.T) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "client error carries cause",
			err:         domain.ErrInvalidRegion.WithError(errors.New("face 2: width 0")),
			wantStatus:  fiber.StatusUnprocessableEntity,
			wantCode:    "REGION_ERROR",
			wantMessage: domain.ErrInvalidRegion.Message + ": face 2: width 0",
		},
		{
			name:        "server error hides cause",
			err:         domain.ErrInference.WithError(errors.New("cuda oom")),
			wantStatus:  fiber.StatusInternalServerError,
			wantCode:    "INFERENCE_ERROR",
			wantMessage: domain.ErrInference.Message,
		},
		{
			name:        "fiber error",
			err:         fiber.ErrMethodNotAllowed,
			wantStatus:  fiber.StatusMethodNotAllowed,
			wantCode:    "HTTP_ERROR",
			wantMessage: fiber.ErrMethodNotAllowed.Message,
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantStatus:  fiber.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: domain.ErrInternal.Message,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(discard, func(*fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
		})
	}
}

func TestRecover(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	app := newApp(logger, func(*fiber.Ctx) error { panic("nil map write") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)

	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), `"status":500`)
}

func TestRequestContext(t *testing.T) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	var got audit.RequestInfo
	app := newApp(discard, func(c *fiber.Ctx) error {
		got, _ = audit.RequestFromContext(c.UserContext())
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "trace-42")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "trace-42", resp.Header.Get(fiber.HeaderXRequestID))
	assert.Equal(t, "trace-42", got.ID)
	assert.Equal(t, audit.TransportHTTP, got.Transport)
}

func TestRequestContext_ReplacesOversizedID(t *testing.T) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	var got audit.RequestInfo
	app := newApp(discard, func(c *fiber.Ctx) error {
		got, _ = audit.RequestFromContext(c.UserContext())
		return c.SendStatus(fiber.StatusNoContent)
	})

	long := strings.Repeat("a", audit.MaxRequestIDLength+1)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, long)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.NotEqual(t, long, got.ID)
	assert.LessOrEqual(t, len(got.ID), audit.MaxRequestIDLength)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, got.ID, resp.Header.Get(fiber.HeaderXRequestID))
}
