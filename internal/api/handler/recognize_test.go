package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/faceid/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
)

type MockRecogniser struct {
	mock.Mock
}

func (m *MockRecogniser) Recognise(ctx context.Context, header domain.Header, data []byte) (*domain.Recognition, error) {
	args := m.Called(ctx, header, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recognition), args.Error(1)
}

func multipartBody(t *testing.T, image []byte, faces string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	if faces != "" {
		require.NoError(t, w.WriteField("faces", faces))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "face.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func newRecognizeApp(svc Recogniser, maxBytes int, timeout time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(testLogger())})
	app.Post("/v1/recognize", NewRecognizeHandler(svc, maxBytes, timeout, testLogger()).Recognize)
	return app
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestRecognizeHandler_Success(t *testing.T) {
	svc := new(MockRecogniser)
	image := []byte("image-bytes")
	wantHeader := domain.Header{Faces: []domain.Region{
		{X: 1, Y: 2, Width: 3, Height: 4},
		{X: 5, Y: 6, Width: 7, Height: 8},
	}}
	rec := &domain.Recognition{
		ID: uuid.New(),
		Identities: []domain.Identity{
			{Embedding: []float64{0.1, 0.2}},
			{Embedding: []float64{0.3}},
		},
		Latency: 42 * time.Millisecond,
	}
	svc.On("Recognise", mock.Anything, wantHeader, image).Return(rec, nil)

	body, ct := multipartBody(t, image, `[{"x":1,"y":2,"w":3,"h":4},{"x":5,"y":6,"w":7,"h":8}]`)
	req := httptest.NewRequest("POST", "/v1/recognize", body)
	req.Header.Set("Content-Type", ct)

	resp, err := newRecognizeApp(svc, 1<<20, time.Second).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result RecognizeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, rec.ID.String(), result.ID)
	assert.Equal(t, int64(42), result.LatencyMs)
	require.Len(t, result.Identities, 2)
	assert.Equal(t, []float64{0.1, 0.2}, result.Identities[0].Identity)
	assert.Equal(t, []float64{0.3}, result.Identities[1].Identity)
	svc.AssertExpectations(t)
}

func TestRecognizeHandler_NoFacesField(t *testing.T) {
	svc := new(MockRecogniser)
	svc.On("Recognise", mock.Anything, domain.Header{}, []byte("img")).
		Return(&domain.Recognition{ID: uuid.New(), Identities: []domain.Identity{}}, nil)

	body, ct := multipartBody(t, []byte("img"), "")
	req := httptest.NewRequest("POST", "/v1/recognize", body)
	req.Header.Set("Content-Type", ct)

	resp, err := newRecognizeApp(svc, 0, 0).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result RecognizeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Empty(t, result.Identities)
	assert.NotNil(t, result.Identities)
}

func TestRecognizeHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		image      []byte
		faces      string
		maxBytes   int
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing image",
			faces:      `[]`,
			wantStatus: fiber.StatusUnprocessableEntity,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "malformed faces",
			image:      []byte("img"),
			faces:      `{"x":1}`,
			wantStatus: fiber.StatusUnprocessableEntity,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "image too large",
			image:      bytes.Repeat([]byte{1}, 64),
			maxBytes:   16,
			wantStatus: fiber.StatusRequestEntityTooLarge,
			wantCode:   "IMAGE_TOO_LARGE",
		},
		{
			name:       "decode error",
			image:      []byte("img"),
			serviceErr: domain.ErrDecode.WithError(errors.New("unknown format")),
			wantStatus: fiber.StatusUnprocessableEntity,
			wantCode:   "DECODE_ERROR",
		},
		{
			name:       "overloaded",
			image:      []byte("img"),
			serviceErr: domain.ErrOverloaded,
			wantStatus: fiber.StatusServiceUnavailable,
			wantCode:   "SERVER_OVERLOADED",
		},
		{
			name:       "inference error",
			image:      []byte("img"),
			serviceErr: domain.ErrInference.WithError(errors.New("model crashed")),
			wantStatus: fiber.StatusInternalServerError,
			wantCode:   "INFERENCE_ERROR",
		},
		{
			name:       "deadline",
			image:      []byte("img"),
			serviceErr: context.DeadlineExceeded,
			wantStatus: fiber.StatusGatewayTimeout,
			wantCode:   "TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRecogniser)
			if tt.serviceErr != nil {
				svc.On("Recognise", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			}

			body, ct := multipartBody(t, tt.image, tt.faces)
			req := httptest.NewRequest("POST", "/v1/recognize", body)
			req.Header.Set("Content-Type", ct)

			resp, err := newRecognizeApp(svc, tt.maxBytes, 0).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var result errorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
			assert.Equal(t, tt.wantCode, result.Error.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestRecognizeHandler_AppliesTimeout(t *testing.T) {
	svc := new(MockRecogniser)
	svc.On("Recognise", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything, mock.Anything).Return(&domain.Recognition{ID: uuid.New()}, nil)

	body, ct := multipartBody(t, []byte("img"), "")
	req := httptest.NewRequest("POST", "/v1/recognize", body)
	req.Header.Set("Content-Type", ct)

	resp, err := newRecognizeApp(svc, 0, time.Minute).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}
