package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
)

// Recogniser is the part of recognition.Service the handler needs.
type Recogniser interface {
	Recognise(ctx context.Context, header domain.Header, data []byte) (*domain.Recognition, error)
}

type RecognizeHandler struct {
	service       Recogniser
	maxImageBytes int
	timeout       time.Duration
	logger        *slog.Logger
}

func NewRecognizeHandler(service Recogniser, maxImageBytes int, timeout time.Duration, logger *slog.Logger) *RecognizeHandler {
	return &RecognizeHandler{
		service:       service,
		maxImageBytes: maxImageBytes,
		timeout:       timeout,
		logger:        logger,
	}
}

// FaceBox is one region in the faces form field.
type FaceBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type IdentityResponse struct {
	Identity []float64 `json:"identity"`
}

// RecognizeResponse mirrors FaceRecognitionResponse plus the request id and
// latency.
type RecognizeResponse struct {
	ID         string             `json:"id"`
	Identities []IdentityResponse `json:"identities"`
	LatencyMs  int64              `json:"latency_ms"`
}

// Recognize POST /v1/recognize - multipart image plus a JSON list of boxes
func (h *RecognizeHandler) Recognize(c *fiber.Ctx) error {
	header, err := parseFaces(c.FormValue("faces"))
	if err != nil {
		return err
	}

	data, err := h.readImage(c)
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	rec, err := h.service.Recognise(ctx, header, data)
	if err != nil {
		return err
	}

	resp := RecognizeResponse{
		ID:         rec.ID.String(),
		Identities: make([]IdentityResponse, len(rec.Identities)),
		LatencyMs:  rec.Latency.Milliseconds(),
	}
	for i, id := range rec.Identities {
		resp.Identities[i] = IdentityResponse{Identity: id.Embedding}
	}
	return c.JSON(resp)
}

func parseFaces(raw string) (domain.Header, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Header{}, nil
	}

	var boxes []FaceBox
	if err := json.Unmarshal([]byte(raw), &boxes); err != nil {
		return domain.Header{}, domain.ErrValidationFailed.WithError(fmt.Errorf("faces must be a JSON array of {x,y,w,h}: %w", err))
	}

	header := domain.Header{Faces: make([]domain.Region, len(boxes))}
	for i, b := range boxes {
		header.Faces[i] = domain.Region{X: b.X, Y: b.Y, Width: b.W, Height: b.H}
	}
	return header, nil
}

func (h *RecognizeHandler) readImage(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("image: %w", err))
	}
	if file.Size == 0 {
		return nil, domain.ErrValidationFailed.WithError(errors.New("image is empty"))
	}
	if h.maxImageBytes > 0 && file.Size > int64(h.maxImageBytes) {
		return nil, domain.ErrImageTooLarge.WithError(fmt.Errorf("received %d bytes, limit is %d", file.Size, h.maxImageBytes))
	}

	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrBadRequest.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrBadRequest.WithError(err)
	}
	return data, nil
}
