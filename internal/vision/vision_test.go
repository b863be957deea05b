package vision

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/faceid/internal/config"
	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
	"github.com/saturnino-fabrica-de-software/faceid/internal/imaging"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) DetectLandmarks(ctx context.Context, img *imaging.Image, region domain.Region) ([]domain.Point, error) {
	args := m.Called(ctx, img, region)
	points, _ := args.Get(0).([]domain.Point)
	return points, args.Error(1)
}

func (m *mockBackend) ComputeDescriptor(ctx context.Context, img *imaging.Image, region domain.Region, landmarks []domain.Point) ([]float64, error) {
	args := m.Called(ctx, img, region, landmarks)
	descriptor, _ := args.Get(0).([]float64)
	return descriptor, args.Error(1)
}

func (m *mockBackend) Name() string { return "mock" }

func (m *mockBackend) Close() error {
	return m.Called().Error(0)
}

var (
	testImage  = imaging.NewImage(image.Rect(0, 0, 10, 10))
	testRegion = domain.Region{X: 1, Y: 1, Width: 5, Height: 5}
)

func TestGuard_WrapsBackendErrors(t *testing.T) {
	backendErr := errors.New("cuda out of memory")

	m := &mockBackend{}
	m.On("DetectLandmarks", mock.Anything, testImage, testRegion).Return(nil, backendErr)
	m.On("ComputeDescriptor", mock.Anything, testImage, testRegion, mock.Anything).Return(nil, backendErr)

	b := guard(m)

	_, err := b.DetectLandmarks(context.Background(), testImage, testRegion)
	assert.ErrorIs(t, err, ErrModel)
	assert.ErrorIs(t, err, backendErr)
	assert.Contains(t, err.Error(), "detect landmarks")

	_, err = b.ComputeDescriptor(context.Background(), testImage, testRegion, nil)
	assert.ErrorIs(t, err, ErrModel)
	assert.Contains(t, err.Error(), "compute descriptor")
}

func TestGuard_EmptyDescriptor(t *testing.T) {
	m := &mockBackend{}
	m.On("ComputeDescriptor", mock.Anything, testImage, testRegion, mock.Anything).Return([]float64{}, nil)

	_, err := guard(m).ComputeDescriptor(context.Background(), testImage, testRegion, nil)
	assert.ErrorIs(t, err, ErrModel)
}

func TestGuard_ContextErrorsPassThrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := &mockBackend{}
	m.On("DetectLandmarks", mock.Anything, testImage, testRegion).Return(nil, context.Canceled)

	_, err := guard(m).DetectLandmarks(ctx, testImage, testRegion)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrModel)
}

func TestGuard_Idempotent(t *testing.T) {
	b := guard(&mockBackend{})
	assert.Equal(t, b, guard(b))
}

func TestComposite(t *testing.T) {
	landmarks := &mockBackend{}
	descriptors := &mockBackend{}

	points := []domain.Point{{X: 2, Y: 2}}
	landmarks.On("DetectLandmarks", mock.Anything, testImage, testRegion).Return(points, nil)
	descriptors.On("ComputeDescriptor", mock.Anything, testImage, testRegion, points).Return([]float64{1, 2}, nil)
	landmarks.On("Close").Return(nil)
	descriptors.On("Close").Return(io.ErrClosedPipe)

	c := NewComposite(landmarks, descriptors)

	got, err := c.DetectLandmarks(context.Background(), testImage, testRegion)
	require.NoError(t, err)
	descriptor, err := c.ComputeDescriptor(context.Background(), testImage, testRegion, got)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2}, descriptor)
	assert.Equal(t, "mock+mock", c.Name())
	assert.ErrorIs(t, c.Close(), io.ErrClosedPipe)

	landmarks.AssertExpectations(t)
	descriptors.AssertExpectations(t)
}

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		backend  string
		landmark string
		wantName string
		wantErr  error
	}{
		{name: "fake", backend: "fake", wantName: "fake"},
		{name: "same landmark backend", backend: "fake", landmark: "fake", wantName: "fake"},
		{name: "deepface", backend: "deepface", wantName: "deepface"},
		{name: "deepface landmarks with fake descriptors", backend: "fake", landmark: "deepface", wantName: "deepface+fake"},
		{name: "unknown", backend: "tensorflow", wantErr: ErrUnknownBackend},
		{name: "rekognition cannot describe", backend: "rekognition", wantErr: ErrLandmarksOnly},
		{name: "unknown landmark backend", backend: "fake", landmark: "nope", wantErr: ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				VisionBackend:   tt.backend,
				LandmarkBackend: tt.landmark,
				DeepFaceURL:     "http://127.0.0.1:1",
			}

			b, err := New(context.Background(), cfg, logger)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, b.Name())
			assert.NoError(t, b.Close())
		})
	}
}

func TestNew_FakeProducesIdentities(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b, err := New(context.Background(), &config.Config{VisionBackend: "fake"}, logger)
	require.NoError(t, err)

	points, err := b.DetectLandmarks(context.Background(), testImage, testRegion)
	require.NoError(t, err)
	descriptor, err := b.ComputeDescriptor(context.Background(), testImage, testRegion, points)
	require.NoError(t, err)
	assert.Len(t, descriptor, 128)
}
