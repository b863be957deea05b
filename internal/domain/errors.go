package domain

import (
	"fmt"

	"google.golang.org/grpc/codes"
)

type AppError struct {
	Code       string     `json:"code"`
	Message    string     `json:"message"`
	StatusCode int        `json:"-"`
	GRPCCode   codes.Code `json:"-"`
	Err        error      `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same code, so errors.Is(err, ErrDecode)
// holds for values produced by ErrDecode.WithError.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		GRPCCode:   e.GRPCCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
		GRPCCode:   codes.Internal,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
		GRPCCode:   codes.InvalidArgument,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
		GRPCCode:   codes.InvalidArgument,
	}

	// Stream protocol
	ErrMissingHeader = &AppError{
		Code:       "PROTOCOL_ERROR",
		Message:    "First request message must carry a header",
		StatusCode: 400,
		GRPCCode:   codes.InvalidArgument,
	}

	ErrImageTooLarge = &AppError{
		Code:       "IMAGE_TOO_LARGE",
		Message:    "Image exceeds the maximum allowed size",
		StatusCode: 413,
		GRPCCode:   codes.ResourceExhausted,
	}

	// Image and region
	ErrDecode = &AppError{
		Code:       "DECODE_ERROR",
		Message:    "Image data could not be decoded",
		StatusCode: 422,
		GRPCCode:   codes.InvalidArgument,
	}

	ErrInvalidRegion = &AppError{
		Code:       "REGION_ERROR",
		Message:    "Face region is empty or outside the image",
		StatusCode: 422,
		GRPCCode:   codes.InvalidArgument,
	}

	// Inference
	ErrInference = &AppError{
		Code:       "INFERENCE_ERROR",
		Message:    "Face inference failed",
		StatusCode: 500,
		GRPCCode:   codes.Internal,
	}

	ErrOverloaded = &AppError{
		Code:       "SERVER_OVERLOADED",
		Message:    "Server is at capacity, please retry later",
		StatusCode: 503,
		GRPCCode:   codes.ResourceExhausted,
	}
)
