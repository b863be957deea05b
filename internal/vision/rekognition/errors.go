package rekognition

import "errors"

var (
	// ErrInvalidCredentials indicates that AWS credentials are invalid or missing
	ErrInvalidCredentials = errors.New("invalid or missing AWS credentials")

	// ErrNoFaceDetected indicates that no face was found in the region
	ErrNoFaceDetected = errors.New("no face detected in region")

	// ErrMissingLandmark indicates Rekognition omitted one of the five landmarks
	ErrMissingLandmark = errors.New("landmark missing from rekognition response")

	ErrInvalidImage = errors.New("image rejected by rekognition")
	ErrEmptyCrop    = errors.New("face region is empty after cropping")
)
