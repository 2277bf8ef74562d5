package plate

import "errors"

var (
	// ErrInvalidDimensions is returned when the image is smaller than
	// MinDimension in either direction.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrChannelMismatch is returned when the red, green and blue grids do
	// not share the same size.
	ErrChannelMismatch = errors.New("channel size mismatch")

	// ErrInvalidParams is returned by Params.Validate and NewDetector.
	ErrInvalidParams = errors.New("invalid parameters")
)
