package plate

import "fmt"

// Tuned pipeline constants. These values were chosen empirically and are
// kept as-is; DefaultParams returns exactly these.
const (
	// DefaultThreshold is the normalized texture strength at or above which a
	// pixel becomes foreground.
	DefaultThreshold = 150

	// DefaultDilations is the number of consecutive 3x3 dilations.
	DefaultDilations = 4

	// DefaultErosions is the number of consecutive 3x3 erosions that follow
	// the dilations.
	DefaultErosions = 3

	// DefaultMinAspect is the exclusive lower bound on width/height.
	DefaultMinAspect = 1.5

	// DefaultMaxAspect is the exclusive upper bound on width/height.
	DefaultMaxAspect = 6.0
)

// Binary grid values.
const (
	Background uint8 = 0
	Foreground uint8 = 255
)

// MinDimension is the smallest width and height the texture window can
// process: the 9-point sample needs two pixels of clearance on every side.
const MinDimension = 5

// BoxStrategy selects how a component's bounding box is derived from its
// pixels.
type BoxStrategy string

const (
	// BoxOriginDistance takes the component pixels nearest to and farthest
	// from the image origin (by squared Euclidean distance) as the box
	// corners. This is a crude estimate: for diagonal or non-convex shapes
	// the "max" corner may lie left of or above the "min" corner, and such
	// boxes are rejected as degenerate.
	BoxOriginDistance BoxStrategy = "origin-distance"

	// BoxExtent takes the true per-axis minimum and maximum.
	BoxExtent BoxStrategy = "extent"
)

// Params holds the tunable settings of the detection pipeline.
type Params struct {
	// Threshold for binarization (1-255).
	Threshold int

	// Dilations is how many 3x3 dilations to run.
	Dilations int

	// Erosions is how many 3x3 erosions to run after the dilations.
	Erosions int

	// MinAspect and MaxAspect bound width/height, both exclusive.
	MinAspect float64
	MaxAspect float64

	// Box is the bounding box strategy. Empty means BoxOriginDistance.
	Box BoxStrategy
}

// DefaultParams returns the tuned pipeline constants.
func DefaultParams() Params {
	return Params{
		Threshold: DefaultThreshold,
		Dilations: DefaultDilations,
		Erosions:  DefaultErosions,
		MinAspect: DefaultMinAspect,
		MaxAspect: DefaultMaxAspect,
		Box:       BoxOriginDistance,
	}
}

// Validate reports whether p describes a runnable pipeline.
// Errors wrap ErrInvalidParams.
func (p Params) Validate() error {
	if p.Threshold < 1 || p.Threshold > 255 {
		return fmt.Errorf("%w: threshold %d outside 1-255", ErrInvalidParams, p.Threshold)
	}
	if p.Dilations < 0 {
		return fmt.Errorf("%w: dilations must be >= 0, got %d", ErrInvalidParams, p.Dilations)
	}
	if p.Erosions < 0 {
		return fmt.Errorf("%w: erosions must be >= 0, got %d", ErrInvalidParams, p.Erosions)
	}
	if p.MinAspect <= 0 || p.MinAspect >= p.MaxAspect {
		return fmt.Errorf("%w: aspect bounds (%g, %g) must satisfy 0 < min < max",
			ErrInvalidParams, p.MinAspect, p.MaxAspect)
	}
	switch p.Box {
	case "", BoxOriginDistance, BoxExtent:
	default:
		return fmt.Errorf("%w: unknown box strategy %q", ErrInvalidParams, p.Box)
	}
	return nil
}

// ParseBoxStrategy converts a config string to a BoxStrategy.
func ParseBoxStrategy(s string) (BoxStrategy, error) {
	switch BoxStrategy(s) {
	case "", BoxOriginDistance:
		return BoxOriginDistance, nil
	case BoxExtent:
		return BoxExtent, nil
	}
	return "", fmt.Errorf("%w: unknown box strategy %q", ErrInvalidParams, s)
}
