// Package plate locates a rectangular region likely to contain a vehicle
// license plate in a colour photograph using classical image processing.
//
// # Pipeline
//
// Detection runs a fixed sequence of stages. Each stage consumes the grid
// produced by the previous one and allocates a fresh grid of the same size:
//
//  1. Greyscale: RGB channels -> intensity, round(0.299R + 0.587G + 0.114B)
//  2. StdDevTexture: population standard deviation over a sparse 9-point
//     ring-plus-centre sample at offsets of 2 pixels
//  3. Normalize: linear min/max stretch to 0-255
//  4. Threshold: fixed cut at 150
//  5. Morphology: four 3x3 dilations followed by three 3x3 erosions
//  6. LabelComponents: 4-connected breadth-first flood fill
//  7. SelectPlate: bounding box per component, accepted when its aspect
//     ratio lies strictly between 1.5 and 6.0
//
// The tuned constants are exported (DefaultThreshold, DefaultDilations, ...)
// and collected in Params. DefaultParams reproduces them exactly.
//
// # Rounding
//
// All rounding uses math.Round, which rounds half away from zero.
//
// # Binary grids
//
// Threshold and the morphology operators share one foreground value,
// Foreground (255). Morphology and labeling treat any nonzero value as
// foreground, so 0/1 grids are accepted as input as well.
//
// # Results
//
// A detection that finds no acceptable region is not an error. Detect
// returns a DetectionResult with Found set to false and a zero Box.
// Errors are reserved for malformed input: ErrChannelMismatch when the
// channel grids differ in size and ErrInvalidDimensions when the image is
// smaller than the 5x5 texture window.
//
// # Thread Safety
//
// Every stage is a pure function with no shared state. A Detector is
// immutable after construction and may be used from multiple goroutines.
package plate
