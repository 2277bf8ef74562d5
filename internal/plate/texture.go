package plate

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/plate-locator/internal/raster"
)

// textureOffsets is the sparse sampling pattern as (dy, dx) pairs: the
// corners and edge midpoints of a 5x5 window plus its centre.
var textureOffsets = [9][2]int{
	{-2, -2}, {-2, 0}, {-2, 2},
	{2, -2}, {2, 0}, {2, 2},
	{0, -2}, {0, 0}, {0, 2},
}

// textureBorder is the width of the unfiltered frame around the output.
const textureBorder = 2

// StdDevTexture computes a local texture-strength map from a greyscale grid.
//
// For every pixel with two pixels of clearance on all sides, the nine
// intensities at textureOffsets are sampled and their population standard
// deviation (divide by N) is stored. The two-pixel frame around the output
// is left at 0.
//
// High values mark edge-dense areas such as plate characters.
//
// # Errors
//
// Returns an error wrapping ErrInvalidDimensions if the grid is narrower or
// shorter than MinDimension.
func StdDevTexture(grey *raster.Grid[uint8]) (*raster.Grid[float64], error) {
	if grey.Width < MinDimension || grey.Height < MinDimension {
		return nil, fmt.Errorf("%w: %dx%d is smaller than the %dx%d texture window",
			ErrInvalidDimensions, grey.Width, grey.Height, MinDimension, MinDimension)
	}

	out := raster.New[float64](grey.Width, grey.Height)
	var samples [len(textureOffsets)]float64

	for y := textureBorder; y < grey.Height-textureBorder; y++ {
		for x := textureBorder; x < grey.Width-textureBorder; x++ {
			for i, off := range textureOffsets {
				samples[i] = float64(grey.At(x+off[1], y+off[0]))
			}
			out.Set(x, y, stat.PopStdDev(samples[:], nil))
		}
	}
	return out, nil
}
