package plate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/plate-locator/internal/raster"
)

// Normalize linearly rescales a grid so its minimum maps to 0 and its
// maximum to 255, rounding each result.
//
// A constant grid (min == max) yields an all-zero grid.
func Normalize[T raster.Number](g *raster.Grid[T]) *raster.Grid[uint8] {
	out := raster.New[uint8](g.Width, g.Height)
	if len(g.Pix) == 0 {
		return out
	}

	vals := g.Float64s()
	lo, hi := floats.Min(vals), floats.Max(vals)
	if lo == hi {
		return out
	}

	scale := 255 / (hi - lo)
	for i, v := range vals {
		out.Pix[i] = uint8(math.Round((v - lo) * scale))
	}
	return out
}
