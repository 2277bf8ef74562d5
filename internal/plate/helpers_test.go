package plate

import (
	"math/rand"

	"github.com/ironsheep/plate-locator/internal/raster"
)

// uniformRGB returns three channel grids filled with the given values.
func uniformRGB(width, height int, r, g, b uint8) (*raster.Grid[uint8], *raster.Grid[uint8], *raster.Grid[uint8]) {
	return raster.Filled(width, height, r), raster.Filled(width, height, g), raster.Filled(width, height, b)
}

// rectImage returns channels for a black image with a white rectangle
// covering x in [x1,x2) and y in [y1,y2).
func rectImage(width, height, x1, y1, x2, y2 int) (*raster.Grid[uint8], *raster.Grid[uint8], *raster.Grid[uint8]) {
	r, g, b := uniformRGB(width, height, 0, 0, 0)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			r.Set(x, y, 255)
			g.Set(x, y, 255)
			b.Set(x, y, 255)
		}
	}
	return r, g, b
}

// binaryRect returns a binary grid with a foreground rectangle covering
// x in [x1,x2) and y in [y1,y2).
func binaryRect(width, height, x1, y1, x2, y2 int) *raster.Grid[uint8] {
	g := raster.New[uint8](width, height)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			g.Set(x, y, Foreground)
		}
	}
	return g
}

// randomBinary returns a reproducible binary grid where roughly density of
// the pixels are foreground.
func randomBinary(rng *rand.Rand, width, height int, density float64) *raster.Grid[uint8] {
	g := raster.New[uint8](width, height)
	for i := range g.Pix {
		if rng.Float64() < density {
			g.Pix[i] = Foreground
		}
	}
	return g
}

func isForeground(v uint8) bool { return v != Background }
