package plate

import "github.com/ironsheep/plate-locator/internal/raster"

// Threshold binarizes g: pixels at or above t become Foreground, the rest
// Background.
func Threshold(g *raster.Grid[uint8], t int) *raster.Grid[uint8] {
	return raster.Map(g, func(v uint8) uint8 {
		if int(v) >= t {
			return Foreground
		}
		return Background
	})
}
