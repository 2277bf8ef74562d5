package plate

import "github.com/ironsheep/plate-locator/internal/raster"

// Dilate applies a flat 3x3 dilation to a binary grid.
//
// An output pixel is Foreground if any pixel of its 8-neighbourhood,
// itself included, is nonzero. Neighbours outside the grid count as
// Background.
func Dilate(g *raster.Grid[uint8]) *raster.Grid[uint8] {
	return morph(g, false)
}

// Erode applies a flat 3x3 erosion to a binary grid.
//
// An output pixel is Foreground only if all nine pixels of its
// 8-neighbourhood are nonzero. Neighbours outside the grid count as
// Background, so the outermost frame always erodes away.
func Erode(g *raster.Grid[uint8]) *raster.Grid[uint8] {
	return morph(g, true)
}

// Morphology runs dilations consecutive dilations followed by erosions
// consecutive erosions. Dilating first merges plate character fragments into
// a single blob; fewer erosions than dilations leave that blob slightly
// larger than it started while tightly eroded noise disappears.
//
// The input is never modified. With both counts at zero a copy is returned.
func Morphology(g *raster.Grid[uint8], dilations, erosions int) *raster.Grid[uint8] {
	out := g.Clone()
	for i := 0; i < dilations; i++ {
		out = Dilate(out)
	}
	for i := 0; i < erosions; i++ {
		out = Erode(out)
	}
	return out
}

// morph evaluates the 3x3 neighbourhood of every pixel. With all set the
// result requires every neighbour to be foreground (erosion), otherwise any
// single foreground neighbour suffices (dilation).
func morph(g *raster.Grid[uint8], all bool) *raster.Grid[uint8] {
	out := raster.New[uint8](g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			hits := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if g.In(nx, ny) && g.At(nx, ny) != Background {
						hits++
					}
				}
			}
			if (all && hits == 9) || (!all && hits > 0) {
				out.Set(x, y, Foreground)
			}
		}
	}
	return out
}
