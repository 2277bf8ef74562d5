package plate

import (
	"fmt"
	"math"

	"github.com/ironsheep/plate-locator/internal/raster"
)

// ITU-R BT.601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Greyscale combines three 8-bit channel grids into one intensity grid.
//
// Each output pixel is round(0.299*R + 0.587*G + 0.114*B), rounding half
// away from zero. The three inputs must have identical dimensions;
// otherwise the error wraps ErrChannelMismatch.
func Greyscale(r, g, b *raster.Grid[uint8]) (*raster.Grid[uint8], error) {
	if err := checkChannels(r, g, b); err != nil {
		return nil, err
	}

	out := raster.New[uint8](r.Width, r.Height)
	for i := range out.Pix {
		v := lumaR*float64(r.Pix[i]) + lumaG*float64(g.Pix[i]) + lumaB*float64(b.Pix[i])
		out.Pix[i] = uint8(math.Round(v))
	}
	return out, nil
}

func checkChannels(r, g, b *raster.Grid[uint8]) error {
	if r == nil || g == nil || b == nil {
		return fmt.Errorf("%w: nil channel", ErrChannelMismatch)
	}
	if !raster.SameSize(r, g) || !raster.SameSize(r, b) {
		return fmt.Errorf("%w: red %dx%d, green %dx%d, blue %dx%d", ErrChannelMismatch,
			r.Width, r.Height, g.Width, g.Height, b.Width, b.Height)
	}
	return nil
}
