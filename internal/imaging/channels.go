package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/plate-locator/internal/raster"
)

// SplitChannels extracts the red, green and blue channels of img as 8-bit
// grids with their origin at the image's top-left pixel.
//
// The image is first converted to RGBA, so any decoded format (paletted,
// YCbCr, 16-bit) is accepted. Alpha is dropped; partially transparent pixels
// keep their premultiplied colour values.
func SplitChannels(img image.Image) (r, g, b *raster.Grid[uint8]) {
	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	r = raster.New[uint8](width, height)
	g = raster.New[uint8](width, height)
	b = raster.New[uint8](width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := rgba.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)
			r.Set(x, y, rgba.Pix[off])
			g.Set(x, y, rgba.Pix[off+1])
			b.Set(x, y, rgba.Pix[off+2])
		}
	}
	return r, g, b
}
