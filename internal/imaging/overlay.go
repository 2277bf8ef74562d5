package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/plate-locator/internal/plate"
)

// DefaultBoxColor is the outline colour used when none is configured.
const DefaultBoxColor = "#00FF00"

// DrawRectangle returns a copy of img with the outline of rect drawn on it.
//
// Parameters:
//   - img: Source image. It is not modified.
//   - rect: Box to outline, in 0-based image coordinates with exclusive Max.
//     Parts outside the image are clipped.
//   - colorHex: Outline colour as "#RRGGBB" or "#RGB". Empty selects
//     DefaultBoxColor.
//   - lineWidth: Outline thickness in pixels, drawn inward from rect's
//     edges. Values below 1 are treated as 1.
//
// Returns an error if colorHex cannot be parsed.
func DrawRectangle(img image.Image, rect image.Rectangle, colorHex string, lineWidth int) (*image.RGBA, error) {
	lineColor, err := ParseHexColor(orDefault(colorHex))
	if err != nil {
		return nil, err
	}

	if lineWidth < 1 {
		lineWidth = 1
	}

	result := clone.AsRGBA(img)
	bounds := result.Bounds()
	rect = rect.Canon().Add(bounds.Min)

	for i := 0; i < lineWidth; i++ {
		top, bottom := rect.Min.Y+i, rect.Max.Y-1-i
		left, right := rect.Min.X+i, rect.Max.X-1-i
		if top > bottom || left > right {
			break
		}

		// Horizontal edges
		for x := left; x <= right; x++ {
			setClipped(result, bounds, x, top, lineColor)
			setClipped(result, bounds, x, bottom, lineColor)
		}

		// Vertical edges
		for y := top; y <= bottom; y++ {
			setClipped(result, bounds, left, y, lineColor)
			setClipped(result, bounds, right, y, lineColor)
		}
	}

	return result, nil
}

func setClipped(img *image.RGBA, bounds image.Rectangle, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(bounds) {
		img.SetRGBA(x, y, c)
	}
}

// Annotate returns a copy of img with result's box outlined. When nothing
// was found the copy is returned unmarked.
func Annotate(img image.Image, result *plate.DetectionResult, colorHex string, lineWidth int) (*image.RGBA, error) {
	if result == nil || !result.Found {
		if _, err := ParseHexColor(orDefault(colorHex)); err != nil {
			return nil, err
		}
		return clone.AsRGBA(img), nil
	}
	return DrawRectangle(img, result.Box.Rect(), colorHex, lineWidth)
}

func orDefault(colorHex string) string {
	if colorHex == "" {
		return DefaultBoxColor
	}
	return colorHex
}

// ParseHexColor parses "#RRGGBB" or "#RGB" into an opaque colour. Anything
// else, including trailing characters, is rejected.
func ParseHexColor(s string) (color.RGBA, error) {
	if !isHexColor(s) {
		return color.RGBA{}, fmt.Errorf("invalid box color %q: want #RRGGBB or #RGB", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid box color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// isHexColor checks the shape colorful.Hex expects; its Sscanf parsing
// tolerates short and over-long input.
func isHexColor(s string) bool {
	if (len(s) != 4 && len(s) != 7) || s[0] != '#' {
		return false
	}
	for _, ch := range s[1:] {
		switch {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}
