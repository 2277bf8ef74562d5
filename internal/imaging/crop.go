package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropResult contains a cropped region encoded as a base64 PNG.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// CropRegion extracts rect from img and returns it as a base64 PNG.
//
// rect is in 0-based image coordinates with an exclusive Max. A scale other
// than 1 resizes the crop with a Lanczos filter, which helps when a detected
// plate is only a few pixels tall.
func CropRegion(img image.Image, rect image.Rectangle, scale float64) (*CropResult, error) {
	bounds := img.Bounds()
	full := image.Rect(0, 0, bounds.Dx(), bounds.Dy())

	if rect.Empty() {
		return nil, fmt.Errorf("invalid crop region %v: region is empty", rect)
	}
	if !rect.In(full) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y, full.Max.X, full.Max.Y)
	}

	cropped := imaging.Crop(img, rect.Add(bounds.Min))

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth > 0 && newHeight > 0 {
			cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
		}
	}

	encoded, err := EncodePNGBase64(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}
