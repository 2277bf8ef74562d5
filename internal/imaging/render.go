package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/plate-locator/internal/plate"
	"github.com/ironsheep/plate-locator/internal/raster"
)

// Stage names accepted by StageImage, in pipeline order.
const (
	StageGreyscale  = "greyscale"
	StageTexture    = "texture"
	StageNormalized = "normalized"
	StageBinary     = "binary"
	StageMorphology = "morphology"
	StageLabels     = "labels"
)

// StageNames lists every renderable stage in pipeline order.
var StageNames = []string{
	StageGreyscale,
	StageTexture,
	StageNormalized,
	StageBinary,
	StageMorphology,
	StageLabels,
}

// GrayImage renders an 8-bit grid as a greyscale image. Binary grids show
// foreground as white.
func GrayImage(g *raster.Grid[uint8]) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+g.Width], g.Row(y))
	}
	return img
}

// TextureImage renders a floating-point texture map, stretched so its
// strongest response is white.
func TextureImage(g *raster.Grid[float64]) *image.Gray {
	return GrayImage(plate.Normalize(g))
}

// LabelImage renders a label grid with one colour per component on a black
// background. Hues are spread by the golden angle so neighbouring labels
// stay distinguishable.
func LabelImage(labels *raster.Grid[int]) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, labels.Width, labels.Height))
	palette := make(map[int]color.RGBA)

	for y := 0; y < labels.Height; y++ {
		for x, l := range labels.Row(y) {
			if l == 0 {
				img.SetRGBA(x, y, color.RGBA{A: 255})
				continue
			}
			c, ok := palette[l]
			if !ok {
				hue := float64((l * 137) % 360)
				r, g, b := colorful.Hsv(hue, 0.75, 0.95).RGB255()
				c = color.RGBA{R: r, G: g, B: b, A: 255}
				palette[l] = c
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// StageImage renders one named intermediate grid of st.
func StageImage(st *plate.Stages, name string) (image.Image, error) {
	if st == nil {
		return nil, fmt.Errorf("no stages recorded")
	}
	switch name {
	case StageGreyscale:
		return GrayImage(st.Greyscale), nil
	case StageTexture:
		return TextureImage(st.Texture), nil
	case StageNormalized:
		return GrayImage(st.Normalized), nil
	case StageBinary:
		return GrayImage(st.Binary), nil
	case StageMorphology:
		return GrayImage(st.Morphology), nil
	case StageLabels:
		return LabelImage(st.Labels), nil
	default:
		return nil, fmt.Errorf("unknown stage: %s", name)
	}
}

// SaveStages writes every intermediate grid of st as
// <dir>/<base>_<stage>.png and returns the written paths in pipeline order.
// dir is created if it does not exist.
func SaveStages(dir, base string, st *plate.Stages) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create stage directory: %w", err)
	}

	paths := make([]string, 0, len(StageNames))
	for _, name := range StageNames {
		img, err := StageImage(st, name)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", base, name))
		if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
			return paths, fmt.Errorf("failed to save %s stage: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SaveImage writes img to path, choosing the encoder from the file
// extension. Parent directories are created as needed.
func SaveImage(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// EncodePNGBase64 encodes img as PNG and returns it base64 encoded.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
