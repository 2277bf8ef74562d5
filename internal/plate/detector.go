package plate

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/plate-locator/internal/raster"
)

// Stages holds every intermediate grid of one detection run, in pipeline
// order. It exists for visualization and debugging; each grid is owned by
// the Stages value and is not referenced by the pipeline afterwards.
type Stages struct {
	Greyscale  *raster.Grid[uint8]
	Texture    *raster.Grid[float64]
	Normalized *raster.Grid[uint8]
	Binary     *raster.Grid[uint8]
	Morphology *raster.Grid[uint8]
	Labels     *raster.Grid[int]
	Sizes      LabelSizes
}

// Detector runs the plate detection pipeline with a fixed set of Params.
type Detector struct {
	params Params
	log    logrus.FieldLogger
}

// NewDetector validates params and returns a ready Detector.
//
// A nil logger discards all output. Stage diagnostics are logged at debug
// level and the detection outcome at info level.
func NewDetector(params Params, logger logrus.FieldLogger) (*Detector, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Box == "" {
		params.Box = BoxOriginDistance
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Detector{params: params, log: logger}, nil
}

// Params returns the settings the detector was built with.
func (d *Detector) Params() Params {
	return d.params
}

// Detect runs the full pipeline on three 8-bit channel grids.
//
// See DetectWithStages for the error contract.
func (d *Detector) Detect(r, g, b *raster.Grid[uint8]) (*DetectionResult, error) {
	result, _, err := d.DetectWithStages(r, g, b)
	return result, err
}

// DetectWithStages runs the full pipeline and also returns every
// intermediate grid.
//
// # Errors
//
//   - ErrChannelMismatch if r, g and b differ in size
//   - ErrInvalidDimensions if the image is smaller than MinDimension on
//     either axis
//
// Finding no plate is not an error; the result then has Found == false.
func (d *Detector) DetectWithStages(r, g, b *raster.Grid[uint8]) (*DetectionResult, *Stages, error) {
	if err := checkChannels(r, g, b); err != nil {
		return nil, nil, err
	}
	if r.Width < MinDimension || r.Height < MinDimension {
		return nil, nil, fmt.Errorf("%w: image is %dx%d, need at least %dx%d",
			ErrInvalidDimensions, r.Width, r.Height, MinDimension, MinDimension)
	}

	log := d.log.WithFields(logrus.Fields{"width": r.Width, "height": r.Height})
	started := time.Now()
	st := &Stages{}

	var err error
	st.Greyscale, err = Greyscale(r, g, b)
	if err != nil {
		return nil, nil, err
	}

	st.Texture, err = StdDevTexture(st.Greyscale)
	if err != nil {
		return nil, nil, err
	}

	st.Normalized = Normalize(st.Texture)

	st.Binary = Threshold(st.Normalized, d.params.Threshold)
	log.WithFields(logrus.Fields{
		"stage":      "threshold",
		"foreground": countForeground(st.Binary),
	}).Debug("binarized texture map")

	st.Morphology = Morphology(st.Binary, d.params.Dilations, d.params.Erosions)
	log.WithFields(logrus.Fields{
		"stage":      "morphology",
		"dilations":  d.params.Dilations,
		"erosions":   d.params.Erosions,
		"foreground": countForeground(st.Morphology),
	}).Debug("cleaned binary map")

	st.Labels, st.Sizes = LabelComponents(st.Morphology)
	log.WithFields(logrus.Fields{
		"stage":      "label",
		"components": len(st.Sizes),
	}).Debug("labeled components")

	result := SelectPlate(st.Labels, st.Sizes, d.params)

	entry := log.WithFields(logrus.Fields{
		"found":      result.Found,
		"components": result.Components,
		"elapsed":    time.Since(started).String(),
	})
	if result.Found {
		entry.WithFields(logrus.Fields{
			"box":    fmt.Sprintf("(%d,%d)-(%d,%d)", result.Box.MinX, result.Box.MinY, result.Box.MaxX, result.Box.MaxY),
			"aspect": result.Box.AspectRatio(),
		}).Info("plate candidate found")
	} else {
		entry.Info("no plate candidate")
	}

	return &result, st, nil
}

func countForeground(g *raster.Grid[uint8]) int {
	return g.Count(func(v uint8) bool { return v != Background })
}
