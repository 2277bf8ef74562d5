package plate

import (
	"image"
	"sort"

	"github.com/ironsheep/plate-locator/internal/raster"
)

// BoundingBox is an axis-aligned box in pixel coordinates. Both corners are
// inclusive pixel positions, so Width and Height are MaxX-MinX and
// MaxY-MinY.
type BoundingBox struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Width returns MaxX - MinX. It is negative for a box whose corners are
// reversed.
func (b BoundingBox) Width() int { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b BoundingBox) Height() int { return b.MaxY - b.MinY }

// AspectRatio returns Width/Height, or 0 when Height is not positive.
func (b BoundingBox) AspectRatio() float64 {
	if b.Height() <= 0 {
		return 0
	}
	return float64(b.Width()) / float64(b.Height())
}

// Rect converts the box to an image.Rectangle whose Max is exclusive.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.MinX, b.MinY, b.MaxX+1, b.MaxY+1)
}

// DetectionResult is the outcome of a detection. Box is meaningful only
// when Found is true.
type DetectionResult struct {
	Found bool        `json:"found"`
	Box   BoundingBox `json:"box"`

	// Label is the id of the accepted component, 0 when nothing was found.
	Label int `json:"label"`

	// Components is the number of labeled regions that were considered.
	Components int `json:"components"`
}

// boxAccumulator gathers the corner candidates of one component in a single
// raster pass.
type boxAccumulator struct {
	seen bool

	// origin-distance corners and their squared distances
	near, far     image.Point
	nearD2, farD2 int

	// per-axis extent
	minX, minY, maxX, maxY int
}

func (a *boxAccumulator) add(x, y int) {
	d2 := x*x + y*y
	if !a.seen {
		a.seen = true
		a.near, a.far = image.Pt(x, y), image.Pt(x, y)
		a.nearD2, a.farD2 = d2, d2
		a.minX, a.maxX, a.minY, a.maxY = x, x, y, y
		return
	}
	// Strict comparisons keep the first pixel in raster order on ties.
	if d2 < a.nearD2 {
		a.near, a.nearD2 = image.Pt(x, y), d2
	}
	if d2 > a.farD2 {
		a.far, a.farD2 = image.Pt(x, y), d2
	}
	a.minX = min(a.minX, x)
	a.maxX = max(a.maxX, x)
	a.minY = min(a.minY, y)
	a.maxY = max(a.maxY, y)
}

func (a *boxAccumulator) box(strategy BoxStrategy) BoundingBox {
	if strategy == BoxExtent {
		return BoundingBox{MinX: a.minX, MinY: a.minY, MaxX: a.maxX, MaxY: a.maxY}
	}
	return BoundingBox{MinX: a.near.X, MinY: a.near.Y, MaxX: a.far.X, MaxY: a.far.Y}
}

// ComponentBoxes computes the bounding box of every label present in
// sizes using the given strategy.
func ComponentBoxes(labels *raster.Grid[int], sizes LabelSizes, strategy BoxStrategy) map[int]BoundingBox {
	acc := make(map[int]*boxAccumulator, len(sizes))
	for label, size := range sizes {
		if size > 0 {
			acc[label] = &boxAccumulator{}
		}
	}

	for y := 0; y < labels.Height; y++ {
		for x, label := range labels.Row(y) {
			if a, ok := acc[label]; ok {
				a.add(x, y)
			}
		}
	}

	boxes := make(map[int]BoundingBox, len(acc))
	for label, a := range acc {
		if a.seen {
			boxes[label] = a.box(strategy)
		}
	}
	return boxes
}

// Accepts reports whether box qualifies as a plate under p: positive width
// and height, and a width/height ratio strictly between MinAspect and
// MaxAspect.
func (p Params) Accepts(box BoundingBox) bool {
	if box.Width() <= 0 || box.Height() <= 0 {
		return false
	}
	ratio := box.AspectRatio()
	return ratio > p.MinAspect && ratio < p.MaxAspect
}

// SelectPlate picks the plate candidate among the labeled components.
//
// Components are visited in ascending label order and each box is tested
// with Params.Accepts. When several qualify the last one visited wins; there
// is no scoring between candidates. When none qualify the result has Found
// set to false and a zero Box.
func SelectPlate(labels *raster.Grid[int], sizes LabelSizes, p Params) DetectionResult {
	boxes := ComponentBoxes(labels, sizes, p.Box)

	order := make([]int, 0, len(boxes))
	for label := range boxes {
		order = append(order, label)
	}
	sort.Ints(order)

	result := DetectionResult{Components: len(order)}
	for _, label := range order {
		if box := boxes[label]; p.Accepts(box) {
			result.Found = true
			result.Box = box
			result.Label = label
		}
	}
	return result
}
