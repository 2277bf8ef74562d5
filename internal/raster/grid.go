// Package raster provides the rectangular pixel grid shared by every stage
// of the plate detection pipeline.
//
// A Grid stores Width*Height values in row-major order. Coordinates follow
// the image convention used throughout this module: (0,0) is the top-left
// corner, X grows to the right and Y grows downward.
//
// Grids handed from one pipeline stage to the next are treated as immutable.
// Stages that transform a grid allocate a new one instead of writing into
// their input.
package raster

import "fmt"

// Number is the set of element types a Grid may hold.
type Number interface {
	~uint8 | ~uint16 | ~uint32 | ~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Grid is a row-major, fixed-size 2-D array of numeric values.
type Grid[T Number] struct {
	// Width is the number of columns.
	Width int

	// Height is the number of rows.
	Height int

	// Pix holds Width*Height values. The value at (x, y) is Pix[y*Width+x].
	Pix []T
}

// New allocates a zero-filled grid of the given size.
// Negative dimensions are clamped to zero.
func New[T Number](width, height int) *Grid[T] {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid[T]{
		Width:  width,
		Height: height,
		Pix:    make([]T, width*height),
	}
}

// Filled allocates a grid with every cell set to v.
func Filled[T Number](width, height int, v T) *Grid[T] {
	g := New[T](width, height)
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

// FromRows builds a grid from a slice of rows.
//
// Every row must have the same length; a ragged input returns an error.
// The rows are copied, so later changes to rows do not affect the grid.
func FromRows[T Number](rows [][]T) (*Grid[T], error) {
	height := len(rows)
	if height == 0 {
		return New[T](0, 0), nil
	}
	width := len(rows[0])
	g := New[T](width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d elements, want %d", y, len(row), width)
		}
		copy(g.Pix[y*width:(y+1)*width], row)
	}
	return g, nil
}

// In reports whether (x, y) lies inside the grid.
func (g *Grid[T]) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// At returns the value at (x, y). It panics if the point is outside the grid.
func (g *Grid[T]) At(x, y int) T {
	return g.Pix[y*g.Width+x]
}

// Set stores v at (x, y). It panics if the point is outside the grid.
func (g *Grid[T]) Set(x, y int, v T) {
	g.Pix[y*g.Width+x] = v
}

// Row returns row y as a sub-slice of Pix. Writes through it modify the grid.
func (g *Grid[T]) Row(y int) []T {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// Rows returns a copy of the grid as a slice of rows.
func (g *Grid[T]) Rows() [][]T {
	rows := make([][]T, g.Height)
	for y := range rows {
		rows[y] = append([]T(nil), g.Row(y)...)
	}
	return rows
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{
		Width:  g.Width,
		Height: g.Height,
		Pix:    append([]T(nil), g.Pix...),
	}
}

// Count returns the number of cells for which keep returns true.
func (g *Grid[T]) Count(keep func(T) bool) int {
	n := 0
	for _, v := range g.Pix {
		if keep(v) {
			n++
		}
	}
	return n
}

// Float64s returns the grid values converted to float64, in row-major order.
func (g *Grid[T]) Float64s() []float64 {
	out := make([]float64, len(g.Pix))
	for i, v := range g.Pix {
		out[i] = float64(v)
	}
	return out
}

// SameSize reports whether two grids, possibly of different element types,
// have identical dimensions.
func SameSize[A, B Number](a *Grid[A], b *Grid[B]) bool {
	return a.Width == b.Width && a.Height == b.Height
}

// Map applies fn to every cell of src and returns the results in a new grid.
func Map[A, B Number](src *Grid[A], fn func(A) B) *Grid[B] {
	dst := New[B](src.Width, src.Height)
	for i, v := range src.Pix {
		dst.Pix[i] = fn(v)
	}
	return dst
}
