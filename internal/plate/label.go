package plate

import "github.com/ironsheep/plate-locator/internal/raster"

// LabelSizes maps a component label to its pixel count. Label 0 is
// background and never appears as a key.
type LabelSizes map[int]int

// Total returns the number of labeled pixels across all components.
func (s LabelSizes) Total() int {
	n := 0
	for _, size := range s {
		n += size
	}
	return n
}

// neighbours4 lists the 4-connected steps as (dx, dy) in visiting order:
// right, down, up, left.
var neighbours4 = [4][2]int{{1, 0}, {0, 1}, {0, -1}, {-1, 0}}

// LabelComponents assigns a positive label to each 4-connected component of
// nonzero pixels in bin.
//
// The grid is scanned in row-major order. Each unvisited foreground pixel
// seeds a new label, numbered from 1 upward, and a breadth-first flood fill
// claims every foreground pixel reachable through up/down/left/right steps.
// Background pixels keep label 0.
//
// Returns the label grid and the pixel count of every label. Label numbers
// depend on scan order; compare component shapes and sizes, not raw ids.
func LabelComponents(bin *raster.Grid[uint8]) (*raster.Grid[int], LabelSizes) {
	labels := raster.New[int](bin.Width, bin.Height)
	sizes := make(LabelSizes)
	visited := make([]bool, len(bin.Pix))

	// queue holds flat pixel indices; head marks the front of the FIFO.
	var queue []int
	next := 0

	for start, v := range bin.Pix {
		if v == Background || visited[start] {
			continue
		}
		next++
		visited[start] = true
		queue = append(queue[:0], start)

		for head := 0; head < len(queue); head++ {
			idx := queue[head]
			labels.Pix[idx] = next
			sizes[next]++

			x, y := idx%bin.Width, idx/bin.Width
			for _, step := range neighbours4 {
				nx, ny := x+step[0], y+step[1]
				if !bin.In(nx, ny) {
					continue
				}
				n := ny*bin.Width + nx
				if visited[n] || bin.Pix[n] == Background {
					continue
				}
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return labels, sizes
}
