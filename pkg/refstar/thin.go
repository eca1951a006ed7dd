// Package refstar selects a spatially balanced subset of catalog
// candidates for use as astrometric reference stars.
package refstar

import (
	"math"

	"starsieve/pkg/catalog"
)

// Grid configures the spatial thinning: the image is partitioned into
// Size x Size pixel cells and each cell contributes at most CellCap stars.
type Grid struct {
	Size    int
	CellCap int
}

// DefaultGrid returns the grid geometry used for production frames.
func DefaultGrid() Grid {
	return Grid{Size: 128, CellCap: 6}
}

// Cells returns the grid dimensions for an image of the given size.
func (g Grid) Cells(width, height int) (int, int) {
	cellsX := (width + g.Size - 1) / g.Size
	cellsY := (height + g.Size - 1) / g.Size
	return cellsX, cellsY
}

// Thin walks the brightness-ranked candidate list and keeps at most
// CellCap stars per grid cell, so the reference set spans the image
// instead of clustering where the catalog is deepest. The grid is
// centered on the image; candidates falling in the centering margin
// belong to no cell and are dropped. Input order is preserved.
//
// Images spanning fewer than four cells are returned unthinned: the grid
// is too coarse to discriminate.
func Thin(cands []catalog.Candidate, width, height int, g Grid) []catalog.Candidate {
	cellsX, cellsY := g.Cells(width, height)

	if cellsX*cellsY < 4 {
		out := make([]catalog.Candidate, len(cands))
		copy(out, cands)
		return out
	}

	x0 := float64((width % g.Size) / 2)
	y0 := float64((height % g.Size) / 2)

	// Occupancy per physical cell, row-major. The index must combine both
	// cell coordinates; anything that collapses (i,j) pairs lets one cell
	// spend another cell's budget.
	occupancy := make([]int, cellsX*cellsY)

	refs := make([]catalog.Candidate, 0, len(cands))
	for _, c := range cands {
		i := int(math.Floor((c.X - x0) / float64(g.Size)))
		j := int(math.Floor((c.Y - y0) / float64(g.Size)))
		if i < 0 || i >= cellsX || j < 0 || j >= cellsY {
			continue
		}
		k := j*cellsX + i
		if occupancy[k] < g.CellCap {
			occupancy[k]++
			refs = append(refs, c)
		}
	}
	return refs
}
