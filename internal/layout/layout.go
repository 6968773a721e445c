// Package layout computes the collage grid and where each image lands in it.
package layout

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyInput is returned when a grid is requested for zero images.
	ErrEmptyInput = errors.New("no images to lay out")

	// ErrInvalidCellSize is returned for cell sizes below one pixel.
	ErrInvalidCellSize = errors.New("cell size must be at least 1")
)

// Grid is the near-square arrangement of square cells for a run.
type Grid struct {
	Columns  int `json:"columns"`
	Rows     int `json:"rows"`
	CellSize int `json:"cell_size"`
	Width    int `json:"width"`  // Columns * CellSize
	Height   int `json:"height"` // Rows * CellSize
}

// Cells returns the number of cells in the grid (>= the image count).
func (g Grid) Cells() int { return g.Columns * g.Rows }

// BufferLen is the size in bytes of an RGBA8 canvas for the grid.
func (g Grid) BufferLen() int64 { return int64(g.Width) * int64(g.Height) * 4 }

// ComputeGrid returns the smallest square-ish grid holding count cells:
// columns = ceil(sqrt(count)), rows = ceil(count / columns).
func ComputeGrid(count, cellSize int) (Grid, error) {
	if count <= 0 {
		return Grid{}, ErrEmptyInput
	}
	if cellSize < 1 {
		return Grid{}, fmt.Errorf("%w: %d", ErrInvalidCellSize, cellSize)
	}

	cols := int(math.Ceil(math.Sqrt(float64(count))))
	// Sqrt may be off by one ulp for large counts; settle on the exact ceiling.
	for cols > 1 && (cols-1)*(cols-1) >= count {
		cols--
	}
	for cols*cols < count {
		cols++
	}
	rows := (count + cols - 1) / cols

	return Grid{
		Columns:  cols,
		Rows:     rows,
		CellSize: cellSize,
		Width:    cols * cellSize,
		Height:   rows * cellSize,
	}, nil
}

// Placement locates one scaled image inside the canvas.
type Placement struct {
	CellX   int `json:"cell_x"`
	CellY   int `json:"cell_y"`
	Width   int `json:"width"`
	Height  int `json:"height"`
	OffsetX int `json:"offset_x"`
	OffsetY int `json:"offset_y"`
}

// ResolvePlacement scales a srcW x srcH image so its longer side equals the
// cell size and centres it inside the cell for grid index idx.
//
// Scaled sides are rounded half away from zero and clamped to [1, CellSize].
// Centring uses floor division, so odd slack puts the extra pixel on the
// right/bottom.
func ResolvePlacement(idx, srcW, srcH int, g Grid) Placement {
	cell := g.CellSize
	w, h := ScaleToFit(srcW, srcH, cell)

	p := Placement{
		CellX:  (idx % g.Columns) * cell,
		CellY:  (idx / g.Columns) * cell,
		Width:  w,
		Height: h,
	}
	p.OffsetX = p.CellX + (cell-w)/2
	p.OffsetY = p.CellY + (cell-h)/2
	return p
}

// ScaleToFit returns the dimensions of a srcW x srcH image scaled so that its
// longer side is exactly size.
func ScaleToFit(srcW, srcH, size int) (int, int) {
	if srcW < 1 {
		srcW = 1
	}
	if srcH < 1 {
		srcH = 1
	}
	s := float64(size) / float64(max(srcW, srcH))
	return clamp(int(math.Round(float64(srcW)*s)), size), clamp(int(math.Round(float64(srcH)*s)), size)
}

func clamp(v, hi int) int {
	if v < 1 {
		return 1
	}
	if v > hi {
		return hi
	}
	return v
}
