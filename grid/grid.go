// Package grid holds the dense raster primitives shared by the basin
// vectorization passes: integer and float rasters addressed by (row,col),
// bounds-safe 3x3 window reads, and the affine definition that places
// cells in world coordinates.
package grid

import (
	"errors"
	"fmt"
)

// Cell is an integer raster coordinate.
type Cell struct {
	Row, Col int
}

// Neigh8 lists the 8-neighbour offsets in tracing priority order:
// orthogonal (down, up, right, left) before diagonal.
var Neigh8 = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, 1}, {1, -1}, {-1, -1}}

var errNonRectangular = errors.New("grid: ragged rows")

// Ints is a dense row-major integer raster. Reads outside the raster
// return zero; writes outside are invalid.
type Ints struct {
	Nrow, Ncol int
	V          []int
}

// NewInts returns a zeroed nrow x ncol raster.
func NewInts(nrow, ncol int) *Ints {
	return &Ints{Nrow: nrow, Ncol: ncol, V: make([]int, nrow*ncol)}
}

// IntsFrom builds a raster from row slices.
func IntsFrom(rows [][]int) (*Ints, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("grid: empty raster")
	}
	g := NewInts(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != g.Ncol {
			return nil, fmt.Errorf("%w: row %d", errNonRectangular, i)
		}
		copy(g.V[i*g.Ncol:(i+1)*g.Ncol], r)
	}
	return g, nil
}

func (g *Ints) inBounds(r, c int) bool {
	return r >= 0 && r < g.Nrow && c >= 0 && c < g.Ncol
}

// At returns the value at (r,c), zero when out of range.
func (g *Ints) At(r, c int) int {
	if !g.inBounds(r, c) {
		return 0
	}
	return g.V[r*g.Ncol+c]
}

// Set writes v at (r,c).
func (g *Ints) Set(r, c, v int) {
	g.V[r*g.Ncol+c] = v
}

// Add increments the value at (r,c) by d.
func (g *Ints) Add(r, c, d int) {
	g.V[r*g.Ncol+c] += d
}

// Sum3x3 sums the 3x3 window centred on (r,c); out-of-range cells
// contribute zero.
func (g *Ints) Sum3x3(r, c int) int {
	s := 0
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			s += g.At(r+i, c+j)
		}
	}
	return s
}

// Pad embeds the raster in a larger one bordered by n zero cells per side.
func (g *Ints) Pad(n int) *Ints {
	p := NewInts(g.Nrow+2*n, g.Ncol+2*n)
	for r := 0; r < g.Nrow; r++ {
		copy(p.V[(r+n)*p.Ncol+n:(r+n)*p.Ncol+n+g.Ncol], g.V[r*g.Ncol:(r+1)*g.Ncol])
	}
	return p
}

// Any reports whether any cell satisfies pred.
func (g *Ints) Any(pred func(int) bool) bool {
	for _, v := range g.V {
		if pred(v) {
			return true
		}
	}
	return false
}

// CellsWhere collects, in row-major order, the cells satisfying pred.
func (g *Ints) CellsWhere(pred func(int) bool) []Cell {
	var o []Cell
	for r := 0; r < g.Nrow; r++ {
		for c := 0; c < g.Ncol; c++ {
			if pred(g.V[r*g.Ncol+c]) {
				o = append(o, Cell{r, c})
			}
		}
	}
	return o
}

// Copy returns a deep copy.
func (g *Ints) Copy() *Ints {
	o := NewInts(g.Nrow, g.Ncol)
	copy(o.V, g.V)
	return o
}

// Floats is a dense row-major float raster with the same bounds
// discipline as Ints.
type Floats struct {
	Nrow, Ncol int
	V          []float64
}

// NewFloats returns a zeroed nrow x ncol raster.
func NewFloats(nrow, ncol int) *Floats {
	return &Floats{Nrow: nrow, Ncol: ncol, V: make([]float64, nrow*ncol)}
}

// FloatsFrom builds a raster from row slices.
func FloatsFrom(rows [][]float64) (*Floats, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("grid: empty raster")
	}
	g := NewFloats(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != g.Ncol {
			return nil, fmt.Errorf("%w: row %d", errNonRectangular, i)
		}
		copy(g.V[i*g.Ncol:(i+1)*g.Ncol], r)
	}
	return g, nil
}

func (g *Floats) inBounds(r, c int) bool {
	return r >= 0 && r < g.Nrow && c >= 0 && c < g.Ncol
}

// At returns the value at (r,c), zero when out of range.
func (g *Floats) At(r, c int) float64 {
	if !g.inBounds(r, c) {
		return 0
	}
	return g.V[r*g.Ncol+c]
}

// Set writes v at (r,c).
func (g *Floats) Set(r, c int, v float64) {
	g.V[r*g.Ncol+c] = v
}

// Mean3x3 averages the 3x3 window centred on (r,c) over in-bounds cells
// only.
func (g *Floats) Mean3x3(r, c int) float64 {
	s, n := 0., 0
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			if g.inBounds(r+i, c+j) {
				s += g.V[(r+i)*g.Ncol+c+j]
				n++
			}
		}
	}
	if n == 0 {
		return 0.
	}
	return s / float64(n)
}

// Copy returns a deep copy.
func (g *Floats) Copy() *Floats {
	o := NewFloats(g.Nrow, g.Ncol)
	copy(o.V, g.V)
	return o
}
