// Package connect repairs the connectivity of a basin's predicted
// waterway components: it builds an 8-connected directed graph over
// eligible cells and stitches orphan components onto the main network
// along elevation- and confidence-aware shortest paths.
package connect

import (
	"github.com/MatthewPierson90/WaterNet-vectorize/basin"
	"github.com/MatthewPierson90/WaterNet-vectorize/grid"
)

const (
	// DefaultMinProbability is the water-presence probability above which
	// an unlabelled cell becomes a graph node.
	DefaultMinProbability = 0.1
	// DefaultMaxElevationDiff caps the downhill elevation loss (metres)
	// an edge may carry before it is treated as impassable.
	DefaultMaxElevationDiff = 20.
)

// DefaultCutoffs stages the stitch search from cheap, near merges to
// expensive, far ones.
var DefaultCutoffs = []float64{2, 8, 100}

// Connector owns a basin's component and weight rasters for the
// duration of the stitching pass and mutates both in place.
type Connector struct {
	nrow, ncol  int
	nodes       map[grid.Cell]bool
	elev        *grid.Floats
	weight      *grid.Floats
	comp        *grid.Ints
	main        int
	maxElevDiff float64
}

// New indexes the eligible cells of a basin: those whose probability
// exceeds minProb plus every cell already carrying a component label.
func New(b *basin.Data, minProb float64) *Connector {
	c := &Connector{
		nrow:        b.Comp.Nrow,
		ncol:        b.Comp.Ncol,
		nodes:       make(map[grid.Cell]bool),
		elev:        b.Elev,
		weight:      b.Weight,
		comp:        b.Comp,
		main:        b.Main,
		maxElevDiff: DefaultMaxElevationDiff,
	}
	for r := 0; r < c.nrow; r++ {
		for q := 0; q < c.ncol; q++ {
			if b.Prob.At(r, q) > minProb || b.Comp.At(r, q) > 0 {
				c.nodes[grid.Cell{Row: r, Col: q}] = true
			}
		}
	}
	return c
}

// neighbors appends to buf the 8-neighbours of cl that are graph nodes.
func (c *Connector) neighbors(cl grid.Cell, buf []grid.Cell) []grid.Cell {
	for _, o := range grid.Neigh8 {
		n := grid.Cell{Row: cl.Row + o[0], Col: cl.Col + o[1]}
		if c.nodes[n] {
			buf = append(buf, n)
		}
	}
	return buf
}

// representatives returns, per component label, the cell of minimum
// 3x3-window mean elevation; ties keep the first cell in row-major
// order. These are the shortest-path targets.
func (c *Connector) representatives() map[int]grid.Cell {
	reps := make(map[int]grid.Cell)
	mins := make(map[int]float64)
	for r := 0; r < c.nrow; r++ {
		for q := 0; q < c.ncol; q++ {
			lbl := c.comp.At(r, q)
			if lbl <= 0 {
				continue
			}
			m := c.elev.Mean3x3(r, q)
			if cur, ok := mins[lbl]; !ok || m < cur {
				mins[lbl] = m
				reps[lbl] = grid.Cell{Row: r, Col: q}
			}
		}
	}
	return reps
}
