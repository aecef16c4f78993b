package connect

import (
	"math"

	"github.com/MatthewPierson90/WaterNet-vectorize/grid"
)

// Weight is the directed edge cost for leaving cell a toward cell b.
// Only downhill-from-a elevation loss is penalized; an implausibly
// large loss excludes the edge outright, a flat transition defers to
// the model's confidence at a, and otherwise the elevation loss is
// scaled up (never down) where the model is uncertain.
func (c *Connector) Weight(a, b grid.Cell) float64 {
	d := c.elev.At(a.Row, a.Col) - c.elev.At(b.Row, b.Col)
	if d < 0 {
		d = 0
	}
	if d > c.maxElevDiff {
		return math.Inf(1)
	}
	w := c.weight.At(a.Row, a.Col)
	if d == 0 {
		return w
	}
	return math.Max(w*d, d)
}
