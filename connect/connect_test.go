package connect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatthewPierson90/WaterNet-vectorize/basin"
	"github.com/MatthewPierson90/WaterNet-vectorize/grid"
)

func flatBasin(t *testing.T, nrow, ncol int) *basin.Data {
	t.Helper()
	return &basin.Data{
		GD:     &grid.Definition{Xmin: 0, Ymax: float64(nrow), Xres: 1, Yres: 1, Nrow: nrow, Ncol: ncol},
		Comp:   grid.NewInts(nrow, ncol),
		Thin:   grid.NewInts(nrow, ncol),
		Prob:   grid.NewFloats(nrow, ncol),
		Elev:   grid.NewFloats(nrow, ncol),
		Weight: grid.NewFloats(nrow, ncol),
		Main:   1,
	}
}

func TestWeightElevationCap(t *testing.T) {
	b := flatBasin(t, 1, 2)
	b.Comp.Set(0, 0, 1)
	b.Comp.Set(0, 1, 2)
	b.Elev.Set(0, 0, 25)
	c := New(b, DefaultMinProbability)

	// downhill loss beyond the cap excludes the edge
	assert.True(t, math.IsInf(c.Weight(grid.Cell{0, 0}, grid.Cell{0, 1}), 1))
	// the reverse direction is an elevation gain and carries no penalty
	assert.Equal(t, 0.0, c.Weight(grid.Cell{0, 1}, grid.Cell{0, 0}))
}

func TestWeightFlatUsesConfidence(t *testing.T) {
	b := flatBasin(t, 1, 2)
	b.Comp.Set(0, 0, 1)
	b.Comp.Set(0, 1, 2)
	b.Weight.Set(0, 0, .37)
	c := New(b, DefaultMinProbability)

	assert.Equal(t, .37, c.Weight(grid.Cell{0, 0}, grid.Cell{0, 1}))
}

func TestWeightMonotoneInElevationLoss(t *testing.T) {
	b := flatBasin(t, 1, 2)
	b.Comp.Set(0, 0, 1)
	b.Comp.Set(0, 1, 2)
	b.Weight.Set(0, 0, 1.5)
	c := New(b, DefaultMinProbability)

	prev := 0.0
	for d := 0.0; d <= 20; d += .5 {
		b.Elev.Set(0, 0, d)
		w := c.Weight(grid.Cell{0, 0}, grid.Cell{0, 1})
		assert.GreaterOrEqual(t, w, prev, "cost must not decrease with elevation loss")
		prev = w
	}
	// low confidence scales the loss up, never down
	b.Elev.Set(0, 0, 4)
	b.Weight.Set(0, 0, .25)
	assert.Equal(t, 4.0, c.Weight(grid.Cell{0, 0}, grid.Cell{0, 1}))
	b.Weight.Set(0, 0, 3.0)
	assert.Equal(t, 12.0, c.Weight(grid.Cell{0, 0}, grid.Cell{0, 1}))
}

func TestStitchFlatCorridor(t *testing.T) {
	b := flatBasin(t, 5, 7)
	b.Comp.Set(2, 0, 1)
	b.Comp.Set(2, 1, 1)
	b.Comp.Set(2, 5, 2)
	b.Comp.Set(2, 6, 2)
	for _, q := range []int{2, 3, 4} {
		b.Prob.Set(2, q, .5)
		b.Weight.Set(2, q, .5)
	}

	c := New(b, DefaultMinProbability)
	res := c.Stitch(DefaultCutoffs)

	require.Equal(t, []grid.Cell{{2, 5}}, res.InitTargets)
	require.Contains(t, res.Paths, grid.Cell{2, 5})
	st := res.Paths[grid.Cell{2, 5}]
	assert.Equal(t, 3, st.Tag, "merged in the first cutoff stage")
	assert.Equal(t, []grid.Cell{{2, 5}, {2, 4}, {2, 3}, {2, 2}}, st.Path)

	assert.Equal(t, map[int]bool{1: true, 2: true}, res.Seen)
	for _, q := range []int{2, 3, 4} {
		assert.Equal(t, 2, b.Comp.At(2, q), "corridor relabelled into the target component")
		assert.Equal(t, 0.0, b.Weight.At(2, q), "committed cells become free")
	}
	assert.Equal(t, 1, b.Comp.At(2, 1), "attachment point keeps its label")
}

func TestStitchLaterCutoffStage(t *testing.T) {
	b := flatBasin(t, 5, 7)
	b.Comp.Set(2, 0, 1)
	b.Comp.Set(2, 1, 1)
	b.Comp.Set(2, 5, 2)
	b.Comp.Set(2, 6, 2)
	for _, q := range []int{2, 3, 4} {
		b.Prob.Set(2, q, .5)
		b.Weight.Set(2, q, 1)
	}

	c := New(b, DefaultMinProbability)
	res := c.Stitch(DefaultCutoffs)

	require.Contains(t, res.Paths, grid.Cell{2, 5})
	assert.Equal(t, 4, res.Paths[grid.Cell{2, 5}].Tag, "cost 3 exceeds the first cutoff")
}

func TestStitchUnreachableLeftUntouched(t *testing.T) {
	b := flatBasin(t, 5, 7)
	b.Comp.Set(2, 0, 1)
	b.Comp.Set(0, 6, 3)
	b.Weight.Set(0, 6, .8)

	c := New(b, DefaultMinProbability)
	res := c.Stitch(DefaultCutoffs)

	assert.Equal(t, []grid.Cell{{0, 6}}, res.InitTargets)
	assert.NotContains(t, res.Paths, grid.Cell{0, 6})
	assert.Equal(t, map[int]bool{1: true}, res.Seen)
	assert.Equal(t, 3, b.Comp.At(0, 6), "unreached component keeps its label")
	assert.Equal(t, .8, b.Weight.At(0, 6), "unreached component keeps its weight")
}

func TestStitchBlockedByElevation(t *testing.T) {
	b := flatBasin(t, 1, 2)
	b.Comp.Set(0, 0, 1)
	b.Comp.Set(0, 1, 2)
	b.Elev.Set(0, 0, 25) // the only approach loses more than the cap

	c := New(b, DefaultMinProbability)
	res := c.Stitch(DefaultCutoffs)

	assert.Empty(t, res.Paths)
	assert.Equal(t, map[int]bool{1: true}, res.Seen)
}

func TestStitchChainedMergeStopsAtSeen(t *testing.T) {
	b := flatBasin(t, 5, 10)
	b.Comp.Set(2, 0, 1)
	b.Comp.Set(2, 1, 1)
	b.Comp.Set(2, 5, 2)
	b.Comp.Set(2, 6, 2)
	b.Comp.Set(2, 8, 3)
	b.Comp.Set(2, 9, 3)
	for _, q := range []int{2, 3, 4, 7} {
		b.Prob.Set(2, q, .5)
		b.Weight.Set(2, q, .5)
	}

	c := New(b, DefaultMinProbability)
	res := c.Stitch(DefaultCutoffs)

	// the short merge commits first; the far component then attaches to
	// the freshly absorbed territory, not all the way back to the main
	require.Contains(t, res.Paths, grid.Cell{2, 8})
	assert.Equal(t, []grid.Cell{{2, 8}, {2, 7}}, res.Paths[grid.Cell{2, 8}].Path)
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, res.Seen)
	assert.Equal(t, 3, b.Comp.At(2, 7))
	assert.Equal(t, 2, b.Comp.At(2, 6), "absorbed component keeps its own label")
}
