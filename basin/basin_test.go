package basin

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatthewPierson90/WaterNet-vectorize/grid"
)

func testData(t *testing.T) *Data {
	t.Helper()
	comp, err := grid.IntsFrom([][]int{
		{1, 1, 0},
		{0, 0, 2},
		{0, 0, 2},
	})
	require.NoError(t, err)
	thin := grid.NewInts(3, 3)
	return &Data{
		GD:     &grid.Definition{Xmin: 0, Ymax: 3, Xres: 1, Yres: 1, Nrow: 3, Ncol: 3},
		Comp:   comp,
		Thin:   thin,
		Prob:   grid.NewFloats(3, 3),
		Elev:   grid.NewFloats(3, 3),
		Weight: grid.NewFloats(3, 3),
		Main:   1,
	}
}

func TestCheck(t *testing.T) {
	b := testData(t)
	require.NoError(t, b.Check())

	b.Main = 7
	assert.Error(t, b.Check(), "main component not present")

	b = testData(t)
	b.Elev = grid.NewFloats(2, 3)
	assert.Error(t, b.Check(), "shape mismatch")

	b = testData(t)
	b.GD.Nrow = 5
	assert.Error(t, b.Check(), "definition mismatch")
}

func TestComponents(t *testing.T) {
	b := testData(t)
	assert.Equal(t, []int{1, 2}, b.Components())
}

func TestGobRoundTrip(t *testing.T) {
	b := testData(t)
	fp := filepath.Join(t.TempDir(), "basin.gob")
	require.NoError(t, b.SaveGob(fp))

	got, err := LoadGob(fp)
	require.NoError(t, err)
	assert.Equal(t, b.Comp.V, got.Comp.V)
	assert.Equal(t, b.Main, got.Main)
	assert.Equal(t, b.GD.Xmin, got.GD.Xmin)
	require.NoError(t, got.Check())
}
