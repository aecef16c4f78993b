package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntsBoundsSafeReads(t *testing.T) {
	g, err := IntsFrom([][]int{
		{1, 2},
		{3, 4},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, g.At(0, 0))
	assert.Equal(t, 4, g.At(1, 1))
	assert.Equal(t, 0, g.At(-1, 0))
	assert.Equal(t, 0, g.At(0, 2))
	assert.Equal(t, 0, g.At(5, 5))
}

func TestIntsFromRagged(t *testing.T) {
	_, err := IntsFrom([][]int{{1, 2}, {3}})
	require.Error(t, err)
}

func TestSum3x3AtBorder(t *testing.T) {
	g, err := IntsFrom([][]int{
		{1, 1, 0},
		{1, 1, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)

	// corner window hangs off the raster; missing cells read as zero
	assert.Equal(t, 4, g.Sum3x3(0, 0))
	assert.Equal(t, 4, g.Sum3x3(1, 1))
	assert.Equal(t, 1, g.Sum3x3(2, 2))
}

func TestPad(t *testing.T) {
	g, err := IntsFrom([][]int{{1, 2}})
	require.NoError(t, err)

	p := g.Pad(1)
	assert.Equal(t, 3, p.Nrow)
	assert.Equal(t, 4, p.Ncol)
	assert.Equal(t, 1, p.At(1, 1))
	assert.Equal(t, 2, p.At(1, 2))
	assert.Equal(t, 0, p.At(0, 1))
	assert.Equal(t, 0, p.At(1, 0))
}

func TestMean3x3InBoundsOnly(t *testing.T) {
	g, err := FloatsFrom([][]float64{
		{2, 4},
		{6, 8},
	})
	require.NoError(t, err)

	// corner window sees only the four in-bounds cells
	assert.InDelta(t, 5.0, g.Mean3x3(0, 0), 1e-12)
}

func TestAffineRoundTrip(t *testing.T) {
	gd := &Definition{Xmin: -78, Ymax: 44, Xres: .001, Yres: .001, Nrow: 100, Ncol: 100}
	for _, cl := range []Cell{{0, 0}, {17, 3}, {99, 99}} {
		x, y := gd.CellCentroid(cl)
		assert.Equal(t, cl, gd.CellOf(x, y))
	}
}

func TestWorldCoordGeographic(t *testing.T) {
	gd := &Definition{Xmin: 0, Ymax: 10, Xres: 1, Yres: 1, Nrow: 10, Ncol: 10}
	x, y, err := gd.WorldCoord(Cell{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Equal(t, .5, x)
	assert.Equal(t, 9.5, y)
}

func TestWorldCoordUTM(t *testing.T) {
	// UTM zone 17N, mid-zone coordinates
	gd := &Definition{
		Xmin: 600000, Ymax: 4900000, Xres: 30, Yres: 30,
		Nrow: 10, Ncol: 10, UTMZone: 17, Northern: true,
	}
	lon, lat, err := gd.WorldCoord(Cell{Row: 5, Col: 5})
	require.NoError(t, err)
	assert.Greater(t, lat, 40.0)
	assert.Less(t, lat, 46.0)
	assert.Greater(t, lon, -82.0)
	assert.Less(t, lon, -78.0)
}
