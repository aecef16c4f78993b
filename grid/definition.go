package grid

import (
	"fmt"
	"math"

	"github.com/im7mortal/UTM"
)

// Definition places a raster in world coordinates. Xmin/Ymax anchor the
// upper-left corner; Xres/Yres are positive cell sizes. Cells map to
// their centres (pixel-centre convention). When UTMZone is set the
// native coordinates are UTM metres and output coordinates are converted
// to geographic lon/lat; otherwise native coordinates are already
// geographic (EPSG:4326).
type Definition struct {
	Xmin, Ymax float64
	Xres, Yres float64
	Nrow, Ncol int
	UTMZone    int  // 0 = native coordinates are geographic
	Northern   bool // UTM hemisphere, read only when UTMZone > 0
}

// CellCentroid returns the native world coordinate of a cell centre.
func (gd *Definition) CellCentroid(cl Cell) (x, y float64) {
	x = gd.Xmin + gd.Xres*(float64(cl.Col)+.5)
	y = gd.Ymax - gd.Yres*(float64(cl.Row)+.5)
	return x, y
}

// CellOf inverts CellCentroid: the cell whose footprint contains the
// native coordinate (x,y).
func (gd *Definition) CellOf(x, y float64) Cell {
	return Cell{
		Row: int(math.Floor((gd.Ymax - y) / gd.Yres)),
		Col: int(math.Floor((x - gd.Xmin) / gd.Xres)),
	}
}

// WorldCoord returns the output (EPSG:4326-bound) coordinate of a cell
// centre: the centroid as-is for geographic definitions, converted from
// UTM otherwise.
func (gd *Definition) WorldCoord(cl Cell) (x, y float64, err error) {
	x, y = gd.CellCentroid(cl)
	if gd.UTMZone > 0 {
		lat, lon, err := UTM.ToLatLon(x, y, gd.UTMZone, "", gd.Northern)
		if err != nil {
			return 0, 0, fmt.Errorf("grid: cell %v: %w", cl, err)
		}
		return lon, lat, nil
	}
	return x, y, nil
}

// Check validates the definition against a raster shape.
func (gd *Definition) Check(nrow, ncol int) error {
	if gd.Xres <= 0 || gd.Yres <= 0 {
		return fmt.Errorf("grid: non-positive resolution %.6g x %.6g", gd.Xres, gd.Yres)
	}
	if gd.Nrow != nrow || gd.Ncol != ncol {
		return fmt.Errorf("grid: definition is %dx%d, rasters are %dx%d", gd.Nrow, gd.Ncol, nrow, ncol)
	}
	return nil
}
