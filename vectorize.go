// Package wwvec vectorizes drainage basins: it repairs the
// connectivity of predicted waterway components and converts the
// thinned waterway mask into a line network spliced onto the basin's
// reference waterways.
package wwvec

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/MatthewPierson90/WaterNet-vectorize/basin"
	"github.com/MatthewPierson90/WaterNet-vectorize/connect"
	"github.com/MatthewPierson90/WaterNet-vectorize/trace"
	"github.com/MatthewPierson90/WaterNet-vectorize/vector"
)

// Vectorize runs one basin end to end: stitch orphan components onto
// the main network (mutating the basin's component and weight rasters
// in place), trace the thinned mask into chains, and assemble the
// tagged output collection. The two halves share no runtime state; the
// thin mask is derived upstream from the same basin.
func Vectorize(b *basin.Data, ref []orb.LineString) (*geojson.FeatureCollection, *connect.Result, error) {
	con := connect.New(b, connect.DefaultMinProbability)
	stitched := con.Stitch(connect.DefaultCutoffs)

	tr := trace.New(b.Thin)
	chains := tr.Trace()

	fc, err := vector.NewAssembler(b.GD, ref).Assemble(chains, trace.ConnectingCells(b.Thin))
	if err != nil {
		return nil, nil, err
	}
	return fc, stitched, nil
}

// Job is one basin queued for vectorization.
type Job struct {
	Name string
	B    *basin.Data
	Ref  []orb.LineString
}

// Output is the result of one Job.
type Output struct {
	Name   string
	FC     *geojson.FeatureCollection
	Stitch *connect.Result
	Err    error
}
