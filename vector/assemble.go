// Package vector turns traced pixel chains into a planar network of
// world-coordinate lines spliced onto the basin's reference waterways.
package vector

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/quadtree"

	"github.com/MatthewPierson90/WaterNet-vectorize/grid"
	"github.com/MatthewPierson90/WaterNet-vectorize/trace"
)

// Assembler converts chains for one basin and splices the result onto
// the pre-existing reference network.
type Assembler struct {
	gd  *grid.Definition
	ref []orb.LineString
}

func NewAssembler(gd *grid.Definition, ref []orb.LineString) *Assembler {
	return &Assembler{gd: gd, ref: ref}
}

// Assemble maps chains to world coordinates, merges and nodes them into
// a planar network, splices connector segments toward the reference
// network at connecting cells, and returns the combined feature
// collection: reference lines first (from_reference=true), derived
// lines after (from_reference=false). Output CRS is EPSG:4326.
func (a *Assembler) Assemble(chains []trace.Chain, connecting []grid.Cell) (*geojson.FeatureCollection, error) {
	lines := make([]orb.LineString, 0, len(chains))
	for _, ch := range chains {
		if len(ch) <= 1 {
			continue
		}
		ls := make(orb.LineString, 0, len(ch))
		for _, cl := range ch {
			x, y, err := a.gd.WorldCoord(grid.Cell{Row: cl.Row - trace.Pad, Col: cl.Col - trace.Pad})
			if err != nil {
				return nil, err
			}
			ls = append(ls, orb.Point{x, y})
		}
		lines = append(lines, ls)
	}
	lines = Node(Merge(lines))

	connPts := make(map[orb.Point]bool, len(connecting))
	for _, cl := range connecting {
		x, y, err := a.gd.WorldCoord(cl)
		if err != nil {
			return nil, err
		}
		connPts[orb.Point{x, y}] = true
	}

	spliced := a.spliceOntoReference(lines, connPts)

	fc := geojson.NewFeatureCollection()
	for _, ls := range a.ref {
		f := geojson.NewFeature(ls)
		f.Properties["from_reference"] = true
		fc.Append(f)
	}
	for _, ls := range spliced {
		f := geojson.NewFeature(ls)
		f.Properties["from_reference"] = false
		fc.Append(f)
	}
	return fc, nil
}

// spliceOntoReference attaches derived lines to the reference network.
// A line whose head and tail both sit on connecting points is dropped:
// both ends already meeting the reference means it duplicates a
// corridor the reference covers. A line touching one connecting point
// (head, tail, or failing those the first interior vertex) gains a
// connector segment to the nearest reference-network vertex.
func (a *Assembler) spliceOntoReference(lines []orb.LineString, connPts map[orb.Point]bool) []orb.LineString {
	refPts := referenceVertices(a.ref)
	if len(refPts) == 0 || len(connPts) == 0 {
		return lines
	}

	qt := quadtree.New(orb.MultiPoint(refPts).Bound())
	for _, p := range refPts {
		// points lie inside the bound by construction
		_ = qt.Add(p)
	}
	connector := func(p orb.Point) (orb.LineString, bool) {
		n := qt.Find(p).Point()
		if n == p {
			return nil, false
		}
		return orb.LineString{p, n}, true
	}

	var out []orb.LineString
	for _, ls := range lines {
		head, tail := ls[0], ls[len(ls)-1]
		switch {
		case connPts[head] && connPts[tail]:
			continue
		case connPts[head]:
			out = append(out, ls)
			if c, ok := connector(head); ok {
				out = append(out, c)
			}
		case connPts[tail]:
			out = append(out, ls)
			if c, ok := connector(tail); ok {
				out = append(out, c)
			}
		default:
			out = append(out, ls)
			for _, p := range ls[1 : len(ls)-1] {
				if connPts[p] {
					if c, ok := connector(p); ok {
						out = append(out, c)
					}
					break
				}
			}
		}
	}
	return out
}

// referenceVertices flattens every vertex of the reference lines.
func referenceVertices(ref []orb.LineString) []orb.Point {
	var pts []orb.Point
	for _, ls := range ref {
		pts = append(pts, ls...)
	}
	return pts
}

// ReferenceLines extracts the line geometries of a feature collection,
// flattening MultiLineStrings.
func ReferenceLines(fc *geojson.FeatureCollection) []orb.LineString {
	var o []orb.LineString
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.LineString:
			o = append(o, g)
		case orb.MultiLineString:
			o = append(o, g...)
		}
	}
	return o
}
