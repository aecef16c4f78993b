package vector

import (
	"sort"

	"github.com/paulmach/orb"
)

// Node splits lines at true geometric intersections so the network is
// planar: proper segment crossings gain a new vertex and every line is
// cut there, and interior vertices shared with another line become
// cuts as well. Endpoints are never cut points.
func Node(lines []orb.LineString) []orb.LineString {
	// occurrences of every original vertex across all lines
	occ := make(map[orb.Point]int)
	for _, ls := range lines {
		for _, p := range ls {
			occ[p]++
		}
	}

	type insertion struct {
		t  float64 // parameter along the segment, (0,1)
		pt orb.Point
	}
	inserts := make(map[[2]int][]insertion) // (line, segment) -> points
	cutAt := make(map[orb.Point]bool)

	addHit := func(line, seg int, t float64, pt, a, b orb.Point) {
		if pt == a || pt == b {
			cutAt[pt] = true
			return
		}
		key := [2]int{line, seg}
		for _, in := range inserts[key] {
			if in.pt == pt {
				return
			}
		}
		inserts[key] = append(inserts[key], insertion{t, pt})
		cutAt[pt] = true
	}

	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			if !lines[i].Bound().Intersects(lines[j].Bound()) {
				continue
			}
			for si := 0; si+1 < len(lines[i]); si++ {
				a, b := lines[i][si], lines[i][si+1]
				for sj := 0; sj+1 < len(lines[j]); sj++ {
					c, d := lines[j][sj], lines[j][sj+1]
					pt, t, u, ok := segIntersect(a, b, c, d)
					if !ok {
						continue
					}
					// a pure endpoint touch is already a shared vertex
					if (pt == a || pt == b) && (pt == c || pt == d) {
						continue
					}
					addHit(i, si, t, pt, a, b)
					addHit(j, sj, u, pt, c, d)
				}
			}
		}
	}

	var out []orb.LineString
	for i, ls := range lines {
		// rebuild the vertex list with crossing points inserted
		pts := make(orb.LineString, 0, len(ls))
		inserted := make(map[orb.Point]bool)
		for s := 0; s+1 < len(ls); s++ {
			pts = append(pts, ls[s])
			ins := inserts[[2]int{i, s}]
			sort.Slice(ins, func(a, b int) bool { return ins[a].t < ins[b].t })
			for _, in := range ins {
				pts = append(pts, in.pt)
				inserted[in.pt] = true
			}
		}
		pts = append(pts, ls[len(ls)-1])

		// cut at junction vertices
		start := 0
		for k := 1; k < len(pts)-1; k++ {
			p := pts[k]
			if inserted[p] || cutAt[p] || occ[p] >= 2 {
				out = append(out, append(orb.LineString{}, pts[start:k+1]...))
				start = k
			}
		}
		if len(pts)-start >= 2 {
			out = append(out, append(orb.LineString{}, pts[start:]...))
		}
	}
	return out
}

// segIntersect intersects segments ab and cd. It reports the point and
// the parameters t (along ab) and u (along cd) when the segments meet
// at a single point within both closed ranges. Parameters near an end
// snap to it and the point snaps to the matching vertex, so map-key
// comparisons on coordinates stay exact. Parallel and collinear pairs
// report no intersection.
func segIntersect(a, b, c, d orb.Point) (orb.Point, float64, float64, bool) {
	rx, ry := b[0]-a[0], b[1]-a[1]
	sx, sy := d[0]-c[0], d[1]-c[1]
	denom := rx*sy - ry*sx
	if denom == 0 {
		return orb.Point{}, 0, 0, false
	}
	qpx, qpy := c[0]-a[0], c[1]-a[1]
	t := (qpx*sy - qpy*sx) / denom
	u := (qpx*ry - qpy*rx) / denom
	const eps = 1e-9
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return orb.Point{}, 0, 0, false
	}
	if t < eps {
		t = 0
	} else if t > 1-eps {
		t = 1
	}
	if u < eps {
		u = 0
	} else if u > 1-eps {
		u = 1
	}
	var pt orb.Point
	switch {
	case t == 0:
		pt = a
	case t == 1:
		pt = b
	case u == 0:
		pt = c
	case u == 1:
		pt = d
	default:
		pt = orb.Point{a[0] + t*rx, a[1] + t*ry}
	}
	return pt, t, u, true
}
