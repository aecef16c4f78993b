package vector

import "github.com/paulmach/orb"

// Merge dissolves shared endpoints into continuous lines: wherever
// exactly two line ends meet at a point, the two lines fuse. Endpoints
// where one, or three or more, line ends meet are left as-is, so
// network junctions survive.
func Merge(lines []orb.LineString) []orb.LineString {
	type endRef struct {
		line   int
		atHead bool
	}
	ends := make(map[orb.Point][]endRef)
	for i, ls := range lines {
		if len(ls) < 2 {
			continue
		}
		ends[ls[0]] = append(ends[ls[0]], endRef{i, true})
		ends[ls[len(ls)-1]] = append(ends[ls[len(ls)-1]], endRef{i, false})
	}

	used := make([]bool, len(lines))
	var out []orb.LineString
	for i, ls := range lines {
		if used[i] || len(ls) < 2 {
			continue
		}
		used[i] = true
		cur := append(orb.LineString{}, ls...)

		// grow past the tail, then flip and grow past (what was) the head
		for pass := 0; pass < 2; pass++ {
			for {
				p := cur[len(cur)-1]
				refs := ends[p]
				if len(refs) != 2 {
					break
				}
				var nxt endRef
				found := false
				for _, er := range refs {
					if !used[er.line] {
						nxt, found = er, true
						break
					}
				}
				if !found {
					break
				}
				used[nxt.line] = true
				seg := lines[nxt.line]
				if !nxt.atHead {
					seg = reversed(seg)
				}
				cur = append(cur, seg[1:]...)
			}
			reverseLine(cur)
		}
		out = append(out, cur)
	}
	return out
}

func reversed(ls orb.LineString) orb.LineString {
	o := make(orb.LineString, len(ls))
	for i, p := range ls {
		o[len(ls)-1-i] = p
	}
	return o
}

func reverseLine(ls orb.LineString) {
	for i, j := 0, len(ls)-1; i < j; i, j = i+1, j-1 {
		ls[i], ls[j] = ls[j], ls[i]
	}
}
