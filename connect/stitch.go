package connect

import (
	"sort"

	"github.com/MatthewPierson90/WaterNet-vectorize/grid"
)

// Stitched is one committed connection: the relabelled cells walking
// from the target toward its attachment point, and a provenance tag of
// stage index + 3 (tags 1-2 belong to skeleton-derived lines).
type Stitched struct {
	Path []grid.Cell
	Tag  int
}

// Result reports a stitching pass: committed paths per target, the
// initial target set, and every component id merged (the main
// component included).
type Result struct {
	Paths       map[grid.Cell]Stitched
	InitTargets []grid.Cell
	Seen        map[int]bool
}

// Stitch connects orphan components to the main component in stages of
// increasing cost cutoff. Per stage it searches from every cell of the
// grown main network, commits the discovered paths shortest-first, and
// absorbs each reached component: path cells are relabelled to the
// target's component and their weight-grid entries zeroed up to (not
// including) the first cell already belonging to a seen component.
// Targets unreached after the last stage are left untouched.
func (c *Connector) Stitch(cutoffs []float64) *Result {
	sources := c.comp.CellsWhere(func(v int) bool { return v == c.main })

	reps := c.representatives()
	targets := make(map[grid.Cell]bool, len(reps))
	for lbl, cl := range reps {
		if lbl != c.main {
			targets[cl] = true
		}
	}
	initTargets := make([]grid.Cell, 0, len(targets))
	for cl := range targets {
		initTargets = append(initTargets, cl)
	}
	sort.Slice(initTargets, func(i, j int) bool { return cellLess(initTargets[i], initTargets[j]) })

	res := &Result{
		Paths:       make(map[grid.Cell]Stitched, len(targets)),
		InitTargets: initTargets,
		Seen:        map[int]bool{c.main: true},
	}

	for i, cutoff := range cutoffs {
		dist, prev := c.shortestPaths(sources, cutoff)

		type targetPath struct {
			target grid.Cell
			path   []grid.Cell
		}
		var found []targetPath
		for t := range targets {
			if _, ok := dist[t]; !ok {
				continue
			}
			found = append(found, targetPath{t, pathTo(prev, t)})
		}
		// shorter paths commit first so short, cheap merges are never
		// blocked by a long merge consuming intermediate cells
		sort.Slice(found, func(a, b int) bool {
			if len(found[a].path) != len(found[b].path) {
				return len(found[a].path) < len(found[b].path)
			}
			return cellLess(found[a].target, found[b].target)
		})

		for _, tp := range found {
			t := tp.target
			newComp := c.comp.At(t.Row, t.Col)
			var saved []grid.Cell
			for j := len(tp.path) - 1; j >= 0; j-- {
				cl := tp.path[j]
				if res.Seen[c.comp.At(cl.Row, cl.Col)] {
					break // attachment point, left as-is
				}
				saved = append(saved, cl)
				c.weight.Set(cl.Row, cl.Col, 0)
				c.comp.Set(cl.Row, cl.Col, newComp)
			}
			res.Paths[t] = Stitched{Path: saved, Tag: i + 3}
			sources = append(sources, c.comp.CellsWhere(func(v int) bool { return v == newComp })...)
			res.Seen[newComp] = true
			delete(targets, t)
		}
		if len(targets) == 0 {
			break
		}
	}
	return res
}

func cellLess(a, b grid.Cell) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}
