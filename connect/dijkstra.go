package connect

import (
	"container/heap"
	"math"

	"github.com/MatthewPierson90/WaterNet-vectorize/grid"
)

// shortestPaths runs a multi-source Dijkstra search from all sources,
// bounded by cutoff: cells whose minimum cost exceeds the cutoff are
// not settled. Edge costs come from Weight at relaxation time, so the
// search observes weight-grid mutations made by earlier stitch stages.
// Infinite-cost edges are skipped. Uses a lazy-decrease-key min-heap:
// stale entries are pushed alongside improvements and discarded when
// popped.
func (c *Connector) shortestPaths(sources []grid.Cell, cutoff float64) (map[grid.Cell]float64, map[grid.Cell]grid.Cell) {
	dist := make(map[grid.Cell]float64, len(sources))
	prev := make(map[grid.Cell]grid.Cell)
	settled := make(map[grid.Cell]bool)

	pq := make(cellPQ, 0, len(sources))
	heap.Init(&pq)
	for _, s := range sources {
		if !c.nodes[s] {
			continue
		}
		dist[s] = 0
		heap.Push(&pq, &cellItem{cell: s})
	}

	var nbuf [8]grid.Cell
	for pq.Len() > 0 {
		it := heap.Pop(&pq).(*cellItem)
		u, d := it.cell, it.dist
		if settled[u] {
			continue
		}
		if d > cutoff {
			break
		}
		settled[u] = true

		for _, v := range c.neighbors(u, nbuf[:0]) {
			if settled[v] {
				continue
			}
			w := c.Weight(u, v)
			if math.IsInf(w, 1) {
				continue
			}
			nd := d + w
			if nd > cutoff {
				continue
			}
			if cur, ok := dist[v]; ok && nd >= cur {
				continue
			}
			dist[v] = nd
			prev[v] = u
			heap.Push(&pq, &cellItem{cell: v, dist: nd})
		}
	}
	return dist, prev
}

// pathTo rebuilds the source-to-target path from the predecessor map.
// A cell without a predecessor is a search source.
func pathTo(prev map[grid.Cell]grid.Cell, target grid.Cell) []grid.Cell {
	var rev []grid.Cell
	for cur := target; ; {
		rev = append(rev, cur)
		p, ok := prev[cur]
		if !ok {
			break
		}
		cur = p
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

type cellItem struct {
	cell grid.Cell
	dist float64
}

type cellPQ []*cellItem

func (pq cellPQ) Len() int            { return len(pq) }
func (pq cellPQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq cellPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *cellPQ) Push(x interface{}) { *pq = append(*pq, x.(*cellItem)) }
func (pq *cellPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
