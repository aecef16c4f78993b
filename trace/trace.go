// Package trace converts a thinned (1-pixel-wide) skeleton mask into
// ordered pixel chains. Every mask adjacency is consumed exactly once:
// the live connectivity-count grid holds, per cell, its number of
// unconsumed edges, and reaches all-zero exactly when tracing is done.
package trace

import (
	"github.com/MatthewPierson90/WaterNet-vectorize/grid"
)

// Pad is the zero border added around the mask so 3x3 neighbour reads
// never leave the raster. Chains are emitted in padded coordinates.
const Pad = 1

// Chain is an ordered pixel sequence in padded coordinates.
type Chain []grid.Cell

// Tracer owns the connectivity-count grid for the duration of a trace.
type Tracer struct {
	count  *grid.Ints // live count of unconsumed edges per cell
	init   *grid.Ints // counts at construction: 1 endpoint, 2 through, >=3 junction
	seen   map[cellPair]bool
	chains []Chain
}

// New binarizes the thin mask (reference-proximity markers drop to
// background), pads it by one zero cell per side and builds the
// connectivity-count grid: 3x3 neighbourhood sum minus one on skeleton
// cells.
func New(thin *grid.Ints) *Tracer {
	mask := grid.NewInts(thin.Nrow, thin.Ncol)
	for i, v := range thin.V {
		if v == 1 {
			mask.V[i] = 1
		}
	}
	mask = mask.Pad(Pad)

	count := grid.NewInts(mask.Nrow, mask.Ncol)
	for r := 0; r < mask.Nrow; r++ {
		for c := 0; c < mask.Ncol; c++ {
			if mask.At(r, c) == 1 {
				count.Set(r, c, mask.Sum3x3(r, c)-1)
			}
		}
	}

	return &Tracer{
		count: count,
		init:  count.Copy(),
		seen:  make(map[cellPair]bool),
	}
}

// Trace runs the tracing passes and returns every chain longer than one
// cell. Pass order matters: it fixes the edge-consumption order and so
// prevents both double-counted and dropped edges.
func (t *Tracer) Trace() []Chain {
	for t.count.Any(isOne) {
		t.startAtEndpoints()
	}
	t.startAtThroughs()
	for t.count.Any(isOne) {
		t.startAtEndpoints()
	}
	t.consumeRemaining()

	var o []Chain
	for _, ch := range t.chains {
		if len(ch) > 1 {
			o = append(o, ch)
		}
	}
	return o
}

// startAtEndpoints opens a chain at every current endpoint. Extending
// one chain can create or consume endpoints elsewhere, so candidates
// are re-checked at visit time and the caller loops to a fixpoint.
func (t *Tracer) startAtEndpoints() {
	for _, cl := range t.count.CellsWhere(isOne) {
		if t.count.At(cl.Row, cl.Col) != 1 {
			continue
		}
		ch := Chain{cl}
		t.investigate(cl, &ch, false)
		t.chains = append(t.chains, ch)
	}
}

// startAtThroughs handles loops with no natural endpoint: from a cell
// that was born a through-pixel and still has unconsumed edges, trace
// forward, then reverse the chain and trace the opposite direction from
// the same cell.
func (t *Tracer) startAtThroughs() {
	for _, cl := range t.count.CellsWhere(isTwo) {
		if t.init.At(cl.Row, cl.Col) != 2 {
			continue
		}
		ch := Chain{cl}
		if t.count.At(cl.Row, cl.Col) > 0 {
			t.investigate(cl, &ch, false)
		}
		if t.count.At(cl.Row, cl.Col) > 0 {
			reverse(ch)
			t.investigate(cl, &ch, false)
		}
		if len(ch) > 1 {
			t.chains = append(t.chains, ch)
		}
	}
}

// consumeRemaining forces full consumption of leftover junction and
// cycle edges that the earlier passes declined to continue through.
func (t *Tracer) consumeRemaining() {
	for t.count.Any(isPositive) {
		for _, cl := range t.count.CellsWhere(isPositive) {
			if t.count.At(cl.Row, cl.Col) <= 0 {
				continue
			}
			ch := Chain{cl}
			t.investigate(cl, &ch, true)
			t.chains = append(t.chains, ch)
		}
	}
}

// investigate extends chain from cl one consumed edge at a time; an
// iterative walk, not recursion, so chain length never bounds the call
// stack. At each step the first eligible neighbour in priority order is
// taken: count still positive and the unordered pair not yet consumed.
// The walk continues only through cells born as through-pixels (unless
// investigateAll suppresses that and every chain stops after one edge);
// it never continues past a junction. A cell with no eligible neighbour
// is popped off the chain and the walk ends silently.
func (t *Tracer) investigate(cl grid.Cell, chain *Chain, investigateAll bool) {
	cur := cl
	for {
		next, ok := t.consumeEdge(cur)
		if !ok {
			*chain = (*chain)[:len(*chain)-1]
			return
		}
		*chain = append(*chain, next)
		if !investigateAll && t.init.At(next.Row, next.Col) == 2 {
			cur = next
			continue
		}
		return
	}
}

// consumeEdge finds the first eligible neighbour of cur in priority
// order (down, up, right, left, then diagonals), marks the pair
// consumed in both directions, and decrements both endpoints.
func (t *Tracer) consumeEdge(cur grid.Cell) (grid.Cell, bool) {
	for _, o := range grid.Neigh8 {
		n := grid.Cell{Row: cur.Row + o[0], Col: cur.Col + o[1]}
		if t.count.At(n.Row, n.Col) <= 0 {
			continue
		}
		p := newCellPair(cur, n)
		if t.seen[p] {
			continue
		}
		t.seen[p] = true
		t.count.Add(cur.Row, cur.Col, -1)
		t.count.Add(n.Row, n.Col, -1)
		return n, true
	}
	return grid.Cell{}, false
}

// CountsDone reports whether every mask edge has been consumed.
func (t *Tracer) CountsDone() bool {
	return !t.count.Any(isPositive)
}

// ConnectingCells returns the skeleton cells of the unpadded thin mask
// whose 3x3 window touches a reference-proximity marker. These are the
// candidate splice points onto the reference network.
func ConnectingCells(thin *grid.Ints) []grid.Cell {
	var o []grid.Cell
	for r := 0; r < thin.Nrow; r++ {
		for c := 0; c < thin.Ncol; c++ {
			if thin.At(r, c) != 1 {
				continue
			}
			for i := -1; i <= 1; i++ {
				for j := -1; j <= 1; j++ {
					if thin.At(r+i, c+j) == 2 {
						o = append(o, grid.Cell{Row: r, Col: c})
						i, j = 2, 2 // done with this cell
					}
				}
			}
		}
	}
	return o
}

// cellPair is a normalized unordered cell pair; insertion into the
// consumed set is bidirectional and idempotent by construction.
type cellPair struct {
	a, b grid.Cell
}

func newCellPair(a, b grid.Cell) cellPair {
	if b.Row < a.Row || (b.Row == a.Row && b.Col < a.Col) {
		a, b = b, a
	}
	return cellPair{a, b}
}

func isOne(v int) bool      { return v == 1 }
func isTwo(v int) bool      { return v == 2 }
func isPositive(v int) bool { return v > 0 }

func reverse(ch Chain) {
	for i, j := 0, len(ch)-1; i < j; i, j = i+1, j-1 {
		ch[i], ch[j] = ch[j], ch[i]
	}
}
