package wwvec

import (
	"sync"

	"github.com/maseology/mmio"
)

// VectorizeConcurrent fans the jobs out over nworkers goroutines. Each
// basin's grids are owned by exactly one worker for the duration of its
// job; workers share no mutable state.
func VectorizeConcurrent(jobs []Job, nworkers int) []Output {
	if nworkers < 1 {
		nworkers = 1
	}
	tt := mmio.NewTimer()

	out := make([]Output, len(jobs))
	ix := make(chan int)
	var wg sync.WaitGroup
	wg.Add(nworkers)
	for w := 0; w < nworkers; w++ {
		go func() {
			defer wg.Done()
			for i := range ix {
				j := jobs[i]
				fc, st, err := Vectorize(j.B, j.Ref)
				out[i] = Output{Name: j.Name, FC: fc, Stitch: st, Err: err}
			}
		}()
	}
	for i := range jobs {
		ix <- i
	}
	close(ix)
	wg.Wait()

	tt.Lap("vectorization complete")
	return out
}
