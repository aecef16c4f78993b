package wwvec

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmio"
)

// VectorizeSerial runs the jobs one basin at a time, no concurrency.
func VectorizeSerial(jobs []Job) []Output {
	tt := mmio.NewTimer()

	uiprogress.Start()
	name := make(chan string)
	bar := uiprogress.AddBar(len(jobs)).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return <-name
	})

	out := make([]Output, len(jobs))
	for i, j := range jobs {
		name <- fmt.Sprint(j.Name)
		fc, st, err := Vectorize(j.B, j.Ref)
		out[i] = Output{Name: j.Name, FC: fc, Stitch: st, Err: err}
		bar.Incr()
	}
	close(name)
	uiprogress.Stop()

	tt.Lap("vectorization complete")
	return out
}
