package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/flowgraph/reactor"
)

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func main() {
	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		log.Fatal(err)
	}
	defer pprof.StopCPUProfile()

	log.Printf("warming up")
	benchmarkChains(true)
}

// benchmarkChains builds w independent chains of depth h rooted at a single
// source and times how long one write takes to propagate across all of
// them, the same width/depth sweep the teacher's cmd/benchmark used for
// alien/rocket/dumbdumb.
func benchmarkChains(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("reactor propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "cells", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			cellCount := 0

			eng := reactor.New(nil)
			src := reactor.Var(eng, 1)

			leaves := make([]*reactor.Handle[int], 0, w)
			for i := 0; i < w; i++ {
				last := src
				for j := 0; j < h; j++ {
					prev := last
					next, err := reactor.Calc1(eng, prev, func(v int) int { return v + 1 })
					if err != nil {
						log.Fatal(err)
					}
					last = next
					cellCount++
				}
				leaves = append(leaves, last)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(src.Get() + 1)
				for _, leaf := range leaves {
					leaf.Get()
				}
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					humanize.Comma(int64(cellCount)),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
