package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/flowgraph/reactor"
	"github.com/flowgraph/reactor/internal/report"
)

func main() {
	cmd := &cli.Command{
		Name:  "reactorctl",
		Usage: "run and inspect reactor dataflow graphs",
		Commands: []*cli.Command{
			{
				Name:   "scenarios",
				Usage:  "run the seed scenarios and print their results",
				Action: runScenarios,
			},
			{
				Name:   "inspect",
				Usage:  "build a sample graph and dump its node/edge table",
				Action: runInspect,
			},
			{
				Name:  "bench",
				Usage: "propagate a write through a width x depth grid of chains",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "width", Value: 10},
					&cli.IntFlag{Name: "depth", Value: 10},
					&cli.IntFlag{Name: "iters", Value: 1000},
				},
				Action: runBench,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func runScenarios(ctx context.Context, cmd *cli.Command) error {
	eng := reactor.New(nil)
	a := reactor.Var(eng, 1)
	b := reactor.Var(eng, 3.14)

	s, err := reactor.Calc2(eng, a, b, func(x int, y float64) string {
		return fmt.Sprintf("%d%f", x, y)
	})
	if err != nil {
		return err
	}
	t, err := reactor.Calc2(eng, a, s, func(x int, y string) string {
		return fmt.Sprintf("%d%s", x, y)
	})
	if err != nil {
		return err
	}

	fmt.Printf("linear chain: s=%s t=%s\n", s.Get(), t.Get())
	a.Set(2)
	fmt.Printf("after a<-2:    s=%s t=%s\n", s.Get(), t.Get())
	return nil
}

func runInspect(ctx context.Context, cmd *cli.Command) error {
	eng := reactor.New(nil)
	a := reactor.Var(eng, 1)
	a.SetName("a")
	doubled, err := reactor.Calc1(eng, a, func(v int) int { return v * 2 })
	if err != nil {
		return err
	}
	doubled.SetName("doubled")
	tripled, err := reactor.Calc1(eng, doubled, func(v int) int { return v * 3 })
	if err != nil {
		return err
	}
	tripled.SetName("tripled")

	snap := report.Capture(eng.Graph())
	fmt.Print(report.Graph(snap))

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"id", "name", "kind", "deps", "observers", "closed"})
	for _, row := range snap.Rows {
		tbl.Append([]string{
			fmt.Sprintf("%d", row.ID),
			row.Name,
			row.Kind,
			fmt.Sprintf("%d", row.Depends),
			fmt.Sprintf("%d", row.Observers),
			fmt.Sprintf("%v", row.Closed),
		})
	}
	tbl.Render()
	return nil
}

func runBench(ctx context.Context, cmd *cli.Command) error {
	width := int(cmd.Int("width"))
	depth := int(cmd.Int("depth"))
	iters := int(cmd.Int("iters"))

	eng := reactor.New(nil)
	src := reactor.Var(eng, 1)

	leaves := make([]*reactor.Handle[int], 0, width)
	cellCount := 0
	for i := 0; i < width; i++ {
		last := src
		for j := 0; j < depth; j++ {
			next, err := reactor.Calc1(eng, last, func(v int) int { return v + 1 })
			if err != nil {
				return err
			}
			last = next
			cellCount++
		}
		leaves = append(leaves, last)
	}

	start := time.Now()
	for i := 0; i < iters; i++ {
		src.Set(i + 2)
	}
	elapsed := time.Since(start)

	fmt.Printf("propagated %s writes across %s cells in %s\n",
		humanize.Comma(int64(iters)), humanize.Comma(int64(cellCount)), elapsed)
	return nil
}
