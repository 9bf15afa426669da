package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/edwinb-ai/newtman"
	"github.com/edwinb-ai/newtman/bench"
	"github.com/edwinb-ai/newtman/swarm"
)

var (
	ntrials = flag.Int("trials", 20, "number of independent runs")
	npar    = flag.Int("particles", 35, "particles per swarm")
	maxiter = flag.Int("maxiter", 10000, "iterations per run")
	verbose = flag.Bool("v", false, "print every objective evaluation")
)

func main() {
	flag.Parse()
	swarm.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

	fn := bench.Easom{}
	low, up := fn.Bounds()

	nsuccess := 0
	for n := 0; n < *ntrials; n++ {
		pop, err := swarm.NewPopulation(*npar, len(low), low[0], up[0])
		if err != nil {
			panic(err)
		}

		res, ok, err := bench.Benchmark(fn, func(obj newtman.Objectiver) (*newtman.Result, error) {
			if *verbose {
				obj = newtman.NewObjectivePrinter(obj)
			}
			return swarm.NewSolver().Solve(obj, pop, *maxiter)
		}, .01)
		if err != nil {
			fmt.Printf("Failed: %v\n", err)
			continue
		}

		if ok {
			nsuccess++
			fmt.Printf("Succeeded:\n")
		} else {
			fmt.Printf("Failed:\n")
		}
		fmt.Printf("    optimum: %+v\n", fn.Optima()[0])
		fmt.Printf("    best: pos=%v val=%v\n", res.Best, res.BestValue)
		fmt.Printf("    reported: pos=%v val=%v\n", res.Solution, res.Value)
	}
	fmt.Printf("%v%% succeeded\n", float64(nsuccess)/float64(*ntrials)*100)
}
