// Command poolstress runs a randomized acquire/release workload
// against a pool and prints the resulting accounting. It is a manual
// exercise tool, not a benchmark: run with -v to watch the allocator's
// own usage logging.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/execmem/poolkit/osmem"
	"github.com/execmem/poolkit/pool"
)

func main() {
	var (
		capacityMB = flag.Int("capacity", 16, "pool capacity in MiB")
		ops        = flag.Int("ops", 10000, "operations to run")
		maxBlocks  = flag.Int("max-blocks", 4, "largest allocation in blocks")
		seed       = flag.Int64("seed", 1, "rng seed")
		verbose    = flag.Bool("v", false, "log every operation")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	p, err := pool.New(*capacityMB*1024*1024, pool.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(os.Stderr, "poolstress:", err)
		os.Exit(1)
	}
	defer p.Close()

	rng := rand.New(rand.NewSource(*seed))
	var live [][]byte
	exhausted := 0

	for i := 0; i < *ops; i++ {
		if len(live) > 0 && rng.Intn(2) == 0 {
			j := rng.Intn(len(live))
			if err := p.Release(live[j]); err != nil {
				fmt.Fprintln(os.Stderr, "poolstress: release:", err)
				os.Exit(1)
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
			continue
		}
		size := (1 + rng.Intn(*maxBlocks)) * pool.BlockSize
		b, err := p.Acquire(size, osmem.Read|osmem.Write)
		if err != nil {
			// Exhaustion is part of the workload, anything else is not.
			exhausted++
			continue
		}
		// Touch each block so the kernel actually commits pages.
		for off := 0; off < len(b); off += pool.BlockSize {
			b[off] = byte(i)
		}
		live = append(live, b)
	}
	for _, b := range live {
		if err := p.Release(b); err != nil {
			fmt.Fprintln(os.Stderr, "poolstress: final release:", err)
			os.Exit(1)
		}
	}

	st := p.Stats()
	fmt.Printf("capacity   %d bytes (%d blocks)\n", st.Capacity, st.Blocks)
	fmt.Printf("acquires   %d\n", st.Acquires)
	fmt.Printf("releases   %d\n", st.Releases)
	fmt.Printf("exhausted  %d\n", exhausted)
	fmt.Printf("in use     %d bytes\n", st.BytesUsed)
}
