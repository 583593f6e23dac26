package compute

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// chunksPerWorker splits rows finer than the worker count; rows near the set
// boundary cost far more than rows outside it.
const chunksPerWorker = 4

type CPUBackend struct {
	workers  int
	minChunk int
}

func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUBackend{
		workers:  workers,
		minChunk: 2,
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return c.workers > 1 }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Workers() int    { return c.workers }

func (c *CPUBackend) Rows(ctx context.Context, n int, fn func(row int)) error {
	if n <= c.minChunk || c.workers <= 1 {
		return serialRows(ctx, n, fn)
	}

	chunkSize := (n + c.workers*chunksPerWorker - 1) / (c.workers * chunksPerWorker)
	if chunkSize < 1 {
		chunkSize = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		g.Go(func() error {
			for row := start; row < end; row++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				fn(row)
			}
			return nil
		})
	}

	return g.Wait()
}
