package reviewlex

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// A Task is one independent unit of an analysis run.
type Task func(ctx context.Context) error

// RunAll runs tasks in parallel, at most workers at a time, and waits for all
// of them to finish. A workers value below 1 means runtime.NumCPU().
//
// The first error cancels the context passed to the remaining tasks and is
// returned once every task has stopped. Tasks must write disjoint results.
func RunAll(ctx context.Context, workers int, tasks ...Task) error {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return task(gctx)
		})
	}
	return g.Wait()
}

// RunSequential runs tasks one after the other and stops at the first error.
func RunSequential(ctx context.Context, tasks ...Task) error {
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := task(ctx); err != nil {
			return err
		}
	}
	return nil
}
