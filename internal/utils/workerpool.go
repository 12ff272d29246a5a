package utils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParallelMap calls fn for every item with at most workers calls in flight
// and returns the results in input order.
// started[i] is false for an item that was never picked up because ctx
// ended first; its result is the zero value. A slow item only holds its own
// slot, so one failure never stops the rest.
func ParallelMap[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) R) (results []R, started []bool) {
	results = make([]R, len(items))
	started = make([]bool, len(items))
	if workers <= 0 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			started[i] = true
			results[i] = fn(ctx, item)
			return nil
		})
	}

	// fn reports through its result, never through the group
	_ = g.Wait()

	return results, started
}
