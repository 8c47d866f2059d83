package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// both runs fn1 and fn2 concurrently. The first error cancels the other call.
func both[A, B any](
	ctx context.Context,
	fn1 func(context.Context) (A, error),
	fn2 func(context.Context) (B, error),
) (a A, b B, err error) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var fnErr error

		a, fnErr = fn1(ctx)

		return fnErr
	})

	g.Go(func() error {
		var fnErr error

		b, fnErr = fn2(ctx)

		return fnErr
	})

	if err := g.Wait(); err != nil {
		var zeroA A

		var zeroB B

		return zeroA, zeroB, fmt.Errorf("parallel execution failed: %w", err)
	}

	return a, b, nil
}

// outcome is one call's result in gather.
type outcome[T any] struct {
	value T
	err   error
}

// gather calls fn n times with at most limit calls in flight and keeps every
// outcome in call order. Calls not yet started when ctx ends record ctx.Err().
func gather[T any](ctx context.Context, n, limit int, fn func(context.Context) (T, error)) []outcome[T] {
	out := make([]outcome[T], n)

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := range out {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i].err = err
				return nil
			}

			v, err := fn(ctx)
			out[i] = outcome[T]{value: v, err: err}

			return nil
		})
	}

	_ = g.Wait()

	return out
}
