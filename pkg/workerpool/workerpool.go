// Package workerpool runs a bounded set of workers over a slice of items.
package workerpool

import (
	"context"
	"sync"
)

// Process fans items out to workerCount goroutines and blocks until every
// item is handled. The first error from process cancels the pool's context
// and stops the remaining work; onCancel, when set, fires once before the
// cancellation.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan T, workerCount)
	failures := make(chan error, workerCount)

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-queue:
					if !ok {
						return
					}
					if err := process(ctx, item); err != nil {
						select {
						case failures <- err:
						default:
						}
						if onCancel != nil {
							onCancel()
						}
						cancel()
						return
					}
				}
			}
		}()
	}

	go func() {
		defer close(queue)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case queue <- item:
			}
		}
	}()

	wg.Wait()
	close(failures)

	for err := range failures {
		if err != nil {
			return err
		}
	}

	return ctx.Err()
}
