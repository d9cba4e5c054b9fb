// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
)

// Process runs a worker pool over the provided work items, invoking process for each.
// If process returns an error, the pool cancels the context and stops further work.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workerCount = normalize(workerCount, len(items))
	tasks := make(chan T, workerCount)
	errs := make(chan error, workerCount)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-tasks:
					if !ok {
						return
					}
					if err := process(ctx, item); err != nil {
						select {
						case errs <- err:
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
		defer close(tasks)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case tasks <- item:
			}
		}
	}()

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}

	return ctx.Err()
}

// Each runs process for every item on at most workerCount goroutines. Unlike
// Process, a failing item does not stop its siblings. The returned slice holds
// the error of each item at the item's index; items never started because ctx
// was done carry ctx.Err().
func Each[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
) []error {
	errs := make([]error, len(items))
	if len(items) == 0 {
		return errs
	}

	workerCount = normalize(workerCount, len(items))
	tasks := make(chan int, workerCount)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				if err := ctx.Err(); err != nil {
					errs[idx] = err
					continue
				}
				errs[idx] = process(ctx, items[idx])
			}
		}()
	}

	for i := range items {
		select {
		case <-ctx.Done():
			for j := i; j < len(items); j++ {
				errs[j] = ctx.Err()
			}
			close(tasks)
			wg.Wait()
			return errs
		case tasks <- i:
		}
	}
	close(tasks)
	wg.Wait()

	return errs
}

func normalize(workerCount, items int) int {
	if workerCount <= 0 {
		workerCount = 1
	}
	if items > 0 && workerCount > items {
		workerCount = items
	}
	return workerCount
}
