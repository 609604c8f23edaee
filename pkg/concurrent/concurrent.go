package concurrent

import "golang.org/x/sync/errgroup"

// ForEach runs action for every element of items on up to workers
// goroutines and waits for all of them. The index passed to action is the
// element's position in items, so results can be written to a preallocated
// slice without extra locking. The first error encountered is returned;
// remaining actions still run to completion.
func ForEach[T any](items []T, workers int, action func(index int, item T) error) error {
	if workers <= 0 {
		workers = len(items)
	}

	group := errgroup.Group{}
	group.SetLimit(workers)

	for i, item := range items {
		i, item := i, item
		group.Go(func() error {
			return action(i, item)
		})
	}

	return group.Wait()
}
