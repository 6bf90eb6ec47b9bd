package collector

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is one unit of a joined computation.
type Task[T any] func(ctx context.Context) (T, error)

// Joined is the all-or-nothing outcome of Join: either every value in task
// order, or the first error reported and no values.
type Joined[T any] struct {
	Values []T
	Err    error
}

// Result returns the values and error of the join.
func (j Joined[T]) Result() ([]T, error) { return j.Values, j.Err }

// Join runs every task concurrently and returns once all of them have
// finished. A failing task does not cancel its siblings.
func Join[T any](ctx context.Context, tasks ...Task[T]) Joined[T] {
	values := make([]T, len(tasks))
	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			v, err := task(ctx)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Joined[T]{Err: err}
	}
	return Joined[T]{Values: values}
}
