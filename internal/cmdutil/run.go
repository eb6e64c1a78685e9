package cmdutil

import "context"

// RunStream runs a producer and streams every value it yields into in.
// It returns the number of values sent and the producer's error. A send
// blocks until the writer takes the value or ctx is done.
func RunStream[T any](
	ctx context.Context,
	in chan<- T,
	produce func(send func(T) error) error,
) (int, error) {
	total := 0
	err := produce(func(v T) error {
		select {
		case in <- v:
			total++
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	return total, err
}
