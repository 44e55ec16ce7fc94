// Package pipe chains together stages which transform a value, such that the first error is returned immediately.
// This keeps multi-step conversions like text -> ranges -> canonical set free of error handling boilerplate.
package pipe

// Stage transforms an In into an Out, or fails
type Stage[In, Out any] func(In) (Out, error)

// Do runs the stage on in
func (s Stage[In, Out]) Do(in In) (Out, error) {
	return s(in)
}

// Then returns a Stage running first, then passing its result to second. If first fails, second is not run.
func Then[A, B, C any](first Stage[A, B], second Stage[B, C]) Stage[A, C] {
	return func(a A) (C, error) {
		b, err := first(a)
		if err != nil {
			var zero C
			return zero, err
		}
		return second(b)
	}
}

// Total lifts a function which never fails into a Stage
func Total[In, Out any](fn func(In) Out) Stage[In, Out] {
	return func(in In) (Out, error) {
		return fn(in), nil
	}
}

// Check returns a Stage which passes its input through unchanged, unless check returns an error
func Check[T any](check func(T) error) Stage[T, T] {
	return func(t T) (T, error) {
		if err := check(t); err != nil {
			var zero T
			return zero, err
		}
		return t, nil
	}
}

// ErrIf returns 'err' if 'cond' is true, nil otherwise
func ErrIf(cond bool, err error) error {
	if cond {
		return err
	}
	return nil
}
