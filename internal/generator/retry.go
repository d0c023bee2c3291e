package generator

import "errors"

// permanentError stops retry before the attempt budget is spent.
type permanentError struct{ err error }

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

func permanent(err error) error { return permanentError{err: err} }

// retry calls fn with attempt indices 0..n-1 until it succeeds. It returns the
// value, the index of the successful attempt and the last error.
func retry[T any](n int, fn func(attempt int) (T, error)) (T, int, error) {
	var (
		zero T
		last error
	)
	for i := 0; i < n; i++ {
		v, err := fn(i)
		if err == nil {
			return v, i, nil
		}
		last = err
		var p permanentError
		if errors.As(err, &p) {
			return zero, i, p.err
		}
	}
	return zero, n, last
}
