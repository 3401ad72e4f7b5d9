package generic

import "fmt"

type Result[T any] struct {
	Value T
	Error error
}

// NewResult wraps a (T, error) return value from another function call as a Result[T].
func NewResult[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Error: err}
}

func (r Result[T]) IsErr() bool {
	return r.Error != nil
}

// Expect returns the contained value, or panics with msg wrapping the contained error.
func (r Result[T]) Expect(msg string) T {
	if r.IsErr() {
		panic(fmt.Errorf("%s: %w", msg, r.Error))
	}
	return r.Value
}

func (r Result[T]) Unwrap() T {
	return r.Expect("tried to Unwrap() an Err")
}

// Unwrap is a shortcut for NewResult(...).Unwrap().
func Unwrap[T any](value T, err error) T {
	return NewResult(value, err).Unwrap()
}

// Unwrap_ is like Unwrap, but for functions that only return an error.
func Unwrap_(err error) {
	NewResult(NewVoid(), err).Unwrap()
}
