package generic

// Option is a value that may be absent, e.g. an audio track that the backend didn't report.
type Option[T any] struct {
	Value    T
	hasValue bool
}

// Some constructs an Option[T] that has a value.
func Some[T any](value T) Option[T] {
	return Option[T]{Value: value, hasValue: true}
}

// None constructs an Option[T] that does not have a value.
func None[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) IsNone() bool {
	return !o.hasValue
}

func (o Option[T]) IsSome() bool {
	return o.hasValue
}

// Get returns the contained value and whether there was one, in the style of a map lookup.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.hasValue
}
