package domain

// Optional records whether a field was supplied at all, so that zero values
// (price 0, empty description) can be written on purpose.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// OrElse returns the supplied value, or current when the field was absent.
func (o Optional[T]) OrElse(current T) T {
	if o.Set {
		return o.Value
	}
	return current
}
