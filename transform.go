package rivulet

// Map creates an Observable that emits fn applied to each source value.
// Errors and completion pass through unchanged
func Map[T, U any](src Observable[T], fn func(T) U) Observable[U] {
	return New(func(obs Observer[U]) Cancel {
		return src.Subscribe(Observer[T]{
			Next:     func(v T) { obs.Next(fn(v)) },
			Error:    obs.Error,
			Complete: obs.Complete,
		})
	})
}

// Map is the method form of the free function, limited to projections
// that keep the element type
func (o Observable[T]) Map(fn func(T) T) Observable[T] {
	return Map(o, fn)
}

// MapTo creates an Observable that emits value once per source emission,
// ignoring the incoming element
func MapTo[T, U any](src Observable[T], value U) Observable[U] {
	return Map(src, func(T) U { return value })
}

// MapTo is the method form of the free function
func (o Observable[T]) MapTo(value T) Observable[T] {
	return MapTo(o, value)
}

// Do attaches side-effect callbacks to the stream. Each callback fires
// with the actual notification before it is forwarded downstream
// unchanged; the data itself is never altered. Any callback may be nil
func Do[T any](
	src Observable[T], next func(T), err func(error), complete func(),
) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		tap := Observer[T]{
			Next:     next,
			Error:    err,
			Complete: complete,
		}.normalize()

		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				tap.Next(v)
				obs.Next(v)
			},
			Error: func(e error) {
				tap.Error(e)
				obs.Error(e)
			},
			Complete: func() {
				tap.Complete()
				obs.Complete()
			},
		})
	})
}

// Do is the method form of the free function
func (o Observable[T]) Do(
	next func(T), err func(error), complete func(),
) Observable[T] {
	return Do(o, next, err, complete)
}
