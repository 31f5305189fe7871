package rivulet

import "sync"

// StartWith creates an Observable that emits the given values in
// argument order before subscribing to and forwarding the source. The
// source's terminal signals pass through unchanged
func (o Observable[T]) StartWith(values ...T) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		for _, v := range values {
			obs.Next(v)
		}
		return o.Subscribe(obs)
	})
}

// Concat runs each source to completion in sequence, concatenating their
// emissions into one stream. The subscription to source i+1 happens only
// inside source i's Complete, so ordering holds for asynchronous sources
// too. The combined stream completes once, after the last source does;
// an Error from any source terminates the whole chain
func Concat[T any](sources ...Observable[T]) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		var mu sync.Mutex
		canceled := false
		current := -1
		var upstream Cancel

		var runFrom func(int)
		runFrom = func(i int) {
			mu.Lock()
			if canceled {
				mu.Unlock()
				return
			}
			if i >= len(sources) {
				mu.Unlock()
				obs.Complete()
				return
			}
			current = i
			mu.Unlock()

			c := sources[i].Subscribe(Observer[T]{
				Next:  obs.Next,
				Error: obs.Error,
				Complete: func() {
					runFrom(i + 1)
				},
			})

			// a synchronous source completes during Subscribe and has
			// already advanced the chain; keep only the live teardown
			mu.Lock()
			if current == i && !canceled {
				upstream = c
			}
			stale := canceled
			mu.Unlock()
			if stale {
				c()
			}
		}
		runFrom(0)

		return func() {
			mu.Lock()
			if canceled {
				mu.Unlock()
				return
			}
			canceled = true
			c := upstream
			mu.Unlock()
			if c != nil {
				c()
			}
		}
	})
}

// Concat is the method form: the receiver runs first, then each of the
// others in order
func (o Observable[T]) Concat(others ...Observable[T]) Observable[T] {
	return Concat(append([]Observable[T]{o}, others...)...)
}

// Scan folds the stream with fn, emitting every intermediate
// accumulation. The seed itself is not emitted
func Scan[T, U any](src Observable[T], fn func(U, T) U, seed U) Observable[U] {
	return New(func(obs Observer[U]) Cancel {
		acc := seed
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				acc = fn(acc, v)
				obs.Next(acc)
			},
			Error:    obs.Error,
			Complete: obs.Complete,
		})
	})
}

// Reduce folds the stream with fn and emits only the final accumulation,
// immediately before Complete. An empty source emits the seed
func Reduce[T, U any](src Observable[T], fn func(U, T) U, seed U) Observable[U] {
	return New(func(obs Observer[U]) Cancel {
		acc := seed
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				acc = fn(acc, v)
			},
			Error: obs.Error,
			Complete: func() {
				obs.Next(acc)
				obs.Complete()
			},
		})
	})
}
