package rivulet

import (
	"fmt"
	"sync"
)

// Filter creates an Observable that forwards only the source values for
// which pred is true. Errors and completion pass through unchanged
func Filter[T any](src Observable[T], pred func(T) bool) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				if pred(v) {
					obs.Next(v)
				}
			},
			Error:    obs.Error,
			Complete: obs.Complete,
		})
	})
}

// Filter is the method form of the free function
func (o Observable[T]) Filter(pred func(T) bool) Observable[T] {
	return Filter(o, pred)
}

// Take forwards the first count values, then completes downstream and
// cancels the upstream subscription immediately. Values beyond the count
// never reach the observer. Take(0) completes without subscribing at
// all. The local state is guarded so asynchronous sources emitting on
// their own goroutine stay race-free
func Take[T any](src Observable[T], count int) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		if count <= 0 {
			obs.Complete()
			return nil
		}

		var mu sync.Mutex
		seen := 0
		done := false
		var upstream Cancel

		c := src.Subscribe(Observer[T]{
			Next: func(v T) {
				mu.Lock()
				if done {
					mu.Unlock()
					return
				}
				seen++
				last := seen == count
				if last {
					done = true
				}
				mu.Unlock()

				obs.Next(v)
				if last {
					obs.Complete()
					mu.Lock()
					c := upstream
					mu.Unlock()
					if c != nil {
						c()
					}
				}
			},
			Error: func(err error) {
				mu.Lock()
				if done {
					mu.Unlock()
					return
				}
				done = true
				mu.Unlock()
				obs.Error(err)
			},
			Complete: func() {
				mu.Lock()
				if done {
					mu.Unlock()
					return
				}
				done = true
				mu.Unlock()
				obs.Complete()
			},
		})

		// a synchronous source can hit the count before Subscribe
		// returns, in which case the teardown was not yet in reach
		mu.Lock()
		upstream = c
		finished := done
		mu.Unlock()
		if finished {
			c()
		}
		return c
	})
}

// Take is the method form of the free function
func (o Observable[T]) Take(count int) Observable[T] {
	return Take(o, count)
}

// First forwards the first value for which pred is true, or simply the
// first value when no predicate is given, and suppresses every Next after
// that. It does not force early completion; the upstream terminal signal
// still passes through when it arrives
func First[T any](src Observable[T], preds ...func(T) bool) Observable[T] {
	var pred func(T) bool
	if len(preds) > 0 {
		pred = preds[0]
	}
	return New(func(obs Observer[T]) Cancel {
		found := false
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				if found {
					return
				}
				if pred != nil && !pred(v) {
					return
				}
				found = true
				obs.Next(v)
			},
			Error:    obs.Error,
			Complete: obs.Complete,
		})
	})
}

// First is the method form of the free function
func (o Observable[T]) First(preds ...func(T) bool) Observable[T] {
	return First(o, preds...)
}

// Skip drops the first count values and forwards everything after them.
// It counts positions, not values. Errors and completion pass through
// unchanged even while dropping
func Skip[T any](src Observable[T], count int) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		dropped := 0
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				if dropped < count {
					dropped++
					return
				}
				obs.Next(v)
			},
			Error:    obs.Error,
			Complete: obs.Complete,
		})
	})
}

// Skip is the method form of the free function
func (o Observable[T]) Skip(count int) Observable[T] {
	return Skip(o, count)
}

// Distinct suppresses values whose key has already been emitted, keeping
// at most limit keys in a least-recently-used set. A limit of zero or
// less falls back to DefaultDistinctSize. Keys are the values' default
// formatted representation
func Distinct[T any](src Observable[T], limit int) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		seen := newSeenCache(limit)
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				if seen.observe(fmt.Sprintf("%v", v)) {
					return
				}
				obs.Next(v)
			},
			Error:    obs.Error,
			Complete: obs.Complete,
		})
	})
}

// Distinct is the method form of the free function
func (o Observable[T]) Distinct(limit int) Observable[T] {
	return Distinct(o, limit)
}
