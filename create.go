package rivulet

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Entry is the key/value pair emitted when From is handed a map
type Entry struct {
	Key   any
	Value any
}

// ErrUnsupportedSource indicates From was handed a value it cannot turn
// into an Observable
var ErrUnsupportedSource = errors.New("unsupported source")

// Of creates an Observable that synchronously emits the given values in
// argument order and then completes. It has no error path
func Of[T any](values ...T) Observable[T] {
	return FromSlice(values)
}

// FromSlice creates an Observable that synchronously emits each element
// of values in order and then completes. A nil slice yields an empty
// sequence
func FromSlice[T any](values []T) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		for _, v := range values {
			obs.Next(v)
		}
		obs.Complete()
		return nil
	})
}

// FromChan creates an Observable that emits each value received from ch
// until the channel closes, then completes. Emissions arrive on the
// pump's own goroutine; Cancel stops the pump without closing ch
func FromChan[T any](ch <-chan T) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		stop := make(chan struct{})
		go func() {
			for {
				select {
				case v, ok := <-ch:
					// a cancel may have raced the receive
					select {
					case <-stop:
						return
					default:
					}
					if !ok {
						obs.Complete()
						return
					}
					obs.Next(v)
				case <-stop:
					return
				}
			}
		}()
		var once sync.Once
		return func() {
			once.Do(func() { close(stop) })
		}
	})
}

// Interval creates an Observable that emits a 0-based counter every
// period, forever. The returned Cancel stops the timer; nothing else
// ever terminates the sequence
func Interval(period time.Duration) Observable[int] {
	return IntervalOn(DefaultScheduler(), period)
}

// IntervalOn is Interval against an explicit Scheduler. Each
// subscription owns its own counter and timer
func IntervalOn(s Scheduler, period time.Duration) Observable[int] {
	return New(func(obs Observer[int]) Cancel {
		count := 0
		return s.Repeat(period, func() {
			n := count
			count++
			obs.Next(n)
		})
	})
}

// From dispatches on the shape of input and delegates to the matching
// source constructor:
//
//   - a Future (or anything future-like) becomes its single resolution,
//     with rejection routed to Error
//   - a slice or array spreads its elements
//   - a string spreads its characters, one single-rune string each
//   - a map spreads its entries as Entry pairs, in iteration order
//   - a receivable channel pumps until closed
//
// Anything else fails with ErrUnsupportedSource rather than producing an
// unusable result
func From(input any) (Observable[any], error) {
	if f, ok := input.(futureLike); ok {
		return fromFutureLike(f), nil
	}
	if s, ok := input.(string); ok {
		return fromString(s), nil
	}

	rv := reflect.ValueOf(input)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return fromSliceValue(rv), nil
	case reflect.Map:
		return fromMapValue(rv), nil
	case reflect.Chan:
		if rv.Type().ChanDir() != reflect.SendDir {
			return fromChanValue(rv), nil
		}
	}
	return Observable[any]{}, fmt.Errorf("%w: %T", ErrUnsupportedSource, input)
}

func fromString(s string) Observable[any] {
	return New(func(obs Observer[any]) Cancel {
		for _, r := range s {
			obs.Next(string(r))
		}
		obs.Complete()
		return nil
	})
}

func fromSliceValue(rv reflect.Value) Observable[any] {
	return New(func(obs Observer[any]) Cancel {
		for i := 0; i < rv.Len(); i++ {
			obs.Next(rv.Index(i).Interface())
		}
		obs.Complete()
		return nil
	})
}

func fromMapValue(rv reflect.Value) Observable[any] {
	return New(func(obs Observer[any]) Cancel {
		it := rv.MapRange()
		for it.Next() {
			obs.Next(Entry{
				Key:   it.Key().Interface(),
				Value: it.Value().Interface(),
			})
		}
		obs.Complete()
		return nil
	})
}

func fromChanValue(rv reflect.Value) Observable[any] {
	return New(func(obs Observer[any]) Cancel {
		stop := make(chan struct{})
		go func() {
			cases := []reflect.SelectCase{
				{Dir: reflect.SelectRecv, Chan: rv},
				{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(stop)},
			}
			for {
				chosen, v, ok := reflect.Select(cases)
				if chosen == 1 {
					return
				}
				select {
				case <-stop:
					return
				default:
				}
				if !ok {
					obs.Complete()
					return
				}
				obs.Next(v.Interface())
			}
		}()
		var once sync.Once
		return func() {
			once.Do(func() { close(stop) })
		}
	})
}
