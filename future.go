package rivulet

import "sync"

type (
	// Future is an opaque single-value asynchronous source: it settles at
	// most once, with either a value or an error. It stands in wherever
	// a promise would in other ecosystems
	Future[T any] struct {
		done chan struct{}
		once sync.Once
		val  T
		err  error
	}

	// futureLike lets From recognize a Future of any element type
	futureLike interface {
		Done() <-chan struct{}
		anyResult() (any, error)
	}
)

// NewFuture creates an unsettled Future
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolve settles the Future with a value. Later settlements are ignored
func (f *Future[T]) Resolve(v T) {
	f.once.Do(func() {
		f.val = v
		close(f.done)
	})
}

// Reject settles the Future with an error. Later settlements are ignored
func (f *Future[T]) Reject(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done returns a channel that closes once the Future settles
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the Future settles and returns its outcome
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}

func (f *Future[T]) anyResult() (any, error) {
	<-f.done
	return f.val, f.err
}

// FromFuture creates an Observable of the Future's resolution: one Next
// followed by Complete. Rejection calls Error with the reason instead;
// Next and Complete never fire for a rejected Future
func FromFuture[T any](f *Future[T]) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		stop := make(chan struct{})
		go func() {
			select {
			case <-f.done:
			case <-stop:
				return
			}
			select {
			case <-stop:
				return
			default:
			}
			if f.err != nil {
				obs.Error(f.err)
				return
			}
			obs.Next(f.val)
			obs.Complete()
		}()
		var once sync.Once
		return func() {
			once.Do(func() { close(stop) })
		}
	})
}

func fromFutureLike(f futureLike) Observable[any] {
	return New(func(obs Observer[any]) Cancel {
		stop := make(chan struct{})
		go func() {
			select {
			case <-f.Done():
			case <-stop:
				return
			}
			select {
			case <-stop:
				return
			default:
			}
			v, err := f.anyResult()
			if err != nil {
				obs.Error(err)
				return
			}
			obs.Next(v)
			obs.Complete()
		}()
		var once sync.Once
		return func() {
			once.Do(func() { close(stop) })
		}
	})
}
