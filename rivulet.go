package rivulet

type (
	// Producer drives the emissions for a single subscription. It is
	// handed the subscribing Observer and may return a Cancel releasing
	// whatever resources it acquired. A producer may call Next zero or
	// more times, and Error or Complete at most once in total; the
	// library does not police that contract at runtime
	Producer[T any] func(Observer[T]) Cancel

	// Cancel releases the resources held by one subscription. Subscribe
	// never returns nil; producers without teardown get a no-op stand-in
	Cancel func()

	// Observer is the three-callback sink for a subscription. Any of the
	// callbacks may be nil; they are normalized to no-ops at Subscribe
	// time
	Observer[T any] struct {
		Next     func(T)
		Error    func(error)
		Complete func()
	}

	// Observable is a lazy, cold source of a value sequence. It wraps
	// exactly one producer, fixed at construction, and its only
	// operation is Subscribe. Deriving operators always build a new
	// Observable; nothing is ever mutated in place
	Observable[T any] struct {
		producer Producer[T]
	}
)

// New creates an Observable from a producer. Construction alone never
// runs the producer; only Subscribe does
func New[T any](p Producer[T]) Observable[T] {
	return Observable[T]{producer: p}
}

// Subscribe runs the wrapped producer against a normalized copy of obs
// and returns its teardown. Each call is an independent execution with
// its own local state
func (o Observable[T]) Subscribe(obs Observer[T]) Cancel {
	c := o.producer(obs.normalize())
	if c == nil {
		return func() {}
	}
	return c
}

// SubscribeFunc subscribes with split callbacks. Trailing callbacks may
// be nil
func (o Observable[T]) SubscribeFunc(
	next func(T), err func(error), complete func(),
) Cancel {
	return o.Subscribe(Observer[T]{Next: next, Error: err, Complete: complete})
}

func (obs Observer[T]) normalize() Observer[T] {
	if obs.Next == nil {
		obs.Next = func(T) {}
	}
	if obs.Error == nil {
		obs.Error = func(error) {}
	}
	if obs.Complete == nil {
		obs.Complete = func() {}
	}
	return obs
}
