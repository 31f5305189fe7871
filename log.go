package rivulet

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Logged instruments the stream with structured logging. Every
// subscription is tagged with the observable's name and a fresh
// subscription ID, and each notification is logged before being
// forwarded unchanged. Next and Complete log at debug level, Error at
// error level
func Logged[T any](
	src Observable[T], log *zap.Logger, name string,
) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		l := log.With(
			zap.String("observable", name),
			zap.String("subscription", uuid.NewString()),
		)
		l.Debug("subscribed")

		upstream := src.Subscribe(Observer[T]{
			Next: func(v T) {
				l.Debug("next", zap.Any("value", v))
				obs.Next(v)
			},
			Error: func(err error) {
				l.Error("error", zap.Error(err))
				obs.Error(err)
			},
			Complete: func() {
				l.Debug("complete")
				obs.Complete()
			},
		})

		return func() {
			l.Debug("canceled")
			upstream()
		}
	})
}

// Logged is the method form of the free function
func (o Observable[T]) Logged(log *zap.Logger, name string) Observable[T] {
	return Logged(o, log, name)
}
