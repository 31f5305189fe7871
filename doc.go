// Package rivulet implements a minimal push-based reactive-stream
// library: a single composable Observable abstraction that lazily
// produces a sequence of values over time and notifies an observer of
// completion or failure.
//
// Typical usage looks like:
//   - Build a source with Of, FromSlice, Interval, FromChan, or FromFuture
//   - Derive new Observables with Map, Filter, Take, Concat, and friends
//   - Call Subscribe to run the chain; every subscription re-runs it
//     independently from the start
//
// Observables are cold and lazy: constructing one never executes its
// producer, and independent subscriptions never share state or side
// effects. Execution is single-threaded and cooperative; asynchronous
// sources re-enter on their own scheduler's goroutine but emissions for
// any one subscription remain strictly ordered.
//
// Alongside the in-memory sources, the package wires a few external ones:
// Redis pub/sub channels (PubSub), persisted record/replay logs backed by
// bbolt (Journal), and PostgreSQL result sets via pgx (FromQuery).
package rivulet
