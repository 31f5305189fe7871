package rivulet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/rivulet"
)

func TestStartWith(t *testing.T) {
	r := record(rivulet.FromSlice([]int{1, 2, 3, 4, 5}).StartWith(0))

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, r.values)
	assert.Equal(t, 1, r.completes)
}

func TestStartWithMulti(t *testing.T) {
	r := record(rivulet.FromSlice([]int{1, 2, 3, 4, 5}).StartWith(-1, 0))

	assert.Equal(t, []int{-1, 0, 1, 2, 3, 4, 5}, r.values)
	assert.Equal(t, 1, r.completes)
}

func TestConcat(t *testing.T) {
	r := record(rivulet.Of(10).Concat(rivulet.Of(20)))

	assert.Equal(t, []int{10, 20}, r.values)
	assert.Equal(t, 1, r.completes)
}

func TestConcatMulti(t *testing.T) {
	r := record(rivulet.Concat(
		rivulet.Of(1, 2),
		rivulet.Of[int](),
		rivulet.Of(3),
	))

	assert.Equal(t, []int{1, 2, 3}, r.values)
	assert.Equal(t, 1, r.completes)
}

func TestConcatAsync(t *testing.T) {
	ch1 := make(chan int)
	ch2 := make(chan int)

	done := make(chan struct{})
	var values []int
	rivulet.FromChan(ch1).Concat(rivulet.FromChan(ch2)).SubscribeFunc(
		func(v int) { values = append(values, v) },
		nil,
		func() { close(done) },
	)

	// the second source is ready to send before the first completes;
	// strict chaining must still order its value last
	go func() {
		ch2 <- 10
		close(ch2)
	}()

	ch1 <- 1
	ch1 <- 2
	close(ch1)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for completion")
	}
	assert.Equal(t, []int{1, 2, 10}, values)
}

func TestConcatTimerSources(t *testing.T) {
	done := make(chan struct{})
	var values []int
	rivulet.Concat(
		rivulet.Interval(time.Microsecond).Take(2),
		rivulet.Of(9),
	).SubscribeFunc(
		func(v int) { values = append(values, v) },
		nil,
		func() { close(done) },
	)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for completion")
	}
	assert.Equal(t, []int{0, 1, 9}, values)
}

func TestConcatCancel(t *testing.T) {
	s := rivulet.NewManualScheduler()
	r := record(rivulet.Concat(
		rivulet.IntervalOn(s, time.Millisecond),
	))

	s.Tick()
	r.cancel()
	s.Tick()

	assert.Equal(t, []int{0}, r.values)
	assert.Zero(t, r.completes)
}

func TestScan(t *testing.T) {
	r := record(rivulet.Scan(
		rivulet.Of(1, 2, 3, 4),
		func(acc, v int) int { return acc + v },
		0,
	))

	assert.Equal(t, []int{1, 3, 6, 10}, r.values)
	assert.Equal(t, 1, r.completes)
}

func TestReduce(t *testing.T) {
	r := record(rivulet.Reduce(
		rivulet.Of(6, 8),
		func(acc, v int) int { return acc + v },
		0,
	))

	assert.Equal(t, []int{14}, r.values)
	assert.Equal(t, 1, r.completes)
}

func TestReduceEmpty(t *testing.T) {
	r := record(rivulet.Reduce(
		rivulet.Of[int](),
		func(acc, v int) int { return acc + v },
		7,
	))

	assert.Equal(t, []int{7}, r.values)
	assert.Equal(t, 1, r.completes)
}
