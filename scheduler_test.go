package rivulet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/rivulet"
)

func TestDefaultSchedulerRepeat(t *testing.T) {
	next := make(chan int, 1)
	cancel := rivulet.Interval(5*time.Millisecond).SubscribeFunc(
		func(v int) {
			select {
			case next <- v:
			default:
			}
		},
		nil, nil,
	)
	defer cancel()

	select {
	case v := <-next:
		assert.Equal(t, 0, v)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for first tick")
	}
}

func TestManualSchedulerCancelIsIdempotent(t *testing.T) {
	s := rivulet.NewManualScheduler()

	fired := 0
	cancel := s.Repeat(time.Millisecond, func() { fired++ })

	s.Tick()
	cancel()
	cancel()
	s.Tick()

	assert.Equal(t, 1, fired)
}

func TestManualSchedulerOrder(t *testing.T) {
	s := rivulet.NewManualScheduler()

	var order []string
	s.Repeat(time.Millisecond, func() { order = append(order, "a") })
	s.Repeat(time.Millisecond, func() { order = append(order, "b") })

	s.Tick()
	assert.Equal(t, []string{"a", "b"}, order)
}
