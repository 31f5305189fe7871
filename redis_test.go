package rivulet_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"

	"github.com/kode4food/rivulet"
)

func TestPubSubObserve(t *testing.T) {
	server, ps := setupTestPubSub(t)
	defer server.Close()
	defer func() { _ = ps.Close() }()

	ctx := context.Background()
	next := make(chan string, 1)
	cancel := ps.Observe(ctx, "events").SubscribeFunc(
		func(v string) { next <- v },
		nil, nil,
	)
	defer cancel()

	publishWhenReady(t, server, "events", "hello")

	select {
	case v := <-next:
		assert.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPubSubCancel(t *testing.T) {
	server, ps := setupTestPubSub(t)
	defer server.Close()
	defer func() { _ = ps.Close() }()

	ctx := context.Background()
	next := make(chan string, 1)
	cancel := ps.Observe(ctx, "events").SubscribeFunc(
		func(v string) { next <- v },
		nil, nil,
	)

	publishWhenReady(t, server, "events", "first")
	select {
	case v := <-next:
		assert.Equal(t, "first", v)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}

	cancel()

	// the server must see the subscription go away, after which nothing
	// published can reach the observer
	deadline := time.Now().Add(time.Second)
	for server.Publish("events", "late") > 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription never closed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPubSubIndependentSubscriptions(t *testing.T) {
	server, ps := setupTestPubSub(t)
	defer server.Close()
	defer func() { _ = ps.Close() }()

	ctx := context.Background()
	first := make(chan string, 1)
	second := make(chan string, 1)

	c1 := ps.Observe(ctx, "events").SubscribeFunc(
		func(v string) { first <- v }, nil, nil,
	)
	defer c1()
	c2 := ps.Observe(ctx, "events").SubscribeFunc(
		func(v string) { second <- v }, nil, nil,
	)
	defer c2()

	deadline := time.Now().Add(time.Second)
	for server.Publish("events", "fanout") < 2 {
		if time.Now().After(deadline) {
			t.Fatal("subscriptions never established")
		}
		time.Sleep(10 * time.Millisecond)
	}

	for _, ch := range []chan string{first, second} {
		select {
		case v := <-ch:
			assert.Equal(t, "fanout", v)
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for message")
		}
	}
}

func TestPubSubBadEndpoint(t *testing.T) {
	cfg := rivulet.DefaultPubSubConfig()
	cfg.Addr = "localhost:1"

	_, err := rivulet.NewPubSub(context.Background(), cfg)
	assert.Error(t, err)
}

func setupTestPubSub(t *testing.T) (*miniredis.Miniredis, *rivulet.PubSub) {
	server, err := miniredis.Run()
	assert.NoError(t, err)

	cfg := rivulet.DefaultPubSubConfig()
	cfg.Addr = server.Addr()

	ps, err := rivulet.NewPubSub(context.Background(), cfg)
	assert.NoError(t, err)
	return server, ps
}

func publishWhenReady(
	t *testing.T, server *miniredis.Miniredis, channel, payload string,
) {
	deadline := time.Now().Add(time.Second)
	for server.Publish(channel, payload) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription never established")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
