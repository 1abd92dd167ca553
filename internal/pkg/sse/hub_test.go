package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-1", Event{UserID: "user-1", Event: "notification", Data: "hello"})

	select {
	case ev := <-ch:
		assert.Equal(t, "notification", ev.Event)
		assert.Equal(t, "hello", ev.Data)
	case <-time.After(time.Second):
		t.Fatal("expected event was not delivered")
	}
}

func TestHub_PublishToOtherUserNotDelivered(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-2", Event{UserID: "user-2", Event: "notification"})

	select {
	case <-ch:
		t.Fatal("event for another user must not be delivered")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_PublishToMany(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("a")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("b")
	defer cleanup2()

	hub.PublishToMany([]string{"a", "b"}, Event{Event: "notification"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("expected event was not delivered")
		}
	}
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	require.Equal(t, 1, hub.SubscriberCount("user-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("user-1"))

	// Publishing after cleanup must not panic.
	hub.Publish("user-1", Event{Event: "notification"})
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			hub.Publish("user-1", Event{Event: "notification"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber channel")
	}
}
