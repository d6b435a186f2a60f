package broadcast_test

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"printfloor/internal/adapters/out/broadcast"
	"printfloor/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHub(buffer int) *broadcast.Hub {
	return broadcast.NewHub(buffer, slog.New(slog.DiscardHandler))
}

func event(kind string) ports.Event {
	return ports.Event{Type: kind, At: time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)}
}

func drain(sub *broadcast.Subscription) []string {
	var got []string
	for {
		select {
		case e := <-sub.C:
			got = append(got, e.Type)
		default:
			return got
		}
	}
}

func TestHub_DeliversOnlyToMatchingTopics(t *testing.T) {
	// Given
	hub := newHub(8)
	owner := hub.Subscribe(ports.OwnerTopic("cust-1"))
	other := hub.Subscribe(ports.OwnerTopic("cust-2"))
	defer owner.Close()
	defer other.Close()

	// When
	hub.Publish(event(ports.EventJobMoved), ports.OwnerTopic("cust-1"))

	// Then
	assert.Equal(t, []string{ports.EventJobMoved}, drain(owner))
	assert.Empty(t, drain(other))
}

func TestHub_SubscriberOnSeveralTopicsReceivesOnce(t *testing.T) {
	hub := newHub(8)
	sub := hub.Subscribe(ports.FloorTopic, ports.OwnerTopic("cust-1"), ports.FloorTopic, "")
	defer sub.Close()

	hub.Publish(event(ports.EventJobMoved), ports.OwnerTopic("cust-1"), ports.FloorTopic)

	assert.Equal(t, []string{ports.EventJobMoved}, drain(sub))
	assert.Equal(t, []string{ports.FloorTopic, ports.OwnerTopic("cust-1")}, sub.Topics())
}

func TestHub_FullBufferDropsWithoutBlocking(t *testing.T) {
	// Given
	hub := newHub(2)
	slow := hub.Subscribe(ports.FloorTopic)
	fast := hub.Subscribe(ports.FloorTopic)
	defer slow.Close()
	defer fast.Close()

	// When
	hub.Publish(event("a"), ports.FloorTopic)
	hub.Publish(event("b"), ports.FloorTopic)
	assert.Equal(t, []string{"a", "b"}, drain(fast))
	hub.Publish(event("c"), ports.FloorTopic)

	// Then
	assert.Equal(t, []string{"a", "b"}, drain(slow))
	assert.Equal(t, []string{"c"}, drain(fast))
	assert.Equal(t, uint64(1), hub.Dropped())
}

func TestHub_CloseUnsubscribesAndClosesChannel(t *testing.T) {
	hub := newHub(4)
	sub := hub.Subscribe(ports.FloorTopic)
	require.Equal(t, 1, hub.SubscriberCount())

	sub.Close()
	sub.Close()

	_, open := <-sub.C
	assert.False(t, open)
	assert.Zero(t, hub.SubscriberCount())
	assert.NotPanics(t, func() { hub.Publish(event("late"), ports.FloorTopic) })
}

func TestHub_ConcurrentPublishAndClose(t *testing.T) {
	hub := newHub(16)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := hub.Subscribe(ports.FloorTopic)
			for range 50 {
				hub.Publish(event(ports.EventQueueDepthChanged), ports.FloorTopic)
			}
			sub.Close()
		}()
	}
	wg.Wait()

	assert.Zero(t, hub.SubscriberCount())
}
