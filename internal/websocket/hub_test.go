package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, userID int) *Client {
	return &Client{
		ID:     "test_client",
		UserID: userID,
		Hub:    hub,
		Send:   make(chan Event, 16),
		Tables: make(map[string]bool),
	}
}

func receiveEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case event := <-c.Send:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func drainEvents(c *Client) {
	for {
		select {
		case <-c.Send:
		default:
			return
		}
	}
}

func TestSubscriberReceivesRowChange(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, 1)
	client.SubscribeToTable("chat")
	hub.Register <- client

	hub.BroadcastRowChange(EventRowInsert, "chat", map[string]interface{}{"id": 42})

	event := receiveEvent(t, client)
	assert.Equal(t, EventRowInsert, event.Type)
	assert.Equal(t, "chat", event.Table)
}

func TestNonSubscriberReceivesNothing(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	subscriber := newTestClient(hub, 1)
	subscriber.SubscribeToTable("chat")
	hub.Register <- subscriber

	bystander := newTestClient(hub, 2)
	hub.Register <- bystander
	drainEvents(subscriber) // partner-online notification
	drainEvents(bystander)

	hub.BroadcastRowChange(EventRowInsert, "chat", nil)

	receiveEvent(t, subscriber)
	select {
	case event := <-bystander.Send:
		t.Fatalf("unexpected event for non-subscriber: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, 1)
	client.SubscribeToTable("backgrounds")
	hub.Register <- client

	hub.BroadcastRowChange(EventRowUpdate, "backgrounds", nil)
	receiveEvent(t, client)

	client.UnsubscribeFromTable("backgrounds")
	hub.BroadcastRowChange(EventRowUpdate, "backgrounds", nil)

	select {
	case event := <-client.Send:
		t.Fatalf("unexpected event after unsubscribe: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPartnerPresenceNotifications(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := newTestClient(hub, 1)
	hub.Register <- first

	second := newTestClient(hub, 2)
	hub.Register <- second

	event := receiveEvent(t, first)
	assert.Equal(t, MessageTypeUserOnline, event.Type)
	assert.Equal(t, 2, event.UserID)

	hub.Unregister <- second
	event = receiveEvent(t, first)
	assert.Equal(t, MessageTypeUserOffline, event.Type)
}

func TestSlowSubscriberRemovalDuringPresencePolling(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Unbuffered Send channels with no reader: every broadcast takes the
	// slow-subscriber path, closing channels and deleting map entries
	// while another goroutine iterates the same map.
	for i := 1; i <= 4; i++ {
		client := &Client{
			ID:     "slow_client",
			UserID: i,
			Hub:    hub,
			Send:   make(chan Event),
			Tables: map[string]bool{"chat": true},
		}
		hub.Register <- client
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			hub.GetOnlineUsers()
		}
	}()

	for i := 0; i < 50; i++ {
		hub.BroadcastRowChange(EventRowInsert, "chat", nil)
	}
	<-done

	// All slow subscribers end up evicted and the map stays consistent
	require.Eventually(t, func() bool {
		return len(hub.GetOnlineUsers()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestGetOnlineUsers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	hub.Register <- newTestClient(hub, 1)
	hub.Register <- newTestClient(hub, 2)

	require.Eventually(t, func() bool {
		return len(hub.GetOnlineUsers()) == 2
	}, time.Second, 5*time.Millisecond)

	assert.ElementsMatch(t, []int{1, 2}, hub.GetOnlineUsers())
}
